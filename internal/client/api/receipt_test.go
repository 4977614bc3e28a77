package api

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReceiptPresignedURL_ShapeFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"url field", `{"url":"https://s3/a"}`, "https://s3/a"},
		{"presigned_url field", `{"presigned_url":"https://s3/b"}`, "https://s3/b"},
		{"url wins over presigned_url", `{"url":"https://s3/a","presigned_url":"https://s3/b"}`, "https://s3/a"},
		{"bare string body", `"https://s3/c"`, "https://s3/c"},
		{"empty object", `{}`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/receipt/presigned-url", r.URL.Path)
				_, _ = w.Write([]byte(tc.body))
			}))
			got, err := c.ReceiptPresignedURL(context.Background(), 7)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPutPresigned_RawUploadWithoutBearer(t *testing.T) {
	var gotAuth, gotCT string
	var gotBody []byte
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}), WithTokenSource(StaticToken("tok")))

	// PutPresigned hits the absolute URL, so reuse the test server address.
	srvURL := "http://" + hostOf(t, c)
	require.NoError(t, c.PutPresigned(context.Background(), srvURL+"/bucket/key", []byte("img"), "image/jpeg"))
	require.Empty(t, gotAuth, "presigned uploads carry no bearer token")
	require.Equal(t, "image/jpeg", gotCT)
	require.Equal(t, []byte("img"), gotBody)
}

// hostOf extracts host:port from the client's configured base URL.
func hostOf(t *testing.T, c *Client) string {
	t.Helper()
	const prefix = "http://"
	require.True(t, len(c.baseURL) > len(prefix))
	return c.baseURL[len(prefix):]
}

func TestUploadReceipt_ReturnsReceiptID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/receipt/upload", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("user_id"))
		_, _ = w.Write([]byte(`{"receipt_id":"rc-1"}`))
	}))

	id, err := c.UploadReceipt(context.Background(), 7, "aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, "rc-1", id)
}

func TestReceiptResult_PollingSemantics(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantNil bool
		wantErr bool
	}{
		{"accepted means not ready", http.StatusAccepted, ``, true, false},
		{"no content means not ready", http.StatusNoContent, ``, true, false},
		{"not found means not ready", http.StatusNotFound, ``, true, false},
		{"empty body means no data", http.StatusOK, ``, true, false},
		{"garbage body means no data", http.StatusOK, `<html>`, true, false},
		{"server error is an error", http.StatusInternalServerError, ``, true, true},
		{"ready result decodes", http.StatusOK, `{"receipt_id":"rc-1","items":[{"item_name":"Milk","quantity":1,"unit":"liters"}]}`, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/receipt/result/rc-1", r.URL.Path)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			res, err := c.ReceiptResult(context.Background(), "rc-1")
			if tc.wantErr {
				require.Error(t, err)
				var apiErr *Error
				require.ErrorAs(t, err, &apiErr)
				return
			}
			require.NoError(t, err)
			if tc.wantNil {
				require.Nil(t, res)
				return
			}
			require.Equal(t, "rc-1", res.ReceiptID)
			require.Len(t, res.Items, 1)
			require.Equal(t, "Milk", res.Items[0].ItemName)
		})
	}
}
