package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pantrypal/pantrypal/internal/client/models"
)

// ReceiptItem is one line extracted from a scanned receipt by the backend
// OCR pipeline, shaped so it can feed AddPantryItems after user review.
type ReceiptItem struct {
	ItemName   string      `json:"item_name"`
	Quantity   float64     `json:"quantity"`
	Unit       models.Unit `json:"unit"`
	Category   string      `json:"category,omitempty"`
	ExpiryDate string      `json:"expiry_date,omitempty"`
}

// ReceiptResult is the finished OCR extraction for one uploaded receipt.
type ReceiptResult struct {
	ReceiptID string        `json:"receipt_id"`
	Store     string        `json:"store,omitempty"`
	Total     *float64      `json:"total,omitempty"`
	Items     []ReceiptItem `json:"items"`
}

// ReceiptPresignedURL asks the backend for a direct-upload URL. The endpoint
// has returned three shapes over time; resolution order: an object's "url"
// field, then "presigned_url", then the body itself as a JSON string. An
// empty result means the backend declined without an error status.
func (c *Client) ReceiptPresignedURL(ctx context.Context, userID int64) (string, error) {
	payload := map[string]int64{"user_id": userID}
	var raw json.RawMessage
	err := c.call(ctx, http.MethodPost, "/receipt/presigned-url", nil, payload, &raw, "failed to get receipt upload URL")
	if err != nil {
		return "", err
	}

	var wrapped struct {
		URL          string `json:"url"`
		PresignedURL string `json:"presigned_url"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.URL != "" {
			return wrapped.URL, nil
		}
		if wrapped.PresignedURL != "" {
			return wrapped.PresignedURL, nil
		}
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}
	return "", nil
}

// PutPresigned uploads raw bytes to a backend-issued presigned URL. The URL
// is already authenticated, so no bearer token is attached.
func (c *Client) PutPresigned(ctx context.Context, presignedURL string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("receipt upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Message: "receipt upload failed", StatusCode: resp.StatusCode}
	}
	return nil
}

// UploadReceipt submits a base64-encoded receipt image for OCR processing
// and returns the receipt id to poll with ReceiptResult.
func (c *Client) UploadReceipt(ctx context.Context, userID int64, imageBase64 string) (string, error) {
	payload := map[string]string{"image_base64": imageBase64}
	var out struct {
		ReceiptID string `json:"receipt_id"`
	}
	err := c.call(ctx, http.MethodPost, "/receipt/upload", userQuery(userID), payload, &out, "failed to upload receipt")
	if err != nil {
		return "", err
	}
	return out.ReceiptID, nil
}

// ReceiptResult polls for the OCR extraction of a previously uploaded
// receipt. A nil result with a nil error means "not ready yet": the backend
// signals that with 202, 204, or 404, and some versions send an empty or
// non-JSON body, which is treated the same way rather than as a failure.
func (c *Client) ReceiptResult(ctx context.Context, receiptID string) (*ReceiptResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/receipt/result/"+receiptID, nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipt result: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusNoContent, http.StatusNotFound:
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Message: "failed to fetch receipt result", StatusCode: resp.StatusCode}
	}

	var result ReceiptResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Ambiguous body on a polling endpoint reads as "no data".
		return nil, nil
	}
	return &result, nil
}
