package devstub

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type uploadReceiptRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// handleReceiptPresignedURL hands out a direct-upload URL pointing back at
// this stub. The real backend issues S3 presigned URLs here; the contract the
// client sees is the same.
func (s *Server) handleReceiptPresignedURL(w http.ResponseWriter, r *http.Request) {
	key := uuid.NewString()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"url": scheme + "://" + r.Host + "/receipt/object/" + key,
	})
}

func (s *Server) handleReceiptObjectPut(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "reading body")
		return
	}

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReceiptUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}
	var req uploadReceiptRequest
	if !readJSON(w, r, &req) {
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.receipts[id] = &receipt{ID: id, UserID: userID}
	s.mu.Unlock()

	s.log.Info(r.Context(), "receipt uploaded", "receipt_id", id, "inline", req.ImageBase64 != "")
	respondJSON(w, http.StatusOK, map[string]string{"receipt_id": id})
}

// handleReceiptResult returns 202 until the configured number of polls has
// passed, then a canned extraction. Unknown ids get 404, which the client
// treats as "not ready" rather than an error.
func (s *Server) handleReceiptResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	rec, ok := s.receipts[id]
	if ok {
		rec.Polls++
	}
	var ready bool
	if ok {
		ready = rec.Polls > s.cfg.ReceiptReadyAfter
	}
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if !ready {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	total := 12.47
	respondJSON(w, http.StatusOK, map[string]any{
		"receipt_id": id,
		"store":      "FreshMart",
		"total":      total,
		"items": []map[string]any{
			{"item_name": "Milk", "quantity": 1, "unit": "liters", "category": "dairy"},
			{"item_name": "Eggs", "quantity": 12, "unit": "pieces", "category": "dairy"},
			{"item_name": "Bread", "quantity": 1, "unit": "loaf", "category": "bakery"},
		},
	})
}
