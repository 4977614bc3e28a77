package devstub

import (
	"math"
	"net/http"
	"time"
)

type addItemRequest struct {
	ItemName     string  `json:"item_name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Category     string  `json:"category"`
	PurchaseDate string  `json:"purchase_date"`
	ExpiryDate   string  `json:"expiry_date"`
}

type updateItemRequest struct {
	ItemID int64 `json:"item_id"`
	addItemRequest
}

type deleteItemsRequest struct {
	ItemIDs []int64 `json:"item_ids"`
}

func (s *Server) handlePantryList(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	items := append([]pantryItem(nil), s.pantry[userID]...)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handlePantryAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}
	var reqs []addItemRequest
	if !readJSON(w, r, &reqs) {
		return
	}

	s.mu.Lock()
	added := make([]pantryItem, 0, len(reqs))
	for _, req := range reqs {
		if req.ItemName == "" {
			s.mu.Unlock()
			respondError(w, http.StatusBadRequest, "item_name is required")
			return
		}
		s.nextItemID++
		item := pantryItem{
			ID:           s.nextItemID,
			ItemName:     req.ItemName,
			Category:     req.Category,
			Quantity:     req.Quantity,
			Unit:         req.Unit,
			PurchaseDate: req.PurchaseDate,
			ExpiryDate:   req.ExpiryDate,
		}
		s.pantry[userID] = append(s.pantry[userID], item)
		added = append(added, item)
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, added)
}

func (s *Server) handlePantryUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}
	var req updateItemRequest
	if !readJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.pantry[userID]
	for i := range items {
		if items[i].ID != req.ItemID {
			continue
		}
		items[i].ItemName = req.ItemName
		items[i].Category = req.Category
		items[i].Quantity = req.Quantity
		items[i].Unit = req.Unit
		items[i].PurchaseDate = req.PurchaseDate
		items[i].ExpiryDate = req.ExpiryDate
		respondJSON(w, http.StatusOK, items[i])
		return
	}
	respondError(w, http.StatusNotFound, "unknown item")
}

func (s *Server) handlePantryDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}
	var req deleteItemsRequest
	if !readJSON(w, r, &req) {
		return
	}

	drop := make(map[int64]bool, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		drop[id] = true
	}

	s.mu.Lock()
	kept := s.pantry[userID][:0]
	for _, item := range s.pantry[userID] {
		if !drop[item.ID] {
			kept = append(kept, item)
		}
	}
	s.pantry[userID] = kept
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handlePantryStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	items := append([]pantryItem(nil), s.pantry[userID]...)
	s.mu.Unlock()

	now := s.now()
	var soon, today, expired int
	for _, item := range items {
		switch d, known := daysUntil(item.ExpiryDate, now); {
		case !known:
		case d < 0:
			expired++
		case d == 0:
			today++
		case d <= 3:
			soon++
		}
	}

	respondJSON(w, http.StatusOK, map[string]int{
		"total_items":    len(items),
		"expiring_soon":  soon,
		"expiring_today": today,
		"expired":        expired,
	})
}

func (s *Server) handlePantryExpiring(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	items := append([]pantryItem(nil), s.pantry[userID]...)
	s.mu.Unlock()

	now := s.now()
	expiring := make([]pantryItem, 0)
	for _, item := range items {
		if d, known := daysUntil(item.ExpiryDate, now); known && d >= 0 && d <= 3 {
			expiring = append(expiring, item)
		}
	}

	respondJSON(w, http.StatusOK, expiring)
}

// daysUntil counts whole days (rounded up) from now to the item's expiry
// date. known is false for empty or unparseable dates.
func daysUntil(expiryDate string, now time.Time) (days int, known bool) {
	if expiryDate == "" {
		return 0, false
	}
	expiry, err := time.Parse("2006-01-02", expiryDate)
	if err != nil {
		if expiry, err = time.Parse(time.RFC3339, expiryDate); err != nil {
			return 0, false
		}
	}
	return int(math.Ceil(expiry.Sub(now).Hours() / 24)), true
}
