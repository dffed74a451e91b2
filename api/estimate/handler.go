package estimate

import (
	"encoding/json"
	"net/http"

	"github.com/tallerix/scheduling/core/model"
)

// LatestStore exposes the last applied estimate per order.
type LatestStore interface {
	Latest(orderID string) (model.DeliveryEstimate, bool)
}

// NewHandler returns an HTTP handler exposing the latest delivery estimate
// via GET /api/estimates?order_id=<id>. Requests must include an
// Authorization header with "Bearer <token>" when token is non-empty.
func NewHandler(store LatestStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		orderID := r.URL.Query().Get("order_id")
		if orderID == "" {
			http.Error(w, "order_id is required", http.StatusBadRequest)
			return
		}
		est, ok := store.Latest(orderID)
		if !ok {
			http.Error(w, "no estimate for order", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		resp := struct {
			OrderID string `json:"order_id"`
			model.DeliveryEstimate
			DeliveryDate string `json:"delivery_date"`
			DeliveryTime string `json:"delivery_time"`
		}{
			OrderID:          orderID,
			DeliveryEstimate: est,
			DeliveryDate:     est.DeliveryDate(),
			DeliveryTime:     est.DeliveryTime(),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
