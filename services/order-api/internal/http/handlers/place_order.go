package handlers

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

const OrderPlacedMessage = "Order placed successfully!"

type PlaceOrderResp struct {
	Message string `json:"message"`
}

// OrderAnnouncer is told about every answered placement. It must not block.
type OrderAnnouncer interface {
	Announce(ctx context.Context, message string)
}

// PlaceOrderHandler pretends to place an order. No order is recorded.
type PlaceOrderHandler struct {
	Announcer OrderAnnouncer
	Placed    prometheus.Counter
}

// ServeHTTP godoc
// @Summary     Fake order placement
// @Tags        orders
// @Produce     json
// @Success     201 {object} PlaceOrderResp
// @Router      /orders [get]
func (h *PlaceOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusCreated, PlaceOrderResp{Message: OrderPlacedMessage})

	if h.Placed != nil {
		h.Placed.Inc()
	}
	if h.Announcer != nil {
		h.Announcer.Announce(r.Context(), OrderPlacedMessage)
	}
}
