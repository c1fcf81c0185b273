package handlers

import (
	"math/rand/v2"
	"net/http"
)

const (
	MinOrdersProcessed = 1
	MaxOrdersProcessed = 100
)

type OrdersProcessedResp struct {
	OrdersProcessed int `json:"orders_processed"`
}

// OrdersProcessedHandler reports a made-up processed-orders figure. Nothing
// is counted; every request draws a fresh value.
type OrdersProcessedHandler struct {
	// Draw returns a value in [MinOrdersProcessed, MaxOrdersProcessed].
	Draw func() int
}

func NewOrdersProcessedHandler() *OrdersProcessedHandler {
	return &OrdersProcessedHandler{Draw: drawOrdersProcessed}
}

func drawOrdersProcessed() int {
	return MinOrdersProcessed + rand.IntN(MaxOrdersProcessed-MinOrdersProcessed+1)
}

// ServeHTTP godoc
// @Summary     Fake processed orders counter
// @Description Returns a random integer between 1 and 100 on every call.
// @Tags        orders
// @Produce     json
// @Success     200 {object} OrdersProcessedResp
// @Router      /metrics [get]
func (h *OrdersProcessedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	draw := h.Draw
	if draw == nil {
		draw = drawOrdersProcessed
	}
	writeJSON(w, r, http.StatusOK, OrdersProcessedResp{OrdersProcessed: draw()})
}
