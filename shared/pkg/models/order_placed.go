package models

import (
	"time"

	"github.com/google/uuid"
)

const EventOrderPlaced = "orders.placed"

// OrderPlacedPayload carries the message returned to the client. No order
// data exists behind it.
type OrderPlacedPayload struct {
	Message string `json:"message"`
}

func NewOrderPlacedEvent(message, traceID string) Event[OrderPlacedPayload] {
	return Event[OrderPlacedPayload]{
		ID:      uuid.NewString(),
		Type:    EventOrderPlaced,
		Version: 1,
		Time:    time.Now().UTC(),
		TraceID: traceID,
		Payload: OrderPlacedPayload{Message: message},
	}
}
