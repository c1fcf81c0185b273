package notify

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"order-demo/shared/pkg/logger"
	"order-demo/shared/pkg/metrics"
	"order-demo/shared/pkg/models"
	"order-demo/shared/pkg/rabbit"
)

const DefaultBuffer = 256

type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any, headers amqp.Table) error
}

// Announcer publishes orders.placed events in the background. Announce never
// blocks the request: when the buffer is full the event is dropped.
// Failed publishes are logged and counted, never retried.
type Announcer struct {
	log            zerolog.Logger
	pub            Publisher
	metrics        *metrics.Orders
	publishTimeout time.Duration

	queue chan models.Event[models.OrderPlacedPayload]
}

func NewAnnouncer(log zerolog.Logger, pub Publisher, m *metrics.Orders, publishTimeout time.Duration, buffer int) *Announcer {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Announcer{
		log:            log,
		pub:            pub,
		metrics:        m,
		publishTimeout: publishTimeout,
		queue:          make(chan models.Event[models.OrderPlacedPayload], buffer),
	}
}

func (a *Announcer) Announce(ctx context.Context, message string) {
	evt := models.NewOrderPlacedEvent(message, logger.RequestIDFrom(ctx))
	select {
	case a.queue <- evt:
	default:
		a.count(metrics.ResultDropped)
		a.log.Warn().Str("event_id", evt.ID).Msg("announce queue full -> dropped")
	}
}

// Run publishes queued events until ctx is done. Events still queued at that
// point are dropped.
func (a *Announcer) Run(ctx context.Context) {
	a.log.Info().Msg("order announcer started")
	for {
		select {
		case <-ctx.Done():
			if n := len(a.queue); n > 0 {
				a.log.Warn().Int("pending", n).Msg("order announcer stopped with pending events")
			} else {
				a.log.Info().Msg("order announcer stopped")
			}
			return
		case evt := <-a.queue:
			a.publish(ctx, evt)
		}
	}
}

func (a *Announcer) publish(ctx context.Context, evt models.Event[models.OrderPlacedPayload]) {
	headers := amqp.Table{"x-event-id": evt.ID}
	if evt.TraceID != "" {
		headers["x-request-id"] = evt.TraceID
	}

	pubCtx, cancel := rabbit.WithTimeout(ctx, a.publishTimeout)
	err := a.pub.PublishJSON(pubCtx, evt.Type, evt, headers)
	cancel()
	if err != nil {
		a.count(metrics.ResultFailed)
		a.log.Error().Err(err).Str("event_id", evt.ID).Str("request_id", evt.TraceID).Msg("publish orders.placed failed")
		return
	}
	a.count(metrics.ResultPublished)
	a.log.Debug().Str("event_id", evt.ID).Str("request_id", evt.TraceID).Msg("orders.placed published")
}

func (a *Announcer) count(result string) {
	if a.metrics != nil {
		a.metrics.Announcements.WithLabelValues(result).Inc()
	}
}
