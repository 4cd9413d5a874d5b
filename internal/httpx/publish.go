package httpx

import (
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/nanokusa/go-shop-catalog/internal/events"
	kafkax "github.com/nanokusa/go-shop-catalog/internal/kafka"
)

// publish wraps a payload in the v1 envelope and hands it to the async
// producer. Delivery is best effort; the HTTP response never waits on it.
func publish(p *kafkax.Producer, service, traceID, eventType string, key []byte, payload any) {
	ev := events.Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     service,
		TraceID:      traceID,
		Payload:      kafkax.MustMarshal(payload),
	}
	p.Publish(key, kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
