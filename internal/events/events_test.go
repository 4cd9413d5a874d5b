package events

import (
	"testing"
	"time"

	kafkax "github.com/nanokusa/go-shop-catalog/internal/kafka"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	ev := Envelope{
		EventID:      "11111111-2222-3333-4444-555555555555",
		EventType:    EventCartUpdated,
		EventVersion: 1,
		OccurredAt:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		Producer:     "shop-api",
		TraceID:      "req-1",
		Payload: kafkax.MustMarshal(CartUpdatedPayload{
			CartID:     7,
			Action:     CartActionItemAdded,
			VariantID:  10,
			EntryCount: 1,
			TotalCents: 29999,
		}),
	}
	b := kafkax.MustMarshal(ev)

	var back Envelope
	if err := kafkax.UnmarshalEnvelope(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.EventType != EventCartUpdated || back.Producer != "shop-api" {
		t.Errorf("envelope fields mismatch: %+v", back)
	}

	p, err := kafkax.UnwrapPayload[CartUpdatedPayload](back.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if p.CartID != 7 || p.Action != CartActionItemAdded || p.TotalCents != 29999 {
		t.Errorf("payload mismatch: %+v", p)
	}
}

func TestPartitionKey(t *testing.T) {
	if got := string(PartitionKey(42)); got != "42" {
		t.Errorf("key = %q, want %q", got, "42")
	}
}
