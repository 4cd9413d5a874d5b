// Package events defines the versioned envelope and payloads published to
// Kafka when an aggregate mutates. Consumers are external; the core only
// produces.
package events

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	EventCartUpdated     = "CartUpdated"
	EventCheckoutCreated = "CheckoutCreated"
	EventCheckoutUpdated = "CheckoutUpdated"
)

const (
	TopicCartUpdated = "cart.updated"
	TopicCheckout    = "checkout.lifecycle"
)

// PartitionKey keeps every event of one aggregate on one partition so its
// history stays ordered.
func PartitionKey(id int64) []byte { return []byte(strconv.FormatInt(id, 10)) }

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

const (
	CartActionItemAdded   = "item_added"
	CartActionItemRemoved = "item_removed"
)

type CartUpdatedPayload struct {
	CartID     int64  `json:"cart_id"`
	Action     string `json:"action"`
	VariantID  int64  `json:"variant_id,omitempty"`
	EntryID    int64  `json:"entry_id,omitempty"`
	EntryCount int    `json:"entry_count"`
	TotalCents int64  `json:"total_cents"`
}

type CheckoutCreatedPayload struct {
	CheckoutID int64 `json:"checkout_id"`
	CartID     int64 `json:"cart_id"`
}

type CheckoutUpdatedPayload struct {
	CheckoutID        int64  `json:"checkout_id"`
	CartID            int64  `json:"cart_id"`
	ShippingVendor    string `json:"shipping_vendor,omitempty"`
	PaymentVendor     string `json:"payment_vendor,omitempty"`
	ShippingFeeCents  *int64 `json:"shipping_fee_cents,omitempty"`
	HasReceiverFields bool   `json:"has_receiver_fields"`
}
