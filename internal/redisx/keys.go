package redisx

import "time"

const (
	// Cached product read model: product:{product_id} -> denormalized JSON.
	KeyProduct = "product:%d"
)

var (
	// Products are effectively read-only through this service, but a short
	// TTL lets out-of-band catalog edits converge without explicit
	// invalidation.
	TTLProduct = 5 * time.Minute
)
