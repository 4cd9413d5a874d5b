package checkout

import (
	"context"

	"github.com/nanokusa/go-shop-catalog/internal/cart"
)

// Row mirrors t_checkouts. Everything past the cart reference is optional
// until submitted.
type Row struct {
	ID               int64
	CartID           int64
	Status           int32
	ShippingID       *int64
	PaymentID        *int64
	ShippingFeeCents *int64
	Email            *string
	FullName         *string
	CountryCode      *string
	Address          *string
	Postcode         *string
	Phone            *string
}

// Patch is a partial update of the submittable columns. Nil fields are left
// untouched.
type Patch struct {
	ShippingID  *int64
	PaymentID   *int64
	Email       *string
	FullName    *string
	CountryCode *string
	Address     *string
	Postcode    *string
	Phone       *string
}

// MethodRow is a shipping or payment method reference row.
type MethodRow struct {
	ID     int64
	Vendor string
}

// Store is the persistence surface for the checkout aggregate. Find*
// methods return (nil, nil) when the row is absent.
type Store interface {
	InsertCheckout(ctx context.Context, cartID int64) (int64, error)
	FindCheckout(ctx context.Context, id int64) (*Row, error)
	FindCheckoutByCart(ctx context.Context, cartID int64) (*Row, error)
	ApplyPatch(ctx context.Context, id int64, p Patch) error
	SetShippingFee(ctx context.Context, id int64, cents int64) error

	LoadCart(ctx context.Context, cartID int64) (*cart.Cart, error)

	FindShippingMethod(ctx context.Context, id int64) (*MethodRow, error)
	ListShippingMethods(ctx context.Context) ([]MethodRow, error)
	FindPaymentMethod(ctx context.Context, id int64) (*MethodRow, error)
	ListPaymentMethods(ctx context.Context) ([]MethodRow, error)

	InTx(ctx context.Context, fn func(Store) error) error
}
