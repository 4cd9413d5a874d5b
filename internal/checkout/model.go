// Package checkout models the checkout aggregate: a one-to-one companion of
// a cart that accumulates shipping, payment and receiver information until
// payment resolves it.
package checkout

import (
	"fmt"

	"github.com/nanokusa/go-shop-catalog/internal/cart"
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	"github.com/nanokusa/go-shop-catalog/internal/money"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

// State is the checkout lifecycle. Values are the stored integers.
type State int32

const (
	StateWaiting State = 0
	StatePaid    State = 1
	StateExpired State = 2
)

// ParseState reads a stored state integer. An unknown value is persisted
// corruption, not caller error.
func ParseState(v int32) (State, error) {
	switch v {
	case 0, 1, 2:
		return State(v), nil
	default:
		return 0, status.Internal().WithDebugInfo(false,
			fmt.Sprintf("Error when parsing checkout status, receive %d", v))
	}
}

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StatePaid:
		return "PAID"
	case StateExpired:
		return "EXPIRED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type ShippingMethod struct {
	ID     ident.ID[ShippingMethod] `json:"id"`
	Vendor string                   `json:"vendor"`
}

type PaymentMethod struct {
	ID     ident.ID[PaymentMethod] `json:"id"`
	Vendor string                  `json:"vendor"`
}

// Checkout is the assembled aggregate. The cart is always loaded with it
// and is never empty; loading a checkout over an empty cart fails the
// aggregate's precondition.
type Checkout struct {
	ID          ident.ID[Checkout] `json:"id"`
	Cart        *cart.Cart         `json:"cart"`
	State       State              `json:"state"`
	Shipping    *ShippingMethod    `json:"shipping,omitempty"`
	Payment     *PaymentMethod     `json:"payment,omitempty"`
	ShippingFee *money.Money       `json:"shipping_fee,omitempty"`

	ContactEmail        *string `json:"contact_email,omitempty"`
	ReceiverName        *string `json:"receiver_name,omitempty"`
	ReceiverCountryCode *string `json:"receiver_country_code,omitempty"`
	ReceiverAddress     *string `json:"receiver_address,omitempty"`
	ReceiverPostcode    *string `json:"receiver_postcode,omitempty"`
	ReceiverPhone       *string `json:"receiver_phone,omitempty"`
}

// TotalAmount is the cart subtotal plus the shipping fee. Until a fee has
// been computed there is no total.
func (c *Checkout) TotalAmount() (*money.Money, error) {
	if c.ShippingFee == nil {
		return nil, nil
	}
	sub, err := c.Cart.TotalAmount()
	if err != nil {
		return nil, err
	}
	total, err := sub.Add(*c.ShippingFee)
	if err != nil {
		return nil, err
	}
	return &total, nil
}

// FeeCalculator prices shipping for a checkout. A nil fee means the
// checkout does not yet carry enough information to price it.
type FeeCalculator interface {
	Fee(method ShippingMethod, c *Checkout) (*money.Money, error)
}

// FlatFee charges a fixed minor-unit amount in the cart's currency once the
// receiver's country and postcode are known.
type FlatFee struct {
	Cents int64
}

// DefaultFee is the placeholder rate until vendor-specific pricing exists.
var DefaultFee = FlatFee{Cents: 1000}

func (f FlatFee) Fee(_ ShippingMethod, c *Checkout) (*money.Money, error) {
	if c.ReceiverCountryCode == nil || c.ReceiverPostcode == nil {
		return nil, nil
	}
	if len(c.Cart.Entries) == 0 {
		return nil, nil
	}
	fee := money.FromMinorUnits(f.Cents, c.Cart.Entries[0].Product.Currency)
	return &fee, nil
}
