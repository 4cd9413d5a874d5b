package checkout

import (
	"context"
	"fmt"

	"github.com/nanokusa/go-shop-catalog/internal/cart"
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	"github.com/nanokusa/go-shop-catalog/internal/logger"
	"github.com/nanokusa/go-shop-catalog/internal/money"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

const violationSubject = "shop/checkout"

type Service struct {
	store Store
	fees  FeeCalculator
	log   *logger.Logger
}

func NewService(store Store, fees FeeCalculator, log *logger.Logger) *Service {
	if fees == nil {
		fees = DefaultFee
	}
	return &Service{store: store, fees: fees, log: log}
}

// SubmitInput is the partial information a buyer hands over before payment.
// Nil fields leave the stored value untouched.
type SubmitInput struct {
	ShippingID          *ident.ID[ShippingMethod]
	PaymentID           *ident.ID[PaymentMethod]
	ContactEmail        *string
	ReceiverName        *string
	ReceiverCountryCode *string
	ReceiverAddress     *string
	ReceiverPostcode    *string
	ReceiverPhone       *string
}

// Create opens a checkout for a cart. A cart carries at most one checkout,
// and an empty cart cannot be checked out.
func (s *Service) Create(ctx context.Context, cartID ident.ID[cart.Cart]) (*Checkout, error) {
	var out *Checkout
	err := s.store.InTx(ctx, func(tx Store) error {
		existing, err := tx.FindCheckoutByCart(ctx, cartID.Int64())
		if err != nil {
			return err
		}
		if existing != nil {
			return status.AlreadyExists(fmt.Sprintf("checkout(cid: %d)", cartID.Int64()))
		}
		c, err := tx.LoadCart(ctx, cartID.Int64())
		if err != nil {
			return err
		}
		if c == nil {
			return status.NotFound(fmt.Sprintf("cart(%d)", cartID.Int64()))
		}
		if len(c.Entries) == 0 {
			return emptyCartViolation()
		}
		id, err := tx.InsertCheckout(ctx, cartID.Int64())
		if err != nil {
			return err
		}
		row, err := tx.FindCheckout(ctx, id)
		if err != nil {
			return err
		}
		out, err = s.assemble(ctx, tx, row)
		return err
	})
	if err != nil {
		return nil, status.Convert(err)
	}
	s.log.Info("checkout created", "checkout_id", out.ID.Int64(), "cart_id", cartID.Int64())
	return out, nil
}

// Get loads one checkout with its cart and chosen methods.
func (s *Service) Get(ctx context.Context, id ident.ID[Checkout]) (*Checkout, error) {
	row, err := s.store.FindCheckout(ctx, id.Int64())
	if err != nil {
		return nil, status.Internal().WithCause(err)
	}
	if row == nil {
		return nil, status.NotFound(fmt.Sprintf("checkout(%d)", id.Int64()))
	}
	return s.assembleConverted(ctx, s.store, row)
}

// GetByCartID resolves the checkout through its cart.
func (s *Service) GetByCartID(ctx context.Context, cartID ident.ID[cart.Cart]) (*Checkout, error) {
	row, err := s.store.FindCheckoutByCart(ctx, cartID.Int64())
	if err != nil {
		return nil, status.Internal().WithCause(err)
	}
	if row == nil {
		return nil, status.NotFound(fmt.Sprintf("checkout(cid: %d)", cartID.Int64()))
	}
	return s.assembleConverted(ctx, s.store, row)
}

// SubmitInformation patches the checkout with the buyer's input, resolves
// the chosen methods, and reprices shipping from the patched state, all in
// one transaction.
func (s *Service) SubmitInformation(ctx context.Context, id ident.ID[Checkout], in SubmitInput) (*Checkout, error) {
	var out *Checkout
	err := s.store.InTx(ctx, func(tx Store) error {
		row, err := tx.FindCheckout(ctx, id.Int64())
		if err != nil {
			return err
		}
		if row == nil {
			return status.NotFound(fmt.Sprintf("checkout(%d)", id.Int64()))
		}

		p := Patch{
			Email:       in.ContactEmail,
			FullName:    in.ReceiverName,
			CountryCode: in.ReceiverCountryCode,
			Address:     in.ReceiverAddress,
			Postcode:    in.ReceiverPostcode,
			Phone:       in.ReceiverPhone,
		}
		if in.ShippingID != nil {
			v := in.ShippingID.Int64()
			p.ShippingID = &v
		}
		if in.PaymentID != nil {
			v := in.PaymentID.Int64()
			p.PaymentID = &v
		}
		if err := tx.ApplyPatch(ctx, id.Int64(), p); err != nil {
			return err
		}

		row, err = tx.FindCheckout(ctx, id.Int64())
		if err != nil {
			return err
		}
		ck, err := s.assemble(ctx, tx, row)
		if err != nil {
			return err
		}

		if ck.Shipping != nil {
			fee, err := s.fees.Fee(*ck.Shipping, ck)
			if err != nil {
				return err
			}
			if fee != nil {
				if err := tx.SetShippingFee(ctx, id.Int64(), fee.MinorUnits()); err != nil {
					return err
				}
				ck.ShippingFee = fee
			}
		}
		out = ck
		return nil
	})
	if err != nil {
		return nil, status.Convert(err)
	}
	s.log.Info("checkout information submitted", "checkout_id", id.Int64())
	return out, nil
}

// ListShippingMethods returns all shipping method references.
func (s *Service) ListShippingMethods(ctx context.Context) ([]ShippingMethod, error) {
	rows, err := s.store.ListShippingMethods(ctx)
	if err != nil {
		return nil, status.Internal().WithCause(err)
	}
	out := make([]ShippingMethod, 0, len(rows))
	for _, r := range rows {
		out = append(out, ShippingMethod{ID: ident.ID[ShippingMethod](r.ID), Vendor: r.Vendor})
	}
	return out, nil
}

// ListPaymentMethods returns all payment method references.
func (s *Service) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	rows, err := s.store.ListPaymentMethods(ctx)
	if err != nil {
		return nil, status.Internal().WithCause(err)
	}
	out := make([]PaymentMethod, 0, len(rows))
	for _, r := range rows {
		out = append(out, PaymentMethod{ID: ident.ID[PaymentMethod](r.ID), Vendor: r.Vendor})
	}
	return out, nil
}

func emptyCartViolation() error {
	return status.FailedPrecondition().WithPreconditionFailure(status.PreconditionViolation{
		Type:        "logic",
		Subject:     violationSubject,
		Description: "Checkout with an empty cart",
	})
}

func (s *Service) assembleConverted(ctx context.Context, st Store, row *Row) (*Checkout, error) {
	ck, err := s.assemble(ctx, st, row)
	if err != nil {
		return nil, status.Convert(err)
	}
	return ck, nil
}

// assemble builds the aggregate from its row. The empty-cart precondition
// is enforced on every load, so no caller ever observes a checkout without
// purchasable content.
func (s *Service) assemble(ctx context.Context, st Store, row *Row) (*Checkout, error) {
	c, err := st.LoadCart(ctx, row.CartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, status.DataLoss().WithDebugInfo(false,
			fmt.Sprintf("checkout %d references missing cart %d", row.ID, row.CartID))
	}
	if len(c.Entries) == 0 {
		return nil, emptyCartViolation()
	}
	state, err := ParseState(row.Status)
	if err != nil {
		return nil, err
	}

	ck := &Checkout{
		ID:                  ident.ID[Checkout](row.ID),
		Cart:                c,
		State:               state,
		ContactEmail:        row.Email,
		ReceiverName:        row.FullName,
		ReceiverCountryCode: row.CountryCode,
		ReceiverAddress:     row.Address,
		ReceiverPostcode:    row.Postcode,
		ReceiverPhone:       row.Phone,
	}
	if row.ShippingID != nil {
		m, err := st.FindShippingMethod(ctx, *row.ShippingID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, status.NotFound(fmt.Sprintf("shipping_method(%d)", *row.ShippingID))
		}
		ck.Shipping = &ShippingMethod{ID: ident.ID[ShippingMethod](m.ID), Vendor: m.Vendor}
	}
	if row.PaymentID != nil {
		m, err := st.FindPaymentMethod(ctx, *row.PaymentID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, status.NotFound(fmt.Sprintf("payment_method(%d)", *row.PaymentID))
		}
		ck.Payment = &PaymentMethod{ID: ident.ID[PaymentMethod](m.ID), Vendor: m.Vendor}
	}
	if row.ShippingFeeCents != nil {
		fee := money.FromMinorUnits(*row.ShippingFeeCents, c.Entries[0].Product.Currency)
		ck.ShippingFee = &fee
	}
	return ck, nil
}
