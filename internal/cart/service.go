package cart

import (
	"context"
	"fmt"

	"github.com/nanokusa/go-shop-catalog/internal/catalog"
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	"github.com/nanokusa/go-shop-catalog/internal/logger"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

type Service struct {
	store Store
	log   *logger.Logger
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Create opens an empty cart and returns it.
func (s *Service) Create(ctx context.Context) (*Cart, error) {
	id, err := s.store.InsertCart(ctx)
	if err != nil {
		return nil, status.Internal().WithCause(err)
	}
	s.log.Info("cart created", "cart_id", id)
	return &Cart{ID: ident.ID[Cart](id), Entries: []Entry{}}, nil
}

// Get loads a cart with its entries and their products.
func (s *Service) Get(ctx context.Context, id ident.ID[Cart]) (*Cart, error) {
	c, err := s.store.LoadCart(ctx, id.Int64())
	if err != nil {
		return nil, status.Convert(err)
	}
	if c == nil {
		return nil, status.NotFound(fmt.Sprintf("cart(%d)", id.Int64()))
	}
	return c, nil
}

// AddItem puts one unit of a variant into the cart. An entry with the same
// (product, variant index) identity absorbs the unit as quantity+1; otherwise
// a fresh entry starts at quantity 1. The updated cart is read back inside
// the same transaction.
func (s *Service) AddItem(ctx context.Context, cartID ident.ID[Cart], variantID ident.ID[catalog.Variant]) (*Cart, error) {
	var out *Cart
	err := s.store.InTx(ctx, func(tx Store) error {
		ok, err := tx.CartExists(ctx, cartID.Int64())
		if err != nil {
			return err
		}
		if !ok {
			return status.NotFound(fmt.Sprintf("cart(%d)", cartID.Int64()))
		}
		v, err := tx.FindVariant(ctx, variantID.Int64())
		if err != nil {
			return err
		}
		if v == nil {
			return status.NotFound(fmt.Sprintf("product_variant(%d)", variantID.Int64()))
		}

		e, err := tx.FindEntry(ctx, cartID.Int64(), v.ProductID, v.OrderIdx)
		if err != nil {
			return err
		}
		if e != nil {
			if err := tx.AdjustEntryQuantity(ctx, e.ID, 1); err != nil {
				return err
			}
		} else if err := tx.InsertEntry(ctx, cartID.Int64(), v.ProductID, v.OrderIdx, 1); err != nil {
			return err
		}

		out, err = tx.LoadCart(ctx, cartID.Int64())
		return err
	})
	if err != nil {
		return nil, status.Convert(err)
	}
	s.log.Info("cart item added", "cart_id", cartID.Int64(), "variant_id", variantID.Int64())
	return out, nil
}

// RemoveItem takes one unit out of an entry: quantity drops by one and the
// entry disappears when it reaches zero. An entry id the cart does not hold
// leaves the cart unchanged.
func (s *Service) RemoveItem(ctx context.Context, cartID ident.ID[Cart], entryID ident.ID[Entry]) (*Cart, error) {
	var out *Cart
	err := s.store.InTx(ctx, func(tx Store) error {
		ok, err := tx.CartExists(ctx, cartID.Int64())
		if err != nil {
			return err
		}
		if !ok {
			return status.NotFound(fmt.Sprintf("cart(%d)", cartID.Int64()))
		}

		e, err := tx.FindEntryByID(ctx, cartID.Int64(), entryID.Int64())
		if err != nil {
			return err
		}
		switch {
		case e == nil:
			// nothing to remove
		case e.Quantity <= 1:
			if err := tx.DeleteEntry(ctx, e.ID); err != nil {
				return err
			}
		default:
			if err := tx.AdjustEntryQuantity(ctx, e.ID, -1); err != nil {
				return err
			}
		}

		out, err = tx.LoadCart(ctx, cartID.Int64())
		return err
	})
	if err != nil {
		return nil, status.Convert(err)
	}
	s.log.Info("cart item removed", "cart_id", cartID.Int64(), "entry_id", entryID.Int64())
	return out, nil
}
