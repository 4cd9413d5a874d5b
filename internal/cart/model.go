// Package cart models the shopping cart aggregate: an id plus entries that
// reference a product and one of its variants by order index.
package cart

import (
	"fmt"

	"github.com/nanokusa/go-shop-catalog/internal/catalog"
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	"github.com/nanokusa/go-shop-catalog/internal/money"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

type Cart struct {
	ID      ident.ID[Cart] `json:"id"`
	Entries []Entry        `json:"entries"`
}

// Entry is one line of the cart. Identity within a cart is the pair
// (product, variant index); adding the same pair again merges quantities.
type Entry struct {
	ID         ident.ID[Entry]  `json:"id"`
	Product    *catalog.Product `json:"product"`
	Quantity   int32            `json:"quantity"`
	VariantIdx int32            `json:"variant_idx"`
}

// Variant resolves the entry's variant index against the product. A stored
// index no variant carries is persisted corruption.
func (e *Entry) Variant() (*catalog.Variant, error) {
	v, ok := e.Product.VariantByOrderIdx(e.VariantIdx)
	if !ok {
		return nil, status.DataLoss().WithDebugInfo(false,
			fmt.Sprintf("cart entry %d references variant index %d of product %d, which has %d variants",
				e.ID.Int64(), e.VariantIdx, e.Product.ID.Int64(), len(e.Product.Variants)))
	}
	return v, nil
}

// Amount is the entry's variant price times its quantity.
func (e *Entry) Amount() (money.Money, error) {
	v, err := e.Variant()
	if err != nil {
		return money.Money{}, err
	}
	return v.Price.MulInt(int64(e.Quantity)), nil
}

// TotalAmount sums all entry amounts. An empty cart totals to zero USD.
func (c *Cart) TotalAmount() (money.Money, error) {
	amounts := make([]money.Money, 0, len(c.Entries))
	for i := range c.Entries {
		a, err := c.Entries[i].Amount()
		if err != nil {
			return money.Money{}, err
		}
		amounts = append(amounts, a)
	}
	return money.Sum(amounts)
}
