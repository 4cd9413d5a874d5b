// Package catalog is the product side of the shop: products with ordered
// images and priced variants, read-only through this service. Currency is a
// product-level attribute; every variant price carries it.
package catalog

import (
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	"github.com/nanokusa/go-shop-catalog/internal/money"
)

type Product struct {
	ID          ident.ID[Product]  `json:"id"`
	Title       string             `json:"title"`
	SubTitle    string             `json:"sub_title"`
	Description string             `json:"description"`
	Currency    money.CurrencyCode `json:"currency_code"`
	Images      []Image            `json:"images"`
	Variants    []Variant          `json:"variants"`
}

type Image struct {
	URL      string `json:"url"`
	AltText  string `json:"alt_text"`
	OrderIdx int32  `json:"order_idx"`
}

type Variant struct {
	ID             ident.ID[Variant] `json:"id"`
	Title          string            `json:"title"`
	Price          money.Money       `json:"price"`
	InventoryCount int32             `json:"inventory_count"`
	OrderIdx       int32             `json:"order_idx"`
}

// FeaturedImage is the image at order index zero, or nil when the product
// has no images.
func (p *Product) FeaturedImage() *Image {
	for i := range p.Images {
		if p.Images[i].OrderIdx == 0 {
			return &p.Images[i]
		}
	}
	return nil
}

type PriceRange struct {
	Min money.Money `json:"min"`
	Max money.Money `json:"max"`
}

// PriceRange spans the cheapest and dearest variant. A product with no
// variants gets a degenerate zero range in its own currency.
func (p *Product) PriceRange() (PriceRange, error) {
	if len(p.Variants) == 0 {
		z := money.Zero(p.Currency)
		return PriceRange{Min: z, Max: z}, nil
	}
	min, max := p.Variants[0].Price, p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		c, err := v.Price.Cmp(min)
		if err != nil {
			return PriceRange{}, err
		}
		if c < 0 {
			min = v.Price
		}
		if c, err = v.Price.Cmp(max); err != nil {
			return PriceRange{}, err
		}
		if c > 0 {
			max = v.Price
		}
	}
	return PriceRange{Min: min, Max: max}, nil
}

// VariantByOrderIdx resolves a cart entry's variant index against the
// ordered variant list.
func (p *Product) VariantByOrderIdx(idx int32) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].OrderIdx == idx {
			return &p.Variants[i], true
		}
	}
	return nil, false
}
