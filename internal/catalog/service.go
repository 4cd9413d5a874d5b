package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nanokusa/go-shop-catalog/internal/ident"
	"github.com/nanokusa/go-shop-catalog/internal/logger"
	"github.com/nanokusa/go-shop-catalog/internal/money"
	"github.com/nanokusa/go-shop-catalog/internal/pagination"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

// ReasonUnrecognizedCurrency marks a stored product row whose currency code
// the service cannot parse. One bad row poisons the whole read.
const ReasonUnrecognizedCurrency = "UNRECOGNIZED_CURRENCY"

const errorDomain = "shop.catalog"

type Service struct {
	store Store
	log   *logger.Logger
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Get loads one product with its images and variants. A missing id is
// NotFound on resource "product(<id>)".
func (s *Service) Get(ctx context.Context, id ident.ID[Product]) (*Product, error) {
	row, err := s.store.FindProduct(ctx, id.Int64())
	if err != nil {
		return nil, status.Internal().WithCause(err)
	}
	if row == nil {
		return nil, status.NotFound(fmt.Sprintf("product(%d)", id.Int64()))
	}
	images, err := s.store.ListImages(ctx, []int64{row.ID})
	if err != nil {
		return nil, status.Internal().WithCause(err)
	}
	variants, err := s.store.ListVariants(ctx, []int64{row.ID})
	if err != nil {
		return nil, status.Internal().WithCause(err)
	}
	return assemble(*row, images[row.ID], variants[row.ID])
}

// List pages products by ascending id. Child rows are loaded in two batched
// queries for the whole window, never per product.
func (s *Service) List(ctx context.Context, opt pagination.Option) (pagination.Connection[*Product], error) {
	var empty pagination.Connection[*Product]
	maxID, err := s.store.MaxProductID(ctx)
	if err != nil {
		return empty, status.Internal().WithCause(err)
	}
	win, none, err := pagination.ResolveWindow(opt, maxID)
	if err != nil {
		return empty, err
	}
	if none {
		return pagination.Connection[*Product]{Edges: []pagination.Edge[*Product]{}}, nil
	}
	rows, err := s.store.ListProducts(ctx, win.Start, win.End)
	if err != nil {
		return empty, status.Internal().WithCause(err)
	}
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	var (
		g          errgroup.Group
		imagesByID map[int64][]ImageRow
		varsByID   map[int64][]VariantRow
	)
	g.Go(func() error {
		var err error
		imagesByID, err = s.store.ListImages(ctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		varsByID, err = s.store.ListVariants(ctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return empty, status.Internal().WithCause(err)
	}

	products := make([]*Product, 0, len(rows))
	for _, r := range rows {
		p, err := assemble(r, imagesByID[r.ID], varsByID[r.ID])
		if err != nil {
			return empty, err
		}
		products = append(products, p)
	}
	return pagination.Paginate(opt, products, func(p *Product) int64 { return p.ID.Int64() }), nil
}

// assemble builds the domain product from its rows. An unparseable currency
// is persisted corruption, reported as DataLoss rather than InvalidArgument
// so it is not mistaken for caller error.
func assemble(r ProductRow, images []ImageRow, variants []VariantRow) (*Product, error) {
	code, err := money.ParseCurrency(r.Currency)
	if err != nil {
		return nil, status.DataLoss().
			WithErrorInfo(ReasonUnrecognizedCurrency, errorDomain, map[string]string{
				"product_id": fmt.Sprintf("%d", r.ID),
				"currency":   r.Currency,
			}).
			WithCause(err)
	}
	p := &Product{
		ID:          ident.ID[Product](r.ID),
		Title:       r.Title,
		SubTitle:    r.SubTitle,
		Description: r.Description,
		Currency:    code,
		Images:      make([]Image, 0, len(images)),
		Variants:    make([]Variant, 0, len(variants)),
	}
	for _, img := range images {
		p.Images = append(p.Images, Image{
			URL:      img.URL,
			AltText:  img.AltText,
			OrderIdx: img.OrderIdx,
		})
	}
	for _, v := range variants {
		p.Variants = append(p.Variants, Variant{
			ID:             ident.ID[Variant](v.ID),
			Title:          v.Title,
			Price:          money.FromMinorUnits(v.PriceCents, code),
			InventoryCount: v.InventoryCount,
			OrderIdx:       v.OrderIdx,
		})
	}
	return p, nil
}
