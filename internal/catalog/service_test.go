package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanokusa/go-shop-catalog/internal/logger"
	"github.com/nanokusa/go-shop-catalog/internal/money"
	"github.com/nanokusa/go-shop-catalog/internal/pagination"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

// memStore is an in-memory Store used by the service tests.
type memStore struct {
	products []ProductRow
	images   map[int64][]ImageRow
	variants map[int64][]VariantRow
}

func (m *memStore) MaxProductID(context.Context) (int64, error) {
	var max int64
	for _, p := range m.products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max, nil
}

func (m *memStore) FindProduct(_ context.Context, id int64) (*ProductRow, error) {
	for _, p := range m.products {
		if p.ID == id {
			row := p
			return &row, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListProducts(_ context.Context, start, end int64) ([]ProductRow, error) {
	var out []ProductRow
	for _, p := range m.products {
		if p.ID >= start && p.ID <= end {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) ListImages(_ context.Context, ids []int64) (map[int64][]ImageRow, error) {
	out := make(map[int64][]ImageRow)
	for _, id := range ids {
		if rows, ok := m.images[id]; ok {
			out[id] = rows
		}
	}
	return out, nil
}

func (m *memStore) ListVariants(_ context.Context, ids []int64) (map[int64][]VariantRow, error) {
	out := make(map[int64][]VariantRow)
	for _, id := range ids {
		if rows, ok := m.variants[id]; ok {
			out[id] = rows
		}
	}
	return out, nil
}

func fixtureStore() *memStore {
	return &memStore{
		products: []ProductRow{
			{ID: 1, Title: "Console", SubTitle: "8th gen", Description: "home console", Currency: "USD"},
			{ID: 2, Title: "Controller", SubTitle: "wireless", Description: "extra controller", Currency: "USD"},
			{ID: 3, Title: "Sticker", SubTitle: "", Description: "no variants yet", Currency: "USD"},
		},
		images: map[int64][]ImageRow{
			1: {
				{ProductID: 1, URL: "https://img/console-front.png", AltText: "front", OrderIdx: 0},
				{ProductID: 1, URL: "https://img/console-back.png", AltText: "back", OrderIdx: 1},
			},
		},
		variants: map[int64][]VariantRow{
			1: {
				{ID: 1, ProductID: 1, Title: "standard", PriceCents: 29999, InventoryCount: 12, OrderIdx: 0},
				{ID: 2, ProductID: 1, Title: "bundle", PriceCents: 34999, InventoryCount: 3, OrderIdx: 1},
			},
			2: {
				{ID: 3, ProductID: 2, Title: "white", PriceCents: 5999, InventoryCount: 40, OrderIdx: 0},
			},
		},
	}
}

func TestServiceGet(t *testing.T) {
	svc := NewService(fixtureStore(), logger.Nop())

	p, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Console", p.Title)
	require.Len(t, p.Images, 2)
	require.Len(t, p.Variants, 2)
	require.Equal(t, int64(29999), p.Variants[0].Price.MinorUnits())
	require.Equal(t, money.USD, p.Variants[0].Price.Currency)
}

func TestServiceGetNotFound(t *testing.T) {
	svc := NewService(fixtureStore(), logger.Nop())

	_, err := svc.Get(context.Background(), 99)
	st := status.Convert(err)
	require.Equal(t, status.CodeNotFound, st.Code())
	require.Equal(t, "Resource 'product(99)' not found.", st.Message())
}

func TestServiceList(t *testing.T) {
	svc := NewService(fixtureStore(), logger.Nop())

	conn, err := svc.List(context.Background(), pagination.Option{})
	require.NoError(t, err)
	require.Len(t, conn.Edges, 3)
	require.Equal(t, int64(1), conn.Edges[0].Cursor)
	require.False(t, conn.HasNextPage)

	// the no-variant product still lists, with a degenerate price range
	r, err := conn.Edges[2].Node.PriceRange()
	require.NoError(t, err)
	require.Equal(t, int64(0), r.Min.MinorUnits())
}

func TestServiceListFirst(t *testing.T) {
	svc := NewService(fixtureStore(), logger.Nop())

	first := int32(2)
	conn, err := svc.List(context.Background(), pagination.Option{First: &first})
	require.NoError(t, err)
	require.Len(t, conn.Edges, 2)
	require.True(t, conn.HasNextPage)
}

func TestServiceListAfterEnd(t *testing.T) {
	svc := NewService(fixtureStore(), logger.Nop())

	after := int64(3)
	conn, err := svc.List(context.Background(), pagination.Option{After: &after})
	require.NoError(t, err)
	require.Empty(t, conn.Edges)
}

func TestServiceListBeforeZero(t *testing.T) {
	svc := NewService(fixtureStore(), logger.Nop())

	before := int64(0)
	_, err := svc.List(context.Background(), pagination.Option{Before: &before})
	require.Equal(t, status.CodeOutOfRange, status.CodeOf(err))
}

func TestUnrecognizedCurrencyPoisonsRead(t *testing.T) {
	store := fixtureStore()
	store.products[1].Currency = "EUR"
	svc := NewService(store, logger.Nop())

	_, err := svc.Get(context.Background(), 2)
	st := status.Convert(err)
	require.Equal(t, status.CodeDataLoss, st.Code())
	var info *status.ErrorInfo
	for _, d := range st.Details() {
		if ei, ok := d.(status.ErrorInfo); ok {
			info = &ei
		}
	}
	require.NotNil(t, info)
	require.Equal(t, ReasonUnrecognizedCurrency, info.Reason)

	// the whole listing fails too, not just the bad product
	_, err = svc.List(context.Background(), pagination.Option{})
	require.Equal(t, status.CodeDataLoss, status.CodeOf(err))
}
