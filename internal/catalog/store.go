package catalog

import "context"

// ProductRow, ImageRow and VariantRow mirror their tables; the currency
// stays a raw string until assembly so a bad value surfaces as a data-loss
// error instead of a scan failure.
type ProductRow struct {
	ID          int64
	Title       string
	SubTitle    string
	Description string
	Currency    string
}

type ImageRow struct {
	ProductID int64
	URL       string
	AltText   string
	OrderIdx  int32
}

type VariantRow struct {
	ID             int64
	ProductID      int64
	Title          string
	PriceCents     int64
	InventoryCount int32
	OrderIdx       int32
}

// Store is the persistence surface the service needs. FindProduct returns
// (nil, nil) when the row is absent.
type Store interface {
	MaxProductID(ctx context.Context) (int64, error)
	FindProduct(ctx context.Context, id int64) (*ProductRow, error)
	ListProducts(ctx context.Context, start, end int64) ([]ProductRow, error)
	ListImages(ctx context.Context, productIDs []int64) (map[int64][]ImageRow, error)
	ListVariants(ctx context.Context, productIDs []int64) (map[int64][]VariantRow, error)
}
