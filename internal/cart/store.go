package cart

import "context"

// VariantRef is the slice of a variant row the mutations need: enough to
// pin entry identity as (cart, product, variant order index).
type VariantRef struct {
	ID        int64
	ProductID int64
	OrderIdx  int32
}

// EntryRef locates an existing entry row for a merge or removal.
type EntryRef struct {
	ID       int64
	Quantity int32
}

// Store is the persistence surface for the cart aggregate. Find* methods
// return (nil, nil) when the row is absent. InTx runs fn against a store
// bound to one transaction; mutations read back the cart inside it.
type Store interface {
	InsertCart(ctx context.Context) (int64, error)
	CartExists(ctx context.Context, id int64) (bool, error)
	LoadCart(ctx context.Context, id int64) (*Cart, error)
	FindVariant(ctx context.Context, variantID int64) (*VariantRef, error)
	FindEntry(ctx context.Context, cartID, productID int64, variantIdx int32) (*EntryRef, error)
	FindEntryByID(ctx context.Context, cartID, entryID int64) (*EntryRef, error)
	InsertEntry(ctx context.Context, cartID, productID int64, variantIdx int32, quantity int32) error
	AdjustEntryQuantity(ctx context.Context, entryID int64, delta int32) error
	DeleteEntry(ctx context.Context, entryID int64) error
	InTx(ctx context.Context, fn func(Store) error) error
}
