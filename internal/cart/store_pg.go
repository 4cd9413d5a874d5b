package cart

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nanokusa/go-shop-catalog/internal/catalog"
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	"github.com/nanokusa/go-shop-catalog/internal/postgres"
)

type PGStore struct {
	pool *pgxpool.Pool
	q    postgres.Querier
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool, q: pool}
}

// NewPGStoreQuerier binds the store to a caller-managed transaction. InTx
// on such a store runs fn directly in that transaction.
func NewPGStoreQuerier(q postgres.Querier) *PGStore {
	return &PGStore{q: q}
}

func (s *PGStore) InsertCart(ctx context.Context) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, `INSERT INTO t_carts DEFAULT VALUES RETURNING id`).Scan(&id)
	return id, err
}

func (s *PGStore) CartExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := s.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM t_carts WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

type entryRow struct {
	ID         int64
	ProductID  int64
	Quantity   int32
	VariantIdx int32
}

// LoadCart returns the assembled aggregate, or (nil, nil) when the cart row
// is absent. Entry products are batch loaded for the whole cart.
func (s *PGStore) LoadCart(ctx context.Context, id int64) (*Cart, error) {
	ok, err := s.CartExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	rows, err := s.q.Query(ctx,
		`SELECT id, pid, quantity, variant FROM t_cart_entries WHERE cid = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []entryRow
	for rows.Next() {
		var r entryRow
		if err := rows.Scan(&r.ID, &r.ProductID, &r.Quantity, &r.VariantIdx); err != nil {
			return nil, err
		}
		entries = append(entries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ProductID]; !dup {
			seen[e.ProductID] = struct{}{}
			ids = append(ids, e.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	products, err := catalog.LoadProducts(ctx, s.q, ids)
	if err != nil {
		return nil, err
	}

	c := &Cart{ID: ident.ID[Cart](id), Entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		c.Entries = append(c.Entries, Entry{
			ID:         ident.ID[Entry](e.ID),
			Product:    products[e.ProductID],
			Quantity:   e.Quantity,
			VariantIdx: e.VariantIdx,
		})
	}
	return c, nil
}

func (s *PGStore) FindVariant(ctx context.Context, variantID int64) (*VariantRef, error) {
	var v VariantRef
	err := s.q.QueryRow(ctx,
		`SELECT id, pid, order_idx FROM t_product_variants WHERE id = $1`, variantID,
	).Scan(&v.ID, &v.ProductID, &v.OrderIdx)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *PGStore) FindEntry(ctx context.Context, cartID, productID int64, variantIdx int32) (*EntryRef, error) {
	var e EntryRef
	err := s.q.QueryRow(ctx,
		`SELECT id, quantity FROM t_cart_entries
		 WHERE cid = $1 AND pid = $2 AND variant = $3`, cartID, productID, variantIdx,
	).Scan(&e.ID, &e.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PGStore) FindEntryByID(ctx context.Context, cartID, entryID int64) (*EntryRef, error) {
	var e EntryRef
	err := s.q.QueryRow(ctx,
		`SELECT id, quantity FROM t_cart_entries WHERE id = $1 AND cid = $2`,
		entryID, cartID,
	).Scan(&e.ID, &e.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PGStore) InsertEntry(ctx context.Context, cartID, productID int64, variantIdx, quantity int32) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO t_cart_entries (cid, pid, quantity, variant) VALUES ($1, $2, $3, $4)`,
		cartID, productID, quantity, variantIdx)
	return err
}

// AdjustEntryQuantity moves the quantity by a relative delta so two
// concurrent adds to the same entry never lose an update.
func (s *PGStore) AdjustEntryQuantity(ctx context.Context, entryID int64, delta int32) error {
	_, err := s.q.Exec(ctx,
		`UPDATE t_cart_entries SET quantity = quantity + $2 WHERE id = $1`, entryID, delta)
	return err
}

func (s *PGStore) DeleteEntry(ctx context.Context, entryID int64) error {
	_, err := s.q.Exec(ctx, `DELETE FROM t_cart_entries WHERE id = $1`, entryID)
	return err
}

// InTx runs fn against a copy of the store bound to one transaction.
func (s *PGStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(&PGStore{pool: s.pool, q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
