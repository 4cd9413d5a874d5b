package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nanokusa/go-shop-catalog/internal/postgres"
)

type PGStore struct {
	q postgres.Querier
}

func NewPGStore(q postgres.Querier) *PGStore { return &PGStore{q: q} }

const productColumns = `id, title, sub_title, description, currency_code`

func (s *PGStore) MaxProductID(ctx context.Context) (int64, error) {
	var max int64
	err := s.q.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM t_products`).Scan(&max)
	return max, err
}

func (s *PGStore) FindProduct(ctx context.Context, id int64) (*ProductRow, error) {
	var r ProductRow
	err := s.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM t_products WHERE id = $1`, id,
	).Scan(&r.ID, &r.Title, &r.SubTitle, &r.Description, &r.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGStore) ListProducts(ctx context.Context, start, end int64) ([]ProductRow, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+productColumns+` FROM t_products
		 WHERE id BETWEEN $1 AND $2 ORDER BY id`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]ProductRow, error) {
	var out []ProductRow
	for rows.Next() {
		var r ProductRow
		if err := rows.Scan(&r.ID, &r.Title, &r.SubTitle, &r.Description, &r.Currency); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PGStore) ListImages(ctx context.Context, productIDs []int64) (map[int64][]ImageRow, error) {
	return listImages(ctx, s.q, productIDs)
}

func (s *PGStore) ListVariants(ctx context.Context, productIDs []int64) (map[int64][]VariantRow, error) {
	return listVariants(ctx, s.q, productIDs)
}

func listImages(ctx context.Context, q postgres.Querier, productIDs []int64) (map[int64][]ImageRow, error) {
	out := make(map[int64][]ImageRow, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx,
		`SELECT pid, url, alt_text, order_idx FROM t_product_images
		 WHERE pid = ANY($1) ORDER BY pid, order_idx`, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var r ImageRow
		if err := rows.Scan(&r.ProductID, &r.URL, &r.AltText, &r.OrderIdx); err != nil {
			return nil, err
		}
		out[r.ProductID] = append(out[r.ProductID], r)
	}
	return out, rows.Err()
}

func listVariants(ctx context.Context, q postgres.Querier, productIDs []int64) (map[int64][]VariantRow, error) {
	out := make(map[int64][]VariantRow, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx,
		`SELECT id, pid, title, price_cents, inventory_count, order_idx FROM t_product_variants
		 WHERE pid = ANY($1) ORDER BY pid, order_idx`, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var r VariantRow
		if err := rows.Scan(&r.ID, &r.ProductID, &r.Title, &r.PriceCents, &r.InventoryCount, &r.OrderIdx); err != nil {
			return nil, err
		}
		out[r.ProductID] = append(out[r.ProductID], r)
	}
	return out, rows.Err()
}

// LoadProducts assembles full products for the given ids in two batched
// child queries, for callers (cart, checkout) that already hold a Querier.
// Queries run sequentially: the Querier may be a pgx.Tx, which does not
// tolerate concurrent use.
func LoadProducts(ctx context.Context, q postgres.Querier, ids []int64) (map[int64]*Product, error) {
	out := make(map[int64]*Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx,
		`SELECT `+productColumns+` FROM t_products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	prows, err := scanProducts(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	imagesByID, err := listImages(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	varsByID, err := listVariants(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	for _, r := range prows {
		p, err := assemble(r, imagesByID[r.ID], varsByID[r.ID])
		if err != nil {
			return nil, err
		}
		out[r.ID] = p
	}
	return out, nil
}
