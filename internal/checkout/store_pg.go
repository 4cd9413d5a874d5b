package checkout

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nanokusa/go-shop-catalog/internal/cart"
	"github.com/nanokusa/go-shop-catalog/internal/postgres"
)

type PGStore struct {
	pool  *pgxpool.Pool
	q     postgres.Querier
	carts cart.Store
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool, q: pool, carts: cart.NewPGStore(pool)}
}

const checkoutColumns = `id, cid, status, sid, pid, shipping_fee, email, full_name, country_code, address, postcode, phone`

func (s *PGStore) InsertCheckout(ctx context.Context, cartID int64) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx,
		`INSERT INTO t_checkouts (cid, status) VALUES ($1, 0) RETURNING id`, cartID,
	).Scan(&id)
	return id, err
}

func (s *PGStore) scanRow(row pgx.Row) (*Row, error) {
	var r Row
	err := row.Scan(&r.ID, &r.CartID, &r.Status, &r.ShippingID, &r.PaymentID,
		&r.ShippingFeeCents, &r.Email, &r.FullName, &r.CountryCode, &r.Address,
		&r.Postcode, &r.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGStore) FindCheckout(ctx context.Context, id int64) (*Row, error) {
	return s.scanRow(s.q.QueryRow(ctx,
		`SELECT `+checkoutColumns+` FROM t_checkouts WHERE id = $1`, id))
}

func (s *PGStore) FindCheckoutByCart(ctx context.Context, cartID int64) (*Row, error) {
	return s.scanRow(s.q.QueryRow(ctx,
		`SELECT `+checkoutColumns+` FROM t_checkouts WHERE cid = $1`, cartID))
}

// ApplyPatch updates only the columns the patch carries, in one statement.
func (s *PGStore) ApplyPatch(ctx context.Context, id int64, p Patch) error {
	_, err := s.q.Exec(ctx,
		`UPDATE t_checkouts SET
			sid          = COALESCE($2, sid),
			pid          = COALESCE($3, pid),
			email        = COALESCE($4, email),
			full_name    = COALESCE($5, full_name),
			country_code = COALESCE($6, country_code),
			address      = COALESCE($7, address),
			postcode     = COALESCE($8, postcode),
			phone        = COALESCE($9, phone)
		 WHERE id = $1`,
		id, p.ShippingID, p.PaymentID, p.Email, p.FullName, p.CountryCode,
		p.Address, p.Postcode, p.Phone)
	return err
}

func (s *PGStore) SetShippingFee(ctx context.Context, id int64, cents int64) error {
	_, err := s.q.Exec(ctx,
		`UPDATE t_checkouts SET shipping_fee = $2 WHERE id = $1`, id, cents)
	return err
}

func (s *PGStore) LoadCart(ctx context.Context, cartID int64) (*cart.Cart, error) {
	return s.carts.LoadCart(ctx, cartID)
}

func (s *PGStore) findMethod(ctx context.Context, table string, id int64) (*MethodRow, error) {
	var m MethodRow
	err := s.q.QueryRow(ctx,
		`SELECT id, vendor FROM `+table+` WHERE id = $1`, id).Scan(&m.ID, &m.Vendor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PGStore) listMethods(ctx context.Context, table string) ([]MethodRow, error) {
	rows, err := s.q.Query(ctx, `SELECT id, vendor FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MethodRow
	for rows.Next() {
		var m MethodRow
		if err := rows.Scan(&m.ID, &m.Vendor); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PGStore) FindShippingMethod(ctx context.Context, id int64) (*MethodRow, error) {
	return s.findMethod(ctx, "t_shipping_methods", id)
}

func (s *PGStore) ListShippingMethods(ctx context.Context) ([]MethodRow, error) {
	return s.listMethods(ctx, "t_shipping_methods")
}

func (s *PGStore) FindPaymentMethod(ctx context.Context, id int64) (*MethodRow, error) {
	return s.findMethod(ctx, "t_payment_methods", id)
}

func (s *PGStore) ListPaymentMethods(ctx context.Context) ([]MethodRow, error) {
	return s.listMethods(ctx, "t_payment_methods")
}

// InTx runs fn against a copy of the store bound to one transaction.
func (s *PGStore) InTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(&PGStore{pool: s.pool, q: tx, carts: cart.NewPGStoreQuerier(tx)}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
