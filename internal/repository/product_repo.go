package repository

import (
	"context"
	"errors"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, kind, point_cost, stock, image_url`

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns every product ordered by id.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) ListByKind(ctx context.Context, kind domain.TransactionKind) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE kind = $1 ORDER BY id`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

// GetForUpdate row-locks a product so concurrent exchanges serialize on its stock.
func (r *ProductRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Product, error) {
	return scanProduct(tx.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
}

func (r *ProductRepository) UpdateStockWithTx(ctx context.Context, tx pgx.Tx, id int64, stock int) error {
	_, err := tx.Exec(ctx, `UPDATE products SET stock = $2 WHERE id = $1`, id, stock)
	return err
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// CreateMany bulk loads products with COPY.
func (r *ProductRepository) CreateMany(ctx context.Context, products []*domain.Product) (int64, error) {
	return r.db.CopyFrom(ctx,
		pgx.Identifier{"products"},
		[]string{"name", "kind", "point_cost", "stock", "image_url"},
		pgx.CopyFromSlice(len(products), func(i int) ([]any, error) {
			p := products[i]
			return []any{p.Name, string(p.Kind), p.PointCost, p.Stock, p.ImageURL}, nil
		}),
	)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p    domain.Product
		kind string
	)
	if err := row.Scan(&p.ID, &p.Name, &kind, &p.PointCost, &p.Stock, &p.ImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Kind = domain.TransactionKind(kind)
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
