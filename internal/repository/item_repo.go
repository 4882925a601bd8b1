package repository

import (
	"context"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemRepository stores per-kind inventory counters in account_items.
type ItemRepository struct {
	db *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// Load returns the inventory of an account.
func (r *ItemRepository) Load(ctx context.Context, accountID int64) (domain.Inventory, error) {
	return loadItems(ctx, r.db, accountID)
}

// LoadWithTx reads the inventory inside tx. Callers hold the account lock.
func (r *ItemRepository) LoadWithTx(ctx context.Context, tx pgx.Tx, accountID int64) (domain.Inventory, error) {
	return loadItems(ctx, tx, accountID)
}

// SaveWithTx upserts every counter in inv.
func (r *ItemRepository) SaveWithTx(ctx context.Context, tx pgx.Tx, accountID int64, inv domain.Inventory) error {
	if len(inv) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for kind, n := range inv {
		batch.Queue(
			`INSERT INTO account_items (account_id, item_kind, quantity)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (account_id, item_kind) DO UPDATE SET quantity = EXCLUDED.quantity`,
			accountID, string(kind), n,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}

func loadItems(ctx context.Context, q querier, accountID int64) (domain.Inventory, error) {
	rows, err := q.Query(ctx,
		`SELECT item_kind, quantity FROM account_items WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inv := domain.Inventory{}
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		inv[domain.ItemKind(kind)] = n
	}
	return inv, rows.Err()
}
