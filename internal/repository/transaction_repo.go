package repository

import (
	"context"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultLedgerLimit = 100

// TransactionRepository is the append-only point ledger.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List returns the newest ledger rows of an account. An empty txType matches every type.
func (r *TransactionRepository) List(ctx context.Context, accountID int64, txType string, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 || limit > defaultLedgerLimit {
		limit = defaultLedgerLimit
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, account_id, type, amount, meta, created_at
		 FROM transactions
		 WHERE account_id = $1 AND ($2 = '' OR type = $2)
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3`,
		accountID, txType, limit,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[domain.Transaction])
}

// CreateWithTx records a balance movement inside the transaction that made it.
func (r *TransactionRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	meta := t.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return tx.QueryRow(ctx,
		`INSERT INTO transactions (account_id, type, amount, meta)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		t.AccountID, t.Type, t.Amount, meta,
	).Scan(&t.ID, &t.CreatedAt)
}
