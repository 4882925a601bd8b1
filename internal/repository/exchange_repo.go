package repository

import (
	"context"
	"errors"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExchangeRepository stores the purchase and donation history.
type ExchangeRepository struct {
	db *pgxpool.Pool
}

func NewExchangeRepository(db *pgxpool.Pool) *ExchangeRepository {
	return &ExchangeRepository{db: db}
}

// CreateWithTx appends a history row and fills in its id and timestamp.
func (r *ExchangeRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, e *domain.Exchange) error {
	return tx.QueryRow(ctx,
		`INSERT INTO product_exchanges (account_id, product_id, quantity, total_cost, kind, accepted)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, exchanged_at`,
		e.AccountID, e.ProductID, e.Quantity, e.TotalCost, string(e.Kind), e.Accepted,
	).Scan(&e.ID, &e.ExchangedAt)
}

// ListByAccount returns the newest rows first.
func (r *ExchangeRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]*domain.Exchange, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.account_id, e.product_id, p.name, e.quantity, e.total_cost, e.kind, e.accepted, e.exchanged_at
		 FROM product_exchanges e
		 JOIN products p ON p.id = e.product_id
		 WHERE e.account_id = $1
		 ORDER BY e.exchanged_at DESC, e.id DESC
		 LIMIT $2`,
		accountID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExchanges(rows)
}

func (r *ExchangeRepository) ListByAccountAndKind(ctx context.Context, accountID int64, kind domain.TransactionKind, limit int) ([]*domain.Exchange, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.account_id, e.product_id, p.name, e.quantity, e.total_cost, e.kind, e.accepted, e.exchanged_at
		 FROM product_exchanges e
		 JOIN products p ON p.id = e.product_id
		 WHERE e.account_id = $1 AND e.kind = $2
		 ORDER BY e.exchanged_at DESC, e.id DESC
		 LIMIT $3`,
		accountID, string(kind), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExchanges(rows)
}

// ToggleAccepted flips the accepted flag of an exchange owned by accountID.
func (r *ExchangeRepository) ToggleAccepted(ctx context.Context, accountID, exchangeID int64) (*domain.Exchange, error) {
	row := r.db.QueryRow(ctx,
		`WITH u AS (
			UPDATE product_exchanges SET accepted = NOT accepted
			WHERE id = $1 AND account_id = $2
			RETURNING id, account_id, product_id, quantity, total_cost, kind, accepted, exchanged_at
		 )
		 SELECT u.id, u.account_id, u.product_id, p.name, u.quantity, u.total_cost, u.kind, u.accepted, u.exchanged_at
		 FROM u JOIN products p ON p.id = u.product_id`,
		exchangeID, accountID,
	)

	e, err := scanExchange(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return e, err
}

func scanExchange(row pgx.Row) (*domain.Exchange, error) {
	var (
		e    domain.Exchange
		kind string
	)
	if err := row.Scan(&e.ID, &e.AccountID, &e.ProductID, &e.ProductName, &e.Quantity, &e.TotalCost, &kind, &e.Accepted, &e.ExchangedAt); err != nil {
		return nil, err
	}
	e.Kind = domain.TransactionKind(kind)
	return &e, nil
}

func scanExchanges(rows pgx.Rows) ([]*domain.Exchange, error) {
	result := []*domain.Exchange{}
	for rows.Next() {
		e, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
