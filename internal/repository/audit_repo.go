package repository

import (
	"context"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertAuditSQL = `INSERT INTO audit_logs (account_id, action, category, details, ip, user_agent)
	VALUES ($1, $2, $3, $4, $5, $6)`

// AuditRepository stores the per-account action trail.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create writes one entry outside any transaction.
func (r *AuditRepository) Create(ctx context.Context, e *domain.AuditLog) error {
	_, err := r.db.Exec(ctx, insertAuditSQL, auditArgs(e)...)
	return err
}

// CreateManyWithTx queues every entry in one batch on tx.
func (r *AuditRepository) CreateManyWithTx(ctx context.Context, tx pgx.Tx, entries ...*domain.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertAuditSQL, auditArgs(e)...)
	}
	return tx.SendBatch(ctx, batch).Close()
}

// ListByAccount returns the newest entries of an account. An empty action matches all.
func (r *AuditRepository) ListByAccount(ctx context.Context, accountID int64, action string, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(account_id, 0) AS account_id, action, category, details, ip, user_agent, created_at
		 FROM audit_logs
		 WHERE account_id = $1 AND ($2 = '' OR action = $2)
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3`,
		accountID, action, limit,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[domain.AuditLog])
}

// auditArgs binds an entry. Account id 0 is stored as NULL so deleted accounts keep their trail.
func auditArgs(e *domain.AuditLog) []any {
	var accountID any
	if e.AccountID > 0 {
		accountID = e.AccountID
	}
	details := e.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	return []any{accountID, e.Action, e.Category, details, e.IP, e.UserAgent}
}
