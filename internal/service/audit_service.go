package service

import (
	"context"
	"fmt"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/logger"
	"loyalty_app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService writes the account action trail.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{repo: repository.NewAuditRepository(db)}
}

// LogWithRequest records an action outside a transaction together with the
// caller's IP and User-Agent. Failures are logged, not returned.
func (s *AuditService) LogWithRequest(ctx context.Context, accountID int64, action, category, ip, userAgent string, details map[string]interface{}) {
	err := s.repo.Create(ctx, &domain.AuditLog{
		AccountID: accountID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	})
	if err != nil {
		logger.WithContext(ctx).Error("failed to create audit log", "error", err, "action", action)
	}
}

// LogWithTx writes the entry inside tx so it commits or rolls back with the change it describes.
func (s *AuditService) LogWithTx(ctx context.Context, tx pgx.Tx, accountID int64, action, category string, details map[string]interface{}) error {
	return s.repo.CreateManyWithTx(ctx, tx, &domain.AuditLog{
		AccountID: accountID,
		Action:    action,
		Category:  category,
		Details:   details,
	})
}

// LogProgress records the evolution, level ups and daily bonus of one activity.
func (s *AuditService) LogProgress(ctx context.Context, tx pgx.Tx, c *domain.Character, p domain.Progress, bonus int64) error {
	return s.repo.CreateManyWithTx(ctx, tx, progressEntries(c, p, bonus)...)
}

func progressEntries(c *domain.Character, p domain.Progress, bonus int64) []*domain.AuditLog {
	var entries []*domain.AuditLog
	add := func(action string, details map[string]interface{}) {
		details["character_id"] = c.ID
		entries = append(entries, &domain.AuditLog{
			AccountID: c.AccountID,
			Action:    action,
			Category:  domain.AuditCategoryCharacter,
			Details:   details,
		})
	}
	if p.Evolved {
		add(domain.AuditActionEvolve, map[string]interface{}{"kind": c.Kind})
	}
	if p.LevelsGained > 0 {
		add(domain.AuditActionLevelUp, map[string]interface{}{"levels_gained": p.LevelsGained, "level": c.Level})
	}
	if bonus > 0 {
		add(domain.AuditActionAllCompleteBonus, map[string]interface{}{"bonus": bonus})
	}
	return entries
}

// AccountLogs returns the newest audit entries, optionally filtered by action.
func (s *AuditService) AccountLogs(ctx context.Context, accountID int64, action string, limit int) ([]*domain.AuditLog, error) {
	logs, err := s.repo.ListByAccount(ctx, accountID, action, limit)
	if err != nil {
		return nil, fmt.Errorf("audit logs: %w", err)
	}
	return logs, nil
}
