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

// ChargeReceipt is returned after points are credited.
type ChargeReceipt struct {
	ChargeType domain.ChargeType `json:"charge_type"`
	Points     int64             `json:"points"`
	Balance    int64             `json:"balance"`
	Message    string            `json:"message"`
}

// ChargeService credits point packs. Payment is settled outside this system.
type ChargeService struct {
	db           *pgxpool.Pool
	accounts     *repository.AccountRepository
	transactions *repository.TransactionRepository
	audit        *AuditService
}

func NewChargeService(db *pgxpool.Pool, audit *AuditService) *ChargeService {
	return &ChargeService{
		db:           db,
		accounts:     repository.NewAccountRepository(db),
		transactions: repository.NewTransactionRepository(db),
		audit:        audit,
	}
}

// Types lists the available point packs.
func (s *ChargeService) Types() []domain.ChargeSpec {
	out := make([]domain.ChargeSpec, 0, len(domain.ChargeOrder))
	for _, t := range domain.ChargeOrder {
		out = append(out, domain.Charges[t])
	}
	return out
}

func (s *ChargeService) Charge(ctx context.Context, accountID int64, chargeType domain.ChargeType) (*ChargeReceipt, error) {
	spec, ok := domain.Charges[chargeType]
	if !ok {
		return nil, fmt.Errorf("charge %s: %w", chargeType, domain.ErrInvalidItem)
	}

	var r *ChargeReceipt
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		acct, err := s.accounts.GetForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if err := acct.Credit(spec.Points); err != nil {
			return err
		}
		if err := s.accounts.UpdateWithTx(ctx, tx, acct); err != nil {
			return err
		}

		meta := map[string]interface{}{"charge_type": chargeType, "display_price": spec.DisplayPrice}
		if err := s.transactions.CreateWithTx(ctx, tx, &domain.Transaction{
			AccountID: accountID,
			Type:      domain.TxCharge,
			Amount:    spec.Points,
			Meta:      meta,
		}); err != nil {
			return err
		}
		if err := s.audit.LogWithTx(ctx, tx, accountID, domain.AuditActionCharge, domain.AuditCategoryBalance, meta); err != nil {
			return err
		}

		r = &ChargeReceipt{
			ChargeType: chargeType,
			Points:     spec.Points,
			Balance:    acct.Points,
			Message:    fmt.Sprintf("%s charged.", spec.DisplayName),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("charge %s: %w", chargeType, err)
	}

	recordPoints(domain.TxCharge, spec.Points)
	logger.Info("points charged", "account_id", accountID, "charge_type", chargeType, "points", spec.Points)
	return r, nil
}

// Ledger returns the account's recent balance movements.
func (s *ChargeService) Ledger(ctx context.Context, accountID int64, txType string, limit int) ([]*domain.Transaction, error) {
	if txType != "" && !domain.ValidTxType(txType) {
		return nil, domain.ErrInvalidItem
	}
	txs, err := s.transactions.List(ctx, accountID, txType, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	return txs, nil
}
