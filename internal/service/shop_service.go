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

// ShopItem is a catalog entry of the virtual shop.
type ShopItem struct {
	ItemType    domain.ItemKind     `json:"item_type"`
	DisplayName string              `json:"display_name"`
	Emoji       string              `json:"emoji"`
	Category    domain.ItemCategory `json:"category"`
	Price       int64               `json:"price"`
}

// PurchaseReceipt is returned by a shop purchase.
type PurchaseReceipt struct {
	ItemType        domain.ItemKind `json:"item_type"`
	DisplayName     string          `json:"display_name"`
	Price           int64           `json:"price"`
	RemainingPoints int64           `json:"remaining_points"`
	Owned           int             `json:"owned"`
	Message         string          `json:"message"`
}

type ShopService struct {
	db           *pgxpool.Pool
	accounts     *repository.AccountRepository
	items        *repository.ItemRepository
	transactions *repository.TransactionRepository
	audit        *AuditService
}

func NewShopService(db *pgxpool.Pool, audit *AuditService) *ShopService {
	return &ShopService{
		db:           db,
		accounts:     repository.NewAccountRepository(db),
		items:        repository.NewItemRepository(db),
		transactions: repository.NewTransactionRepository(db),
		audit:        audit,
	}
}

// Items lists shop items of category, or all items when category is empty.
func (s *ShopService) Items(category domain.ItemCategory) ([]ShopItem, error) {
	if category != "" && category != domain.CategoryConsumption && category != domain.CategoryCosmetic {
		return nil, domain.ErrInvalidItem
	}
	specs := domain.ItemsByCategory(category)
	out := make([]ShopItem, 0, len(specs))
	for _, spec := range specs {
		out = append(out, ShopItem{
			ItemType:    spec.Kind,
			DisplayName: spec.DisplayName,
			Emoji:       spec.Emoji,
			Category:    spec.Category,
			Price:       spec.Price,
		})
	}
	return out, nil
}

// Purchase buys one unit of kind with points.
func (s *ShopService) Purchase(ctx context.Context, accountID int64, kind domain.ItemKind) (*PurchaseReceipt, error) {
	var r *PurchaseReceipt
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, s.accounts, s.items, accountID)
		if err != nil {
			return err
		}
		spec, err := acct.BuyItem(kind)
		if err != nil {
			return err
		}
		if err := s.accounts.UpdateWithTx(ctx, tx, acct); err != nil {
			return err
		}
		if err := s.items.SaveWithTx(ctx, tx, accountID, domain.Inventory{kind: acct.Items.Count(kind)}); err != nil {
			return err
		}

		meta := map[string]interface{}{"item_type": kind, "price": spec.Price}
		if err := s.transactions.CreateWithTx(ctx, tx, &domain.Transaction{
			AccountID: accountID,
			Type:      domain.TxShopPurchase,
			Amount:    -spec.Price,
			Meta:      meta,
		}); err != nil {
			return err
		}
		if err := s.audit.LogWithTx(ctx, tx, accountID, domain.AuditActionShopPurchase, domain.AuditCategoryReward, meta); err != nil {
			return err
		}

		r = &PurchaseReceipt{
			ItemType:        kind,
			DisplayName:     spec.DisplayName,
			Price:           spec.Price,
			RemainingPoints: acct.Points,
			Owned:           acct.Items.Count(kind),
			Message:         fmt.Sprintf("Bought 1 %s %s.", spec.Emoji, spec.DisplayName),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("purchase %s: %w", kind, err)
	}

	recordPoints(domain.TxShopPurchase, -r.Price)
	logger.Info("shop item purchased", "account_id", accountID, "item_type", kind)
	return r, nil
}
