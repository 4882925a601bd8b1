package service

import (
	"context"
	"fmt"
	"time"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/logger"
	"loyalty_app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Receipt is returned by exchanges and donations.
type Receipt struct {
	ExchangeID      int64                  `json:"exchange_id"`
	ProductID       int64                  `json:"product_id"`
	ProductName     string                 `json:"product_name"`
	Kind            domain.TransactionKind `json:"kind"`
	Quantity        int                    `json:"quantity"`
	TotalCost       int64                  `json:"total_cost"`
	RemainingPoints int64                  `json:"remaining_points"`
	RewardItem      domain.ItemKind        `json:"reward_item"`
	RewardAmount    int                    `json:"reward_amount"`
	TotalCosmetics  int                    `json:"total_cosmetics"`
	Message         string                 `json:"message"`
	ExchangedAt     time.Time              `json:"exchanged_at"`
}

// WatchReceipt is returned by the one-time watch reward.
type WatchReceipt struct {
	RewardItem   domain.ItemKind `json:"reward_item"`
	RewardAmount int             `json:"reward_amount"`
	Persimmons   int             `json:"persimmons"`
	GreenTeas    int             `json:"green_teas"`
	Message      string          `json:"message"`
}

// RewardService runs product exchanges, donations and the watch reward.
type RewardService struct {
	db           *pgxpool.Pool
	accounts     *repository.AccountRepository
	items        *repository.ItemRepository
	products     *repository.ProductRepository
	exchanges    *repository.ExchangeRepository
	transactions *repository.TransactionRepository
	audit        *AuditService
	cache        *ProductCache
}

func NewRewardService(db *pgxpool.Pool, audit *AuditService, cache *ProductCache) *RewardService {
	return &RewardService{
		db:           db,
		accounts:     repository.NewAccountRepository(db),
		items:        repository.NewItemRepository(db),
		products:     repository.NewProductRepository(db),
		exchanges:    repository.NewExchangeRepository(db),
		transactions: repository.NewTransactionRepository(db),
		audit:        audit,
		cache:        cache,
	}
}

// ListProducts returns the catalog, optionally filtered by kind.
func (s *RewardService) ListProducts(ctx context.Context, kind domain.TransactionKind) ([]*domain.Product, error) {
	if kind != "" && !kind.Valid() {
		return nil, domain.ErrInvalidItem
	}
	if products, ok := s.cache.List(ctx, kind); ok {
		return products, nil
	}

	var (
		products []*domain.Product
		err      error
	)
	if kind == "" {
		products, err = s.products.List(ctx)
	} else {
		products, err = s.products.ListByKind(ctx, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	s.cache.StoreList(ctx, kind, products)
	return products, nil
}

func (s *RewardService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := s.cache.Product(ctx, id); ok {
		return p, nil
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	s.cache.StoreProduct(ctx, p)
	return p, nil
}

// Exchange buys quantity units of a PURCHASE product and grants a hairpin.
func (s *RewardService) Exchange(ctx context.Context, accountID, productID int64, quantity int) (*Receipt, error) {
	var r *Receipt
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, s.accounts, s.items, accountID)
		if err != nil {
			return err
		}
		p, err := s.products.GetForUpdate(ctx, tx, productID)
		if err != nil {
			return err
		}

		res, err := acct.Exchange(p, quantity)
		if err != nil {
			return err
		}
		if err := s.products.UpdateStockWithTx(ctx, tx, p.ID, p.Stock); err != nil {
			return err
		}

		r, err = s.settle(ctx, tx, acct, p, res, quantity, false, domain.TxExchange, domain.AuditActionExchange)
		if err != nil {
			return err
		}
		r.Message = fmt.Sprintf("Bought %d x %s and received %d strawberry hairpin.", quantity, p.Name, res.RewardAmount)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("exchange product %d: %w", productID, err)
	}

	s.cache.Invalidate(ctx, productID)
	recordPoints(domain.TxExchange, -r.TotalCost)
	logger.Info("product exchanged", "account_id", accountID, "product_id", productID, "quantity", quantity, "total_cost", r.TotalCost)
	return r, nil
}

// Donate gives amount points to a DONATION product and grants a rose.
func (s *RewardService) Donate(ctx context.Context, accountID, productID int64, amount int64) (*Receipt, error) {
	var r *Receipt
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, s.accounts, s.items, accountID)
		if err != nil {
			return err
		}
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		res, err := acct.Donate(p, amount)
		if err != nil {
			return err
		}

		r, err = s.settle(ctx, tx, acct, p, res, 1, true, domain.TxDonation, domain.AuditActionDonation)
		if err != nil {
			return err
		}
		r.Message = fmt.Sprintf("Donated %d points to %s and received %d rose.", amount, p.Name, res.RewardAmount)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("donate to product %d: %w", productID, err)
	}

	recordPoints(domain.TxDonation, -amount)
	logger.Info("donation made", "account_id", accountID, "product_id", productID, "amount", amount)
	return r, nil
}

// settle persists the account side of an exchange or donation and appends history, ledger and audit rows.
func (s *RewardService) settle(ctx context.Context, tx pgx.Tx, acct *domain.Account, p *domain.Product, res domain.ExchangeResult, quantity int, accepted bool, txType, action string) (*Receipt, error) {
	if err := s.accounts.UpdateWithTx(ctx, tx, acct); err != nil {
		return nil, err
	}
	if err := s.items.SaveWithTx(ctx, tx, acct.ID, domain.Inventory{res.RewardItem: acct.Items.Count(res.RewardItem)}); err != nil {
		return nil, err
	}

	e := &domain.Exchange{
		AccountID:   acct.ID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		TotalCost:   res.TotalCost,
		Kind:        p.Kind,
		Accepted:    accepted,
	}
	if err := s.exchanges.CreateWithTx(ctx, tx, e); err != nil {
		return nil, err
	}

	meta := map[string]interface{}{
		"product_id":  p.ID,
		"exchange_id": e.ID,
		"quantity":    quantity,
	}
	if err := s.transactions.CreateWithTx(ctx, tx, &domain.Transaction{
		AccountID: acct.ID,
		Type:      txType,
		Amount:    -res.TotalCost,
		Meta:      meta,
	}); err != nil {
		return nil, err
	}
	if err := s.audit.LogWithTx(ctx, tx, acct.ID, action, domain.AuditCategoryReward, meta); err != nil {
		return nil, err
	}

	return &Receipt{
		ExchangeID:      e.ID,
		ProductID:       p.ID,
		ProductName:     p.Name,
		Kind:            p.Kind,
		Quantity:        quantity,
		TotalCost:       res.TotalCost,
		RemainingPoints: acct.Points,
		RewardItem:      res.RewardItem,
		RewardAmount:    res.RewardAmount,
		TotalCosmetics:  acct.Items.Total(domain.CategoryCosmetic),
		ExchangedAt:     e.ExchangedAt,
	}, nil
}

// CompleteWatching grants three persimmons once per account.
func (s *RewardService) CompleteWatching(ctx context.Context, accountID int64) (*WatchReceipt, error) {
	var r *WatchReceipt
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, s.accounts, s.items, accountID)
		if err != nil {
			return err
		}
		if err := acct.CompleteWatching(); err != nil {
			return err
		}
		if err := s.accounts.UpdateWithTx(ctx, tx, acct); err != nil {
			return err
		}
		if err := s.items.SaveWithTx(ctx, tx, accountID, domain.Inventory{domain.WatchRewardItem: acct.Items.Count(domain.WatchRewardItem)}); err != nil {
			return err
		}
		if err := s.audit.LogWithTx(ctx, tx, accountID, domain.AuditActionWatchComplete, domain.AuditCategoryReward, map[string]interface{}{
			"reward_item":   domain.WatchRewardItem,
			"reward_amount": domain.WatchConsumableReward,
		}); err != nil {
			return err
		}

		r = &WatchReceipt{
			RewardItem:   domain.WatchRewardItem,
			RewardAmount: domain.WatchConsumableReward,
			Persimmons:   acct.Items.Count(domain.ItemPersimmon),
			GreenTeas:    acct.Items.Count(domain.ItemGreenTea),
			Message:      fmt.Sprintf("Watching complete! %d persimmons added.", domain.WatchConsumableReward),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete watching: %w", err)
	}
	return r, nil
}

// WatchStatus reports whether the account has already claimed the watch reward.
func (s *RewardService) WatchStatus(ctx context.Context, accountID int64) (bool, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("watch status: %w", err)
	}
	return acct.Watched, nil
}

func (s *RewardService) DonationHistory(ctx context.Context, accountID int64) ([]*domain.Exchange, error) {
	return s.exchanges.ListByAccountAndKind(ctx, accountID, domain.TransactionDonation, 0)
}

func (s *RewardService) ExchangeHistory(ctx context.Context, accountID int64) ([]*domain.Exchange, error) {
	return s.exchanges.ListByAccountAndKind(ctx, accountID, domain.TransactionPurchase, 0)
}

// History returns every exchange and donation of an account, newest first.
func (s *RewardService) History(ctx context.Context, accountID int64) ([]*domain.Exchange, error) {
	return s.exchanges.ListByAccount(ctx, accountID, 0)
}

// ToggleAccepted flips the accepted flag of one of the account's exchanges.
func (s *RewardService) ToggleAccepted(ctx context.Context, accountID, exchangeID int64) (*domain.Exchange, error) {
	e, err := s.exchanges.ToggleAccepted(ctx, accountID, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("toggle exchange %d: %w", exchangeID, err)
	}
	return e, nil
}
