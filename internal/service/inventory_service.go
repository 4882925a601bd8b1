package service

import (
	"context"
	"fmt"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryEntry struct {
	ItemType    domain.ItemKind `json:"item_type"`
	DisplayName string          `json:"display_name"`
	Emoji       string          `json:"emoji"`
	Count       int             `json:"count"`
	Equipped    bool            `json:"equipped,omitempty"`
}

// InventoryView lists owned consumables and cosmetics with totals.
type InventoryView struct {
	AccountID        int64            `json:"account_id"`
	Username         string           `json:"username"`
	Consumables      []InventoryEntry `json:"consumables"`
	Cosmetics        []InventoryEntry `json:"cosmetics"`
	TotalConsumables int              `json:"total_consumables"`
	OwnedCosmetics   int              `json:"owned_cosmetics"`
	EquippedCount    int              `json:"equipped_count"`
}

type InventoryService struct {
	accounts   *repository.AccountRepository
	items      *repository.ItemRepository
	characters *repository.CharacterRepository
}

func NewInventoryService(db *pgxpool.Pool) *InventoryService {
	return &InventoryService{
		accounts:   repository.NewAccountRepository(db),
		items:      repository.NewItemRepository(db),
		characters: repository.NewCharacterRepository(db),
	}
}

func (s *InventoryService) Get(ctx context.Context, accountID int64) (*InventoryView, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	inv, err := s.items.Load(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	c, err := s.characters.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}

	view := BuildInventoryView(inv, c)
	view.AccountID = acct.ID
	view.Username = acct.Username
	return view, nil
}

// BuildInventoryView keeps consumables with a positive count and cosmetics the account owns.
func BuildInventoryView(inv domain.Inventory, c *domain.Character) *InventoryView {
	view := &InventoryView{
		Consumables: []InventoryEntry{},
		Cosmetics:   []InventoryEntry{},
	}
	for _, spec := range domain.ItemsByCategory("") {
		n := inv.Count(spec.Kind)
		if n <= 0 {
			continue
		}
		entry := InventoryEntry{
			ItemType:    spec.Kind,
			DisplayName: spec.DisplayName,
			Emoji:       spec.Emoji,
			Count:       n,
		}
		switch spec.Category {
		case domain.CategoryConsumption:
			view.Consumables = append(view.Consumables, entry)
			view.TotalConsumables += n
		case domain.CategoryCosmetic:
			entry.Equipped = c != nil && c.IsEquipped(spec.Kind)
			view.Cosmetics = append(view.Cosmetics, entry)
			view.OwnedCosmetics++
			if entry.Equipped {
				view.EquippedCount++
			}
		}
	}
	return view
}
