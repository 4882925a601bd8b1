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

// ActivityResult is the outcome of one game, pet or feed.
type ActivityResult struct {
	Activity         domain.Activity  `json:"activity"`
	DailyCount       int              `json:"daily_count"`
	Remaining        int              `json:"remaining"`
	ExperienceGained int64            `json:"experience_gained"`
	Bonus            int64            `json:"bonus"`
	LevelsGained     int              `json:"levels_gained"`
	Evolved          bool             `json:"evolved"`
	ConsumedItem     domain.ItemKind  `json:"consumed_item,omitempty"`
	Character        domain.Snapshot  `json:"character"`
	Inventory        domain.Inventory `json:"inventory,omitempty"`
}

// RemainingView reports how many units of each activity are left today.
type RemainingView struct {
	Games          int  `json:"games"`
	Pets           int  `json:"pets"`
	Feeds          int  `json:"feeds"`
	BonusAvailable bool `json:"bonus_available"`
}

// CharacterService runs the daily activities and the equip flow.
type CharacterService struct {
	db         *pgxpool.Pool
	accounts   *repository.AccountRepository
	items      *repository.ItemRepository
	characters *repository.CharacterRepository
	audit      *AuditService
	clock      Clock
}

func NewCharacterService(db *pgxpool.Pool, audit *AuditService, clock Clock) *CharacterService {
	return &CharacterService{
		db:         db,
		accounts:   repository.NewAccountRepository(db),
		items:      repository.NewItemRepository(db),
		characters: repository.NewCharacterRepository(db),
		audit:      audit,
		clock:      clock,
	}
}

// Get returns the character snapshot of an account.
func (s *CharacterService) Get(ctx context.Context, accountID int64) (*domain.Snapshot, error) {
	c, err := s.characters.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}
	snap := c.Snapshot()
	return &snap, nil
}

// Remaining reports today's remaining activity units.
func (s *CharacterService) Remaining(ctx context.Context, accountID int64) (*RemainingView, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	today := s.clock()
	return &RemainingView{
		Games:          acct.Remaining(domain.ActivityGame, today),
		Pets:           acct.Remaining(domain.ActivityPet, today),
		Feeds:          acct.Remaining(domain.ActivityFeed, today),
		BonusAvailable: !domain.SameDate(acct.LastBonusDate, today),
	}, nil
}

// CompleteGame records a finished game: 50 experience, 20 more on the last game of the day.
func (s *CharacterService) CompleteGame(ctx context.Context, accountID int64) (*ActivityResult, error) {
	return s.perform(ctx, accountID, domain.ActivityGame)
}

// Pet grants 20 experience.
func (s *CharacterService) Pet(ctx context.Context, accountID int64) (*ActivityResult, error) {
	return s.perform(ctx, accountID, domain.ActivityPet)
}

// Feed consumes one persimmon or green tea and grants 20 experience.
func (s *CharacterService) Feed(ctx context.Context, accountID int64) (*ActivityResult, error) {
	return s.perform(ctx, accountID, domain.ActivityFeed)
}

func (s *CharacterService) perform(ctx context.Context, accountID int64, kind domain.Activity) (*ActivityResult, error) {
	today := s.clock()
	res := &ActivityResult{Activity: kind}

	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, s.accounts, s.items, accountID)
		if err != nil {
			return err
		}

		var gained int64
		switch kind {
		case domain.ActivityGame:
			if res.Remaining, err = acct.TryConsume(kind, today); err != nil {
				return err
			}
			gained = domain.GameExperience
			if res.Remaining == 0 {
				gained += domain.GameFinalBonus
			}
		case domain.ActivityPet:
			if res.Remaining, err = acct.TryConsume(kind, today); err != nil {
				return err
			}
			gained = domain.PetExperience
		case domain.ActivityFeed:
			if res.ConsumedItem, res.Remaining, err = acct.Feed(today); err != nil {
				return err
			}
			if err := s.items.SaveWithTx(ctx, tx, accountID, domain.Inventory{res.ConsumedItem: acct.Items.Count(res.ConsumedItem)}); err != nil {
				return err
			}
			gained = domain.FeedExperience
			res.Inventory = consumables(acct.Items)
		default:
			return domain.ErrInvalidItem
		}

		res.DailyCount = acct.DailyCount(kind, today)
		res.Bonus = acct.CheckAllComplete(today)
		if err := s.accounts.UpdateWithTx(ctx, tx, acct); err != nil {
			return err
		}

		c, err := s.characters.GetForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		p, err := gainExperience(c, gained)
		if err != nil {
			return err
		}
		if res.Bonus > 0 {
			bp, err := gainExperience(c, res.Bonus)
			if err != nil {
				return err
			}
			p.LevelsGained += bp.LevelsGained
			p.Evolved = p.Evolved || bp.Evolved
		}
		if err := s.characters.UpdateWithTx(ctx, tx, c); err != nil {
			return err
		}
		if err := s.audit.LogProgress(ctx, tx, c, p, res.Bonus); err != nil {
			return err
		}

		res.ExperienceGained = gained
		res.LevelsGained = p.LevelsGained
		res.Evolved = p.Evolved
		res.Character = c.Snapshot()
		return nil
	})
	if err != nil {
		ActivitiesTotal.WithLabelValues(string(kind), "rejected").Inc()
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	ActivitiesTotal.WithLabelValues(string(kind), "ok").Inc()
	log := logger.WithContext(ctx)
	LevelUpsTotal.Add(float64(res.LevelsGained))
	if res.Evolved {
		EvolutionsTotal.Inc()
		log.Info("character evolved", "kind", res.Character.Kind)
	}
	if res.LevelsGained > 0 {
		log.Info("character leveled up", "level", res.Character.Level, "levels_gained", res.LevelsGained)
	}
	if res.Bonus > 0 {
		BonusesTotal.Inc()
		log.Info("daily bonus granted", "bonus", res.Bonus)
	}
	return res, nil
}

// Equip wears (equip=true) or removes a cosmetic the account owns.
func (s *CharacterService) Equip(ctx context.Context, accountID int64, kind domain.ItemKind, equip bool) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, s.accounts, s.items, accountID)
		if err != nil {
			return err
		}
		c, err := s.characters.GetForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if err := c.SetEquipped(acct.Items, kind, equip); err != nil {
			return err
		}
		if err := s.characters.UpdateWithTx(ctx, tx, c); err != nil {
			return err
		}

		action := domain.AuditActionEquip
		if !equip {
			action = domain.AuditActionUnequip
		}
		if err := s.audit.LogWithTx(ctx, tx, accountID, action, domain.AuditCategoryCharacter, map[string]interface{}{
			"item":     kind,
			"equipped": c.Equipped,
		}); err != nil {
			return err
		}
		snap = c.Snapshot()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("equip %s: %w", kind, err)
	}
	return &snap, nil
}

// gainExperience applies a non-negative experience gain.
func gainExperience(c *domain.Character, amount int64) (domain.Progress, error) {
	if amount < 0 {
		return domain.Progress{}, domain.ErrInvalidAmount
	}
	return c.AddExperience(amount), nil
}

func consumables(inv domain.Inventory) domain.Inventory {
	out := domain.Inventory{}
	for _, spec := range domain.ItemsByCategory(domain.CategoryConsumption) {
		out[spec.Kind] = inv.Count(spec.Kind)
	}
	return out
}
