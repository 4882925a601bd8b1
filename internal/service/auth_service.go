package service

import (
	"context"
	"errors"
	"fmt"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/logger"
	"loyalty_app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Profile is the account summary returned by /me.
type Profile struct {
	ID        int64            `json:"id"`
	Username  string           `json:"username"`
	Points    int64            `json:"points"`
	Watched   bool             `json:"watched"`
	Items     domain.Inventory `json:"items"`
	Character domain.Snapshot  `json:"character"`
}

// AuthService registers accounts and verifies credentials.
type AuthService struct {
	db         *pgxpool.Pool
	accounts   *repository.AccountRepository
	items      *repository.ItemRepository
	characters *repository.CharacterRepository
	audit      *AuditService
	cost       int
}

func NewAuthService(db *pgxpool.Pool, audit *AuditService) *AuthService {
	return &AuthService{
		db:         db,
		accounts:   repository.NewAccountRepository(db),
		items:      repository.NewItemRepository(db),
		characters: repository.NewCharacterRepository(db),
		audit:      audit,
		cost:       bcrypt.DefaultCost,
	}
}

// Signup creates the account and its starting character in one transaction.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.Account, error) {
	exists, err := s.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := domain.NewAccount(username, string(hash))
	err = inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.accounts.CreateWithTx(ctx, tx, acct); err != nil {
			return err
		}
		if err := s.characters.CreateWithTx(ctx, tx, domain.NewCharacter(acct.ID)); err != nil {
			return err
		}
		return s.audit.LogWithTx(ctx, tx, acct.ID, domain.AuditActionSignup, domain.AuditCategoryAuth, map[string]interface{}{
			"username": username,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	logger.Info("account created", "account_id", acct.ID, "username", username)
	return acct, nil
}

// Login checks the password and returns the account. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return acct, nil
}

// Profile returns the account with its inventory and character.
func (s *AuthService) Profile(ctx context.Context, accountID int64) (*Profile, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	inv, err := s.items.Load(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	c, err := s.characters.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &Profile{
		ID:        acct.ID,
		Username:  acct.Username,
		Points:    acct.Points,
		Watched:   acct.Watched,
		Items:     inv,
		Character: c.Snapshot(),
	}, nil
}

// Delete removes the account and everything it owns.
func (s *AuthService) Delete(ctx context.Context, accountID int64) error {
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		acct, err := s.accounts.GetForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if err := s.audit.LogWithTx(ctx, tx, accountID, domain.AuditActionDeleteAccount, domain.AuditCategoryAuth, map[string]interface{}{
			"username": acct.Username,
		}); err != nil {
			return err
		}
		return s.accounts.Delete(ctx, tx, accountID)
	})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	logger.Info("account deleted", "account_id", accountID)
	return nil
}
