package repository

import (
	"context"
	"errors"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const characterColumns = `id, account_id, name, kind, level, experience, max_experience, equipped, created_at`

type CharacterRepository struct {
	db *pgxpool.Pool
}

func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, c *domain.Character) error {
	return tx.QueryRow(ctx,
		`INSERT INTO characters (account_id, name, kind, level, experience, max_experience, equipped)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		c.AccountID, c.Name, string(c.Kind), c.Level, c.Experience, c.MaxExperience, equippedStrings(c.Equipped),
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *CharacterRepository) GetByAccountID(ctx context.Context, accountID int64) (*domain.Character, error) {
	return scanCharacter(r.db.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE account_id = $1`, accountID))
}

// GetForUpdate loads and row-locks the character of an account.
func (r *CharacterRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.Character, error) {
	return scanCharacter(tx.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE account_id = $1 FOR UPDATE`, accountID))
}

func (r *CharacterRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, c *domain.Character) error {
	tag, err := tx.Exec(ctx,
		`UPDATE characters SET
			name = $2, kind = $3, level = $4, experience = $5, max_experience = $6, equipped = $7
		 WHERE id = $1`,
		c.ID, c.Name, string(c.Kind), c.Level, c.Experience, c.MaxExperience, equippedStrings(c.Equipped),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var (
		c        domain.Character
		kind     string
		equipped []string
	)
	if err := row.Scan(
		&c.ID,
		&c.AccountID,
		&c.Name,
		&kind,
		&c.Level,
		&c.Experience,
		&c.MaxExperience,
		&equipped,
		&c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	c.Kind = domain.CharacterKind(kind)
	c.Equipped = make([]domain.ItemKind, 0, len(equipped))
	for _, k := range equipped {
		c.Equipped = append(c.Equipped, domain.ItemKind(k))
	}
	return &c, nil
}

func equippedStrings(kinds []domain.ItemKind) []string {
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out
}
