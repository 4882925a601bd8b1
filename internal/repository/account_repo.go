package repository

import (
	"context"
	"errors"
	"time"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, username, password_hash, points, watched,
	game_count, last_game_date, pet_count, last_pet_date, feed_count, last_feed_date,
	last_bonus_date, created_at`

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByID returns the account without its inventory.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username))
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`, username,
	).Scan(&exists)
	return exists, err
}

// GetForUpdate loads and row-locks the account until tx ends.
func (r *AccountRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Account, error) {
	return scanAccount(tx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id))
}

// CreateWithTx inserts a new account and fills in its id and creation time.
func (r *AccountRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	return tx.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash, points)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		a.Username, a.PasswordHash, a.Points,
	).Scan(&a.ID, &a.CreatedAt)
}

// UpdateWithTx persists balance, watch flag and daily state.
func (r *AccountRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	game := a.Daily[domain.ActivityGame]
	pet := a.Daily[domain.ActivityPet]
	feed := a.Daily[domain.ActivityFeed]

	tag, err := tx.Exec(ctx,
		`UPDATE accounts SET
			points = $2, watched = $3,
			game_count = $4, last_game_date = $5,
			pet_count = $6, last_pet_date = $7,
			feed_count = $8, last_feed_date = $9,
			last_bonus_date = $10
		 WHERE id = $1`,
		a.ID, a.Points, a.Watched,
		game.Count, game.LastDate,
		pet.Count, pet.LastDate,
		feed.Count, feed.LastDate,
		a.LastBonusDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the account; character, items, exchanges and ledger rows cascade.
func (r *AccountRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a                            domain.Account
		gameCount, petCount, feedCnt int
		gameDate, petDate, feedDate  *time.Time
	)
	if err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.Points,
		&a.Watched,
		&gameCount, &gameDate,
		&petCount, &petDate,
		&feedCnt, &feedDate,
		&a.LastBonusDate,
		&a.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	a.Items = domain.Inventory{}
	a.Daily = map[domain.Activity]domain.DailyCounter{
		domain.ActivityGame: {Count: gameCount, LastDate: gameDate},
		domain.ActivityPet:  {Count: petCount, LastDate: petDate},
		domain.ActivityFeed: {Count: feedCnt, LastDate: feedDate},
	}
	return &a, nil
}
