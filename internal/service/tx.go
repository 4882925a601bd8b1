package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// lockTimeout bounds how long a request waits for another request's row lock.
const lockTimeout = "5s"

// Postgres error codes that mean the request lost a race and may be retried.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
)

// Clock returns the current time. Services derive calendar dates from it.
type Clock func() time.Time

// ZoneClock returns a clock reporting wall time in loc.
func ZoneClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// inTx runs fn in one transaction and commits when it returns nil.
func inTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapDBError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return mapDBError(err)
	}
	if err := fn(tx); err != nil {
		return mapDBError(err)
	}
	return mapDBError(tx.Commit(ctx))
}

// mapDBError turns contention and constraint failures into domain errors.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return fmt.Errorf("%w (%s)", domain.ErrConflict, pgErr.Code)
	case pgUniqueViolation:
		if pgErr.ConstraintName == "accounts_username_key" {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("%w (%s)", domain.ErrConflict, pgErr.ConstraintName)
	case pgCheckViolation:
		switch pgErr.ConstraintName {
		case "accounts_points_check":
			return domain.ErrInsufficientFunds
		case "products_stock_check":
			return domain.ErrInsufficientStock
		}
	}
	return err
}

// lockAccount row-locks an account and loads its inventory.
func lockAccount(ctx context.Context, tx pgx.Tx, accounts accountLocker, items itemLoader, accountID int64) (*domain.Account, error) {
	acct, err := accounts.GetForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	inv, err := items.LoadWithTx(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	acct.Items = inv
	return acct, nil
}

type accountLocker interface {
	GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Account, error)
}

type itemLoader interface {
	LoadWithTx(ctx context.Context, tx pgx.Tx, accountID int64) (domain.Inventory, error)
}
