package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"loyalty_app/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"serialization", &pgconn.PgError{Code: "40001"}, domain.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrConflict},
		{"lock timeout", fmt.Errorf("update: %w", &pgconn.PgError{Code: "55P03"}), domain.ErrConflict},
		{"username", &pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"}, domain.ErrUsernameTaken},
		{"points check", &pgconn.PgError{Code: "23514", ConstraintName: "accounts_points_check"}, domain.ErrInsufficientFunds},
		{"stock check", &pgconn.PgError{Code: "23514", ConstraintName: "products_stock_check"}, domain.ErrInsufficientStock},
		{"domain passthrough", domain.ErrDailyLimitExceeded, domain.ErrDailyLimitExceeded},
	}
	for _, tc := range cases {
		if got := mapDBError(tc.err); !errors.Is(got, tc.want) {
			t.Fatalf("%s: got %v; want %v", tc.name, got, tc.want)
		}
	}

	if mapDBError(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	other := &pgconn.PgError{Code: "42P01"}
	if got := mapDBError(other); got != other {
		t.Fatalf("unrelated pg error should pass through, got %v", got)
	}
}

func TestZoneClock(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	if got := ZoneClock(loc)().Location(); got != loc {
		t.Fatalf("location = %v; want KST", got)
	}
}
