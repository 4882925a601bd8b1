package integration

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	var names []string
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".sql") {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(migDir, name))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", name, err)
		}
	}
}

// connect returns a migrated pool, skipping the test when DATABASE_URL is unset.
func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

type fixture struct {
	db        *pgxpool.Pool
	now       time.Time
	audit     *service.AuditService
	auth      *service.AuthService
	character *service.CharacterService
	reward    *service.RewardService
	shop      *service.ShopService
	charge    *service.ChargeService
	inventory *service.InventoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := connect(t)

	f := &fixture{
		db:  db,
		now: time.Date(2026, 5, 1, 10, 0, 0, 0, time.FixedZone("KST", 9*3600)),
	}
	clock := func() time.Time { return f.now }

	f.audit = service.NewAuditService(db)
	f.auth = service.NewAuthService(db, f.audit)
	f.character = service.NewCharacterService(db, f.audit, clock)
	f.reward = service.NewRewardService(db, f.audit, nil)
	f.shop = service.NewShopService(db, f.audit)
	f.charge = service.NewChargeService(db, f.audit)
	f.inventory = service.NewInventoryService(db)
	return f
}

// signup creates a fresh account with a unique username.
func (f *fixture) signup(t *testing.T) *domain.Account {
	t.Helper()
	name := "it_" + uuid.NewString()[:8]
	acct, err := f.auth.Signup(context.Background(), name, "password1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	t.Cleanup(func() { _ = f.auth.Delete(context.Background(), acct.ID) })
	return acct
}

// product inserts a catalog entry and returns its id.
func (f *fixture) product(t *testing.T, kind domain.TransactionKind, cost int64, stock int) int64 {
	t.Helper()
	var id int64
	err := f.db.QueryRow(context.Background(),
		`INSERT INTO products (name, kind, point_cost, stock) VALUES ($1, $2, $3, $4) RETURNING id`,
		"it product "+uuid.NewString()[:8], string(kind), cost, stock,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}

func (f *fixture) fund(t *testing.T, accountID int64, pack domain.ChargeType) {
	t.Helper()
	if _, err := f.charge.Charge(context.Background(), accountID, pack); err != nil {
		t.Fatalf("charge: %v", err)
	}
}
