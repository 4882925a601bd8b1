package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"loyalty_app/internal/db"
	"loyalty_app/internal/domain"
	"loyalty_app/internal/logger"
	"loyalty_app/internal/repository"
	"loyalty_app/internal/service"

	"github.com/joho/godotenv"
)

var products = []*domain.Product{
	{Name: "김해 대저토마토 선물세트", Kind: domain.TransactionPurchase, PointCost: 15000, Stock: 30, ImageURL: "https://cdn.example.com/gimhae_tomato_set.jpg"},
	{Name: "김해 봉하마을 딸기잼", Kind: domain.TransactionPurchase, PointCost: 8000, Stock: 50, ImageURL: "https://cdn.example.com/gimhae_strawberry_jam.jpg"},
	{Name: "김해 분성산 꿀 세트", Kind: domain.TransactionPurchase, PointCost: 25000, Stock: 20, ImageURL: "https://cdn.example.com/gimhae_honey_set.jpg"},
	{Name: "김해 전통 누룩 막걸리", Kind: domain.TransactionPurchase, PointCost: 12000, Stock: 40, ImageURL: "https://cdn.example.com/gimhae_makgeolli.jpg"},
	{Name: "김해 봉하마을 쌀 5kg", Kind: domain.TransactionPurchase, PointCost: 18000, Stock: 25, ImageURL: "https://cdn.example.com/gimhae_rice_5kg.jpg"},

	// donation targets: the donor chooses the amount and stock is not consumed
	{Name: "김해시 독거노인 급식 지원", Kind: domain.TransactionDonation, Stock: 999, ImageURL: "https://cdn.example.com/gimhae_elderly_support.jpg"},
	{Name: "김해 유기동물 보호센터 후원", Kind: domain.TransactionDonation, Stock: 999, ImageURL: "https://cdn.example.com/gimhae_animal_shelter.jpg"},
	{Name: "김해시 아동복지시설 지원", Kind: domain.TransactionDonation, Stock: 999, ImageURL: "https://cdn.example.com/gimhae_children_welfare.jpg"},
	{Name: "김해 환경보호 활동 후원", Kind: domain.TransactionDonation, Stock: 999, ImageURL: "https://cdn.example.com/gimhae_environment.jpg"},
	{Name: "김해시 저소득층 학습지원 기금", Kind: domain.TransactionDonation, Stock: 999, ImageURL: "https://cdn.example.com/gimhae_education_support.jpg"},
}

var demoAccounts = []string{"test123", "user456", "demo789"}

func main() {
	_ = godotenv.Load()

	charge := flag.String("charge", "", "point pack credited to each new demo account (e.g. COIN_3000)")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()
	ctx := context.Background()

	productRepo := repository.NewProductRepository(pool)
	n, err := productRepo.Count(ctx)
	if err != nil {
		logger.Fatal("count products", "error", err)
	}
	if n == 0 {
		inserted, err := productRepo.CreateMany(ctx, products)
		if err != nil {
			logger.Fatal("seed products", "error", err)
		}
		logger.Info("products seeded", "count", inserted)
	} else {
		logger.Info("products already present, skipping", "count", n)
	}

	audit := service.NewAuditService(pool)
	auth := service.NewAuthService(pool, audit)
	charges := service.NewChargeService(pool, audit)

	// demo accounts use their username as password
	for _, name := range demoAccounts {
		acct, err := auth.Signup(ctx, name, name)
		if errors.Is(err, domain.ErrUsernameTaken) {
			logger.Info("demo account exists", "username", name)
			continue
		}
		if err != nil {
			logger.Fatal("create demo account", "username", name, "error", err)
		}

		if *charge != "" {
			if _, err := charges.Charge(ctx, acct.ID, domain.ChargeType(*charge)); err != nil {
				logger.Fatal("charge demo account", "username", name, "error", err)
			}
		}
		logger.Info("demo account created", "username", name, "account_id", acct.ID)
	}
}
