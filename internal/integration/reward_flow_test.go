package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"loyalty_app/internal/domain"
)

func TestExchangeAndDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acct := f.signup(t)
	f.fund(t, acct.ID, domain.Charge3000)

	purchase := f.product(t, domain.TransactionPurchase, 800, 5)
	donation := f.product(t, domain.TransactionDonation, 0, 999)

	r, err := f.reward.Exchange(ctx, acct.ID, purchase, 2)
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if r.TotalCost != 1600 || r.RemainingPoints != 1400 || r.RewardItem != domain.ItemStrawberryHairpin || r.TotalCosmetics != 1 {
		t.Fatalf("receipt = %+v", r)
	}

	scarce := f.product(t, domain.TransactionPurchase, 1, 1)
	if _, err := f.reward.Exchange(ctx, acct.ID, scarce, 2); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("over-stock error = %v", err)
	}
	if _, err := f.reward.Exchange(ctx, acct.ID, purchase, 2); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("over-budget error = %v", err)
	}
	if _, err := f.reward.Exchange(ctx, acct.ID, donation, 1); !errors.Is(err, domain.ErrInvalidItem) {
		t.Fatalf("exchange on donation product error = %v", err)
	}

	p, err := f.reward.GetProduct(ctx, purchase)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if p.Stock != 3 {
		t.Fatalf("stock = %d; want 3", p.Stock)
	}

	d, err := f.reward.Donate(ctx, acct.ID, donation, 400)
	if err != nil {
		t.Fatalf("donate: %v", err)
	}
	if d.RemainingPoints != 1000 || d.RewardItem != domain.ItemRose || d.Quantity != 1 {
		t.Fatalf("donation receipt = %+v", d)
	}

	donations, err := f.reward.DonationHistory(ctx, acct.ID)
	if err != nil || len(donations) != 1 || !donations[0].Accepted {
		t.Fatalf("donations = %+v, %v", donations, err)
	}
	exchanges, err := f.reward.ExchangeHistory(ctx, acct.ID)
	if err != nil || len(exchanges) != 1 || exchanges[0].Accepted {
		t.Fatalf("exchanges = %+v, %v", exchanges, err)
	}

	toggled, err := f.reward.ToggleAccepted(ctx, acct.ID, exchanges[0].ID)
	if err != nil || !toggled.Accepted {
		t.Fatalf("toggle = %+v, %v", toggled, err)
	}
	other := f.signup(t)
	if _, err := f.reward.ToggleAccepted(ctx, other.ID, exchanges[0].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("toggle by another account error = %v", err)
	}

	ledger, err := f.charge.Ledger(ctx, acct.ID, "", 10)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	var sum int64
	for _, tx := range ledger {
		sum += tx.Amount
	}
	if len(ledger) != 3 || sum != 1000 {
		t.Fatalf("ledger rows=%d sum=%d; want 3 rows summing to 1000", len(ledger), sum)
	}
}

func TestConcurrentExchangesRespectStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.product(t, domain.TransactionPurchase, 10, 3)

	const buyers = 8
	accounts := make([]int64, buyers)
	for i := range accounts {
		acct := f.signup(t)
		f.fund(t, acct.ID, domain.Charge100)
		accounts[i] = acct.ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, id := range accounts {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.reward.Exchange(ctx, id, product, 1)
			switch {
			case err == nil:
				mu.Lock()
				succeeded++
				mu.Unlock()
			case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrConflict):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	p, err := f.reward.GetProduct(ctx, product)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if succeeded+p.Stock != 3 || p.Stock < 0 {
		t.Fatalf("succeeded=%d stock=%d; stock was oversold", succeeded, p.Stock)
	}
}

func TestShopAndEquip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acct := f.signup(t)

	if _, err := f.shop.Purchase(ctx, acct.ID, domain.ItemCarCrown); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("broke purchase error = %v", err)
	}
	f.fund(t, acct.ID, domain.Charge500)

	for _, kind := range []domain.ItemKind{domain.ItemCarCrown, domain.ItemStrawberryHairpin, domain.ItemRose} {
		if _, err := f.shop.Purchase(ctx, acct.ID, kind); err != nil {
			t.Fatalf("buy %s: %v", kind, err)
		}
	}
	if _, err := f.shop.Purchase(ctx, acct.ID, domain.ItemKind("SWORD")); !errors.Is(err, domain.ErrInvalidItem) {
		t.Fatalf("unknown item error = %v", err)
	}

	if _, err := f.character.Equip(ctx, acct.ID, domain.ItemGongbangAhjima, true); !errors.Is(err, domain.ErrNotOwned) {
		t.Fatalf("equip unowned error = %v", err)
	}
	for _, kind := range []domain.ItemKind{domain.ItemStrawberryHairpin, domain.ItemRose, domain.ItemCarCrown} {
		if _, err := f.character.Equip(ctx, acct.ID, kind, true); err != nil {
			t.Fatalf("equip %s: %v", kind, err)
		}
	}

	snap, err := f.character.Get(ctx, acct.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if snap.Equipped[domain.ItemStrawberryHairpin] || !snap.Equipped[domain.ItemCarCrown] || !snap.Equipped[domain.ItemRose] {
		t.Fatalf("equipped = %v; want crown and rose", snap.Equipped)
	}

	inv, err := f.inventory.Get(ctx, acct.ID)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if inv.OwnedCosmetics != 3 || inv.EquippedCount != 2 {
		t.Fatalf("inventory = %+v", inv)
	}
}
