package domain

import "time"

// Account is a registered user with a point balance, an inventory and daily activity state.
type Account struct {
	ID            int64                     `db:"id" json:"id"`
	Username      string                    `db:"username" json:"username"`
	PasswordHash  string                    `db:"password_hash" json:"-"`
	Points        int64                     `db:"points" json:"points"`
	Watched       bool                      `db:"watched" json:"watched"`
	Items         Inventory                 `json:"items"`
	Daily         map[Activity]DailyCounter `json:"daily"`
	LastBonusDate *time.Time                `db:"last_bonus_date" json:"last_bonus_date,omitempty"`
	CreatedAt     time.Time                 `db:"created_at" json:"created_at"`
}

// MaxExchangeQuantity caps the units bought in a single exchange.
const MaxExchangeQuantity = 1000

// Reward amounts granted by the exchange engine.
const (
	PurchaseCosmeticReward = 1
	DonationCosmeticReward = 1
	WatchConsumableReward  = 3

	PurchaseRewardItem = ItemStrawberryHairpin
	DonationRewardItem = ItemRose
	WatchRewardItem    = ItemPersimmon
)

// NewAccount returns an empty account for username.
func NewAccount(username, passwordHash string) *Account {
	return &Account{
		Username:     username,
		PasswordHash: passwordHash,
		Items:        Inventory{},
		Daily:        map[Activity]DailyCounter{},
	}
}

func (a *Account) ensureItems() {
	if a.Items == nil {
		a.Items = Inventory{}
	}
}

func (a *Account) ensureDaily() {
	if a.Daily == nil {
		a.Daily = map[Activity]DailyCounter{}
	}
}

// Debit removes amount points, failing without change when the balance is short.
func (a *Account) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.Points < amount {
		return ErrInsufficientFunds
	}
	a.Points -= amount
	return nil
}

// Credit adds amount points.
func (a *Account) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.Points += amount
	return nil
}

// Grant adds n units of kind to the inventory.
func (a *Account) Grant(kind ItemKind, n int) {
	a.ensureItems()
	a.Items.Add(kind, n)
}

// ExchangeResult is the outcome of a purchase or donation.
type ExchangeResult struct {
	TotalCost    int64
	RewardItem   ItemKind
	RewardAmount int
}

// Exchange buys quantity units of p. All checks run before any mutation, so a
// failed exchange leaves both the account and the product unchanged.
func (a *Account) Exchange(p *Product, quantity int) (ExchangeResult, error) {
	if quantity <= 0 || quantity > MaxExchangeQuantity {
		return ExchangeResult{}, ErrInvalidAmount
	}
	if p.Kind != TransactionPurchase {
		return ExchangeResult{}, ErrInvalidItem
	}
	// compare by division so cost*quantity cannot overflow
	if p.PointCost > 0 && int64(quantity) > a.Points/p.PointCost {
		return ExchangeResult{}, ErrInsufficientFunds
	}
	total := p.PointCost * int64(quantity)
	if p.Stock < quantity {
		return ExchangeResult{}, ErrInsufficientStock
	}

	a.Points -= total
	p.Stock -= quantity
	a.Grant(PurchaseRewardItem, PurchaseCosmeticReward)
	return ExchangeResult{TotalCost: total, RewardItem: PurchaseRewardItem, RewardAmount: PurchaseCosmeticReward}, nil
}

// Donate gives amount points to a donation product. Stock is not consulted.
func (a *Account) Donate(p *Product, amount int64) (ExchangeResult, error) {
	if amount <= 0 {
		return ExchangeResult{}, ErrInvalidAmount
	}
	if p.Kind != TransactionDonation {
		return ExchangeResult{}, ErrInvalidItem
	}
	if err := a.Debit(amount); err != nil {
		return ExchangeResult{}, err
	}
	a.Grant(DonationRewardItem, DonationCosmeticReward)
	return ExchangeResult{TotalCost: amount, RewardItem: DonationRewardItem, RewardAmount: DonationCosmeticReward}, nil
}

// CompleteWatching grants the one-time watch reward.
func (a *Account) CompleteWatching() error {
	if a.Watched {
		return ErrAlreadyCompleted
	}
	a.Watched = true
	a.Grant(WatchRewardItem, WatchConsumableReward)
	return nil
}

// BuyItem buys a single unit of a shop item.
func (a *Account) BuyItem(kind ItemKind) (ItemSpec, error) {
	spec, err := LookupItem(kind)
	if err != nil {
		return ItemSpec{}, err
	}
	if err := a.Debit(spec.Price); err != nil {
		return ItemSpec{}, err
	}
	a.Grant(kind, 1)
	return spec, nil
}

// PickConsumable returns the consumable a feed would use: the one with the
// larger count, persimmon on ties.
func (a *Account) PickConsumable() (ItemKind, error) {
	persimmon := a.Items.Count(ItemPersimmon)
	greenTea := a.Items.Count(ItemGreenTea)
	switch {
	case persimmon == 0 && greenTea == 0:
		return "", ErrNoConsumable
	case persimmon >= greenTea:
		return ItemPersimmon, nil
	default:
		return ItemGreenTea, nil
	}
}

// Feed consumes one consumable and one feed unit for today. Nothing changes
// when either check fails.
func (a *Account) Feed(today time.Time) (ItemKind, int, error) {
	if !a.CanConsume(ActivityFeed, today) {
		return "", 0, ErrDailyLimitExceeded
	}
	kind, err := a.PickConsumable()
	if err != nil {
		return "", 0, err
	}
	remaining, err := a.TryConsume(ActivityFeed, today)
	if err != nil {
		return "", 0, err
	}
	a.Items.Add(kind, -1)
	return kind, remaining, nil
}
