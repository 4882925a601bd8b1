package domain

import "time"

// TransactionKind classifies products and exchange records.
type TransactionKind string

const (
	TransactionPurchase TransactionKind = "PURCHASE"
	TransactionDonation TransactionKind = "DONATION"
)

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	return k == TransactionPurchase || k == TransactionDonation
}

// Product is a catalog entry that can be bought with points or donated to.
type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Kind      TransactionKind `db:"kind" json:"kind"`
	PointCost int64           `db:"point_cost" json:"point_cost"`
	Stock     int             `db:"stock" json:"stock"`
	ImageURL  string          `db:"image_url" json:"image_url,omitempty"`
}

// Exchange is an append-only history row of a purchase or donation.
type Exchange struct {
	ID          int64           `db:"id" json:"id"`
	AccountID   int64           `db:"account_id" json:"account_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `db:"quantity" json:"quantity"`
	TotalCost   int64           `db:"total_cost" json:"total_cost"`
	Kind        TransactionKind `db:"kind" json:"kind"`
	Accepted    bool            `db:"accepted" json:"accepted"`
	ExchangedAt time.Time       `db:"exchanged_at" json:"exchanged_at"`
}
