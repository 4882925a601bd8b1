package domain

import "time"

// Transaction is a ledger row for a balance movement. Amount is signed.
type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	AccountID int64                  `db:"account_id" json:"account_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Ledger transaction types
const (
	TxCharge       = "charge"
	TxExchange     = "exchange"
	TxDonation     = "donation"
	TxShopPurchase = "shop_purchase"
)

// ValidTxType reports whether t names a ledger type.
func ValidTxType(t string) bool {
	switch t {
	case TxCharge, TxExchange, TxDonation, TxShopPurchase:
		return true
	}
	return false
}
