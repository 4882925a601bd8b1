package domain

import "time"

// AuditLog represents an audit log entry for tracking important actions
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	AccountID int64                  `db:"account_id" json:"account_id"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	UserAgent string                 `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit action categories
const (
	AuditCategoryAuth      = "auth"
	AuditCategoryCharacter = "character"
	AuditCategoryReward    = "reward"
	AuditCategoryBalance   = "balance"
)

// Audit actions
const (
	// Auth actions
	AuditActionSignup        = "signup"
	AuditActionLogin         = "login"
	AuditActionLogout        = "logout"
	AuditActionDeleteAccount = "delete_account"

	// Character actions
	AuditActionLevelUp          = "level_up"
	AuditActionEvolve           = "evolve"
	AuditActionAllCompleteBonus = "all_complete_bonus"
	AuditActionEquip            = "equip"
	AuditActionUnequip          = "unequip"

	// Reward actions
	AuditActionExchange      = "exchange"
	AuditActionDonation      = "donation"
	AuditActionWatchComplete = "watch_complete"
	AuditActionShopPurchase  = "shop_purchase"

	// Balance actions
	AuditActionCharge = "charge"
)
