package domain

import "errors"

// Business rule violations. Services wrap these with context; callers match
// them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNoConsumable       = errors.New("no consumable item left")
	ErrAlreadyCompleted   = errors.New("already completed")
	ErrInvalidItem        = errors.New("invalid item for this operation")
	ErrNotOwned           = errors.New("item not owned")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrConflict           = errors.New("concurrent update, retry the request")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
