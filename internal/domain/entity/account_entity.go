package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a cash balance held by a user. Balances are numeric(18,2)
// in the database and must never be handled as floats.
type Account struct {
	ID        int64
	UserID    int64
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
