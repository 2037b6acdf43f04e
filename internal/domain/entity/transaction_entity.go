package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types recorded by the service.
const (
	TxTypeFxSandbox = "fx_sandbox"
)

// Transaction is an append-only record of a payment or sandbox action.
type Transaction struct {
	ID        int64
	UserID    int64
	AccountID int64
	Type      string
	Amount    decimal.Decimal
	Currency  string
	CreatedAt time.Time
}
