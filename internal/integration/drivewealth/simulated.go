package drivewealth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const (
	customerIDPrefix = "DW-CUST-"
	accountIDPrefix  = "DW-ACC-"
)

// Simulated fabricates plausible broker identifiers so the backend works
// without real credentials.
type Simulated struct{}

func (s *Simulated) CreateCustomer(ctx context.Context, userID int64, email string) (*Customer, error) {
	return &Customer{ID: customerIDPrefix + randomHex(20)}, nil
}

func (s *Simulated) CreateAccount(ctx context.Context, customerID, baseCurrency string) (*Account, error) {
	return &Account{
		ID:           accountIDPrefix + randomHex(20),
		BaseCurrency: strings.ToUpper(baseCurrency),
	}, nil
}

func randomHex(n int) string {
	b := make([]byte, (n+1)/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)[:n]
}

var _ Client = (*Simulated)(nil)
