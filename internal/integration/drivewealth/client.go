package drivewealth

import (
	"context"
	"errors"

	"github.com/orryin/orryin-backend/config"
)

// ErrNotImplemented is returned by the real client: the integration is
// intentionally unfinished and callers must surface 501 for it.
var ErrNotImplemented = errors.New("drivewealth real API not implemented")

// Customer is a broker-side customer record.
type Customer struct {
	ID string
}

// Account is a broker-side brokerage account.
type Account struct {
	ID           string
	BaseCurrency string
}

// Client provisions customers and accounts at the broker. Two
// implementations exist: Simulated fabricates plausible identifiers,
// RESTClient is the (unfinished) real path. Selection happens once at
// construction via DRIVEWEALTH_USE_MOCK.
type Client interface {
	CreateCustomer(ctx context.Context, userID int64, email string) (*Customer, error)
	CreateAccount(ctx context.Context, customerID, baseCurrency string) (*Account, error)
}

// NewClient picks the implementation for the configured mode.
func NewClient(cfg *config.Config) Client {
	if cfg.DriveWealthUseMock {
		return &Simulated{}
	}
	return &RESTClient{
		BaseURL:   cfg.DriveWealthBaseURL,
		AppKey:    cfg.DriveWealthAppKey,
		AppSecret: cfg.DriveWealthAppSecret,
	}
}
