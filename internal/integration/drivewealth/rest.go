package drivewealth

import (
	"context"
)

// RESTClient is the real DriveWealth integration. Both operations fail with
// ErrNotImplemented until the customer/account APIs are wired up; the
// credentials and base URL are already plumbed through so only the HTTP
// calls are missing.
type RESTClient struct {
	BaseURL   string
	AppKey    string
	AppSecret string
}

func (c *RESTClient) CreateCustomer(ctx context.Context, userID int64, email string) (*Customer, error) {
	return nil, ErrNotImplemented
}

func (c *RESTClient) CreateAccount(ctx context.Context, customerID, baseCurrency string) (*Account, error) {
	return nil, ErrNotImplemented
}

var _ Client = (*RESTClient)(nil)
