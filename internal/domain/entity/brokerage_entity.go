package entity

import (
	"time"
)

const (
	BrokerDriveWealth = "drivewealth"

	BrokerageStatusCreated = "created"
)

// BrokerageAccount links a user to an account on the broker side.
// The latest row per (user, broker) is the one selected by descending id.
type BrokerageAccount struct {
	ID                 int64
	UserID             int64
	Broker             string
	ExternalCustomerID string
	ExternalAccountID  string
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
