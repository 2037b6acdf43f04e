package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
	"github.com/orryin/orryin-backend/internal/integration/drivewealth"
)

// BrokerageService provisions broker-side customers and accounts.
type BrokerageService struct {
	Users       repository.UserRepository
	Brokerage   repository.BrokerageRepository
	DriveWealth drivewealth.Client
	Logger      *logrus.Logger
}

func NewBrokerageService(users repository.UserRepository, brokerage repository.BrokerageRepository, client drivewealth.Client, logger *logrus.Logger) *BrokerageService {
	return &BrokerageService{
		Users:       users,
		Brokerage:   brokerage,
		DriveWealth: client,
		Logger:      logger,
	}
}

// Onboard creates (or fetches) the brokerage account for a user. An existing
// (user, broker) row is returned unchanged with created=false: no second
// provider call, no duplicate row. Otherwise customer and account are
// provisioned sequentially and persisted with status created.
func (s *BrokerageService) Onboard(ctx context.Context, userID int64, baseCurrency string) (*entity.BrokerageAccount, bool, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, err
	}

	existing, err := s.Brokerage.Latest(ctx, userID, entity.BrokerDriveWealth)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	customer, err := s.DriveWealth.CreateCustomer(ctx, userID, user.Email)
	if err != nil {
		return nil, false, err
	}
	account, err := s.DriveWealth.CreateAccount(ctx, customer.ID, baseCurrency)
	if err != nil {
		return nil, false, err
	}

	b := &entity.BrokerageAccount{
		UserID:             userID,
		Broker:             entity.BrokerDriveWealth,
		ExternalCustomerID: customer.ID,
		ExternalAccountID:  account.ID,
		Status:             entity.BrokerageStatusCreated,
	}
	if err := s.Brokerage.Create(ctx, b); err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// ListAccounts returns all brokerage rows for a user, ascending by id.
func (s *BrokerageService) ListAccounts(ctx context.Context, userID int64) ([]entity.BrokerageAccount, error) {
	return s.Brokerage.ListByUser(ctx, userID)
}
