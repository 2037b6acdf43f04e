package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
)

// Flow step constants, matching the original system-test flow.
const (
	flowPassword       = "dev-mvp-flow"
	flowSourceCurrency = "BRL"
	flowTargetCurrency = "USD"
)

var flowSourceAmount = decimal.NewFromInt(100)

// FlowService runs the end-to-end diagnostic flow: throwaway user + account,
// then KYC, payments and brokerage in sequence. Each step's failure is
// captured in its own report section instead of aborting the rest; this is a
// diagnostic endpoint, not a production transaction.
type FlowService struct {
	Users     repository.UserRepository
	Accounts  repository.AccountRepository
	Kyc       *KycService
	Payments  *PaymentsService
	Brokerage *BrokerageService
	Logger    *logrus.Logger
}

func NewFlowService(users repository.UserRepository, accounts repository.AccountRepository, kyc *KycService, payments *PaymentsService, brokerage *BrokerageService, logger *logrus.Logger) *FlowService {
	return &FlowService{
		Users:     users,
		Accounts:  accounts,
		Kyc:       kyc,
		Payments:  payments,
		Brokerage: brokerage,
		Logger:    logger,
	}
}

// FlowUser and FlowAccount identify the throwaway fixtures.
type FlowUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type FlowAccount struct {
	ID       int64  `json:"id"`
	Currency string `json:"currency"`
}

// Per-step report sections. Error is nil on success.
type FlowKycStep struct {
	ApplicantID *string `json:"applicant_id"`
	Status      string  `json:"status"`
	Error       *string `json:"error"`
}

type FlowPaymentsStep struct {
	SourceCurrency        string           `json:"source_currency"`
	TargetCurrency        string           `json:"target_currency"`
	SourceAmount          decimal.Decimal  `json:"source_amount"`
	FxRate                *decimal.Decimal `json:"fx_rate"`
	EstimatedTargetAmount *decimal.Decimal `json:"estimated_target_amount"`
	Error                 *string          `json:"error"`
}

type FlowBrokerageStep struct {
	ExternalCustomerID *string `json:"external_customer_id"`
	ExternalAccountID  *string `json:"external_account_id"`
	Status             *string `json:"status"`
	Error              *string `json:"error"`
}

// FlowReport aggregates the step results into one structured response.
type FlowReport struct {
	User      FlowUser          `json:"user"`
	Account   FlowAccount       `json:"account"`
	Kyc       FlowKycStep       `json:"kyc"`
	Payments  FlowPaymentsStep  `json:"payments"`
	Brokerage FlowBrokerageStep `json:"brokerage"`
}

// Run executes the flow. Only fixture creation can fail the call as a whole;
// every provider-facing step degrades into its report section.
func (s *FlowService) Run(ctx context.Context) (*FlowReport, error) {
	user, account, err := s.createFixtures(ctx)
	if err != nil {
		return nil, err
	}

	report := &FlowReport{
		User:    FlowUser{ID: user.ID, Email: user.Email},
		Account: FlowAccount{ID: account.ID, Currency: account.Currency},
	}

	report.Kyc = s.runKycStep(ctx, user)
	report.Payments = s.runPaymentsStep(ctx, user, account)
	report.Brokerage = s.runBrokerageStep(ctx, user)

	return report, nil
}

func (s *FlowService) createFixtures(ctx context.Context) (*entity.User, *entity.Account, error) {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)

	user := &entity.User{
		Email:          fmt.Sprintf("mvp+%s@example.com", hex.EncodeToString(suffix)),
		HashedPassword: flowPassword,
		IsActive:       true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create flow user: %w", err)
	}

	account := &entity.Account{
		UserID:   user.ID,
		Currency: flowTargetCurrency,
		Balance:  decimal.Zero,
	}
	if err := s.Accounts.Create(ctx, account); err != nil {
		return nil, nil, fmt.Errorf("create flow account: %w", err)
	}
	return user, account, nil
}

func (s *FlowService) runKycStep(ctx context.Context, user *entity.User) FlowKycStep {
	view, err := s.Kyc.CreateApplicant(ctx, ApplicantInput{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: "Leon",
		LastName:  "Test",
		Country:   "BRA",
	})
	if err != nil {
		return FlowKycStep{Status: "error", Error: stepError("sumsub", err)}
	}
	return FlowKycStep{ApplicantID: view.ApplicantID, Status: view.Status}
}

func (s *FlowService) runPaymentsStep(ctx context.Context, user *entity.User, account *entity.Account) FlowPaymentsStep {
	step := FlowPaymentsStep{
		SourceCurrency: flowSourceCurrency,
		TargetCurrency: flowTargetCurrency,
		SourceAmount:   flowSourceAmount,
	}

	res, err := s.Payments.SandboxTransfer(ctx, TransferInput{
		UserID:         user.ID,
		AccountID:      account.ID,
		SourceCurrency: flowSourceCurrency,
		TargetCurrency: flowTargetCurrency,
		SourceAmount:   flowSourceAmount,
	})
	if err != nil {
		step.Error = stepError("wise", err)
		return step
	}
	step.FxRate = &res.FxRate
	step.EstimatedTargetAmount = &res.EstimatedTargetAmount
	return step
}

func (s *FlowService) runBrokerageStep(ctx context.Context, user *entity.User) FlowBrokerageStep {
	b, _, err := s.Brokerage.Onboard(ctx, user.ID, flowTargetCurrency)
	if err != nil {
		return FlowBrokerageStep{Error: stepError("drivewealth", err)}
	}
	return FlowBrokerageStep{
		ExternalCustomerID: &b.ExternalCustomerID,
		ExternalAccountID:  &b.ExternalAccountID,
		Status:             &b.Status,
	}
}

func stepError(provider string, err error) *string {
	var msg string
	if IsConfigError(err) {
		msg = err.Error()
	} else {
		msg = fmt.Sprintf("%s error: %v", provider, err)
	}
	return &msg
}
