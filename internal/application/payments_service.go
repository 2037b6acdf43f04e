package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
	"github.com/orryin/orryin-backend/pkg/helpers"
)

// WiseClient is the slice of the Wise client the payments service needs.
type WiseClient interface {
	GetRate(ctx context.Context, source, target string) (decimal.Decimal, error)
	CreateSandboxQuote(ctx context.Context, source, target string, amount decimal.Decimal) (map[string]any, error)
}

// PaymentsService exposes FX rate lookup and the sandbox transfer flow.
// No real money moves anywhere in here.
type PaymentsService struct {
	Users        repository.UserRepository
	Accounts     repository.AccountRepository
	Transactions repository.TransactionRepository
	Wise         WiseClient    // nil when the API key is missing
	Redis        *redis.Client // optional rate cache
	CacheTTL     time.Duration
	Logger       *logrus.Logger
}

func NewPaymentsService(users repository.UserRepository, accounts repository.AccountRepository, txs repository.TransactionRepository, wiseClient WiseClient, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *PaymentsService {
	return &PaymentsService{
		Users:        users,
		Accounts:     accounts,
		Transactions: txs,
		Wise:         wiseClient,
		Redis:        rdb,
		CacheTTL:     cacheTTL,
		Logger:       logger,
	}
}

// FxQuote is a rate lookup result, with amounts when requested.
type FxQuote struct {
	Source       string           `json:"source"`
	Target       string           `json:"target"`
	Rate         decimal.Decimal  `json:"rate"`
	SourceAmount *decimal.Decimal `json:"source_amount,omitempty"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
}

func rateCacheKey(source, target string) string {
	return "fx:rate:" + source + ":" + target
}

// rate returns the pair's rate, reading through the short-TTL Redis cache.
func (s *PaymentsService) rate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	if s.Wise == nil {
		return decimal.Decimal{}, &ConfigError{Msg: "wise api key is not configured"}
	}

	source = strings.ToUpper(source)
	target = strings.ToUpper(target)
	key := rateCacheKey(source, target)

	if s.Redis != nil {
		var cached decimal.Decimal
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	rate, err := s.Wise.GetRate(ctx, source, target)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, rate, s.CacheTTL); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("fx rate cache write failed")
		}
	}
	return rate, nil
}

// FxRate looks up the rate for a pair and, when amount is given, the target
// amount rounded to 2 decimal places (half-up).
func (s *PaymentsService) FxRate(ctx context.Context, source, target string, amount *decimal.Decimal) (*FxQuote, error) {
	rate, err := s.rate(ctx, source, target)
	if err != nil {
		return nil, err
	}

	q := &FxQuote{
		Source: strings.ToUpper(source),
		Target: strings.ToUpper(target),
		Rate:   rate,
	}
	if amount != nil {
		targetAmount := amount.Mul(rate).Round(2)
		q.SourceAmount = amount
		q.TargetAmount = &targetAmount
	}
	return q, nil
}

// TransferInput is the sandbox transfer payload.
type TransferInput struct {
	UserID         int64
	AccountID      int64
	SourceCurrency string
	TargetCurrency string
	SourceAmount   decimal.Decimal
}

// TransferResult is the persisted sandbox transfer with its quote snapshot.
type TransferResult struct {
	UserID                int64           `json:"user_id"`
	AccountID             int64           `json:"account_id"`
	SourceCurrency        string          `json:"source_currency"`
	TargetCurrency        string          `json:"target_currency"`
	SourceAmount          decimal.Decimal `json:"source_amount"`
	EstimatedTargetAmount decimal.Decimal `json:"estimated_target_amount"`
	FxRate                decimal.Decimal `json:"fx_rate"`
	WiseQuoteSnapshot     map[string]any  `json:"wise_quote_snapshot"`
}

// SandboxTransfer simulates an FX transfer: validates ownership, fetches the
// rate, snapshotes a non-binding quote (failures become an error marker, not
// fatal) and appends an fx_sandbox transaction.
func (s *PaymentsService) SandboxTransfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if _, err := s.Users.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.Accounts.GetForUser(ctx, in.AccountID, in.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	rate, err := s.rate(ctx, in.SourceCurrency, in.TargetCurrency)
	if err != nil {
		return nil, err
	}

	// Quote is optional; we still want a rate.
	quote, err := s.Wise.CreateSandboxQuote(ctx, in.SourceCurrency, in.TargetCurrency, in.SourceAmount)
	if err != nil {
		s.Logger.WithError(err).Warn("sandbox quote failed, continuing without snapshot")
		quote = map[string]any{"error": err.Error()}
	}

	tx := &entity.Transaction{
		UserID:    in.UserID,
		AccountID: in.AccountID,
		Type:      entity.TxTypeFxSandbox,
		Amount:    in.SourceAmount,
		Currency:  strings.ToUpper(in.SourceCurrency),
	}
	if err := s.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	return &TransferResult{
		UserID:                in.UserID,
		AccountID:             in.AccountID,
		SourceCurrency:        strings.ToUpper(in.SourceCurrency),
		TargetCurrency:        strings.ToUpper(in.TargetCurrency),
		SourceAmount:          in.SourceAmount,
		EstimatedTargetAmount: in.SourceAmount.Mul(rate).Round(2),
		FxRate:                rate,
		WiseQuoteSnapshot:     quote,
	}, nil
}
