package application_test

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
	"github.com/orryin/orryin-backend/internal/integration/drivewealth"
	"github.com/orryin/orryin-backend/internal/integration/sumsub"
	"github.com/orryin/orryin-backend/pkg/mailer"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// In-memory repositories. They mimic the Postgres implementations closely
// enough for service-level behavior: serial ids, unique constraints where
// the schema has them, ErrNotFound when no row matches.

type memUserRepo struct {
	nextID int64
	users  map[int64]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*entity.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) List(ctx context.Context, limit int) ([]entity.User, error) {
	out := make([]entity.User, 0, len(m.users))
	for id := int64(1); id <= m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memUserRepo) SearchByEmail(ctx context.Context, q string, limit int) ([]entity.User, error) {
	out := []entity.User{}
	for id := int64(1); id <= m.nextID; id++ {
		u, ok := m.users[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(u.Email), strings.ToLower(q)) {
			out = append(out, *u)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type memAccountRepo struct {
	nextID int64
	byID   map[int64]*entity.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{byID: map[int64]*entity.Account{}}
}

func (m *memAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	m.nextID++
	a.ID = m.nextID
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memAccountRepo) GetForUser(ctx context.Context, accountID, userID int64) (*entity.Account, error) {
	a, ok := m.byID[accountID]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

type memTxRepo struct {
	nextID int64
	rows   []entity.Transaction
}

func (m *memTxRepo) Create(ctx context.Context, t *entity.Transaction) error {
	m.nextID++
	t.ID = m.nextID
	m.rows = append(m.rows, *t)
	return nil
}

type memKycRepo struct {
	nextID int64
	byUser map[int64]*entity.KycStatus
}

func newMemKycRepo() *memKycRepo {
	return &memKycRepo{byUser: map[int64]*entity.KycStatus{}}
}

func (m *memKycRepo) GetByUserID(ctx context.Context, userID int64) (*entity.KycStatus, error) {
	k, ok := m.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *k
	return &cp, nil
}

func (m *memKycRepo) GetByApplicantID(ctx context.Context, applicantID string) (*entity.KycStatus, error) {
	for _, k := range m.byUser {
		if k.SumsubApplicantID != nil && *k.SumsubApplicantID == applicantID {
			cp := *k
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memKycRepo) Upsert(ctx context.Context, k *entity.KycStatus) error {
	existing, ok := m.byUser[k.UserID]
	if !ok {
		m.nextID++
		k.ID = m.nextID
		cp := *k
		m.byUser[k.UserID] = &cp
		return nil
	}
	existing.ExternalUserID = k.ExternalUserID
	existing.SumsubApplicantID = k.SumsubApplicantID
	existing.Status = k.Status
	k.ID = existing.ID
	return nil
}

func (m *memKycRepo) UpdateReview(ctx context.Context, applicantID, status string, reviewResult *string) (*entity.KycStatus, error) {
	for _, k := range m.byUser {
		if k.SumsubApplicantID != nil && *k.SumsubApplicantID == applicantID {
			k.Status = status
			if reviewResult != nil {
				k.ReviewResult = reviewResult
			}
			cp := *k
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memBrokerageRepo struct {
	nextID int64
	rows   []entity.BrokerageAccount
}

func (m *memBrokerageRepo) Create(ctx context.Context, b *entity.BrokerageAccount) error {
	m.nextID++
	b.ID = m.nextID
	m.rows = append(m.rows, *b)
	return nil
}

func (m *memBrokerageRepo) Latest(ctx context.Context, userID int64, broker string) (*entity.BrokerageAccount, error) {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID && m.rows[i].Broker == broker {
			cp := m.rows[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memBrokerageRepo) ListByUser(ctx context.Context, userID int64) ([]entity.BrokerageAccount, error) {
	out := []entity.BrokerageAccount{}
	for _, b := range m.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Provider fakes.

type fakeSumsub struct {
	calls       int
	applicantID string
	err         error
}

func (f *fakeSumsub) CreateApplicant(ctx context.Context, externalUserID string, payload sumsub.ApplicantRequest) (*sumsub.Applicant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &sumsub.Applicant{ID: f.applicantID}, nil
}

type fakeWise struct {
	rate       decimal.Decimal
	rateCalls  int
	rateErr    error
	quote      map[string]any
	quoteCalls int
	quoteErr   error
}

func (f *fakeWise) GetRate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	f.rateCalls++
	if f.rateErr != nil {
		return decimal.Decimal{}, f.rateErr
	}
	return f.rate, nil
}

func (f *fakeWise) CreateSandboxQuote(ctx context.Context, source, target string, amount decimal.Decimal) (map[string]any, error) {
	f.quoteCalls++
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	if f.quote != nil {
		return f.quote, nil
	}
	return map[string]any{"id": "q-fake"}, nil
}

type countingBroker struct {
	inner         drivewealth.Client
	customerCalls int
	accountCalls  int
}

func (c *countingBroker) CreateCustomer(ctx context.Context, userID int64, email string) (*drivewealth.Customer, error) {
	c.customerCalls++
	return c.inner.CreateCustomer(ctx, userID, email)
}

func (c *countingBroker) CreateAccount(ctx context.Context, customerID, baseCurrency string) (*drivewealth.Account, error) {
	c.accountCalls++
	return c.inner.CreateAccount(ctx, customerID, baseCurrency)
}

type capturedReviews struct {
	jobs []mailer.ReviewJob
	err  error
}

func (c *capturedReviews) PublishReview(ctx context.Context, job mailer.ReviewJob) error {
	if c.err != nil {
		return c.err
	}
	c.jobs = append(c.jobs, job)
	return nil
}
