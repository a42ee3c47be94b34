package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/umbral-backend/internal/domain"
	"github.com/simaogato/umbral-backend/internal/usecase/allocator"
	"github.com/simaogato/umbral-backend/internal/usecase/seeder"
)

// MockProfileRepository is a mock implementation of ProfileRepository for testing
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockEnvelopeRepository is a mock implementation of EnvelopeRepository for testing
type MockEnvelopeRepository struct {
	mock.Mock
}

func (m *MockEnvelopeRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Envelope, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Envelope), args.Error(1)
}

func (m *MockEnvelopeRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Envelope, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Envelope), args.Error(1)
}

func (m *MockEnvelopeRepository) Create(ctx context.Context, envelope *domain.Envelope) error {
	return m.Called(ctx, envelope).Error(0)
}

func (m *MockEnvelopeRepository) Update(ctx context.Context, envelope *domain.Envelope) error {
	return m.Called(ctx, envelope).Error(0)
}

func (m *MockEnvelopeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

// MockRateSource is a mock implementation of RateSource for testing
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) GetRates(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

type fixture struct {
	userID    uuid.UUID
	profiles  *MockProfileRepository
	envelopes *MockEnvelopeRepository
	accounts  *MockAccountRepository
	rates     *MockRateSource
	service   *DashboardService
}

func newFixture() *fixture {
	f := &fixture{
		userID:    uuid.New(),
		profiles:  new(MockProfileRepository),
		envelopes: new(MockEnvelopeRepository),
		accounts:  new(MockAccountRepository),
		rates:     new(MockRateSource),
	}
	f.service = NewDashboardService(seeder.NewProfileSeeder(f.profiles), f.envelopes, f.accounts, f.rates, zerolog.Nop())
	f.service.now = func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) }
	return f
}

func testRates() *domain.RateSnapshot {
	return &domain.RateSnapshot{
		USDRate: decimal.RequireFromString("18.50"),
		BTCUSD:  decimal.NewFromInt(65000),
		ETHUSD:  decimal.NewFromInt(3500),
	}
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	profile := domain.NewDefaultProfile(f.userID)
	profile.MonthlyIncome = decimal.NewFromInt(20000)
	due := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	envelopes := []*domain.Envelope{
		{ID: uuid.New(), UserID: f.userID, Title: "Renta", Val: decimal.NewFromInt(8000), Currency: domain.CurrencyMXN, DueDate: &due},
		{ID: uuid.New(), UserID: f.userID, Title: "Netflix", Val: decimal.NewFromInt(100), Currency: domain.CurrencyUSD},
	}
	unknown := &domain.Account{ID: uuid.New(), UserID: f.userID, Name: "Gold", Balance: decimal.NewFromInt(3), AssetType: "XAU"}
	accounts := []*domain.Account{
		{ID: uuid.New(), UserID: f.userID, Name: "Nomina", Balance: decimal.NewFromInt(100000), AssetType: domain.AssetMXN},
		unknown,
	}

	f.profiles.On("Get", ctx, f.userID).Return(profile, nil)
	f.envelopes.On("List", ctx, f.userID).Return(envelopes, nil)
	f.accounts.On("List", ctx, f.userID).Return(accounts, nil)
	f.rates.On("GetRates", ctx).Return(testRates(), nil)

	d, err := f.service.GetDashboard(ctx, f.userID)

	require.NoError(t, err)
	assert.True(t, d.NetWorth.Total.Equal(decimal.NewFromInt(100000)), "got %s", d.NetWorth.Total)
	assert.Equal(t, []uuid.UUID{unknown.ID}, d.NetWorth.Skipped)
	assert.True(t, d.Allocation.TotalAssigned.Equal(decimal.NewFromInt(9850)), "got %s", d.Allocation.TotalAssigned)
	assert.True(t, d.Allocation.ToAssign.Equal(decimal.NewFromInt(10150)))
	assert.Equal(t, allocator.StatusHealthy, d.Allocation.Status)
	assert.True(t, d.MonthlySavings.Equal(decimal.NewFromInt(10150)))
	require.Len(t, d.Reminders, 1)
	assert.Equal(t, 2, d.Reminders[0].DaysRemaining)
	assert.Equal(t, domain.UrgencyUrgent, d.Reminders[0].Urgency)
}

func TestGetDashboard_RemindersUseLocationCalendarDay(t *testing.T) {
	due := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		location *time.Location
		wantDays int
	}{
		{"UTC", time.UTC, 0},
		// 03:00 UTC is still the evening of January 9 at UTC-6
		{"UTC-6", time.FixedZone("CST", -6*60*60), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture()
			f.service.now = func() time.Time { return time.Date(2026, 1, 10, 3, 0, 0, 0, time.UTC) }
			f.service.Location = tt.location

			f.profiles.On("Get", ctx, f.userID).Return(domain.NewDefaultProfile(f.userID), nil)
			f.envelopes.On("List", ctx, f.userID).Return([]*domain.Envelope{
				{ID: uuid.New(), UserID: f.userID, Title: "Renta", Val: decimal.NewFromInt(100), Currency: domain.CurrencyMXN, DueDate: &due},
			}, nil)
			f.accounts.On("List", ctx, f.userID).Return([]*domain.Account{}, nil)
			f.rates.On("GetRates", ctx).Return(testRates(), nil)

			d, err := f.service.GetDashboard(ctx, f.userID)

			require.NoError(t, err)
			require.Len(t, d.Reminders, 1)
			assert.Equal(t, tt.wantDays, d.Reminders[0].DaysRemaining)
		})
	}
}

func TestGetDashboard_USDView(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	profile := domain.NewDefaultProfile(f.userID)
	profile.Currency = domain.CurrencyUSD
	profile.MonthlyIncome = decimal.NewFromInt(37000)

	f.profiles.On("Get", ctx, f.userID).Return(profile, nil)
	f.envelopes.On("List", ctx, f.userID).Return([]*domain.Envelope{
		{ID: uuid.New(), UserID: f.userID, Title: "Renta", Val: decimal.NewFromInt(18500), Currency: domain.CurrencyMXN},
	}, nil)
	f.accounts.On("List", ctx, f.userID).Return([]*domain.Account{
		{ID: uuid.New(), UserID: f.userID, Name: "Cash", Balance: decimal.NewFromInt(500), AssetType: domain.AssetUSD},
	}, nil)
	f.rates.On("GetRates", ctx).Return(testRates(), nil)

	d, err := f.service.GetDashboard(ctx, f.userID)

	require.NoError(t, err)
	assert.True(t, d.Profile.MonthlyIncome.Equal(decimal.NewFromInt(2000)))
	assert.True(t, d.NetWorth.Total.Equal(decimal.NewFromInt(500)))
	assert.True(t, d.Allocation.TotalAssigned.Equal(decimal.NewFromInt(1000)))
	assert.True(t, d.MonthlySavings.Equal(decimal.NewFromInt(1000)), "got %s", d.MonthlySavings)
}

func TestGetDashboard_WithoutRates(t *testing.T) {
	t.Run("all MXN still renders", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture()
		f.profiles.On("Get", ctx, f.userID).Return(domain.NewDefaultProfile(f.userID), nil)
		f.envelopes.On("List", ctx, f.userID).Return([]*domain.Envelope{}, nil)
		f.accounts.On("List", ctx, f.userID).Return([]*domain.Account{
			{ID: uuid.New(), UserID: f.userID, Name: "Nomina", Balance: decimal.NewFromInt(100), AssetType: domain.AssetMXN},
		}, nil)
		f.rates.On("GetRates", ctx).Return(nil, domain.ErrRatesUnavailable)

		d, err := f.service.GetDashboard(ctx, f.userID)

		require.NoError(t, err)
		assert.Nil(t, d.Rates)
		assert.True(t, d.NetWorth.Total.Equal(decimal.NewFromInt(100)))
	})

	t.Run("crypto holding needs rates", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture()
		f.profiles.On("Get", ctx, f.userID).Return(domain.NewDefaultProfile(f.userID), nil)
		f.envelopes.On("List", ctx, f.userID).Return([]*domain.Envelope{}, nil)
		f.accounts.On("List", ctx, f.userID).Return([]*domain.Account{
			{ID: uuid.New(), UserID: f.userID, Name: "Wallet", Balance: decimal.NewFromInt(1), AssetType: domain.AssetBTC},
		}, nil)
		f.rates.On("GetRates", ctx).Return(nil, domain.ErrRatesUnavailable)

		_, err := f.service.GetDashboard(ctx, f.userID)

		assert.ErrorIs(t, err, domain.ErrRatesUnavailable)
	})
}

func TestGetDashboard_RepositoryError(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.profiles.On("Get", ctx, f.userID).Return(domain.NewDefaultProfile(f.userID), nil)
	f.envelopes.On("List", ctx, f.userID).Return(nil, errors.New("db down"))

	_, err := f.service.GetDashboard(ctx, f.userID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list envelopes")
	f.accounts.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetProjection(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	profile := domain.NewDefaultProfile(f.userID)
	profile.MonthlyIncome = decimal.NewFromInt(1000)
	profile.FirstMillionGoal = decimal.NewFromInt(100000)

	f.profiles.On("Get", ctx, f.userID).Return(profile, nil)
	f.envelopes.On("List", ctx, f.userID).Return([]*domain.Envelope{}, nil)
	f.accounts.On("List", ctx, f.userID).Return([]*domain.Account{}, nil)
	f.rates.On("GetRates", ctx).Return(testRates(), nil)

	p, err := f.service.GetProjection(ctx, f.userID, ProjectionRequest{
		ExtraMonthly:    decimal.NewFromInt(500),
		AnnualReturnPct: decimal.NewFromInt(8),
		Years:           20,
	})

	require.NoError(t, err)
	require.Len(t, p.Points, 21)
	assert.Equal(t, 2026, p.Points[0].Year)
	require.NotNil(t, p.BaselineGoalYear)
	require.NotNil(t, p.OptimizedGoalYear)
	assert.Equal(t, 2033, *p.BaselineGoalYear)
	assert.Equal(t, 2031, *p.OptimizedGoalYear)
	assert.Equal(t, 2, p.YearsSaved)
	assert.True(t, p.ChartCeiling.GreaterThan(p.Goal))
}

func TestGetProjection_InvalidYears(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.profiles.On("Get", ctx, f.userID).Return(domain.NewDefaultProfile(f.userID), nil)
	f.envelopes.On("List", ctx, f.userID).Return([]*domain.Envelope{}, nil)
	f.accounts.On("List", ctx, f.userID).Return([]*domain.Account{}, nil)
	f.rates.On("GetRates", ctx).Return(testRates(), nil)

	_, err := f.service.GetProjection(ctx, f.userID, ProjectionRequest{Years: 101})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
