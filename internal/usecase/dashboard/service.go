package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/umbral-backend/internal/domain"
	"github.com/simaogato/umbral-backend/internal/usecase/allocator"
	"github.com/simaogato/umbral-backend/internal/usecase/projection"
	"github.com/simaogato/umbral-backend/internal/usecase/reminder"
	"github.com/simaogato/umbral-backend/internal/usecase/seeder"
	"github.com/simaogato/umbral-backend/internal/usecase/valuation"
)

// Dashboard is everything the main screen renders, amounts in the display currency
type Dashboard struct {
	Profile        *domain.Profile // Display view
	Rates          *domain.RateSnapshot
	Envelopes      []*domain.Envelope
	Accounts       []*domain.Account
	NetWorth       *valuation.NetWorthResult
	Allocation     *allocator.Allocation
	MonthlySavings decimal.Decimal
	Reminders      []domain.EnvelopeReminder
}

// ProjectionRequest holds the user-controlled projection parameters
type ProjectionRequest struct {
	ExtraMonthly    decimal.Decimal
	AnnualReturnPct decimal.Decimal
	Years           int
}

// Projection is a projection result together with its chart ceiling
type Projection struct {
	*projection.Result
	Goal         decimal.Decimal
	ChartCeiling decimal.Decimal
}

// snapshot is the immutable input of the calculation core
type snapshot struct {
	base      *domain.Profile
	envelopes []*domain.Envelope
	accounts  []*domain.Account
	rates     *domain.RateSnapshot
}

// DashboardService assembles dashboard data
type DashboardService struct {
	Seeder       *seeder.ProfileSeeder
	EnvelopeRepo domain.EnvelopeRepository
	AccountRepo  domain.AccountRepository
	Rates        domain.RateSource
	// Location sets the calendar day reminders count from. Defaults to UTC.
	Location     *time.Location

	now func() time.Time
	log zerolog.Logger
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	profileSeeder *seeder.ProfileSeeder,
	envelopeRepo domain.EnvelopeRepository,
	accountRepo domain.AccountRepository,
	rates domain.RateSource,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		Seeder:       profileSeeder,
		EnvelopeRepo: envelopeRepo,
		AccountRepo:  accountRepo,
		Rates:        rates,
		Location:     time.UTC,
		now:          time.Now,
		log:          log.With().Str("component", "dashboard").Logger(),
	}
}

// GetDashboard computes the dashboard for a user
// Logic:
//  1. Load profile, envelopes, accounts and the current rates into a snapshot
//  2. Net worth: sum of accounts in the display currency (unknown assets skipped)
//  3. Allocation and monthly savings from envelopes against income
//  4. Reminders for envelopes with a due date
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	view, err := valuation.ProfileView(snap.base, snap.rates)
	if err != nil {
		return nil, err
	}

	netWorth, err := s.netWorth(snap, view.Currency)
	if err != nil {
		return nil, err
	}

	allocation, err := allocator.CalculateAllocation(snap.envelopes, view, snap.rates)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate allocation: %w", err)
	}

	savings, err := allocator.MonthlySavings(snap.envelopes, snap.base, snap.rates)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate monthly savings: %w", err)
	}

	return &Dashboard{
		Profile:        view,
		Rates:          snap.rates,
		Envelopes:      snap.envelopes,
		Accounts:       snap.accounts,
		NetWorth:       netWorth,
		Allocation:     allocation,
		MonthlySavings: savings,
		Reminders:      reminder.GenerateReminders(snap.envelopes, s.today()),
	}, nil
}

// GetProjection projects net worth toward the profile goal
// Logic:
//   - Start: current net worth of the accounts
//   - Baseline contribution: monthly savings
//   - Optimized contribution: monthly savings + extra
func (s *DashboardService) GetProjection(ctx context.Context, userID uuid.UUID, req ProjectionRequest) (*Projection, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	view, err := valuation.ProfileView(snap.base, snap.rates)
	if err != nil {
		return nil, err
	}

	netWorth, err := s.netWorth(snap, view.Currency)
	if err != nil {
		return nil, err
	}

	savings, err := allocator.MonthlySavings(snap.envelopes, snap.base, snap.rates)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate monthly savings: %w", err)
	}

	result, err := projection.Project(projection.Input{
		StartingNetWorth: netWorth.Total,
		BaselineMonthly:  savings,
		ExtraMonthly:     req.ExtraMonthly,
		AnnualReturnPct:  req.AnnualReturnPct,
		Years:            req.Years,
		Goal:             view.FirstMillionGoal,
		StartYear:        s.today().Year(),
	})
	if err != nil {
		return nil, err
	}

	return &Projection{
		Result:       result,
		Goal:         view.FirstMillionGoal,
		ChartCeiling: projection.ChartCeiling(result, view.FirstMillionGoal),
	}, nil
}

func (s *DashboardService) load(ctx context.Context, userID uuid.UUID) (*snapshot, error) {
	base, err := s.Seeder.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	envelopes, err := s.EnvelopeRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list envelopes: %w", err)
	}

	accounts, err := s.AccountRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	// An all-MXN user can still be served without rates; any conversion
	// that needs them reports ErrRatesUnavailable.
	rates, err := s.Rates.GetRates(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrRatesUnavailable) {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("rendering without market rates")
		rates = nil
	}

	return &snapshot{base: base, envelopes: envelopes, accounts: accounts, rates: rates}, nil
}

func (s *DashboardService) netWorth(snap *snapshot, display domain.Currency) (*valuation.NetWorthResult, error) {
	result, err := valuation.NetWorth(snap.accounts, display, snap.rates)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate net worth: %w", err)
	}
	for _, id := range result.Skipped {
		s.log.Warn().Str("account_id", id.String()).Msg("skipping account with unknown asset type")
	}
	return result, nil
}

// today is the current time in the reminder location
func (s *DashboardService) today() time.Time {
	if s.Location == nil {
		return s.now().UTC()
	}
	return s.now().In(s.Location)
}
