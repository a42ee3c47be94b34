package allocator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/umbral-backend/internal/domain"
)

func testRates() *domain.RateSnapshot {
	return &domain.RateSnapshot{
		USDRate: decimal.RequireFromString("18.50"),
		BTCUSD:  decimal.NewFromInt(65000),
		ETHUSD:  decimal.NewFromInt(3500),
	}
}

func envelope(val int64, currency domain.Currency) *domain.Envelope {
	return &domain.Envelope{
		ID:       uuid.New(),
		Title:    "Sobre",
		Val:      decimal.NewFromInt(val),
		Tot:      decimal.NewFromInt(10000),
		Currency: currency,
	}
}

func profile(income int64, currency domain.Currency) *domain.Profile {
	p := domain.NewDefaultProfile(uuid.New())
	p.MonthlyIncome = decimal.NewFromInt(income)
	p.Currency = currency
	return p
}

func TestCalculateAllocation_MixedCurrencyScenario(t *testing.T) {
	// Income 20,000 MXN, envelopes 8,000 MXN + 100 USD at 18.50
	// Expected: assigned 9,850, to assign 10,150, usage 49.25%, healthy
	envelopes := []*domain.Envelope{
		envelope(8000, domain.CurrencyMXN),
		envelope(100, domain.CurrencyUSD),
	}

	allocation, err := CalculateAllocation(envelopes, profile(20000, domain.CurrencyMXN), testRates())

	require.NoError(t, err)
	assert.True(t, allocation.TotalAssigned.Equal(decimal.NewFromInt(9850)), "got %s", allocation.TotalAssigned)
	assert.True(t, allocation.ToAssign.Equal(decimal.NewFromInt(10150)), "got %s", allocation.ToAssign)

	usage, err := allocation.Usage()
	require.NoError(t, err)
	assert.True(t, usage.Equal(decimal.RequireFromString("49.25")), "got %s", usage)
	assert.Equal(t, StatusHealthy, allocation.Status)
}

func TestCalculateAllocation_NegativeToAssign(t *testing.T) {
	envelopes := []*domain.Envelope{envelope(1500, domain.CurrencyUSD)}

	allocation, err := CalculateAllocation(envelopes, profile(1000, domain.CurrencyUSD), testRates())

	require.NoError(t, err)
	assert.True(t, allocation.ToAssign.Equal(decimal.NewFromInt(-500)))
	assert.Equal(t, StatusOverdraft, allocation.Status)
}

func TestCalculateAllocation_ZeroIncome(t *testing.T) {
	t.Run("nothing assigned is healthy", func(t *testing.T) {
		allocation, err := CalculateAllocation(nil, profile(0, domain.CurrencyMXN), testRates())
		require.NoError(t, err)

		_, err = allocation.Usage()
		assert.ErrorIs(t, err, domain.ErrDegenerateIncome)
		assert.False(t, allocation.UsagePercentage.Valid)
		assert.Equal(t, StatusHealthy, allocation.Status)
	})

	t.Run("anything assigned is overdraft", func(t *testing.T) {
		envelopes := []*domain.Envelope{envelope(10, domain.CurrencyMXN)}
		allocation, err := CalculateAllocation(envelopes, profile(0, domain.CurrencyMXN), testRates())
		require.NoError(t, err)

		assert.False(t, allocation.UsagePercentage.Valid)
		assert.True(t, allocation.ToAssign.Equal(decimal.NewFromInt(-10)))
		assert.Equal(t, StatusOverdraft, allocation.Status)
	})
}

func TestCalculateAllocation_InvalidRate(t *testing.T) {
	rates := testRates()
	rates.USDRate = decimal.Zero
	envelopes := []*domain.Envelope{envelope(100, domain.CurrencyUSD)}

	_, err := CalculateAllocation(envelopes, profile(20000, domain.CurrencyMXN), rates)

	var rateErr *domain.InvalidRateError
	assert.ErrorAs(t, err, &rateErr)
}

func TestClassifyUsage_Boundaries(t *testing.T) {
	tests := []struct {
		usage string
		want  Status
	}{
		{"0", StatusHealthy},
		{"85", StatusHealthy},
		{"85.0001", StatusCaution},
		{"99.99", StatusCaution},
		{"100", StatusCaution},
		{"100.0001", StatusOverdraft},
		{"250", StatusOverdraft},
	}

	for _, tt := range tests {
		t.Run(tt.usage, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyUsage(decimal.RequireFromString(tt.usage)))
		})
	}
}

func TestTotalAssigned_MonotonicInEnvelopeValue(t *testing.T) {
	rates := testRates()
	envelopes := []*domain.Envelope{
		envelope(500, domain.CurrencyMXN),
		envelope(0, domain.CurrencyUSD),
	}

	for _, display := range []domain.Currency{domain.CurrencyMXN, domain.CurrencyUSD} {
		previous := decimal.NewFromInt(-1)
		for val := int64(0); val <= 1000; val += 50 {
			envelopes[1].Val = decimal.NewFromInt(val)
			total, err := TotalAssigned(envelopes, display, rates)
			require.NoError(t, err)
			assert.True(t, total.GreaterThanOrEqual(previous), "%s total decreased at val=%d", display, val)
			previous = total
		}
	}
}

func TestMonthlySavings(t *testing.T) {
	rates := testRates()

	tests := []struct {
		name      string
		income    int64
		currency  domain.Currency
		envelopes []*domain.Envelope
		want      string
	}{
		{
			name:      "residual in MXN",
			income:    20000,
			currency:  domain.CurrencyMXN,
			envelopes: []*domain.Envelope{envelope(8000, domain.CurrencyMXN), envelope(100, domain.CurrencyUSD)},
			want:      "10150",
		},
		{
			name:      "residual shown in USD",
			income:    37000,
			currency:  domain.CurrencyUSD,
			envelopes: []*domain.Envelope{envelope(1000, domain.CurrencyUSD)},
			want:      "1000",
		},
		{
			name:      "over-assigned is clamped at zero",
			income:    5000,
			currency:  domain.CurrencyMXN,
			envelopes: []*domain.Envelope{envelope(9000, domain.CurrencyMXN)},
			want:      "0",
		},
		{
			name:      "zero income",
			income:    0,
			currency:  domain.CurrencyUSD,
			envelopes: nil,
			want:      "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := profile(tt.income, tt.currency)
			got, err := MonthlySavings(tt.envelopes, base, rates)
			require.NoError(t, err)
			assert.False(t, got.IsNegative())
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFillPercentage(t *testing.T) {
	tests := []struct {
		name string
		val  int64
		tot  int64
		want string
	}{
		{"half full", 500, 1000, "50"},
		{"over the cap is capped at 100", 1500, 1000, "100"},
		{"no cap counts as full", 10, 0, "100"},
		{"empty", 0, 1000, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &domain.Envelope{Val: decimal.NewFromInt(tt.val), Tot: decimal.NewFromInt(tt.tot)}
			assert.True(t, FillPercentage(env).Equal(decimal.RequireFromString(tt.want)))
		})
	}
}
