package projection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/umbral-backend/internal/domain"
)

func scenarioInput() Input {
	return Input{
		StartingNetWorth: decimal.Zero,
		BaselineMonthly:  decimal.NewFromInt(1000),
		ExtraMonthly:     decimal.NewFromInt(500),
		AnnualReturnPct:  decimal.NewFromInt(8),
		Years:            20,
		Goal:             decimal.NewFromInt(100000),
		StartYear:        2026,
	}
}

func TestProject_BaselineVsOptimizedScenario(t *testing.T) {
	// Baseline 12,000/yr and optimized 18,000/yr at 8%, goal 100,000
	// Baseline crosses at index 7 (107,073.6...), optimized at index 5 (105,598.8...)
	result, err := Project(scenarioInput())

	require.NoError(t, err)
	require.Len(t, result.Points, 21)
	require.NotNil(t, result.BaselineGoalYear)
	require.NotNil(t, result.OptimizedGoalYear)

	assert.Equal(t, 2033, *result.BaselineGoalYear)
	assert.Equal(t, 2031, *result.OptimizedGoalYear)
	assert.LessOrEqual(t, *result.OptimizedGoalYear, *result.BaselineGoalYear)
	assert.Equal(t, 2, result.YearsSaved)
	assert.Equal(t, *result.BaselineGoalYear-*result.OptimizedGoalYear, result.YearsSaved)
}

func TestSeries_Recurrence(t *testing.T) {
	in := scenarioInput()
	in.Years = 3

	var points []Point
	for p := range Series(in) {
		points = append(points, p)
	}

	require.Len(t, points, 4)
	assert.True(t, points[0].Baseline.IsZero())
	assert.True(t, points[1].Baseline.Equal(decimal.NewFromInt(12000)))
	assert.True(t, points[2].Baseline.Equal(decimal.NewFromInt(24960)))
	assert.True(t, points[3].Baseline.Equal(decimal.RequireFromString("38956.8")))
	assert.True(t, points[2].Optimized.Equal(decimal.NewFromInt(37440)))
	assert.Equal(t, 2029, points[3].Year)
}

func TestSeries_IsRestartableAndIdempotent(t *testing.T) {
	in := scenarioInput()
	seq := Series(in)

	collect := func() []Point {
		var out []Point
		for p := range seq {
			out = append(out, p)
		}
		return out
	}

	first := collect()
	second := collect()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Baseline.String(), second[i].Baseline.String())
		assert.Equal(t, first[i].Optimized.String(), second[i].Optimized.String())
	}

	a, err := Project(in)
	require.NoError(t, err)
	b, err := Project(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSeries_EarlyBreak(t *testing.T) {
	count := 0
	for range Series(scenarioInput()) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestProject_GoalNeverReached(t *testing.T) {
	in := scenarioInput()
	in.Years = 2

	result, err := Project(in)

	require.NoError(t, err)
	assert.Nil(t, result.BaselineGoalYear)
	assert.Nil(t, result.OptimizedGoalYear)
	assert.Equal(t, 0, result.YearsSaved)
}

func TestProject_OnlyOptimizedReachesGoal(t *testing.T) {
	in := scenarioInput()
	in.Years = 6

	result, err := Project(in)

	require.NoError(t, err)
	assert.Nil(t, result.BaselineGoalYear)
	require.NotNil(t, result.OptimizedGoalYear)
	assert.Equal(t, 0, result.YearsSaved)
}

func TestProject_YearsSavedNeverNegative(t *testing.T) {
	for _, extra := range []int64{0, 1, 100, 5000} {
		for _, start := range []int64{0, 50000, 200000} {
			in := scenarioInput()
			in.ExtraMonthly = decimal.NewFromInt(extra)
			in.StartingNetWorth = decimal.NewFromInt(start)

			result, err := Project(in)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.YearsSaved, 0)
		}
	}
}

func TestProject_AlreadyAtGoal(t *testing.T) {
	in := scenarioInput()
	in.StartingNetWorth = decimal.NewFromInt(150000)

	result, err := Project(in)

	require.NoError(t, err)
	assert.Equal(t, 2026, *result.BaselineGoalYear)
	assert.Equal(t, 2026, *result.OptimizedGoalYear)
	assert.Equal(t, 0, result.YearsSaved)
}

func TestProject_ZeroYears(t *testing.T) {
	in := scenarioInput()
	in.Years = 0

	result, err := Project(in)

	require.NoError(t, err)
	require.Len(t, result.Points, 1)
	assert.Equal(t, 2026, result.Points[0].Year)
}

func TestProject_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
	}{
		{"negative years", func(in *Input) { in.Years = -1 }},
		{"too many years", func(in *Input) { in.Years = MaxYears + 1 }},
		{"negative baseline", func(in *Input) { in.BaselineMonthly = decimal.NewFromInt(-1) }},
		{"negative extra", func(in *Input) { in.ExtraMonthly = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioInput()
			tt.mutate(&in)
			_, err := Project(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestChartCeiling(t *testing.T) {
	t.Run("goal dominates", func(t *testing.T) {
		in := scenarioInput()
		in.Years = 2
		result, err := Project(in)
		require.NoError(t, err)

		assert.True(t, ChartCeiling(result, in.Goal).Equal(decimal.NewFromInt(110000)))
	})

	t.Run("optimized balance dominates", func(t *testing.T) {
		in := scenarioInput()
		in.Years = 1
		in.Goal = decimal.NewFromInt(10000)
		result, err := Project(in)
		require.NoError(t, err)

		// max optimized balance is 18,000
		assert.True(t, ChartCeiling(result, in.Goal).Equal(decimal.NewFromInt(19800)))
	})
}
