package projection

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// MaxYears is the longest horizon a projection may cover
const MaxYears = 100

var (
	hundred     = decimal.NewFromInt(100)
	twelve      = decimal.NewFromInt(12)
	chartMargin = decimal.RequireFromString("1.1")
)

// Input describes a projection of net worth under a baseline and an optimized savings plan
type Input struct {
	StartingNetWorth decimal.Decimal
	BaselineMonthly  decimal.Decimal // Monthly contribution of the baseline scenario
	ExtraMonthly     decimal.Decimal // Added on top of BaselineMonthly in the optimized scenario
	AnnualReturnPct  decimal.Decimal // e.g. 8 for 8%
	Years            int
	Goal             decimal.Decimal
	StartYear        int // Calendar year of point 0
}

// Validate ensures the input describes a finite, meaningful projection
func (in Input) Validate() error {
	if in.Years < 0 || in.Years > MaxYears {
		return fmt.Errorf("%w: years must be between 0 and %d, got %d", domain.ErrInvalidInput, MaxYears, in.Years)
	}
	if in.BaselineMonthly.IsNegative() {
		return fmt.Errorf("%w: baseline monthly contribution must not be negative", domain.ErrInvalidInput)
	}
	if in.ExtraMonthly.IsNegative() {
		return fmt.Errorf("%w: extra monthly contribution must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// Point is one year of the projection
type Point struct {
	Index     int // Years from now, 0 is the current year
	Year      int
	Baseline  decimal.Decimal
	Optimized decimal.Decimal
}

// Result is a materialised projection
type Result struct {
	Points            []Point
	BaselineGoalYear  *int // Calendar year the baseline reaches the goal, nil if never within the horizon
	OptimizedGoalYear *int
	YearsSaved        int
}

// Series yields Years+1 points, compounding once per year:
//
//	balance[i+1] = balance[i] * (1 + r/100) + monthly * 12
//
// The sequence is a pure function of the input and can be ranged over any number of times.
func Series(in Input) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		growth := decimal.NewFromInt(1).Add(in.AnnualReturnPct.Div(hundred))
		baselineYearly := in.BaselineMonthly.Mul(twelve)
		optimizedYearly := in.BaselineMonthly.Add(in.ExtraMonthly).Mul(twelve)

		baseline := in.StartingNetWorth
		optimized := in.StartingNetWorth
		for i := 0; i <= in.Years; i++ {
			if !yield(Point{Index: i, Year: in.StartYear + i, Baseline: baseline, Optimized: optimized}) {
				return
			}
			baseline = baseline.Mul(growth).Add(baselineYearly)
			optimized = optimized.Mul(growth).Add(optimizedYearly)
		}
	}
}

// Project runs the series and locates the first year each scenario reaches the goal
func Project(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Points: make([]Point, 0, in.Years+1)}
	for p := range Series(in) {
		result.Points = append(result.Points, p)
		if result.BaselineGoalYear == nil && p.Baseline.GreaterThanOrEqual(in.Goal) {
			year := p.Year
			result.BaselineGoalYear = &year
		}
		if result.OptimizedGoalYear == nil && p.Optimized.GreaterThanOrEqual(in.Goal) {
			year := p.Year
			result.OptimizedGoalYear = &year
		}
	}

	result.YearsSaved = yearsSaved(result.BaselineGoalYear, result.OptimizedGoalYear)
	return result, nil
}

func yearsSaved(baseline, optimized *int) int {
	if baseline == nil || optimized == nil {
		return 0
	}
	if saved := *baseline - *optimized; saved > 0 {
		return saved
	}
	return 0
}

// ChartCeiling is the upper bound of the chart's value axis: the larger of the
// highest optimized balance and the goal, plus a 10% margin
func ChartCeiling(result *Result, goal decimal.Decimal) decimal.Decimal {
	ceiling := goal
	for _, p := range result.Points {
		if p.Optimized.GreaterThan(ceiling) {
			ceiling = p.Optimized
		}
	}
	return ceiling.Mul(chartMargin)
}
