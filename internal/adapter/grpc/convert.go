package grpc

import (
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	umbralv1 "github.com/simaogato/umbral-backend/internal/adapter/grpc/umbral/v1"
	"github.com/simaogato/umbral-backend/internal/domain"
	"github.com/simaogato/umbral-backend/internal/usecase/account"
	"github.com/simaogato/umbral-backend/internal/usecase/allocator"
	"github.com/simaogato/umbral-backend/internal/usecase/dashboard"
	"github.com/simaogato/umbral-backend/internal/usecase/envelope"
	"github.com/simaogato/umbral-backend/internal/usecase/profile"
)

// parseDecimalField parses an optional decimal string field
func parseDecimalField(field string, raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return &d, nil
}

// parseOptionalDecimal parses a decimal string where empty means zero
func parseOptionalDecimal(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return d, nil
}

func profileToProto(p *domain.Profile) *umbralv1.Profile {
	return &umbralv1.Profile{
		UserId:           p.UserID.String(),
		Name:             p.Name,
		Avatar:           p.Avatar,
		Currency:         string(p.Currency),
		MonthlyIncome:    p.MonthlyIncome.String(),
		FirstMillionGoal: p.FirstMillionGoal.String(),
		NetWorth:         p.NetWorth.String(),
		Preferences: &umbralv1.Preferences{
			AiNotifications: p.Preferences.AINotifications,
			EmailSummary:    p.Preferences.EmailSummary,
		},
		UpdatedAt: umbralv1.NewTimestamp(p.UpdatedAt),
	}
}

func profileInputFromProto(req *umbralv1.UpdateProfileRequest) (profile.UpdateProfileInput, error) {
	input := profile.UpdateProfileInput{
		Name:   req.Name,
		Avatar: req.Avatar,
	}

	if req.Currency != nil {
		currency := domain.Currency(*req.Currency)
		input.Currency = &currency
	}
	if req.Preferences != nil {
		input.Preferences = &domain.Preferences{
			AINotifications: req.Preferences.AiNotifications,
			EmailSummary:    req.Preferences.EmailSummary,
		}
	}

	var err error
	if input.MonthlyIncome, err = parseDecimalField("monthly_income", req.MonthlyIncome); err != nil {
		return input, err
	}
	if input.FirstMillionGoal, err = parseDecimalField("first_million_goal", req.FirstMillionGoal); err != nil {
		return input, err
	}
	if input.NetWorth, err = parseDecimalField("net_worth", req.NetWorth); err != nil {
		return input, err
	}

	return input, nil
}

func envelopeToProto(env *domain.Envelope) *umbralv1.Envelope {
	msg := &umbralv1.Envelope{
		Id:             env.ID.String(),
		Icon:           env.Icon,
		Color:          env.Color,
		Title:          env.Title,
		Type:           env.Type,
		Val:            env.Val.String(),
		Tot:            env.Tot.String(),
		Currency:       string(env.Currency),
		Msg:            env.Msg,
		Warn:           env.Warn,
		FillPercentage: allocator.FillPercentage(env).String(),
		CreatedAt:      umbralv1.NewTimestamp(env.CreatedAt),
	}

	if env.DueDate != nil {
		msg.DueDate = env.DueDate.Format(domain.DueDateLayout)
	}

	return msg
}

func envelopesToProto(envelopes []*domain.Envelope) []*umbralv1.Envelope {
	out := make([]*umbralv1.Envelope, 0, len(envelopes))
	for _, env := range envelopes {
		out = append(out, envelopeToProto(env))
	}
	return out
}

func envelopeInputFromProto(f umbralv1.EnvelopeFields) (envelope.EnvelopeInput, error) {
	input := envelope.EnvelopeInput{
		Icon:    f.Icon,
		Color:   f.Color,
		Title:   f.Title,
		Type:    f.Type,
		Msg:     f.Msg,
		Warn:    f.Warn,
		DueDate: f.DueDate,
	}

	if f.Currency != nil {
		currency := domain.Currency(*f.Currency)
		input.Currency = &currency
	}

	var err error
	if input.Val, err = parseDecimalField("val", f.Val); err != nil {
		return input, err
	}
	if input.Tot, err = parseDecimalField("tot", f.Tot); err != nil {
		return input, err
	}

	return input, nil
}

func accountToProto(acc *domain.Account) *umbralv1.Account {
	msg := &umbralv1.Account{
		Id:          acc.ID.String(),
		Name:        acc.Name,
		Balance:     acc.Balance.String(),
		AssetType:   string(acc.AssetType),
		Type:        string(acc.Type),
		Color:       acc.Color,
		Label:       acc.Label,
		Subtitle:    acc.Subtitle,
		LastUpdated: umbralv1.NewTimestamp(acc.LastUpdated),
	}

	if acc.APY != nil {
		msg.Apy = acc.APY.String()
	}

	return msg
}

func accountsToProto(accounts []*domain.Account) []*umbralv1.Account {
	out := make([]*umbralv1.Account, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, accountToProto(acc))
	}
	return out
}

func accountInputFromProto(f umbralv1.AccountFields) (account.AccountInput, error) {
	input := account.AccountInput{
		Name:     f.Name,
		Color:    f.Color,
		Label:    f.Label,
		Subtitle: f.Subtitle,
	}

	if f.AssetType != nil {
		asset := domain.AssetType(*f.AssetType)
		input.AssetType = &asset
	}
	if f.Type != nil {
		accountType := domain.AccountType(*f.Type)
		input.Type = &accountType
	}

	var err error
	if input.Balance, err = parseDecimalField("balance", f.Balance); err != nil {
		return input, err
	}

	// An empty apy clears the yield
	if f.Apy != nil && *f.Apy == "" {
		input.ClearAPY = true
	} else if input.APY, err = parseDecimalField("apy", f.Apy); err != nil {
		return input, err
	}

	return input, nil
}

func ratesToProto(r *domain.RateSnapshot) *umbralv1.Rates {
	if r == nil {
		return nil
	}
	return &umbralv1.Rates{
		UsdRate:   r.USDRate.String(),
		BtcUsd:    r.BTCUSD.String(),
		EthUsd:    r.ETHUSD.String(),
		Source:    r.Source,
		FetchedAt: umbralv1.NewTimestamp(r.FetchedAt),
	}
}

func dashboardToProto(d *dashboard.Dashboard) *umbralv1.GetDashboardResponse {
	netWorth := &umbralv1.NetWorth{
		Total:   d.NetWorth.Total.String(),
		ByAsset: make(map[string]string, len(d.NetWorth.ByAsset)),
	}
	for asset, value := range d.NetWorth.ByAsset {
		netWorth.ByAsset[string(asset)] = value.String()
	}
	for _, id := range d.NetWorth.Skipped {
		netWorth.SkippedAccountIds = append(netWorth.SkippedAccountIds, id.String())
	}

	allocation := &umbralv1.Allocation{
		TotalAssigned: d.Allocation.TotalAssigned.String(),
		ToAssign:      d.Allocation.ToAssign.String(),
		Status:        string(d.Allocation.Status),
	}
	if d.Allocation.UsagePercentage.Valid {
		allocation.UsagePercentage = d.Allocation.UsagePercentage.Decimal.String()
	}

	reminders := make([]*umbralv1.Reminder, 0, len(d.Reminders))
	for _, r := range d.Reminders {
		reminders = append(reminders, &umbralv1.Reminder{
			EnvelopeId:    r.EnvelopeID.String(),
			Title:         r.Title,
			DueDate:       r.DueDate.Format(domain.DueDateLayout),
			DaysRemaining: int32(r.DaysRemaining),
			Urgency:       string(r.Urgency),
			Label:         r.Label,
		})
	}

	return &umbralv1.GetDashboardResponse{
		Profile:        profileToProto(d.Profile),
		Rates:          ratesToProto(d.Rates),
		Envelopes:      envelopesToProto(d.Envelopes),
		Accounts:       accountsToProto(d.Accounts),
		NetWorth:       netWorth,
		Allocation:     allocation,
		MonthlySavings: d.MonthlySavings.String(),
		Reminders:      reminders,
	}
}

func projectionToProto(p *dashboard.Projection) *umbralv1.GetProjectionResponse {
	points := make([]*umbralv1.ProjectionPoint, 0, len(p.Points))
	for _, pt := range p.Points {
		points = append(points, &umbralv1.ProjectionPoint{
			Index:     int32(pt.Index),
			Year:      int32(pt.Year),
			Baseline:  pt.Baseline.String(),
			Optimized: pt.Optimized.String(),
		})
	}

	return &umbralv1.GetProjectionResponse{
		Points:            points,
		BaselineGoalYear:  yearToProto(p.BaselineGoalYear),
		OptimizedGoalYear: yearToProto(p.OptimizedGoalYear),
		YearsSaved:        int32(p.YearsSaved),
		Goal:              p.Goal.String(),
		ChartCeiling:      p.ChartCeiling.String(),
	}
}

func yearToProto(year *int) *int32 {
	if year == nil {
		return nil
	}
	y := int32(*year)
	return &y
}
