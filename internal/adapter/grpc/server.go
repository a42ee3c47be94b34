package grpc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	umbralv1 "github.com/simaogato/umbral-backend/internal/adapter/grpc/umbral/v1"
	"github.com/simaogato/umbral-backend/internal/domain"
	"github.com/simaogato/umbral-backend/internal/identity"
	"github.com/simaogato/umbral-backend/internal/usecase/account"
	"github.com/simaogato/umbral-backend/internal/usecase/advisor"
	"github.com/simaogato/umbral-backend/internal/usecase/dashboard"
	"github.com/simaogato/umbral-backend/internal/usecase/envelope"
	"github.com/simaogato/umbral-backend/internal/usecase/profile"
)

// Server implements the UmbralService gRPC server
type Server struct {
	umbralv1.UnimplementedUmbralServiceServer

	ProfileService   *profile.ProfileService
	EnvelopeService  *envelope.EnvelopeService
	AccountService   *account.AccountService
	DashboardService *dashboard.DashboardService
	AdvisorService   *advisor.AdvisorService
	Rates            domain.RateSource
}

// NewServer creates a new gRPC server instance
func NewServer(
	profileService *profile.ProfileService,
	envelopeService *envelope.EnvelopeService,
	accountService *account.AccountService,
	dashboardService *dashboard.DashboardService,
	advisorService *advisor.AdvisorService,
	rates domain.RateSource,
) *Server {
	return &Server{
		ProfileService:   profileService,
		EnvelopeService:  envelopeService,
		AccountService:   accountService,
		DashboardService: dashboardService,
		AdvisorService:   advisorService,
		Rates:            rates,
	}
}

// GetProfile handles the GetProfile RPC
func (s *Server) GetProfile(ctx context.Context, req *umbralv1.GetProfileRequest) (*umbralv1.ProfileResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	p, err := s.ProfileService.GetProfile(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.ProfileResponse{Profile: profileToProto(p)}, nil
}

// UpdateProfile handles the UpdateProfile RPC
func (s *Server) UpdateProfile(ctx context.Context, req *umbralv1.UpdateProfileRequest) (*umbralv1.ProfileResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input, err := profileInputFromProto(req)
	if err != nil {
		return nil, err
	}

	p, err := s.ProfileService.UpdateProfile(ctx, userID, input)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.ProfileResponse{Profile: profileToProto(p)}, nil
}

// ToggleCurrency handles the ToggleCurrency RPC
func (s *Server) ToggleCurrency(ctx context.Context, req *umbralv1.ToggleCurrencyRequest) (*umbralv1.ProfileResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	p, err := s.ProfileService.ToggleCurrency(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.ProfileResponse{Profile: profileToProto(p)}, nil
}

// ListEnvelopes handles the ListEnvelopes RPC
func (s *Server) ListEnvelopes(ctx context.Context, req *umbralv1.ListEnvelopesRequest) (*umbralv1.ListEnvelopesResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	envelopes, err := s.EnvelopeService.ListEnvelopes(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.ListEnvelopesResponse{Envelopes: envelopesToProto(envelopes)}, nil
}

// CreateEnvelope handles the CreateEnvelope RPC
func (s *Server) CreateEnvelope(ctx context.Context, req *umbralv1.CreateEnvelopeRequest) (*umbralv1.EnvelopeResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input, err := envelopeInputFromProto(req.EnvelopeFields)
	if err != nil {
		return nil, err
	}

	env, err := s.EnvelopeService.CreateEnvelope(ctx, userID, input)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.EnvelopeResponse{Envelope: envelopeToProto(env)}, nil
}

// UpdateEnvelope handles the UpdateEnvelope RPC
func (s *Server) UpdateEnvelope(ctx context.Context, req *umbralv1.UpdateEnvelopeRequest) (*umbralv1.EnvelopeResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	id, err := parseID("id", req.Id)
	if err != nil {
		return nil, err
	}

	input, err := envelopeInputFromProto(req.EnvelopeFields)
	if err != nil {
		return nil, err
	}

	env, err := s.EnvelopeService.UpdateEnvelope(ctx, userID, id, input)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.EnvelopeResponse{Envelope: envelopeToProto(env)}, nil
}

// DeleteEnvelope handles the DeleteEnvelope RPC
func (s *Server) DeleteEnvelope(ctx context.Context, req *umbralv1.DeleteEnvelopeRequest) (*umbralv1.DeleteResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	id, err := parseID("id", req.Id)
	if err != nil {
		return nil, err
	}

	if err := s.EnvelopeService.DeleteEnvelope(ctx, userID, id); err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.DeleteResponse{}, nil
}

// ListAccounts handles the ListAccounts RPC
func (s *Server) ListAccounts(ctx context.Context, req *umbralv1.ListAccountsRequest) (*umbralv1.ListAccountsResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	accounts, err := s.AccountService.ListAccounts(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.ListAccountsResponse{Accounts: accountsToProto(accounts)}, nil
}

// CreateAccount handles the CreateAccount RPC
func (s *Server) CreateAccount(ctx context.Context, req *umbralv1.CreateAccountRequest) (*umbralv1.AccountResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input, err := accountInputFromProto(req.AccountFields)
	if err != nil {
		return nil, err
	}

	acc, err := s.AccountService.CreateAccount(ctx, userID, input)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.AccountResponse{Account: accountToProto(acc)}, nil
}

// UpdateAccount handles the UpdateAccount RPC
func (s *Server) UpdateAccount(ctx context.Context, req *umbralv1.UpdateAccountRequest) (*umbralv1.AccountResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	id, err := parseID("id", req.Id)
	if err != nil {
		return nil, err
	}

	input, err := accountInputFromProto(req.AccountFields)
	if err != nil {
		return nil, err
	}

	acc, err := s.AccountService.UpdateAccount(ctx, userID, id, input)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.AccountResponse{Account: accountToProto(acc)}, nil
}

// DeleteAccount handles the DeleteAccount RPC
func (s *Server) DeleteAccount(ctx context.Context, req *umbralv1.DeleteAccountRequest) (*umbralv1.DeleteResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	id, err := parseID("id", req.Id)
	if err != nil {
		return nil, err
	}

	if err := s.AccountService.DeleteAccount(ctx, userID, id); err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.DeleteResponse{}, nil
}

// GetRates handles the GetRates RPC
func (s *Server) GetRates(ctx context.Context, req *umbralv1.GetRatesRequest) (*umbralv1.GetRatesResponse, error) {
	rates, err := s.Rates.GetRates(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.GetRatesResponse{Rates: ratesToProto(rates)}, nil
}

// GetDashboard handles the GetDashboard RPC
func (s *Server) GetDashboard(ctx context.Context, req *umbralv1.GetDashboardRequest) (*umbralv1.GetDashboardResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	d, err := s.DashboardService.GetDashboard(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	return dashboardToProto(d), nil
}

// GetProjection handles the GetProjection RPC
func (s *Server) GetProjection(ctx context.Context, req *umbralv1.GetProjectionRequest) (*umbralv1.GetProjectionResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	extra, err := parseOptionalDecimal("extra_monthly", req.ExtraMonthly)
	if err != nil {
		return nil, err
	}
	annualReturn, err := parseOptionalDecimal("annual_return_pct", req.AnnualReturnPct)
	if err != nil {
		return nil, err
	}

	p, err := s.DashboardService.GetProjection(ctx, userID, dashboard.ProjectionRequest{
		ExtraMonthly:    extra,
		AnnualReturnPct: annualReturn,
		Years:           int(req.Years),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return projectionToProto(p), nil
}

// Ask handles the Ask RPC
func (s *Server) Ask(ctx context.Context, req *umbralv1.AskRequest) (*umbralv1.AskResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	p, err := s.ProfileService.GetBaseProfile(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	reply, err := s.AdvisorService.Ask(ctx, userID, p.Name, req.Message)
	if err != nil {
		return nil, mapError(err)
	}

	return &umbralv1.AskResponse{Reply: reply}, nil
}

// GetInsight handles the GetInsight RPC.
// Without market rates the advisor answers with its fallback text.
func (s *Server) GetInsight(ctx context.Context, req *umbralv1.GetInsightRequest) (*umbralv1.GetInsightResponse, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	accounts, err := s.AccountService.ListAccounts(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	rates, err := s.Rates.GetRates(ctx)
	if err != nil && !errors.Is(err, domain.ErrRatesUnavailable) {
		return nil, mapError(err)
	}

	return &umbralv1.GetInsightResponse{Insight: s.AdvisorService.Insight(ctx, accounts, rates)}, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return id, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var invalidRate *domain.InvalidRateError
	var unknownAsset *domain.UnknownAssetTypeError

	switch {
	case errors.Is(err, identity.ErrMissingUser):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.As(err, &invalidRate),
		errors.As(err, &unknownAsset):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrRatesUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
