package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	umbralv1 "github.com/simaogato/umbral-backend/internal/adapter/grpc/umbral/v1"
)

// DefaultProjectionYears is the horizon used when the projection query omits years
const DefaultProjectionYears = 10

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.GetProfile(r.Context(), &umbralv1.GetProfileRequest{})
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req umbralv1.UpdateProfileRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.service.UpdateProfile(r.Context(), &req)
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleToggleCurrency(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.ToggleCurrency(r.Context(), &umbralv1.ToggleCurrencyRequest{})
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleListEnvelopes(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.ListEnvelopes(r.Context(), &umbralv1.ListEnvelopesRequest{})
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleCreateEnvelope(w http.ResponseWriter, r *http.Request) {
	var req umbralv1.CreateEnvelopeRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.service.CreateEnvelope(r.Context(), &req)
	s.respond(w, http.StatusCreated, resp, err)
}

func (s *Server) handleUpdateEnvelope(w http.ResponseWriter, r *http.Request) {
	var req umbralv1.UpdateEnvelopeRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Id = chi.URLParam(r, "id")
	resp, err := s.service.UpdateEnvelope(r.Context(), &req)
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleDeleteEnvelope(w http.ResponseWriter, r *http.Request) {
	_, err := s.service.DeleteEnvelope(r.Context(), &umbralv1.DeleteEnvelopeRequest{Id: chi.URLParam(r, "id")})
	s.respondNoContent(w, err)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.ListAccounts(r.Context(), &umbralv1.ListAccountsRequest{})
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req umbralv1.CreateAccountRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.service.CreateAccount(r.Context(), &req)
	s.respond(w, http.StatusCreated, resp, err)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req umbralv1.UpdateAccountRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Id = chi.URLParam(r, "id")
	resp, err := s.service.UpdateAccount(r.Context(), &req)
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	_, err := s.service.DeleteAccount(r.Context(), &umbralv1.DeleteAccountRequest{Id: chi.URLParam(r, "id")})
	s.respondNoContent(w, err)
}

func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.GetRates(r.Context(), &umbralv1.GetRatesRequest{})
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.GetDashboard(r.Context(), &umbralv1.GetDashboardRequest{})
	s.respond(w, http.StatusOK, resp, err)
}

// handleGetProjection reads extra_monthly, annual_return_pct and years from the query string
func (s *Server) handleGetProjection(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &umbralv1.GetProjectionRequest{
		ExtraMonthly:    query.Get("extra_monthly"),
		AnnualReturnPct: query.Get("annual_return_pct"),
		Years:           DefaultProjectionYears,
	}

	if raw := query.Get("years"); raw != "" {
		years, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid years: %q", raw))
			return
		}
		req.Years = int32(years)
	}

	resp, err := s.service.GetProjection(r.Context(), req)
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req umbralv1.AskRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.service.Ask(r.Context(), &req)
	s.respond(w, http.StatusOK, resp, err)
}

func (s *Server) handleGetInsight(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.GetInsight(r.Context(), &umbralv1.GetInsightRequest{})
	s.respond(w, http.StatusOK, resp, err)
}

// HTTP helpers

// decode reads a JSON body into v, writing a 400 response on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			s.writeError(w, http.StatusBadRequest, "request body is empty")
			return false
		}
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, okStatus int, resp any, err error) {
	if err != nil {
		s.writeStatusError(w, err)
		return
	}
	s.writeJSON(w, okStatus, resp)
}

func (s *Server) respondNoContent(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeStatusError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeStatusError writes a gRPC status error with its matching HTTP status
func (s *Server) writeStatusError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	code := httpStatus(st.Code())
	if code >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("code", st.Code().String()).Msg("Request failed")
	}
	s.writeError(w, code, st.Message())
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, map[string]string{
		"error": message,
	})
}

// httpStatus maps a gRPC status code to the HTTP status returned to the browser
func httpStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Canceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
