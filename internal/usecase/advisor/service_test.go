package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/umbral-backend/internal/domain"
)

// MockTextGenerator is a mock implementation of TextGenerator for testing
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockTextGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func testRates() *domain.RateSnapshot {
	return &domain.RateSnapshot{
		USDRate: decimal.RequireFromString("18.5"),
		BTCUSD:  decimal.NewFromInt(65000),
		ETHUSD:  decimal.NewFromInt(3500),
	}
}

func TestAsk_StartsSessionWithGreetingAndKeepsHistory(t *testing.T) {
	ctx := context.Background()
	gen := new(MockTextGenerator)
	gen.On("Enabled").Return(true)

	userID := uuid.New()
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req domain.GenerateRequest) bool {
		return len(req.Messages) == 2
	})).Return("Empieza con un fondo de emergencia.", nil).Once()
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req domain.GenerateRequest) bool {
		return len(req.Messages) == 4 && req.Messages[3].Text == "¿Y después?"
	})).Return("Después invierte.", nil).Once()

	svc := NewAdvisorService(gen, "chat-model", "insight-model", zerolog.Nop())

	reply, err := svc.Ask(ctx, userID, "Ana", "¿Cómo empiezo a ahorrar?")
	require.NoError(t, err)
	assert.Equal(t, "Empieza con un fondo de emergencia.", reply)

	reply, err = svc.Ask(ctx, userID, "Ana", "¿Y después?")
	require.NoError(t, err)
	assert.Equal(t, "Después invierte.", reply)

	history := svc.History(userID)
	require.Len(t, history, 5)
	assert.Equal(t, domain.ChatRoleModel, history[0].Role)
	assert.Equal(t, Greeting("Ana"), history[0].Text)
	assert.Equal(t, domain.ChatRoleUser, history[1].Role)
	assert.Equal(t, "Después invierte.", history[4].Text)

	first := gen.Calls[1].Arguments.Get(1).(domain.GenerateRequest)
	assert.Equal(t, "chat-model", first.Model)
	assert.Contains(t, first.SystemInstruction, "Ana")
	gen.AssertExpectations(t)
}

func TestAsk_GeneratorFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	gen := new(MockTextGenerator)
	gen.On("Enabled").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("503"))

	svc := NewAdvisorService(gen, "", "", zerolog.Nop())
	userID := uuid.New()

	reply, err := svc.Ask(ctx, userID, "Ana", "hola")

	require.NoError(t, err)
	assert.Equal(t, FallbackChatReply, reply)
	// a failed turn is not recorded
	assert.Len(t, svc.History(userID), 1)
}

func TestAsk_Disabled(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Enabled").Return(false)

	svc := NewAdvisorService(gen, "", "", zerolog.Nop())
	reply, err := svc.Ask(context.Background(), uuid.New(), "Ana", "hola")

	require.NoError(t, err)
	assert.Equal(t, FallbackChatReply, reply)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAsk_EmptyReply(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Enabled").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return("  ", nil)

	svc := NewAdvisorService(gen, "", "", zerolog.Nop())
	reply, err := svc.Ask(context.Background(), uuid.New(), "Ana", "hola")

	require.NoError(t, err)
	assert.Equal(t, FallbackEmptyReply, reply)
}

func TestAsk_EmptyMessageIsInvalid(t *testing.T) {
	svc := NewAdvisorService(new(MockTextGenerator), "", "", zerolog.Nop())

	_, err := svc.Ask(context.Background(), uuid.New(), "Ana", "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsk_NameChangeResetsSession(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Enabled").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return("ok", nil)

	svc := NewAdvisorService(gen, "", "", zerolog.Nop())
	userID := uuid.New()

	_, err := svc.Ask(context.Background(), userID, "Ana", "hola")
	require.NoError(t, err)
	_, err = svc.Ask(context.Background(), userID, "Ana María", "hola de nuevo")
	require.NoError(t, err)

	history := svc.History(userID)
	require.Len(t, history, 3)
	assert.Equal(t, Greeting("Ana María"), history[0].Text)
}

func TestAsk_HistoryIsBounded(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Enabled").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return("ok", nil)

	svc := NewAdvisorService(gen, "", "", zerolog.Nop())
	svc.MaxHistory = 4
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		_, err := svc.Ask(context.Background(), userID, "Ana", "mensaje")
		require.NoError(t, err)
	}

	history := svc.History(userID)
	// greeting + the last 4 messages
	assert.Len(t, history, 5)
	assert.Equal(t, domain.ChatRoleModel, history[0].Role)
	assert.Equal(t, domain.ChatRoleUser, history[1].Role)
}

func TestAsk_OddHistoryLimitKeepsAlternation(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Enabled").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return("ok", nil)

	svc := NewAdvisorService(gen, "", "", zerolog.Nop())
	svc.MaxHistory = 5
	userID := uuid.New()

	for i := 0; i < 4; i++ {
		_, err := svc.Ask(context.Background(), userID, "Ana", "mensaje")
		require.NoError(t, err)
	}

	history := svc.History(userID)
	// greeting + the last 2 exchanges
	require.Len(t, history, 5)
	for i, msg := range history {
		want := domain.ChatRoleUser
		if i%2 == 0 {
			want = domain.ChatRoleModel
		}
		assert.Equal(t, want, msg.Role, "message %d", i)
	}
}

func TestHistoryWindow(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, 0},
		{-3, 0},
		{1, 2},
		{2, 2},
		{5, 4},
		{20, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, historyWindow(tt.limit), "limit %d", tt.limit)
	}
}

func TestReset(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Enabled").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return("ok", nil)

	svc := NewAdvisorService(gen, "", "", zerolog.Nop())
	userID := uuid.New()
	_, err := svc.Ask(context.Background(), userID, "Ana", "hola")
	require.NoError(t, err)

	svc.Reset(userID)
	assert.Nil(t, svc.History(userID))
}

func TestPortfolioSummary(t *testing.T) {
	accounts := []*domain.Account{
		{Name: "BBVA", Balance: decimal.NewFromInt(15000), AssetType: domain.AssetMXN, Type: domain.AccountTypeNomina},
		{Name: "Ledger", Balance: decimal.RequireFromString("0.05"), AssetType: domain.AssetBTC, Type: domain.AccountTypeInversion},
	}

	assert.Equal(t, "BBVA: 15000 MXN (Nomina)\nLedger: 0.05 BTC (Inversion)", PortfolioSummary(accounts))
}

func TestInsight(t *testing.T) {
	accounts := []*domain.Account{
		{Name: "BBVA", Balance: decimal.NewFromInt(15000), AssetType: domain.AssetMXN, Type: domain.AccountTypeNomina},
	}

	t.Run("uses the insight model and prompt", func(t *testing.T) {
		gen := new(MockTextGenerator)
		gen.On("Enabled").Return(true)
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(req domain.GenerateRequest) bool {
			return req.Model == "insight-model" && len(req.Messages) == 1 && req.Messages[0].Role == domain.ChatRoleUser
		})).Return("**Diversifica** en USD.", nil)

		svc := NewAdvisorService(gen, "chat-model", "insight-model", zerolog.Nop())
		assert.Equal(t, "**Diversifica** en USD.", svc.Insight(context.Background(), accounts, testRates()))

		req := gen.Calls[1].Arguments.Get(1).(domain.GenerateRequest)
		assert.Contains(t, req.Messages[0].Text, "USD/MXN: 18.5")
		assert.Contains(t, req.Messages[0].Text, "BBVA: 15000 MXN (Nomina)")
	})

	t.Run("failure falls back", func(t *testing.T) {
		gen := new(MockTextGenerator)
		gen.On("Enabled").Return(true)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("timeout"))

		svc := NewAdvisorService(gen, "", "", zerolog.Nop())
		assert.Equal(t, FallbackInsight, svc.Insight(context.Background(), accounts, testRates()))
	})

	t.Run("empty reply falls back", func(t *testing.T) {
		gen := new(MockTextGenerator)
		gen.On("Enabled").Return(true)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", nil)

		svc := NewAdvisorService(gen, "", "", zerolog.Nop())
		assert.Equal(t, FallbackEmptyInsight, svc.Insight(context.Background(), accounts, testRates()))
	})

	t.Run("disabled", func(t *testing.T) {
		gen := new(MockTextGenerator)
		gen.On("Enabled").Return(false)

		svc := NewAdvisorService(gen, "", "", zerolog.Nop())
		assert.Equal(t, FallbackInsight, svc.Insight(context.Background(), accounts, testRates()))
	})
}
