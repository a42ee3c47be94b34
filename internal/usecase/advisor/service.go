package advisor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// Fallback replies used whenever the text generator is unavailable or fails
const (
	FallbackChatReply    = "Lo siento, tengo problemas para conectarme con el servicio financiero. Por favor intenta más tarde."
	FallbackEmptyReply   = "No estoy seguro de cómo responder a eso en este momento."
	FallbackInsight      = "Mantén tu portafolio diversificado para reducir la volatilidad."
	FallbackEmptyInsight = "Revisa la diversificación de tu portafolio para mitigar riesgos."
)

// DefaultMaxHistory bounds the messages kept per chat session, greeting excluded
const DefaultMaxHistory = 20

// AdvisorService answers chat messages and produces portfolio insights
type AdvisorService struct {
	Generator    domain.TextGenerator
	ChatModel    string
	InsightModel string
	MaxHistory   int

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	log      zerolog.Logger
}

// session is the chat state of one user
type session struct {
	mu       sync.Mutex
	userName string
	greeting domain.ChatMessage
	history  []domain.ChatMessage
}

// NewAdvisorService creates a new AdvisorService instance.
// Empty model names select the generator's default model.
func NewAdvisorService(generator domain.TextGenerator, chatModel, insightModel string, log zerolog.Logger) *AdvisorService {
	return &AdvisorService{
		Generator:    generator,
		ChatModel:    chatModel,
		InsightModel: insightModel,
		MaxHistory:   DefaultMaxHistory,
		sessions:     make(map[uuid.UUID]*session),
		log:          log.With().Str("component", "advisor").Logger(),
	}
}

// SystemInstruction is the persona given to the model for a user's chat
func SystemInstruction(userName string) string {
	return fmt.Sprintf(`Eres Umbral AI, un asistente financiero empático y útil integrado en la aplicación "Umbral Finanzas".
Tu objetivo es ayudar al usuario %s a alcanzar sus metas financieras, especialmente su "Primer Millón".
El usuario puede cambiar entre MXN (Pesos Mexicanos) y USD (Dólares). Adapta tus respuestas a la moneda que el usuario mencione o asume la configurada.
Usa un tono alentador, conciso y financieramente prudente.
Usa markdown para formatear tus respuestas (negritas, listas, etc.).
Idioma: Español.`, userName)
}

// Greeting is the first model message of every chat session
func Greeting(userName string) string {
	return fmt.Sprintf("Hola %s, soy Umbral AI. ¿En qué puedo ayudarte con tus finanzas hoy?", userName)
}

// Ask sends a chat message on the user's session and returns the reply.
// Generator failures degrade to a fallback reply; only an empty message is an error.
//
// A session starts with the greeting and is reset when the user's display name changes.
func (s *AdvisorService) Ask(ctx context.Context, userID uuid.UUID, userName, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message cannot be empty", domain.ErrInvalidInput)
	}
	if userName == "" {
		userName = "Usuario"
	}

	sess := s.session(userID, userName)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !s.Generator.Enabled() {
		return FallbackChatReply, nil
	}

	userMsg := domain.ChatMessage{Role: domain.ChatRoleUser, Text: message}
	messages := make([]domain.ChatMessage, 0, len(sess.history)+2)
	messages = append(messages, sess.greeting)
	messages = append(messages, sess.history...)
	messages = append(messages, userMsg)

	reply, err := s.Generator.Generate(ctx, domain.GenerateRequest{
		Model:             s.ChatModel,
		SystemInstruction: SystemInstruction(userName),
		Messages:          messages,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("Chat generation failed")
		return FallbackChatReply, nil
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackEmptyReply, nil
	}

	sess.history = append(sess.history, userMsg, domain.ChatMessage{Role: domain.ChatRoleModel, Text: reply})
	if keep := historyWindow(s.MaxHistory); keep > 0 && len(sess.history) > keep {
		sess.history = append([]domain.ChatMessage(nil), sess.history[len(sess.history)-keep:]...)
	}

	return reply, nil
}

// historyWindow rounds limit down to whole user/model exchanges so a trimmed
// history always opens with a user message after the greeting
func historyWindow(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit < 2 {
		return 2
	}
	return limit - limit%2
}

// History returns a copy of the user's chat, greeting first
func (s *AdvisorService) History(userID uuid.UUID) []domain.ChatMessage {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]domain.ChatMessage, 0, len(sess.history)+1)
	out = append(out, sess.greeting)
	return append(out, sess.history...)
}

// Reset drops the user's chat session
func (s *AdvisorService) Reset(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *AdvisorService) session(userID uuid.UUID, userName string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.userName != userName {
		sess = &session{
			userName: userName,
			greeting: domain.ChatMessage{Role: domain.ChatRoleModel, Text: Greeting(userName)},
		}
		s.sessions[userID] = sess
	}
	return sess
}

// PortfolioSummary renders one line per account: "name: balance asset (type)"
func PortfolioSummary(accounts []*domain.Account) string {
	lines := make([]string, 0, len(accounts))
	for _, a := range accounts {
		lines = append(lines, fmt.Sprintf("%s: %s %s (%s)", a.Name, a.Balance.String(), a.AssetType, a.Type))
	}
	return strings.Join(lines, "\n")
}

// InsightPrompt builds the prompt for a short portfolio recommendation
func InsightPrompt(accounts []*domain.Account, rates *domain.RateSnapshot) string {
	return fmt.Sprintf(`Actúa como un asesor financiero experto y breve.
Datos del mercado actual:
- USD/MXN: %s
- BTC/USD: %s
- ETH/USD: %s

Portafolio del usuario:
%s

Dame UN SOLO párrafo corto (máximo 40 palabras) con una recomendación "insight" inteligente.
Ejemplos: "¿Conviene pasar MXN a USD?", "¿Es momento de acumular BTC?", "¿Diversificar?".
Sé directo, usa negritas para lo importante. No des consejos legales, solo observaciones financieras astutas basadas en si el usuario tiene mucho efectivo, o mucha cripto, etc.`,
		rates.USDRate.String(), rates.BTCUSD.String(), rates.ETHUSD.String(), PortfolioSummary(accounts))
}

// Insight returns a short recommendation for the portfolio, or a fallback text
func (s *AdvisorService) Insight(ctx context.Context, accounts []*domain.Account, rates *domain.RateSnapshot) string {
	if !s.Generator.Enabled() || rates == nil {
		return FallbackInsight
	}

	reply, err := s.Generator.Generate(ctx, domain.GenerateRequest{
		Model: s.InsightModel,
		Messages: []domain.ChatMessage{
			{Role: domain.ChatRoleUser, Text: InsightPrompt(accounts, rates)},
		},
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Insight generation failed")
		return FallbackInsight
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackEmptyInsight
	}
	return reply
}
