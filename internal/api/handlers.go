package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"citizensera.com/sera/internal/catalog"
	"citizensera.com/sera/internal/core"
	"citizensera.com/sera/internal/store"
)

// CatalogStore is the read side of the benefit catalog.
type CatalogStore interface {
	ListBenefits(ctx context.Context, f store.BenefitFilter) ([]catalog.Benefit, error)
	GetBenefit(ctx context.Context, id string) (*catalog.Benefit, error)
	Ping(ctx context.Context) error
}

type APIHandler struct {
	sessions       *core.SessionManager
	catalog        CatalogStore
	logger         *zap.Logger
	allowedOrigins []string
}

func NewAPIHandler(sessions *core.SessionManager, catalog CatalogStore, logger *zap.Logger, allowedOrigins []string) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		sessions:       sessions,
		catalog:        catalog,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.catalog.Ping(ctx); err != nil {
		h.logger.Error("catalog ping failed", zap.Error(err))
		JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	JSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": h.sessions.Len()})
}

// Catalog

type BenefitListResponse struct {
	Benefits          []catalog.Benefit `json:"benefits"`
	Count             int               `json:"count"`
	TotalValue        int               `json:"total_value"`
	TotalValueDisplay string            `json:"total_value_display"`
}

func (h *APIHandler) ListBenefitsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	category := catalog.Category(strings.ToLower(q.Get("category")))
	if category != "" && !catalog.ValidCategory(category) {
		Error(w, http.StatusBadRequest, "unknown category: "+string(category))
		return
	}
	sort, ok := store.ParseSortOrder(q.Get("sort"))
	if !ok {
		Error(w, http.StatusBadRequest, "sort must be one of match, value, deadline")
		return
	}

	benefits, err := h.catalog.ListBenefits(r.Context(), store.BenefitFilter{
		Category: category,
		Query:    q.Get("q"),
		Sort:     sort,
	})
	if err != nil {
		h.logger.Error("failed to list benefits", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to list benefits")
		return
	}

	total := store.TotalValue(benefits)
	JSON(w, http.StatusOK, BenefitListResponse{
		Benefits:          benefits,
		Count:             len(benefits),
		TotalValue:        total,
		TotalValueDisplay: catalog.FormatAUD(total),
	})
}

func (h *APIHandler) GetBenefitHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "benefitID")
	b, err := h.catalog.GetBenefit(r.Context(), id)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("failed to get benefit", zap.String("benefit_id", id), zap.Error(err))
		}
		Error(w, status, "benefit not found")
		return
	}
	JSON(w, http.StatusOK, b)
}

func (h *APIHandler) RightsHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, catalog.Rights())
}

func (h *APIHandler) CitizenshipHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, catalog.Citizenship())
}

func (h *APIHandler) SuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string][]string{"questions": catalog.SuggestedQuestions()})
}

// Sessions

type sessionCtxKey struct{}

// SessionMiddleware resolves {sessionID} and stores the session in the
// request context.
func (h *APIHandler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			Error(w, errorStatus(err), "session not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionCtxKey{}, s)))
	})
}

func sessionFrom(r *http.Request) *core.Session {
	s, _ := r.Context().Value(sessionCtxKey{}).(*core.Session)
	return s
}

type SessionResponse struct {
	ID           string                             `json:"id"`
	Profile      core.Profile                       `json:"profile"`
	CreatedAt    time.Time                          `json:"created_at"`
	Composing    bool                               `json:"composing"`
	Transcript   []core.Message                     `json:"transcript"`
	Applications map[string]core.BenefitApplication `json:"applications"`
}

func newSessionResponse(s *core.Session) SessionResponse {
	return SessionResponse{
		ID:           s.ID,
		Profile:      s.Profile,
		CreatedAt:    s.CreatedAt,
		Composing:    s.Chat.IsComposing(),
		Transcript:   s.Chat.Transcript(),
		Applications: s.Applications.Applications(),
	}
}

func (h *APIHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var profile core.Profile
	if err := decodeBody(r, &profile, true); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s := h.sessions.Create(profile)
	JSON(w, http.StatusCreated, newSessionResponse(s))
}

func (h *APIHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, newSessionResponse(sessionFrom(r)))
}

func (h *APIHandler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(sessionFrom(r).ID); err != nil {
		Error(w, errorStatus(err), "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type TranscriptResponse struct {
	Messages  []core.Message `json:"messages"`
	Composing bool           `json:"composing"`
}

func (h *APIHandler) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	JSON(w, http.StatusOK, TranscriptResponse{
		Messages:  s.Chat.Transcript(),
		Composing: s.Chat.IsComposing(),
	})
}

// CommandResponse acknowledges a fire-and-forget command. Ignored input is
// reported with Accepted false rather than an error status.
type CommandResponse struct {
	Accepted    bool                     `json:"accepted"`
	Composing   *bool                    `json:"composing,omitempty"`
	Application *core.BenefitApplication `json:"application,omitempty"`
}

type PostMessageRequest struct {
	Text string `json:"text"`
}

func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req PostMessageRequest
	if err := decodeBody(r, &req, false); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s := sessionFrom(r)
	accepted := s.Chat.PostUserMessage(req.Text)
	composing := s.Chat.IsComposing()
	JSON(w, http.StatusAccepted, CommandResponse{Accepted: accepted, Composing: &composing})
}

type QuickActionRequest struct {
	ActionKey string `json:"action_key"`
	Label     string `json:"label"`
}

func (h *APIHandler) QuickActionHandler(w http.ResponseWriter, r *http.Request) {
	var req QuickActionRequest
	if err := decodeBody(r, &req, false); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s := sessionFrom(r)
	accepted := s.Chat.PostQuickAction(req.ActionKey, req.Label)
	composing := s.Chat.IsComposing()
	JSON(w, http.StatusAccepted, CommandResponse{Accepted: accepted, Composing: &composing})
}

func (h *APIHandler) ListApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"applications": sessionFrom(r).Applications.Applications()})
}

type StartApplicationRequest struct {
	BenefitID string `json:"benefit_id"`
}

func (h *APIHandler) StartApplicationHandler(w http.ResponseWriter, r *http.Request) {
	var req StartApplicationRequest
	if err := decodeBody(r, &req, false); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.BenefitID == "" {
		Error(w, http.StatusBadRequest, "benefit_id is required")
		return
	}
	app, created, err := sessionFrom(r).Applications.StartApplication(req.BenefitID)
	if err != nil {
		Error(w, errorStatus(err), "benefit not found")
		return
	}
	JSON(w, http.StatusAccepted, CommandResponse{Accepted: created, Application: &app})
}

func (h *APIHandler) SubmitDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "benefitID")
	if _, ok := catalog.LookupBenefit(id); !ok {
		Error(w, http.StatusNotFound, "benefit not found")
		return
	}
	resp := CommandResponse{}
	app, accepted := sessionFrom(r).Applications.SubmitDocuments(id)
	resp.Accepted = accepted
	if app.BenefitID != "" {
		resp.Application = &app
	}
	JSON(w, http.StatusAccepted, resp)
}
