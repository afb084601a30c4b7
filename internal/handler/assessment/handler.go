package assessment

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	assessmentModel "github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	engineService "github.com/wellchemy/wellchemy/backend/internal/service/engine"
	"github.com/wellchemy/wellchemy/backend/pkg/utils"
)

// History lists previously persisted results for an owner.
type History interface {
	History(ctx context.Context, ownerID string) ([]assessmentModel.AnswerRecord, error)
}

// Handler exposes the assessment catalog and the conversational endpoint.
type Handler struct {
	engine      *engineService.Engine
	definitions assessmentModel.Store
	history     History
}

// New creates the assessment handler. history may be nil when no persistent
// store is attached.
func New(eng *engineService.Engine, definitions assessmentModel.Store, history History) *Handler {
	return &Handler{
		engine:      eng,
		definitions: definitions,
		history:     history,
	}
}

// RegisterRoutes mounts the assessment endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/assessments", h.handleList)
	r.Post("/assessments/{assessmentID}/messages", h.handleMessage)
	r.Get("/assessments/{assessmentID}/ws", h.handleWebSocket)
	r.Get("/users/{userID}/assessments", h.handleHistory)
}

// handleList returns the available assessment definitions.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	definitions := h.definitions.List()

	items := make([]map[string]string, 0, len(definitions))
	for _, def := range definitions {
		items = append(items, map[string]string{
			"id":   def.ID,
			"name": def.Name,
		})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"assessments": items})
}

// handleMessage advances a session by one turn.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "assessmentID")
	if _, ok := h.definitions.FindByID(assessmentID); !ok {
		utils.RespondError(w, http.StatusNotFound, "assessment not found")
		return
	}

	var payload struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response := h.engine.Process(r.Context(), assessmentID, payload.SessionID, payload.Message)
	utils.RespondJSON(w, http.StatusOK, response)
}

// handleHistory returns the persisted results for a user.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "history unavailable")
		return
	}

	userID := chi.URLParam(r, "userID")
	records, err := h.history.History(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	if records == nil {
		records = []assessmentModel.AnswerRecord{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"assessments": records})
}
