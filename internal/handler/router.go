package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	assessmentHandler "github.com/wellchemy/wellchemy/backend/internal/handler/assessment"
	"github.com/wellchemy/wellchemy/backend/internal/handler/stream"
	middlewarePkg "github.com/wellchemy/wellchemy/backend/internal/middleware"
	assessmentModel "github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	engineService "github.com/wellchemy/wellchemy/backend/internal/service/engine"
	"github.com/wellchemy/wellchemy/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(definitions assessmentModel.Store, eng *engineService.Engine, history assessmentHandler.History) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	h := assessmentHandler.New(eng, definitions, history)
	streamHandler := stream.New(eng)

	r.Route("/api", func(api chi.Router) {
		h.RegisterRoutes(api)

		// Streaming variant of the messages endpoint for clients that want
		// heartbeats while the model phrases the next question.
		api.Get("/assessments/{assessmentID}/stream", func(w http.ResponseWriter, r *http.Request) {
			assessmentID := chi.URLParam(r, "assessmentID")
			sessionID := r.URL.Query().Get("sessionId")
			message := r.URL.Query().Get("message")

			if _, ok := definitions.FindByID(assessmentID); !ok {
				utils.RespondError(w, http.StatusNotFound, "assessment not found")
				return
			}
			if message == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, assessmentID, sessionID, message); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
