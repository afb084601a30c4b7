package assessment

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/wellchemy/wellchemy/backend/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The REST endpoints are already open cross-origin.
		return true
	},
}

// handleWebSocket runs a session over a websocket: each inbound frame is one
// turn and each outbound frame is the engine's response envelope.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "assessmentID")
	if _, ok := h.definitions.FindByID(assessmentID); !ok {
		utils.RespondError(w, http.StatusNotFound, "assessment not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for assessment=%s", assessmentID)

	for {
		var payload struct {
			SessionID string `json:"sessionId"`
			Message   string `json:"message"`
		}
		if err := conn.ReadJSON(&payload); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read failed: %v", err)
			}
			return
		}

		response := h.engine.Process(r.Context(), assessmentID, payload.SessionID, payload.Message)
		if err := conn.WriteJSON(response); err != nil {
			log.Printf("[ws] write failed: %v", err)
			return
		}
	}
}
