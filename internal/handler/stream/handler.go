package stream

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	engineService "github.com/wellchemy/wellchemy/backend/internal/service/engine"
	"github.com/wellchemy/wellchemy/backend/pkg/utils"
)

// Handler delivers engine responses over Server-Sent Events, with heartbeats
// while phrasing or persistence is in flight.
type Handler struct {
	engine *engineService.Engine
}

// New creates a stream handler.
func New(eng *engineService.Engine) *Handler {
	return &Handler{engine: eng}
}

// StreamResponse is one SSE payload.
type StreamResponse struct {
	Event     string                  `json:"event"`
	SessionID string                  `json:"sessionId,omitempty"`
	Response  *engineService.Response `json:"response,omitempty"`
	Time      string                  `json:"time,omitempty"`
	Finished  bool                    `json:"finished,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// HandleStreamRequest processes one turn and streams the outcome. The
// connection stays open with heartbeats until the engine answers.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, assessmentID, sessionID, message string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:     "start",
		SessionID: sessionID,
	})

	done := make(chan engineService.Response, 1)
	go func() {
		done <- h.engine.Process(ctx, assessmentID, sessionID, message)
	}()

	ticker := time.NewTicker(8 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[stream] client disconnected, session=%s", sessionID)
			return ctx.Err()
		case t := <-ticker.C:
			utils.SendSSEChunk(w, flusher, StreamResponse{
				Event:     "heartbeat",
				SessionID: sessionID,
				Time:      t.UTC().Format(time.RFC3339),
			})
		case response := <-done:
			utils.SendSSEChunk(w, flusher, StreamResponse{
				Event:     "message",
				SessionID: sessionID,
				Response:  &response,
			})
			utils.SendSSEChunk(w, flusher, StreamResponse{
				Event:     "end",
				SessionID: sessionID,
				Finished:  true,
			})
			log.Printf("[stream] completed turn for assessment=%s, session=%s", assessmentID, sessionID)
			return nil
		}
	}
}
