package stream

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wellchemy/wellchemy/backend/internal/analysis/frequency"
	assessmentModel "github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	engineService "github.com/wellchemy/wellchemy/backend/internal/service/engine"
	"github.com/wellchemy/wellchemy/backend/internal/service/session"
)

type nullSink struct{}

func (nullSink) Save(context.Context, assessmentModel.AnswerRecord) (int64, error) {
	return 1, nil
}

func newTestHandler() *Handler {
	definitions := assessmentModel.NewMemoryStore(assessmentModel.Seed())
	eng := engineService.New(
		definitions,
		session.NewMemoryStore(),
		frequency.New(false),
		nil,
		nullSink{},
		nil,
		engineService.Options{},
	)
	return New(eng)
}

func TestStreamEmitsStartMessageEnd(t *testing.T) {
	h := newTestHandler()
	resp := httptest.NewRecorder()

	err := h.HandleStreamRequest(context.Background(), resp, "dietary", "user-1", "hello")
	if err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	if got := resp.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("content type = %q", got)
	}
	if got := resp.Header().Get("Cache-Control"); got != "no-cache" {
		t.Errorf("cache control = %q", got)
	}
	if got := resp.Header().Get("Connection"); got != "keep-alive" {
		t.Errorf("connection = %q", got)
	}

	body := resp.Body.String()
	for _, event := range []string{`"event":"start"`, `"event":"message"`, `"event":"end"`} {
		if !strings.Contains(body, event) {
			t.Errorf("stream missing %s:\n%s", event, body)
		}
	}
	if !strings.Contains(body, `"Next question"`) {
		t.Errorf("stream missing engine envelope:\n%s", body)
	}
}

func TestStreamCanceledContext(t *testing.T) {
	h := newTestHandler()
	resp := httptest.NewRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The engine may still win the race against the canceled context; either
	// way the handler must return promptly.
	_ = h.HandleStreamRequest(ctx, resp, "dietary", "user-1", "hello")

	if !strings.Contains(resp.Body.String(), `"event":"start"`) {
		t.Errorf("stream missing start event:\n%s", resp.Body.String())
	}
}
