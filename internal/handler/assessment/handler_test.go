package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wellchemy/wellchemy/backend/internal/analysis/frequency"
	assessmentModel "github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	engineService "github.com/wellchemy/wellchemy/backend/internal/service/engine"
	"github.com/wellchemy/wellchemy/backend/internal/service/session"
)

type fakeSink struct {
	records []assessmentModel.AnswerRecord
}

func (f *fakeSink) Save(_ context.Context, record assessmentModel.AnswerRecord) (int64, error) {
	f.records = append(f.records, record)
	return int64(len(f.records)), nil
}

type fakeHistory struct {
	records []assessmentModel.AnswerRecord
	err     error
}

func (f *fakeHistory) History(_ context.Context, _ string) ([]assessmentModel.AnswerRecord, error) {
	return f.records, f.err
}

func setupRouter(history History) *chi.Mux {
	definitions := assessmentModel.NewMemoryStore(assessmentModel.Seed())
	eng := engineService.New(
		definitions,
		session.NewMemoryStore(),
		frequency.New(false),
		nil,
		&fakeSink{},
		nil,
		engineService.Options{},
	)
	handler := New(eng, definitions, history)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestListAssessments(t *testing.T) {
	r := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/assessments", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Assessments []map[string]string `json:"assessments"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(body.Assessments) != 2 {
		t.Fatalf("expected 2 assessments, got %d", len(body.Assessments))
	}
}

func TestMessageUnknownAssessment(t *testing.T) {
	r := setupRouter(nil)

	payload, _ := json.Marshal(map[string]string{"sessionId": "u1", "message": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/assessments/nope/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMessageInvalidBody(t *testing.T) {
	r := setupRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/assessments/dietary/messages", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMessageStartsSession(t *testing.T) {
	r := setupRouter(nil)

	payload, _ := json.Marshal(map[string]string{"sessionId": "user-1", "message": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/assessments/dietary/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var envelope engineService.Response
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("expected success, got %+v", envelope)
	}
	if envelope.Message != engineService.MsgNextQuestion {
		t.Errorf("message = %q", envelope.Message)
	}
	if envelope.Data == nil || envelope.Data.SessionID != "user-1" {
		t.Errorf("session id missing from response: %+v", envelope.Data)
	}
}

func TestHistoryUnavailableWithoutStore(t *testing.T) {
	r := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/users/user-1/assessments", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestHistoryReturnsRecords(t *testing.T) {
	r := setupRouter(&fakeHistory{
		records: []assessmentModel.AnswerRecord{{
			OwnerID: "user-1",
			Kind:    "dietary",
			Answers: map[string]assessmentModel.Answer{"Fruits": {Raw: "daily", Score: 10.5}},
			TakenAt: time.Now().UTC(),
		}},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/user-1/assessments", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Assessments []assessmentModel.AnswerRecord `json:"assessments"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(body.Assessments) != 1 || body.Assessments[0].Kind != "dietary" {
		t.Fatalf("unexpected history payload: %+v", body.Assessments)
	}
}

func TestHistoryStoreFailure(t *testing.T) {
	r := setupRouter(&fakeHistory{err: errors.New("disk gone")})

	req := httptest.NewRequest(http.MethodGet, "/users/user-1/assessments", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
