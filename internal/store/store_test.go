package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	"github.com/wellchemy/wellchemy/backend/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnsureMintsGuestForPlaceholder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for _, candidate := range []string{"", "default", "  "} {
		id, err := s.Ensure(ctx, candidate)
		if err != nil {
			t.Fatalf("Ensure(%q) err: %v", candidate, err)
		}
		if id == "" || id == "default" {
			t.Fatalf("Ensure(%q) returned placeholder %q", candidate, id)
		}
	}
}

func TestEnsureKeepsConcreteID(t *testing.T) {
	s := openStore(t)

	id, err := s.Ensure(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("Ensure err: %v", err)
	}
	if id != "user-42" {
		t.Fatalf("expected passthrough, got %q", id)
	}
}

func TestSaveAndHistoryRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	record := assessment.AnswerRecord{
		OwnerID: "owner-1",
		Kind:    "dietary",
		Answers: map[string]assessment.Answer{
			"Fruits": {Raw: "daily", Score: 10.5},
			"Water":  {Raw: "never", Score: 0},
		},
		Scores:  map[string]any{"riskTier": "high"},
		TakenAt: time.Now().UTC().Truncate(time.Second),
	}

	id, err := s.Save(ctx, record)
	if err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive record id, got %d", id)
	}

	records, err := s.History(ctx, "owner-1")
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.Kind != "dietary" {
		t.Errorf("kind = %q", got.Kind)
	}
	if got.Answers["Fruits"].Score != 10.5 || got.Answers["Fruits"].Raw != "daily" {
		t.Errorf("answers mangled: %+v", got.Answers)
	}
	if got.Scores["riskTier"] != "high" {
		t.Errorf("scores mangled: %+v", got.Scores)
	}
	if !got.TakenAt.Equal(record.TakenAt) {
		t.Errorf("taken at = %v, want %v", got.TakenAt, record.TakenAt)
	}
}

func TestHistoryEmptyOwner(t *testing.T) {
	s := openStore(t)

	records, err := s.History(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestEligibilityRecordWithoutScores(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, assessment.AnswerRecord{
		OwnerID: "owner-2",
		Kind:    "eligibility",
		Answers: map[string]assessment.Answer{"zip": {Raw: "33101"}},
		TakenAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Save err: %v", err)
	}

	records, err := s.History(ctx, "owner-2")
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if records[0].Scores != nil {
		t.Fatalf("expected nil scores, got %+v", records[0].Scores)
	}
}
