package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	"github.com/wellchemy/wellchemy/backend/internal/scoring"
	"github.com/wellchemy/wellchemy/backend/internal/service/session"
)

// Normalizer maps a free-text frequency answer to its numeric score.
type Normalizer interface {
	Normalize(raw string) float64
}

// Phraser is the text-generation collaborator. Its output phrases questions
// but never affects control flow; failures degrade to the direct question.
type Phraser interface {
	Phrase(ctx context.Context, system, query string) (string, error)
}

// ResultSink persists a finished assessment record.
type ResultSink interface {
	Save(ctx context.Context, record assessment.AnswerRecord) (int64, error)
}

// Identity resolves absent or placeholder session identifiers to a concrete
// owner id.
type Identity interface {
	Ensure(ctx context.Context, candidate string) (string, error)
}

// Options tunes collaborator timeouts. Zero values pick the defaults.
type Options struct {
	PhraseTimeout time.Duration
	SaveTimeout   time.Duration
}

func (o Options) withDefaults() Options {
	if o.PhraseTimeout <= 0 {
		o.PhraseTimeout = 10 * time.Second
	}
	if o.SaveTimeout <= 0 {
		o.SaveTimeout = 10 * time.Second
	}
	return o
}

// Engine is the conversational state machine: it advances a session through
// its catalog one message at a time, records normalized answers, splices
// branches, and finalizes completed sessions through the result sink.
type Engine struct {
	definitions assessment.Store
	sessions    session.Store
	locks       *session.KeyedLock
	normalizer  Normalizer
	phraser     Phraser
	sink        ResultSink
	identity    Identity
	opts        Options
}

// New wires the engine to its collaborators. phraser and identity may be
// nil: questions then go out unphrased and guest ids are minted locally.
func New(definitions assessment.Store, sessions session.Store, normalizer Normalizer, phraser Phraser, sink ResultSink, identity Identity, opts Options) *Engine {
	return &Engine{
		definitions: definitions,
		sessions:    sessions,
		locks:       session.NewKeyedLock(),
		normalizer:  normalizer,
		phraser:     phraser,
		sink:        sink,
		identity:    identity,
		opts:        opts.withDefaults(),
	}
}

// Process handles one inbound message for a session and returns the
// response envelope. Messages for the same session are serialized; state is
// mutated only after the collaborator calls that gate a transition succeed.
func (e *Engine) Process(ctx context.Context, definitionID, sessionID, message string) Response {
	def, ok := e.definitions.FindByID(definitionID)
	if !ok {
		return Response{
			Success: false,
			Message: MsgError,
			Data:    &Data{Error: "unknown assessment: " + definitionID},
		}
	}

	owner, err := e.resolveOwner(ctx, sessionID)
	if err != nil {
		log.Printf("[engine] identity resolution failed: %v", err)
		return Response{Success: false, Message: MsgError, Data: &Data{Error: err.Error()}}
	}

	key := def.ID + "/" + owner
	release := e.locks.Acquire(key)
	defer release()

	state, exists := e.sessions.Get(ctx, key)
	if !exists {
		// First contact starts a fresh traversal; whatever the message says,
		// nothing has been asked yet, so nothing is consumed as an answer.
		state = assessment.NewSessionState(owner, def.ID)
		e.sessions.Put(ctx, key, state)
		return e.ask(ctx, def, state, true)
	}

	if state.Stage == assessment.StageDone {
		// An earlier finalization failed; retry it without re-answering.
		return e.finalize(ctx, def, key, state)
	}

	msg := strings.TrimSpace(message)
	if isClarification(msg) {
		return e.clarify(def, state)
	}

	questions := def.Catalog.StageQuestions(state.Stage, state.BranchID)
	if state.Position >= len(questions) {
		return Response{Success: false, Message: MsgNoActiveSession}
	}

	answer := assessment.Answer{Raw: msg}
	if def.Normalized {
		answer.Score = e.normalizer.Normalize(msg)
	}
	state.Answers[questions[state.Position].Key] = answer
	state.Position++

	if state.Position == len(questions) {
		advanceStage(def, &state)
	}

	e.sessions.Put(ctx, key, state)

	if state.Stage == assessment.StageDone {
		return e.finalize(ctx, def, key, state)
	}
	return e.ask(ctx, def, state, false)
}

// resolveOwner turns an absent or placeholder session id into a concrete
// one via the identity collaborator.
func (e *Engine) resolveOwner(ctx context.Context, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if e.identity != nil {
		return e.identity.Ensure(ctx, candidate)
	}
	if candidate == "" || candidate == "default" {
		return uuid.NewString(), nil
	}
	return candidate, nil
}

// advanceStage moves the session to the next non-empty stage, resolving the
// branch table once when the initial stage completes. The BranchAdded flag
// keeps the splice idempotent per session.
func advanceStage(def assessment.Definition, state *assessment.SessionState) {
	for {
		if state.Stage == assessment.StageInitial && !state.BranchAdded && def.Catalog.TriggerKey != "" {
			trigger := strings.ToLower(strings.TrimSpace(state.Answers[def.Catalog.TriggerKey].Raw))
			if branchID, ok := def.Catalog.ResolveBranch(trigger); ok {
				state.BranchID = branchID
				state.BranchAdded = true
			}
		}

		state.Stage = def.Catalog.NextStage(state.Stage, state.BranchID != "")
		state.Position = 0

		if state.Stage == assessment.StageDone {
			return
		}
		if len(def.Catalog.StageQuestions(state.Stage, state.BranchID)) > 0 {
			return
		}
	}
}

// ask emits the current question, phrased by the collaborator when one is
// configured.
func (e *Engine) ask(ctx context.Context, def assessment.Definition, state assessment.SessionState, firstTurn bool) Response {
	questions := def.Catalog.StageQuestions(state.Stage, state.BranchID)
	question := questions[state.Position]

	return Response{
		Success: true,
		Message: MsgNextQuestion,
		Data: &Data{
			Response:  e.phrase(ctx, def, question, firstTurn),
			SessionID: state.SessionID,
		},
	}
}

// phrase runs the question through the text-generation collaborator with a
// timeout; any failure degrades to the direct question text.
func (e *Engine) phrase(ctx context.Context, def assessment.Definition, question assessment.Question, firstTurn bool) string {
	fallback := directQuestion(question)
	if e.phraser == nil {
		return fallback
	}

	system := def.FollowUpSystem
	if firstTurn && def.FirstTurnSystem != "" {
		system = def.FirstTurnSystem
	} else {
		system += "\n\n" + randomStyle()
	}
	query := fmt.Sprintf("Here is the next question you must ask:\n\n%q", fallback)

	pctx, cancel := context.WithTimeout(ctx, e.opts.PhraseTimeout)
	defer cancel()

	text, err := e.phraser.Phrase(pctx, system, query)
	if err != nil || strings.TrimSpace(text) == "" {
		log.Printf("[engine] phrasing failed for %s/%s, using direct question: %v", def.ID, question.Key, err)
		return fallback
	}
	return text
}

func directQuestion(question assessment.Question) string {
	if question.Examples != "" {
		return question.Prompt + " (" + question.Examples + ")"
	}
	return question.Prompt
}

// finalize computes scores, persists the record, and closes the session.
// On a sink failure the stored state is left intact (stage done) so the
// caller can retry finalization; exactly one record is ever written.
func (e *Engine) finalize(ctx context.Context, def assessment.Definition, key string, state assessment.SessionState) Response {
	answers := make(map[string]assessment.Answer, len(state.Answers))
	for k, v := range state.Answers {
		answers[k] = v
	}

	record := assessment.AnswerRecord{
		OwnerID: state.SessionID,
		Kind:    def.ID,
		Answers: answers,
		TakenAt: time.Now().UTC(),
	}

	var result *scoring.ScoreResult
	if def.Scored {
		perCategory := make(map[string]float64, len(state.Answers))
		for k, a := range state.Answers {
			perCategory[k] = a.Score
		}
		scored := scoring.Score(perCategory, def.Sets)
		result = &scored
		record.Scores = scored.Payload()
	}

	sctx, cancel := context.WithTimeout(ctx, e.opts.SaveTimeout)
	defer cancel()

	recordID, err := e.sink.Save(sctx, record)
	if err != nil {
		log.Printf("[engine] finalization save failed for %s: %v", key, err)
		return Response{
			Success: false,
			Message: MsgError,
			Data:    &Data{SessionID: state.SessionID, Error: err.Error()},
		}
	}

	e.sessions.Delete(ctx, key)
	log.Printf("[engine] session %s finalized, record=%d", key, recordID)

	return Response{
		Success: true,
		Message: completeMessage(def),
		Data: &Data{
			Response:  e.summary(def, state, result),
			SessionID: state.SessionID,
			Scores:    result,
			RecordID:  recordID,
		},
	}
}

func completeMessage(def assessment.Definition) string {
	if def.Scored {
		return MsgAssessmentComplete
	}
	return MsgEligibilityComplete
}
