package chat

import (
	"encoding/json"
	"testing"

	"github.com/auphere/agent-core/core/sse"
)

func event(kind sse.Kind, payload string) sse.Event {
	return sse.Event{Kind: kind, Payload: json.RawMessage(payload)}
}

func TestApplyErrorEventAbortsWithPayloadMessage(t *testing.T) {
	state := newRunState(nil)

	_, err := state.apply(event(sse.KindError, `{"content":"boom"}`))
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected error %q, got %v", "boom", err)
	}
}

func TestApplyErrorEventFallsBackToGenericMessage(t *testing.T) {
	state := newRunState(nil)

	_, err := state.apply(event(sse.KindError, `{}`))
	if err == nil || err.Error() != agentErrorText {
		t.Fatalf("expected generic agent error, got %v", err)
	}
}

func TestApplyStatusYieldsNormalizedEphemeralResult(t *testing.T) {
	state := newRunState(nil)

	outcome, err := state.apply(event(sse.KindStatus, `{"content":"🔍 Buscando..."}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.result == nil || !outcome.result.Ephemeral {
		t.Fatalf("expected an ephemeral result, got %+v", outcome.result)
	}
	if outcome.result.Text != "Buscando..." {
		t.Fatalf("expected glyph-stripped text, got %q", outcome.result.Text)
	}
}

func TestApplyStatusThatNormalizesToNothingYieldsNoResult(t *testing.T) {
	state := newRunState(nil)

	outcome, err := state.apply(event(sse.KindStatus, `{"content":"🧠"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.result != nil {
		t.Fatalf("expected no result for glyph-only status, got %+v", outcome.result)
	}
}

func TestApplyStatusAfterContentIsDiagnosticsOnly(t *testing.T) {
	state := newRunState(nil)

	if _, err := state.apply(event(sse.KindToken, `{"content":"Hola"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outcome, err := state.apply(event(sse.KindStatus, `{"content":"🎯 Pensando"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.result != nil {
		t.Fatalf("expected no ephemeral result after content started, got %+v", outcome.result)
	}
}

func TestApplyTokenAccumulatesText(t *testing.T) {
	state := newRunState(nil)

	first, _ := state.apply(event(sse.KindToken, `{"content":"Hola"}`))
	second, _ := state.apply(event(sse.KindToken, `{"content":" mundo"}`))

	if first.result == nil || first.result.Text != "Hola" {
		t.Fatalf("unexpected first token result: %+v", first.result)
	}
	if second.result == nil || second.result.Text != "Hola mundo" {
		t.Fatalf("unexpected accumulated result: %+v", second.result)
	}
	if first.result.Ephemeral || second.result.Ephemeral {
		t.Fatalf("token results must not be ephemeral")
	}
}

func TestApplyEndPrefersExplicitContent(t *testing.T) {
	state := newRunState(nil)
	state.apply(event(sse.KindToken, `{"content":"parcial"}`))

	outcome, err := state.apply(event(sse.KindEnd, `{"content":"Listo"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.final {
		t.Fatalf("expected a final outcome")
	}
	if outcome.result.Text != "Listo" {
		t.Fatalf("expected explicit content to win, got %q", outcome.result.Text)
	}
}

func TestApplyEndWithoutContentUsesAccumulation(t *testing.T) {
	state := newRunState(nil)
	state.apply(event(sse.KindToken, `{"content":"Hola"}`))
	state.apply(event(sse.KindToken, `{"content":" mundo"}`))

	outcome, _ := state.apply(event(sse.KindEnd, `{}`))
	if outcome.result.Text != "Hola mundo" {
		t.Fatalf("expected accumulated text, got %q", outcome.result.Text)
	}
}

func TestApplyEndCarriesPlacesAndPlan(t *testing.T) {
	state := newRunState(nil)

	outcome, _ := state.apply(event(sse.KindEnd,
		`{"content":"Listo","places":[{"id":"p1","name":"Bar Mut","category":"bar"}],"plan":{"id":"pl1","title":"Noche en Born","city":"Barcelona"}}`))

	if len(outcome.result.Places) != 1 || outcome.result.Places[0].Name != "Bar Mut" {
		t.Fatalf("unexpected places: %+v", outcome.result.Places)
	}
	if outcome.result.Plan == nil || outcome.result.Plan.Title != "Noche en Born" {
		t.Fatalf("unexpected plan: %+v", outcome.result.Plan)
	}
}

func TestApplyEndResolvesSessionIDFromPayloadOrMetadata(t *testing.T) {
	state := newRunState(nil)
	outcome, _ := state.apply(event(sse.KindEnd, `{"session_id":"s-1"}`))
	if outcome.sessionID != "s-1" {
		t.Fatalf("expected session id s-1, got %q", outcome.sessionID)
	}

	state = newRunState(nil)
	outcome, _ = state.apply(event(sse.KindEnd, `{"metadata":{"session_id":"s-2"}}`))
	if outcome.sessionID != "s-2" {
		t.Fatalf("expected metadata session id s-2, got %q", outcome.sessionID)
	}
}

func TestApplyIgnoresUnknownKinds(t *testing.T) {
	state := newRunState(nil)

	outcome, err := state.apply(event(sse.KindMessage, `{"content":"ruido"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.result != nil || outcome.final {
		t.Fatalf("expected unknown kinds to be ignored, got %+v", outcome)
	}
}

func TestFinalizePrefersAccumulationThenEphemeralThenFixedText(t *testing.T) {
	state := newRunState(nil)
	state.apply(event(sse.KindToken, `{"content":"Hola"}`))
	if got := state.finalize(); got.Text != "Hola" {
		t.Fatalf("expected accumulated fallback, got %q", got.Text)
	}

	state = newRunState(nil)
	state.apply(event(sse.KindStatus, `{"content":"Buscando"}`))
	if got := state.finalize(); got.Text != "*Buscando*" {
		t.Fatalf("expected emphasized ephemeral fallback, got %q", got.Text)
	}

	state = newRunState(nil)
	if got := state.finalize(); got.Text != noResponseText {
		t.Fatalf("expected fixed no-response fallback, got %q", got.Text)
	}
}
