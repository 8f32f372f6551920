package chat

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/auphere/agent-core/core/plans"
	"github.com/auphere/agent-core/core/sse"
	"github.com/tidwall/gjson"
)

const (
	agentErrorText = "Error del agente"
	noResponseText = "No recibí respuesta del agente."
)

// runState consumes one run's classified events in arrival order and decides
// what, if anything, to surface for each. It lives for exactly one run and
// is never shared.
type runState struct {
	normalize Normalizer

	accumulated   strings.Builder
	lastEphemeral string
	hasContent    bool
}

func newRunState(normalize Normalizer) *runState {
	if normalize == nil {
		normalize = NormalizeStatusText
	}
	return &runState{normalize: normalize}
}

// stepOutcome is what applying one event produced. A non-empty sessionID is
// the backend's confirmed session id and arrives only with the final result.
type stepOutcome struct {
	result    *Result
	sessionID string
	final     bool
}

type endPayload struct {
	Content string        `json:"content"`
	Places  []plans.Place `json:"places"`
	Plan    *plans.Plan   `json:"plan"`
}

// apply advances the state machine by one event. A returned error means the
// agent reported failure and the run must abort.
func (s *runState) apply(event sse.Event) (stepOutcome, error) {
	switch event.Kind {
	case sse.KindError:
		message := gjson.GetBytes(event.Payload, "content").String()
		if message == "" {
			message = gjson.GetBytes(event.Payload, "message").String()
		}
		if message == "" {
			message = agentErrorText
		}
		return stepOutcome{}, errors.New(message)

	case sse.KindStatus, sse.KindThought, sse.KindAction:
		content := gjson.GetBytes(event.Payload, "content").String()
		if content == "" {
			return stepOutcome{}, nil
		}

		if s.hasContent {
			// Content already streaming; keep the commentary out of the
			// results but don't lose it entirely.
			logger.Debug("agent commentary after content started",
				"kind", string(event.Kind), "content", content)
			return stepOutcome{}, nil
		}

		text := s.normalize(content)
		s.lastEphemeral = text
		if text == "" {
			return stepOutcome{}, nil
		}
		return stepOutcome{result: &Result{Text: text, Ephemeral: true}}, nil

	case sse.KindToken:
		content := gjson.GetBytes(event.Payload, "content").String()
		if content == "" {
			return stepOutcome{}, nil
		}

		s.accumulated.WriteString(content)
		s.hasContent = true
		return stepOutcome{result: &Result{Text: s.accumulated.String()}}, nil

	case sse.KindEnd:
		payload := endPayload{}
		// The payload is known-valid JSON but not necessarily an object;
		// anything unexpected just finalizes with the accumulation.
		json.Unmarshal(event.Payload, &payload)

		text := payload.Content
		if text == "" {
			text = s.accumulated.String()
		}

		sessionID := gjson.GetBytes(event.Payload, "session_id").String()
		if sessionID == "" {
			sessionID = gjson.GetBytes(event.Payload, "metadata.session_id").String()
		}

		return stepOutcome{
			result: &Result{
				Text:   text,
				Places: plans.ClonePlaces(payload.Places),
				Plan:   plans.ClonePlan(payload.Plan),
			},
			sessionID: sessionID,
			final:     true,
		}, nil
	}

	return stepOutcome{}, nil
}

// finalize produces the best-effort final result for a stream that closed
// without an end event.
func (s *runState) finalize() Result {
	if s.accumulated.Len() > 0 {
		return Result{Text: s.accumulated.String()}
	}
	if s.lastEphemeral != "" {
		return Result{Text: "*" + s.lastEphemeral + "*"}
	}
	return Result{Text: noResponseText}
}
