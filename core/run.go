package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/auphere/agent-core/core/sse"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// errorSnippetLimit bounds how much of a failed response's body ends up in
// the error message.
const errorSnippetLimit = 500

type requestBody struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
}

// Run is one prepared conversational turn. Constructing it is cheap;
// Results does the work.
type Run struct {
	client   *Client
	messages []Message
	mode     string
}

type RunOption func(*Run)

// WithRunMode overrides the client's mode for this run only.
func WithRunMode(mode string) RunOption {
	return func(r *Run) {
		r.mode = mode
	}
}

// PromptWithStream prepares a run for the given turn messages. The last user
// turn's text is what gets sent; earlier turns are context the caller holds.
func (c *Client) PromptWithStream(messages []Message, opts ...RunOption) *Run {
	run := &Run{
		client:   c,
		messages: messages,
		mode:     c.mode,
	}
	for _, opt := range opts {
		opt(run)
	}
	return run
}

// Results returns a single-use iterator over the run's results, in wire
// order. Transport failures and agent error events are yielded through the
// error slot and end the run; malformed frames are skipped silently. When
// ctx is cancelled the sequence just stops: nothing further is yielded and
// the invalidation callback does not fire.
func (r *Run) Results(ctx context.Context) func(func(Result, error) bool) {
	return func(yield func(Result, error) bool) {
		ctx, span := tracer.Start(ctx, "prompt agent stream")
		defer span.End()
		span.SetAttributes(attribute.String("request.mode", r.mode))

		userText := lastUserText(r.messages)
		if userText == "" {
			yield(Result{Text: emptyPromptText}, nil)
			return
		}

		invalidated := false
		invalidate := func() {
			if invalidated {
				return
			}
			invalidated = true
			span.AddEvent("cache invalidation")
			if r.client.invalidate == nil {
				return
			}
			if err := r.client.invalidate(ctx); err != nil {
				// Invalidation failing doesn't fail the run.
				span.RecordError(err)
				logger.Warn("cache invalidation failed", "error", err)
			}
		}

		sessionID := r.client.sessions.Get(ctx)
		span.SetAttributes(attribute.String("request.session_id", sessionID))

		requestBodyBytes, err := json.Marshal(requestBody{
			Message:   userText,
			SessionID: sessionID,
			Mode:      r.mode,
		})
		if err != nil {
			err = fmt.Errorf("error marshalling JSON: %w", err)
			recordRunFailure(span, err)
			yield(Result{}, err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.client.baseURL+streamPath, bytes.NewBuffer(requestBodyBytes))
		if err != nil {
			err = fmt.Errorf("error creating HTTP request: %w", err)
			recordRunFailure(span, err)
			yield(Result{}, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		if r.client.credentials != nil {
			token, err := r.client.credentials.Token(ctx)
			if err != nil {
				err = fmt.Errorf("error resolving credentials: %w", err)
				recordRunFailure(span, err)
				yield(Result{}, err)
				return
			}
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		resp, err := r.client.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			err = fmt.Errorf("error sending request: %w", err)
			recordRunFailure(span, err)
			yield(Result{}, err)
			return
		}
		defer resp.Body.Close()

		span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			err := fmt.Errorf("agent request failed (%d): %s", resp.StatusCode, readErrorSnippet(resp.Body))
			recordRunFailure(span, err)
			yield(Result{}, err)
			return
		}

		state := newRunState(r.client.normalize)
		decoder := sse.NewDecoder(resp.Body)
		stopped := false
		decoder.Frames(ctx)(func(frame sse.Frame, err error) bool {
			if err != nil {
				if ctx.Err() != nil {
					stopped = true
					return false
				}
				recordRunFailure(span, err)
				yield(Result{}, err)
				stopped = true
				return false
			}

			event := sse.Classify(frame)
			if event == nil {
				logger.Debug("dropping malformed frame", "event", frame.Event)
				return true
			}

			outcome, err := state.apply(*event)
			if err != nil {
				recordRunFailure(span, err)
				yield(Result{}, err)
				stopped = true
				return false
			}

			if outcome.sessionID != "" {
				r.client.sessions.Reconcile(ctx, outcome.sessionID)
			}

			if outcome.final {
				invalidate()
				if outcome.result != nil {
					yield(*outcome.result, nil)
				}
				stopped = true
				return false
			}

			if outcome.result != nil {
				if !yield(*outcome.result, nil) {
					stopped = true
					return false
				}
			}
			return true
		})
		if stopped {
			return
		}

		// Stream closed without an end event. A cancelled run stops cold;
		// anything else counts as a completed run and gets a best-effort
		// final result.
		if ctx.Err() != nil {
			return
		}

		invalidate()
		yield(state.finalize(), nil)
	}
}

// Drain pushes every result into sink in order, returning the run's failure
// or the sink's first delivery error.
func (r *Run) Drain(ctx context.Context, sink Sink) error {
	var drainErr error
	r.Results(ctx)(func(result Result, err error) bool {
		if err != nil {
			drainErr = err
			return false
		}
		if err := sink.Send(ctx, result); err != nil {
			drainErr = fmt.Errorf("error delivering result: %w", err)
			return false
		}
		return true
	})
	return drainErr
}

func recordRunFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// readErrorSnippet reads a bounded diagnostic snippet from a failed
// response. It is best-effort: a failing read just degrades the message.
func readErrorSnippet(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, errorSnippetLimit))
	if err != nil || len(raw) == 0 {
		return "unknown error"
	}
	return string(raw)
}
