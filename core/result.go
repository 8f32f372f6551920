package chat

import (
	"context"

	"github.com/auphere/agent-core/core/plans"
)

// Result is one unit surfaced to the rendering layer. Ephemeral results are
// progress commentary expected to be superseded once real content arrives;
// the final result of a run may carry the places and plan the agent
// assembled.
type Result struct {
	Text      string
	Ephemeral bool

	Places []plans.Place
	Plan   *plans.Plan
}

// Sink is a push-style consumer of results. Send is called once per result,
// in arrival order; returning an error stops the delivery.
type Sink interface {
	Send(ctx context.Context, result Result) error
}
