package chat

import (
	"context"
	"sync"
)

// ResultBuffer bridges push-style delivery and pull-style consumption: a run
// drains into it from one goroutine while a consumer iterates from another.
// It implements Sink.
type ResultBuffer struct {
	mu              sync.Mutex
	results         []Result
	resultsConsumed int
	closed          bool
	updateSignal    chan struct{}
	cleared         bool
}

func NewResultBuffer() *ResultBuffer {
	return &ResultBuffer{
		updateSignal: make(chan struct{}, 1),
	}
}

func (b *ResultBuffer) Add(result Result) {
	b.mu.Lock()
	b.results = append(b.results, result)
	b.mu.Unlock()
	b.signalUpdate()
}

// Send implements Sink.
func (b *ResultBuffer) Send(_ context.Context, result Result) error {
	b.Add(result)
	return nil
}

// Close marks the buffer complete; iteration ends once the backlog drains.
func (b *ResultBuffer) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.signalUpdate()
}

// Results iterates results in arrival order, blocking while the buffer is
// open and empty.
func (b *ResultBuffer) Results(yield func(Result) bool) {
	for {
		b.mu.Lock()
		if b.cleared {
			b.mu.Unlock()
			return
		}

		if b.resultsConsumed < len(b.results) {
			result := b.results[b.resultsConsumed]
			b.resultsConsumed++
			b.mu.Unlock()
			if !yield(result) {
				return
			}
			continue
		}

		if b.closed {
			b.mu.Unlock()
			return
		}

		b.mu.Unlock()
		<-b.updateSignal
	}
}

// Clear abandons the buffer; a blocked iterator wakes up and ends.
func (b *ResultBuffer) Clear() {
	b.mu.Lock()
	b.cleared = true
	b.mu.Unlock()
	b.signalUpdate()
}

func (b *ResultBuffer) signalUpdate() {
	select {
	case b.updateSignal <- struct{}{}:
	default:
	}
}
