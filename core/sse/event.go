package sse

import "encoding/json"

// Kind tags a classified event.
type Kind string

const (
	KindStatus  Kind = "status"
	KindThought Kind = "thought"
	KindAction  Kind = "action"
	KindToken   Kind = "token"
	KindEnd     Kind = "end"
	KindError   Kind = "error"

	// KindMessage is assigned to frames that carry no event name.
	KindMessage Kind = "message"
)

// Event is a frame whose data parsed as JSON.
type Event struct {
	Kind    Kind
	Payload json.RawMessage
}

// Classify parses a frame's data as JSON and tags it with the frame's event
// name, defaulting to KindMessage. Frames with malformed data yield nil and
// are meant to be skipped, not to end the stream.
func Classify(frame Frame) *Event {
	if !json.Valid([]byte(frame.Data)) {
		return nil
	}

	kind := Kind(frame.Event)
	if kind == "" {
		kind = KindMessage
	}

	return &Event{Kind: kind, Payload: json.RawMessage(frame.Data)}
}
