// Package sse decodes the agent backend's server-sent-event stream into
// frames and classified events.
package sse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	eventPrefix = "event:"
	dataPrefix  = "data:"

	frameDelimiter = "\n\n"
)

// Frame is one blank-line-delimited unit of the stream. Event carries the
// frame's event name (may be empty), Data the concatenated data lines.
type Frame struct {
	Event string
	Data  string
}

// Decoder incrementally decodes frames from a byte stream. It is not safe
// for concurrent use and cannot be restarted once its source is drained.
type Decoder struct {
	source io.Reader

	// buffer holds bytes that do not yet form a complete frame. Keeping
	// raw bytes here means a multi-byte UTF-8 rune split across reads is
	// reassembled before any of it is turned into text.
	buffer []byte
}

func NewDecoder(source io.Reader) *Decoder {
	return &Decoder{source: source}
}

// Frames returns a single-use iterator over the decoded frames. Frames with
// no data lines are dropped. The context is checked after the frames of each
// read; once it is cancelled the sequence ends without another read. A read
// failure other than end-of-stream is yielded as an error; a trailing
// unterminated frame at end-of-stream is discarded.
func (d *Decoder) Frames(ctx context.Context) func(func(Frame, error) bool) {
	return func(yield func(Frame, error) bool) {
		chunk := make([]byte, 4096)
		for {
			n, err := d.source.Read(chunk)
			if n > 0 {
				d.buffer = append(d.buffer, chunk[:n]...)
				for {
					segment, rest, found := strings.Cut(string(d.buffer), frameDelimiter)
					if !found {
						break
					}
					d.buffer = append(d.buffer[:0], rest...)

					if frame, ok := parseFrame(segment); ok {
						if !yield(frame, nil) {
							return
						}
					}
				}

				if ctx.Err() != nil {
					return
				}
			}

			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield(Frame{}, fmt.Errorf("error reading streamed response: %w", err))
				return
			}
		}
	}
}

func parseFrame(segment string) (Frame, bool) {
	frame := Frame{}
	var data strings.Builder

	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, eventPrefix):
			frame.Event = strings.TrimSpace(strings.TrimPrefix(line, eventPrefix))
		case strings.HasPrefix(line, dataPrefix):
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, dataPrefix)))
		}
	}

	if data.Len() == 0 {
		return Frame{}, false
	}

	frame.Data = data.String()
	return frame, true
}
