package provider

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/logging"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"

	eventContentDelta = "content_block_delta"
	eventMessageDelta = "message_delta"
	eventMessageStop  = "message_stop"
)

// Stream translates an Anthropic SSE response body into an ordered sequence
// of normalized token records.
//
// The upstream transport delivers arbitrary byte boundaries that do not align
// with logical event boundaries, so bytes accumulate in a buffer and only
// complete lines are ever parsed. Running state (output-token total, target
// model name) survives across any number of chunk arrivals.
//
// A Stream is consumed exactly once, left to right, by a single goroutine.
type Stream struct {
	body  io.ReadCloser
	model string

	buf     []byte
	readBuf []byte
	total   int64

	// exhausted: the producer returned io.EOF; only buffered lines remain.
	exhausted bool
	// finished: the terminal record was delivered (or the producer ended
	// without one); every later Recv returns io.EOF.
	finished bool
}

// NewStream wraps a streaming response body. model is the request-time model
// name reported in the terminal record.
func NewStream(body io.ReadCloser, model string) *Stream {
	return &Stream{
		body:    body,
		model:   model,
		readBuf: make([]byte, 4096),
	}
}

// Recv returns the next normalized record. After the terminal record it
// returns io.EOF. A sequence that ends without a terminal record is a
// protocol violation on the upstream's part; callers should log it and move
// on, never retry.
func (s *Stream) Recv() (types.TokenRecord, error) {
	if s.finished {
		return types.TokenRecord{}, io.EOF
	}

	for {
		// Drain complete lines already buffered before reading more.
		for {
			i := bytes.IndexByte(s.buf, '\n')
			if i < 0 {
				break
			}
			line := decodeLine(s.buf[:i])
			s.buf = s.buf[i+1:]

			if rec, ok := s.handleLine(line); ok {
				return rec, nil
			}
		}

		if s.exhausted {
			// Producer ended without a stop event.
			s.finished = true
			return types.TokenRecord{}, io.EOF
		}

		n, err := s.body.Read(s.readBuf)
		if n > 0 {
			s.buf = append(s.buf, s.readBuf[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.exhausted = true
				continue
			}
			// Transport failure mid-stream: surface it as the terminal
			// record, since the response has already committed to success.
			s.finished = true
			return s.terminal(fmt.Sprintf("\n[Stream error: %v]", err)), nil
		}
	}
}

// Close releases the upstream connection. Safe to call at any point,
// including after Recv returned io.EOF.
func (s *Stream) Close() error {
	return s.body.Close()
}

// handleLine classifies one extracted line. The bool result reports whether a
// record should be emitted.
func (s *Stream) handleLine(line string) (types.TokenRecord, bool) {
	// Keep-alive comments and event separators carry no payload.
	if line == "" || strings.HasPrefix(line, ":") {
		return types.TokenRecord{}, false
	}

	payload, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return types.TokenRecord{}, false
	}
	// End-of-stream is driven by the explicit stop event, not this sentinel.
	if payload == doneSentinel {
		return types.TokenRecord{}, false
	}

	if !gjson.Valid(payload) {
		// Partial frames can momentarily fail to decode; never abort.
		logging.Debug().Msg("discarding unparsable stream payload")
		return types.TokenRecord{}, false
	}

	event := gjson.Parse(payload)
	switch event.Get("type").String() {
	case eventContentDelta:
		if text := event.Get("delta.text").String(); text != "" {
			return types.TokenRecord{Token: text}, true
		}
	case eventMessageDelta:
		// The running total overwrites; it is reported only at the end.
		if usage := event.Get("usage.output_tokens"); usage.Exists() {
			s.total = usage.Int()
		}
	case eventMessageStop:
		s.finished = true
		return s.terminal(""), true
	}
	return types.TokenRecord{}, false
}

// terminal builds the single end-of-stream record.
func (s *Stream) terminal(token string) types.TokenRecord {
	total := s.total
	return types.TokenRecord{
		Token:       token,
		Done:        true,
		Model:       s.model,
		TotalTokens: &total,
	}
}

// decodeLine converts raw line bytes to trimmed text. The lossy UTF-8 decode
// happens here, at line granularity, so a multi-byte rune split across chunk
// boundaries is never corrupted.
func decodeLine(raw []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), "�"))
}
