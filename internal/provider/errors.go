package provider

import (
	"encoding/json"
	"fmt"
)

// UpstreamError is returned when the provider responds with a non-success
// status. Payload carries the decoded error body when the upstream sent one.
type UpstreamError struct {
	Status  int
	Payload json.RawMessage
}

func (e *UpstreamError) Error() string {
	if len(e.Payload) > 0 {
		return fmt.Sprintf("upstream rejected request: status %d: %s", e.Status, e.Payload)
	}
	return fmt.Sprintf("upstream rejected request: status %d", e.Status)
}

// ConnectError wraps a transport failure: the provider could not be reached
// at all, as opposed to rejecting the request.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to reach Anthropic API: %v", e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }
