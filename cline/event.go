package cline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hissain/cline-ui/clinecontract"
)

// Event is one decoded JSON object from cline's output stream. Exactly one
// of Say and Ask is set on events this package cares about; objects with
// neither key still decode (both fields empty) and classify as no status.
//
// Events are ephemeral: they are consumed once to update progress and to
// discover the terminal answer, never persisted.
type Event struct {
	// Say is the subtype of an informational event, empty otherwise.
	Say string `json:"say,omitempty"`

	// Ask is the subtype of a question event, empty otherwise. The
	// terminal answer arrives as an ask event.
	Ask string `json:"ask,omitempty"`

	// Text is the event payload. For the terminal event it is a
	// JSON-encoded string containing a "response" field.
	Text string `json:"text,omitempty"`

	// Raw is the original JSON, echoed in diagnostics when the event's
	// payload cannot be decoded.
	Raw json.RawMessage `json:"-"`
}

// IsTerminal reports whether the event carries the tool's final answer.
func (e Event) IsTerminal() bool {
	return e.Ask == clinecontract.AskPlanModeRespond
}

// TerminalResponse decodes the embedded payload of a terminal event and
// returns its response text. The payload is itself JSON encoded inside the
// Text field; a malformed payload or a missing response field is an error.
func (e Event) TerminalResponse() (string, error) {
	var payload struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal([]byte(e.Text), &payload); err != nil {
		return "", fmt.Errorf("decode terminal payload: %w", err)
	}
	if payload.Response == nil {
		return "", errors.New("terminal payload has no response field")
	}
	return *payload.Response, nil
}

// lastTerminal returns the last terminal event in events, or nil. Taking
// the last match protects against a tool that emits more than one answer:
// the most recent one wins.
func lastTerminal(events []Event) *Event {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].IsTerminal() {
			return &events[i]
		}
	}
	return nil
}
