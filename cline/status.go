package cline

import (
	"fmt"

	"github.com/hissain/cline-ui/clinecontract"
)

// statusForEvent maps a decoded event to a human-readable progress string,
// or "" when the event carries nothing worth reporting. Narrative text
// chunks produce no status so partial answer text doesn't flood the
// progress sink.
func statusForEvent(ev Event) string {
	if ev.Ask == clinecontract.AskTool {
		return "Waiting for tool approval..."
	}

	switch ev.Say {
	case "":
		return ""
	case clinecontract.SayText:
		return ""
	case clinecontract.SayAPIReqStarted:
		return "Sending request to the model..."
	case clinecontract.SayAPIReqRetryDelayed:
		return "Request failed, retrying..."
	case clinecontract.SayAPIReqRetried:
		return "Retrying request..."
	case clinecontract.SayCheckpointCreated:
		return "Checkpoint created"
	default:
		return fmt.Sprintf("Processing: %s", ev.Say)
	}
}

// statusForDebugLine scrapes a progress string out of cline's verbose
// state-machine log lines. Only attempted for lines that yielded no new
// structured event, to avoid reporting the same step twice, and only a
// small fixed set of subtypes is recognized.
func statusForDebugLine(line string) string {
	m := clinecontract.DebugStatePattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	switch m[1] {
	case clinecontract.SayAPIReqStarted:
		return "Sending request to the model..."
	case clinecontract.SayAPIReqRetried:
		return "Retrying request..."
	case clinecontract.SayCheckpointCreated:
		return "Checkpoint created"
	}
	return ""
}
