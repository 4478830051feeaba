package clinecontract

// Event discriminants from cline's JSON output. Every relevant object
// carries exactly one of these keys; the value is the subtype.
const (
	// EventTypeSay marks informational events (request lifecycle, text
	// chunks, checkpoints).
	EventTypeSay = "say"

	// EventTypeAsk marks events where the tool is asking something,
	// including the terminal answer.
	EventTypeAsk = "ask"
)

// Say subtypes.
const (
	// SayAPIReqStarted is emitted when a model request is dispatched.
	SayAPIReqStarted = "api_req_started"

	// SayAPIReqRetried is emitted when a request is retried.
	SayAPIReqRetried = "api_req_retried"

	// SayAPIReqRetryDelayed is emitted when a failed request is waiting
	// to be retried.
	SayAPIReqRetryDelayed = "api_req_retry_delayed"

	// SayCheckpointCreated is emitted when the tool snapshots the workspace.
	SayCheckpointCreated = "checkpoint_created"

	// SayText carries a chunk of the assistant's narrative text.
	SayText = "text"
)

// Ask subtypes.
const (
	// AskPlanModeRespond is the terminal event: the tool has produced its
	// final answer. Its text field is a JSON-encoded string containing a
	// "response" key.
	AskPlanModeRespond = "plan_mode_respond"

	// AskTool is emitted when the tool requests approval to execute a tool.
	AskTool = "tool"
)
