package cline

// ProgressFunc receives human-readable status strings while an invocation
// is streaming. It is called synchronously, in the order the triggering
// output lines were read, and never after Ask returns. Keep handlers fast
// to avoid stalling the read loop.
type ProgressFunc func(status string)

// AskRequest describes one invocation of the cline CLI.
type AskRequest struct {
	// Prompt is the question or follow-up instruction.
	Prompt string

	// TaskID resumes a prior task when non-empty. The prompt is then
	// delivered over the subprocess's stdin instead of as an argument.
	TaskID string

	// OnProgress, when non-nil, receives interim status strings.
	OnProgress ProgressFunc
}

// Result is the outcome of an invocation.
//
// When Ask also returns an error, Response is empty but TaskID may still be
// set: a timed-out new task that already announced its identifier remains
// resumable.
type Result struct {
	// Response is the tool's final answer text.
	Response string

	// TaskID identifies the persisted task, when one was created or
	// supplied. Pass it to a later AskRequest to resume the session.
	TaskID string
}
