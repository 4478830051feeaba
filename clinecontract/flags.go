package clinecontract

// CLI flag names and fixed argument values - update here when the CLI changes.
// These are the exact strings as accepted by the cline binary.
const (
	// Output control flags
	FlagOutputFormat = "--output-format" // Output format: text, json
	FlagVerbose      = "--verbose"       // Enable verbose state-machine logging

	// Mode flags
	FlagMode = "--mode" // Operating mode: plan, act

	// Permission flags
	FlagYolo = "--yolo" // Auto-approve all tool executions (non-interactive)
)

// Output format values.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Mode values. New tasks run in plan mode so the tool answers without
// touching the workspace; resumed tasks run in act mode.
const (
	ModePlan = "plan"
	ModeAct  = "act"
)

// Subcommand words for task management.
const (
	// CmdTask is the task management subcommand group.
	CmdTask = "task"

	// CmdTaskOpen reopens a persisted task by ID. The follow-up prompt is
	// delivered on stdin rather than as an argument.
	CmdTaskOpen = "open"
)
