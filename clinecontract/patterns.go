package clinecontract

import "regexp"

// DebugStatePattern matches cline's verbose state-machine log lines, e.g.
//
//	[DEBUG]: State message 3: type=say, say=api_req_started
//
// The single capture group is the say subtype. These lines are the fallback
// signal when the tool emits debug logging instead of structured events.
var DebugStatePattern = regexp.MustCompile(`\[DEBUG\]: State message \d+: type=say, say=(\w+)`)

// TaskCreatedPattern matches the announcement cline prints when it persists
// a new task, e.g.
//
//	Task created successfully with ID: 1712345678901
//
// The capture group is the task identifier used with `task open`.
var TaskCreatedPattern = regexp.MustCompile(`Task created successfully with ID: (\d+)`)
