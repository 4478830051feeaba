package cline

import (
	"github.com/hissain/cline-ui/clinecontract"
)

// buildArgs constructs the argument list for one invocation.
//
// New task:    cline <prompt> --output-format json --mode plan [--yolo --verbose]
// Resumption:  cline task open <id> --output-format json --mode act [--yolo --verbose]
//
// In resumption form the prompt is not an argument; the driver delivers it
// over stdin after launch.
func (c *ClineCLI) buildArgs(req AskRequest) []string {
	var args []string

	if req.TaskID != "" {
		args = append(args, clinecontract.CmdTask, clinecontract.CmdTaskOpen, req.TaskID)
	} else {
		args = append(args, req.Prompt)
	}

	args = append(args, clinecontract.FlagOutputFormat, clinecontract.FormatJSON)

	mode := clinecontract.ModePlan
	if req.TaskID != "" {
		mode = clinecontract.ModeAct
	}
	args = append(args, clinecontract.FlagMode, mode)

	if c.yolo {
		args = append(args, clinecontract.FlagYolo)
	}
	if c.verbose {
		args = append(args, clinecontract.FlagVerbose)
	}

	return args
}
