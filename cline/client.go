package cline

import (
	"time"
)

// Default limits for an invocation.
const (
	// DefaultTimeout is the wall-clock ceiling on one invocation. The tool
	// keeps working after its answer is available, so this is a safety net
	// rather than an expected duration.
	DefaultTimeout = 2 * time.Minute

	// DefaultSettleDelay is how long a resumed invocation waits after
	// writing the follow-up prompt before closing stdin, giving the tool
	// time to notice the input.
	DefaultSettleDelay = 100 * time.Millisecond
)

// ClineCLI invokes the cline binary, one subprocess per Ask. The zero
// value is not usable; construct with NewClineCLI.
//
// A client carries only read-only configuration, so a single instance is
// safe for concurrent Ask calls; each call owns its own subprocess and
// buffers.
type ClineCLI struct {
	path        string
	workdir     string
	timeout     time.Duration
	settleDelay time.Duration
	yolo        bool
	verbose     bool
}

// ClineOption configures ClineCLI.
type ClineOption func(*ClineCLI)

// NewClineCLI creates a new cline client. Without WithClinePath the binary
// is located at Ask time via PATH and well-known install locations.
func NewClineCLI(opts ...ClineOption) *ClineCLI {
	c := &ClineCLI{
		timeout:     DefaultTimeout,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithClinePath sets an explicit path to the cline binary. The path must
// exist on disk; a stale override falls through to auto-detection.
func WithClinePath(path string) ClineOption {
	return func(c *ClineCLI) { c.path = path }
}

// WithWorkdir sets the working directory for cline subprocesses.
func WithWorkdir(dir string) ClineOption {
	return func(c *ClineCLI) { c.workdir = dir }
}

// WithTimeout sets the wall-clock ceiling for one invocation.
func WithTimeout(d time.Duration) ClineOption {
	return func(c *ClineCLI) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSettleDelay sets the pause between writing a resumed prompt and
// closing the tool's stdin.
func WithSettleDelay(d time.Duration) ClineOption {
	return func(c *ClineCLI) {
		if d >= 0 {
			c.settleDelay = d
		}
	}
}

// WithYolo makes cline auto-approve tool executions. Required for fully
// non-interactive runs; the subprocess has no terminal to prompt on.
func WithYolo() ClineOption {
	return func(c *ClineCLI) { c.yolo = true }
}

// WithVerbose enables cline's verbose state-machine logging. The debug
// lines feed the fallback status path when structured events are absent.
func WithVerbose() ClineOption {
	return func(c *ClineCLI) { c.verbose = true }
}
