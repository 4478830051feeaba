package cline

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/hissain/cline-ui/clinecontract"
)

// Ask runs one cline invocation to completion and returns its final answer.
//
// The subprocess's stdout is consumed line by line while it runs; structured
// events are decoded incrementally and classified into status strings for
// req.OnProgress. As soon as the final answer event appears the subprocess
// is killed, because cline keeps the session alive well past the point where
// the answer is available.
//
// With req.TaskID set, the prior task is reopened and req.Prompt is delivered
// over stdin. Either way the returned Result carries the task identifier so
// the caller can resume the conversation later; on timeout the identifier is
// preserved even though an error is returned.
//
// ctx cancels the invocation early; the client's configured timeout applies
// on top of it.
func (c *ClineCLI) Ask(ctx context.Context, req AskRequest) (*Result, error) {
	path, err := Locate(c.path)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := c.buildArgs(req)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = c.workdir

	// Run in a separate process group so the kill reaches every child.
	// cline spawns helper processes that would otherwise be orphaned.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	var stdin io.WriteCloser
	if req.TaskID != "" {
		stdin, err = cmd.StdinPipe()
		if err != nil {
			return nil, NewError("ask", fmt.Errorf("create stdin pipe: %w", err), false)
		}
	} else {
		cmd.Stdin = nil
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, NewError("ask", fmt.Errorf("create stdout pipe: %w", err), false)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, NewError("ask", fmt.Errorf("%w: %v", ErrLaunch, err), false)
	}
	defer terminate(cmd)

	slog.Debug("cline started",
		"pid", cmd.Process.Pid,
		"resume", req.TaskID != "",
		"timeout", c.timeout)

	if req.TaskID != "" {
		c.deliverPrompt(stdin, req.Prompt)
	}

	// Unblock the read loop when the deadline or the caller cancels: the
	// pipe read only returns once the whole process group is dead.
	watchdogDone := make(chan struct{})
	defer close(watchdogDone)
	go func() {
		select {
		case <-ctx.Done():
			killGroup(cmd)
		case <-watchdogDone:
		}
	}()

	reader := bufio.NewReader(stdout)
	var buf strings.Builder
	taskID := req.TaskID
	processed := 0

	for {
		if time.Since(start) >= c.timeout {
			break
		}

		line, readErr := reader.ReadString('\n')
		if line != "" {
			buf.WriteString(line)

			events := ExtractEvents(buf.String())
			fresh := events[processed:]
			processed = len(events)

			if req.OnProgress != nil {
				for _, ev := range fresh {
					if status := statusForEvent(ev); status != "" {
						req.OnProgress(status)
					}
				}
				if len(fresh) == 0 {
					if status := statusForDebugLine(line); status != "" {
						req.OnProgress(status)
					}
				}
			}

			if taskID == "" {
				if m := clinecontract.TaskCreatedPattern.FindStringSubmatch(line); m != nil {
					taskID = m[1]
					slog.Debug("cline task created", "task_id", taskID)
				}
			}

			if final := lastTerminal(events); final != nil {
				killGroup(cmd)
				return finishResult(*final, taskID)
			}
		}

		if readErr != nil {
			break
		}
	}

	timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded) || time.Since(start) >= c.timeout

	// Stop the process before draining: a live process keeps the pipe open
	// and ReadAll would block until it exits on its own.
	killGroup(cmd)
	if rest, err := io.ReadAll(reader); err == nil {
		buf.Write(rest)
	}
	terminate(cmd)

	raw := buf.String()
	events := ExtractEvents(raw)

	// A terminal event may have landed in the drained tail, or arrived just
	// as the deadline hit. The answer wins over the timeout.
	if final := lastTerminal(events); final != nil {
		return finishResult(*final, taskID)
	}

	if timedOut {
		slog.Warn("cline timed out", "task_id", taskID, "elapsed", time.Since(start))
		return &Result{TaskID: taskID}, NewError("ask", ErrTimeout, true)
	}
	if ctx.Err() != nil {
		return &Result{TaskID: taskID}, NewError("ask", ctx.Err(), false)
	}
	if strings.TrimSpace(raw) == "" {
		err := error(ErrEmptyOutput)
		if msg := sanitizeOutput(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: stderr: %s", ErrEmptyOutput, msg)
		}
		return nil, NewError("ask", err, false)
	}
	if len(events) == 0 {
		return nil, NewError("ask",
			fmt.Errorf("%w: output: %s", ErrNoStructuredData, sanitizeOutput(raw)), false)
	}
	return nil, NewError("ask",
		fmt.Errorf("%w: output: %s", ErrNoTerminalEvent, sanitizeOutput(raw)), false)
}

// deliverPrompt writes the follow-up prompt to a resumed task's stdin, waits
// for the tool to pick it up, then closes the pipe. Write failures are not
// fatal: the reopened task may already be producing output and the answer can
// still arrive.
func (c *ClineCLI) deliverPrompt(stdin io.WriteCloser, prompt string) {
	if _, err := io.WriteString(stdin, prompt+"\n\n"); err != nil {
		slog.Warn("failed to write prompt to cline stdin", "error", err)
	}
	time.Sleep(c.settleDelay)
	_ = stdin.Close()
}

// finishResult decodes the terminal event's payload into a Result.
func finishResult(final Event, taskID string) (*Result, error) {
	response, err := final.TerminalResponse()
	if err != nil {
		return &Result{TaskID: taskID},
			NewError("ask", fmt.Errorf("%w: %v: event: %s",
				ErrPayloadDecode, err, sanitizeOutput(string(final.Raw))), false)
	}
	return &Result{Response: response, TaskID: taskID}, nil
}

// killGroup forcefully stops the subprocess and everything it spawned.
func killGroup(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}

// terminate reaps the subprocess. Safe to call more than once.
func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil || cmd.ProcessState != nil {
		return
	}
	killGroup(cmd)
	_ = cmd.Wait()
}
