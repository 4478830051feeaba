package cline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// writeFakeCline installs a shell script standing in for the cline binary.
func writeFakeCline(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binaries are shell scripts")
	}

	path := filepath.Join(t.TempDir(), "cline")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAskKillsProcessOnceAnswered(t *testing.T) {
	// The answer arrives immediately; the process then lingers far beyond
	// the test timeout. Ask must return without waiting it out.
	bin := writeFakeCline(t, `
echo 'Task created successfully with ID: 1712345678901'
echo '{"say": "api_req_started"}'
echo '{"say": "text", "text": "thinking..."}'
echo '{"ask": "plan_mode_respond", "text": "{\"response\": \"final answer\"}"}'
sleep 60
`)

	var statuses []string
	client := NewClineCLI(WithClinePath(bin), WithTimeout(10*time.Second))

	start := time.Now()
	result, err := client.Ask(context.Background(), AskRequest{
		Prompt:     "question",
		OnProgress: func(s string) { statuses = append(statuses, s) },
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Response != "final answer" {
		t.Errorf("Response = %q, want %q", result.Response, "final answer")
	}
	if result.TaskID != "1712345678901" {
		t.Errorf("TaskID = %q, want 1712345678901", result.TaskID)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Ask() took %v, process was not killed after the answer", elapsed)
	}

	found := false
	for _, s := range statuses {
		if s == "Sending request to the model..." {
			found = true
		}
	}
	if !found {
		t.Errorf("progress statuses %v missing api request status", statuses)
	}
}

func TestAskLastTerminalWins(t *testing.T) {
	// Both terminal events arrive in the same read step; the most recent
	// one in the buffer must win. On separate lines the driver would kill
	// at the first answer, which is the intended early-termination path.
	bin := writeFakeCline(t, `
echo '{"ask": "plan_mode_respond", "text": "{\"response\": \"first\"}"}{"ask": "plan_mode_respond", "text": "{\"response\": \"second\"}"}'
`)

	client := NewClineCLI(WithClinePath(bin))
	result, err := client.Ask(context.Background(), AskRequest{Prompt: "q"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Response != "second" {
		t.Errorf("Response = %q, want %q", result.Response, "second")
	}
}

func TestAskNoStructuredData(t *testing.T) {
	bin := writeFakeCline(t, `
echo 'plain text, no JSON here'
echo 'still nothing structured'
`)

	client := NewClineCLI(WithClinePath(bin))
	_, err := client.Ask(context.Background(), AskRequest{Prompt: "q"})
	if !errors.Is(err, ErrNoStructuredData) {
		t.Errorf("Ask() error = %v, want ErrNoStructuredData", err)
	}
}

func TestAskNoTerminalEvent(t *testing.T) {
	bin := writeFakeCline(t, `
echo '{"say": "api_req_started"}'
echo '{"say": "text", "text": "partial"}'
`)

	client := NewClineCLI(WithClinePath(bin))
	_, err := client.Ask(context.Background(), AskRequest{Prompt: "q"})
	if !errors.Is(err, ErrNoTerminalEvent) {
		t.Errorf("Ask() error = %v, want ErrNoTerminalEvent", err)
	}
}

func TestAskEmptyOutput(t *testing.T) {
	bin := writeFakeCline(t, `
echo 'credentials missing' >&2
exit 1
`)

	client := NewClineCLI(WithClinePath(bin))
	_, err := client.Ask(context.Background(), AskRequest{Prompt: "q"})
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("Ask() error = %v, want ErrEmptyOutput", err)
	}
	// stderr content should surface in the message.
	if want := "credentials missing"; err != nil && !containsString(err.Error(), want) {
		t.Errorf("Ask() error %q does not mention stderr %q", err.Error(), want)
	}
}

func TestAskTimeoutKeepsTaskID(t *testing.T) {
	bin := writeFakeCline(t, `
echo 'Task created successfully with ID: 424242'
echo '{"say": "api_req_started"}'
sleep 60
`)

	client := NewClineCLI(WithClinePath(bin), WithTimeout(500*time.Millisecond))

	start := time.Now()
	result, err := client.Ask(context.Background(), AskRequest{Prompt: "q"})
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Ask() error = %v, want ErrTimeout", err)
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false for timeout, want true")
	}
	if result == nil || result.TaskID != "424242" {
		t.Errorf("Result = %+v, want TaskID 424242 preserved across timeout", result)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Ask() took %v, should have stopped near the 500ms ceiling", elapsed)
	}
}

func TestAskPayloadDecodeFailure(t *testing.T) {
	bin := writeFakeCline(t, `
echo 'Task created successfully with ID: 7'
echo '{"ask": "plan_mode_respond", "text": "not json at all"}'
`)

	client := NewClineCLI(WithClinePath(bin))
	result, err := client.Ask(context.Background(), AskRequest{Prompt: "q"})
	if !errors.Is(err, ErrPayloadDecode) {
		t.Fatalf("Ask() error = %v, want ErrPayloadDecode", err)
	}
	if result == nil || result.TaskID != "7" {
		t.Errorf("Result = %+v, want TaskID 7 even on decode failure", result)
	}
	// The offending event is echoed for diagnosis.
	if !containsString(err.Error(), "not json at all") {
		t.Errorf("Ask() error %q does not include the raw terminal event", err.Error())
	}
}

func TestAskResumeDeliversPromptOverStdin(t *testing.T) {
	// The fake echoes the first stdin line back inside the terminal payload,
	// proving the prompt went over the pipe rather than argv.
	bin := writeFakeCline(t, `
read line
printf '{"ask": "plan_mode_respond", "text": "{\"response\": \"got: %s\"}"}\n' "$line"
`)

	client := NewClineCLI(WithClinePath(bin))
	result, err := client.Ask(context.Background(), AskRequest{
		Prompt: "follow up",
		TaskID: "31337",
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Response != "got: follow up" {
		t.Errorf("Response = %q, want %q", result.Response, "got: follow up")
	}
	if result.TaskID != "31337" {
		t.Errorf("TaskID = %q, want the supplied 31337", result.TaskID)
	}
}

func TestAskDebugLineFallbackProgress(t *testing.T) {
	bin := writeFakeCline(t, `
echo '[DEBUG]: State message 3: type=say, say=api_req_started'
echo '{"ask": "plan_mode_respond", "text": "{\"response\": \"ok\"}"}'
`)

	var statuses []string
	client := NewClineCLI(WithClinePath(bin))
	_, err := client.Ask(context.Background(), AskRequest{
		Prompt:     "q",
		OnProgress: func(s string) { statuses = append(statuses, s) },
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	found := false
	for _, s := range statuses {
		if s == "Sending request to the model..." {
			found = true
		}
	}
	if !found {
		t.Errorf("progress statuses %v missing debug-line fallback status", statuses)
	}
}

func TestAskBinaryMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	client := NewClineCLI()
	_, err := client.Ask(context.Background(), AskRequest{Prompt: "q"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Ask() error = %v, want ErrNotFound", err)
	}
}

func TestAskContextCancel(t *testing.T) {
	bin := writeFakeCline(t, `sleep 60`)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	client := NewClineCLI(WithClinePath(bin), WithTimeout(30*time.Second))
	start := time.Now()
	_, err := client.Ask(ctx, AskRequest{Prompt: "q"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Ask() error = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Ask() took %v after cancel, watchdog did not fire", elapsed)
	}
}

func containsString(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
