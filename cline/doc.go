// Package cline drives the cline CLI as a subprocess and turns its mixed
// stream of JSON events and debug text into a single answer.
//
// The CLI is a long-running interactive tool: asked a question, it emits
// interleaved structured events ("say" and "ask" JSON objects) and
// unstructured log lines on stdout, and keeps working well past the point
// where the final answer is available. This package consumes that output
// incrementally, forwards human-readable progress to a caller-supplied
// callback, and kills the process as soon as the terminal event appears
// instead of waiting for natural exit.
//
// Basic usage:
//
//	client := cline.NewClineCLI(cline.WithYolo())
//	result, err := client.Ask(ctx, cline.AskRequest{
//	    Prompt: "Explain reproducible builds.",
//	    OnProgress: func(status string) { fmt.Println(status) },
//	})
//
// A successful Result may carry a TaskID; passing it in a later AskRequest
// resumes that task, with the follow-up prompt delivered over the
// subprocess's stdin. On timeout the returned Result still carries any
// TaskID detected so far, so the caller can retry via resumption.
//
// Every Ask owns its subprocess exclusively and holds no state shared with
// other invocations; a single client is safe for concurrent use.
package cline
