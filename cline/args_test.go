package cline

import (
	"reflect"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name   string
		client *ClineCLI
		req    AskRequest
		want   []string
	}{
		{
			name:   "new task",
			client: NewClineCLI(),
			req:    AskRequest{Prompt: "what is a monad"},
			want:   []string{"what is a monad", "--output-format", "json", "--mode", "plan"},
		},
		{
			name:   "new task with yolo and verbose",
			client: NewClineCLI(WithYolo(), WithVerbose()),
			req:    AskRequest{Prompt: "explain"},
			want:   []string{"explain", "--output-format", "json", "--mode", "plan", "--yolo", "--verbose"},
		},
		{
			name:   "resumed task uses act mode and no prompt arg",
			client: NewClineCLI(),
			req:    AskRequest{Prompt: "follow up", TaskID: "1712345678901"},
			want:   []string{"task", "open", "1712345678901", "--output-format", "json", "--mode", "act"},
		},
		{
			name:   "resumed task with yolo",
			client: NewClineCLI(WithYolo()),
			req:    AskRequest{Prompt: "more", TaskID: "99"},
			want:   []string{"task", "open", "99", "--output-format", "json", "--mode", "act", "--yolo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.client.buildArgs(tt.req)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}
