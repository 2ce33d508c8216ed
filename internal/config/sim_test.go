package config

import (
	"strings"
	"testing"
	"time"
)

const fullSimYAML = `
chat:
  reply_delay: 200ms
  quick_action_delay: 100ms
  navigate_delay: 300ms
application:
  step_delays: [10ms, 20ms, 30ms, 40ms]
  decision_delay: 50ms
  documents_probability: 0.5
  approval_probability: 0.9
  documents_progress: 90
  required_documents: 1
`

func TestParseSimTuning_Full(t *testing.T) {
	tuning, err := ParseSimTuning([]byte(fullSimYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tuning.Chat.ReplyDelay != 200*time.Millisecond {
		t.Errorf("ReplyDelay = %v", tuning.Chat.ReplyDelay)
	}
	if tuning.Chat.NavigateDelay != 300*time.Millisecond {
		t.Errorf("NavigateDelay = %v", tuning.Chat.NavigateDelay)
	}
	a := tuning.Application
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond, 40 * time.Millisecond}
	if len(a.StepDelays) != len(want) {
		t.Fatalf("len(StepDelays) = %d", len(a.StepDelays))
	}
	for i := range want {
		if a.StepDelays[i] != want[i] {
			t.Errorf("StepDelays[%d] = %v, want %v", i, a.StepDelays[i], want[i])
		}
	}
	if a.DocumentsProbability != 0.5 || a.ApprovalProbability != 0.9 {
		t.Errorf("probabilities = %v/%v", a.DocumentsProbability, a.ApprovalProbability)
	}
	if a.DocumentsProgress != 90 || a.RequiredDocuments != 1 {
		t.Errorf("DocumentsProgress/RequiredDocuments = %d/%d", a.DocumentsProgress, a.RequiredDocuments)
	}
}

func TestParseSimTuning_PartialKeepsDefaults(t *testing.T) {
	tuning, err := ParseSimTuning([]byte("application:\n  decision_delay: 1s\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tuning.Application.DecisionDelay != time.Second {
		t.Errorf("DecisionDelay = %v", tuning.Application.DecisionDelay)
	}
	if tuning.Chat.ReplyDelay != DefaultReplyDelay {
		t.Errorf("ReplyDelay = %v, want default", tuning.Chat.ReplyDelay)
	}
	if len(tuning.Application.StepDelays) != 4 {
		t.Errorf("StepDelays should fall back to defaults, got %v", tuning.Application.StepDelays)
	}
	if tuning.Application.DocumentsProbability != DefaultDocumentsProbability {
		t.Errorf("DocumentsProbability = %v", tuning.Application.DocumentsProbability)
	}
}

func TestParseSimTuning_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"probability above one", "application:\n  approval_probability: 1.5\n", "approval_probability"},
		{"wrong step count", "application:\n  step_delays: [1s, 1s]\n", "step_delays"},
		{"documents progress below processing", "application:\n  documents_progress: 50\n", "documents_progress"},
		{"negative chat delay", "chat:\n  reply_delay: -1s\n", "chat delays"},
		{"malformed", "chat: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSimTuning([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestDefaultSimTuningIsValid(t *testing.T) {
	if err := DefaultSimTuning().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}
