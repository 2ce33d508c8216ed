package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SimTuning holds the presentation timings and branch odds of the two
// simulators. None of it models real processing; it only paces the demo.
type SimTuning struct {
	Chat        ChatTuning        `yaml:"chat"`
	Application ApplicationTuning `yaml:"application"`
}

type ChatTuning struct {
	ReplyDelay       time.Duration `yaml:"reply_delay"`
	QuickActionDelay time.Duration `yaml:"quick_action_delay"`
	NavigateDelay    time.Duration `yaml:"navigate_delay"`
}

type ApplicationTuning struct {
	// StepDelays are the waits before 25%, 50%, 75% and the document branch.
	StepDelays           []time.Duration `yaml:"step_delays"`
	DecisionDelay        time.Duration   `yaml:"decision_delay"`
	DocumentsProbability float64         `yaml:"documents_probability"`
	ApprovalProbability  float64         `yaml:"approval_probability"`
	DocumentsProgress    int             `yaml:"documents_progress"`
	RequiredDocuments    int             `yaml:"required_documents"`
}

const applicationSteps = 4

const (
	DefaultReplyDelay           = 1500 * time.Millisecond
	DefaultQuickActionDelay     = 1000 * time.Millisecond
	DefaultNavigateDelay        = 2000 * time.Millisecond
	DefaultDecisionDelay        = 3000 * time.Millisecond
	DefaultDocumentsProbability = 0.7
	DefaultApprovalProbability  = 0.8
	DefaultDocumentsProgress    = 85
	DefaultRequiredDocuments    = 2
)

// DefaultStepDelays reproduces the 1.0s, 2.5s, 4.0s, 5.5s cadence of the
// product demo as per-step waits.
func DefaultStepDelays() []time.Duration {
	return []time.Duration{
		1000 * time.Millisecond,
		1500 * time.Millisecond,
		1500 * time.Millisecond,
		1500 * time.Millisecond,
	}
}

func DefaultSimTuning() SimTuning {
	return SimTuning{
		Chat: ChatTuning{
			ReplyDelay:       DefaultReplyDelay,
			QuickActionDelay: DefaultQuickActionDelay,
			NavigateDelay:    DefaultNavigateDelay,
		},
		Application: ApplicationTuning{
			StepDelays:           DefaultStepDelays(),
			DecisionDelay:        DefaultDecisionDelay,
			DocumentsProbability: DefaultDocumentsProbability,
			ApprovalProbability:  DefaultApprovalProbability,
			DocumentsProgress:    DefaultDocumentsProgress,
			RequiredDocuments:    DefaultRequiredDocuments,
		},
	}
}

// LoadSimTuning reads a YAML tuning file. Omitted fields keep their defaults.
func LoadSimTuning(path string) (*SimTuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseSimTuning(data)
}

// ParseSimTuning unmarshals YAML bytes over the defaults and validates.
func ParseSimTuning(data []byte) (*SimTuning, error) {
	t := DefaultSimTuning()
	t.Application.StepDelays = nil
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("config: parse sim tuning: %w", err)
	}
	if len(t.Application.StepDelays) == 0 {
		t.Application.StepDelays = DefaultStepDelays()
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t SimTuning) Validate() error {
	var errs []string
	if t.Chat.ReplyDelay < 0 || t.Chat.QuickActionDelay < 0 || t.Chat.NavigateDelay < 0 {
		errs = append(errs, "chat delays must be >= 0")
	}
	a := t.Application
	if len(a.StepDelays) != applicationSteps {
		errs = append(errs, fmt.Sprintf("application.step_delays needs %d entries, got %d", applicationSteps, len(a.StepDelays)))
	}
	for i, d := range a.StepDelays {
		if d < 0 {
			errs = append(errs, fmt.Sprintf("application.step_delays[%d] must be >= 0", i))
		}
	}
	if a.DecisionDelay < 0 {
		errs = append(errs, "application.decision_delay must be >= 0")
	}
	if a.DocumentsProbability < 0 || a.DocumentsProbability > 1 {
		errs = append(errs, "application.documents_probability must be within [0,1]")
	}
	if a.ApprovalProbability < 0 || a.ApprovalProbability > 1 {
		errs = append(errs, "application.approval_probability must be within [0,1]")
	}
	// progress must stay above the last processing step (75) and below submitted (100)
	if a.DocumentsProgress < 75 || a.DocumentsProgress > 100 {
		errs = append(errs, "application.documents_progress must be within [75,100]")
	}
	if a.RequiredDocuments < 0 {
		errs = append(errs, "application.required_documents must be >= 0")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: sim tuning: %s", strings.Join(errs, "; "))
	}
	return nil
}
