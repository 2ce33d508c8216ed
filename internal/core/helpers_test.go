package core

import (
	"sync"
	"testing"
	"time"

	"citizensera.com/sera/internal/config"
)

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ofType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	clock *ManualClock
	sched *Scheduler
	rec   *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := NewManualClock(epoch)
	sched := NewScheduler(clock)
	t.Cleanup(sched.Close)
	return &fixture{clock: clock, sched: sched, rec: &recorder{}}
}

func (f *fixture) chat(strategy ReplyStrategy) *ConversationSimulator {
	return NewConversationSimulator(f.sched, config.DefaultSimTuning().Chat, strategy, f.rec, nil)
}

func (f *fixture) apps(branches BranchPolicy) *ApplicationSimulator {
	return NewApplicationSimulator(f.sched, config.DefaultSimTuning().Application, branches, nil, f.rec, nil)
}

// fullSchedule is long enough for any application to reach a terminal state
// under the default tuning.
func fullSchedule() time.Duration {
	a := config.DefaultSimTuning().Application
	var total time.Duration
	for _, d := range a.StepDelays {
		total += d
	}
	return total + a.DecisionDelay
}
