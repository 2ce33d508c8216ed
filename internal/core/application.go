package core

import (
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"citizensera.com/sera/internal/catalog"
	"citizensera.com/sera/internal/config"
)

var ErrBenefitNotFound = errors.New("benefit not found")

type Status string

const (
	StatusNotStarted      Status = "not_started"
	StatusProcessing      Status = "processing"
	StatusDocumentsNeeded Status = "documents_needed"
	StatusSubmitted       Status = "submitted"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
)

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

const (
	stepAnalyzing  = "Analyzing eligibility and requirements..."
	stepGathering  = "Gathering user profile data..."
	stepPrefilling = "Pre-filling application forms..."
	stepChecking   = "Checking document requirements..."
	stepDocuments  = "Documents required for final submission"
	stepSubmitted  = "Application submitted successfully!"
	stepApproved   = "Congratulations! Your application has been approved."
	stepRejected   = "Application needs review. Check requirements and resubmit."
)

// processingSteps are the linear stages after start, in order. The wait
// before each comes from ApplicationTuning.StepDelays.
var processingSteps = []struct {
	progress int
	nextStep string
}{
	{25, stepGathering},
	{50, stepPrefilling},
	{75, stepChecking},
}

// BenefitApplication is the progress record of one benefit within a session.
type BenefitApplication struct {
	BenefitID         string    `json:"benefit_id"`
	Status            Status    `json:"status"`
	ProgressPercent   int       `json:"progress_percent"`
	NextStep          string    `json:"next_step"`
	RequiredDocuments []string  `json:"required_documents,omitempty"`
	StartedAt         time.Time `json:"started_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (a BenefitApplication) clone() BenefitApplication {
	a.RequiredDocuments = slices.Clone(a.RequiredDocuments)
	return a
}

// BenefitLookup resolves a benefit id against the catalog.
type BenefitLookup func(id string) (catalog.Benefit, bool)

// ApplicationSimulator walks benefit applications through processing,
// document collection and a final decision on a fixed schedule. At most one
// transition is pending per benefit.
type ApplicationSimulator struct {
	sched    *Scheduler
	tuning   config.ApplicationTuning
	branches BranchPolicy
	lookup   BenefitLookup
	emitter  Emitter
	logger   *zap.Logger

	mu      sync.Mutex
	apps    map[string]*BenefitApplication
	pending map[string]*Task
}

func NewApplicationSimulator(sched *Scheduler, tuning config.ApplicationTuning, branches BranchPolicy, lookup BenefitLookup, emitter Emitter, logger *zap.Logger) *ApplicationSimulator {
	if branches == nil {
		branches = NewRandomStrategy(0)
	}
	if lookup == nil {
		lookup = catalog.LookupBenefit
	}
	if emitter == nil {
		emitter = nopEmitter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationSimulator{
		sched:    sched,
		tuning:   tuning,
		branches: branches,
		lookup:   lookup,
		emitter:  emitter,
		logger:   logger,
		apps:     make(map[string]*BenefitApplication),
		pending:  make(map[string]*Task),
	}
}

// StartApplication begins processing benefitID. If a record already exists
// it is returned unchanged and created is false.
func (a *ApplicationSimulator) StartApplication(benefitID string) (app BenefitApplication, created bool, err error) {
	if _, ok := a.lookup(benefitID); !ok {
		return BenefitApplication{}, false, ErrBenefitNotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.apps[benefitID]; ok {
		return existing.clone(), false, nil
	}

	now := a.sched.Now()
	rec := &BenefitApplication{
		BenefitID:       benefitID,
		Status:          StatusProcessing,
		ProgressPercent: 0,
		NextStep:        stepAnalyzing,
		StartedAt:       now,
		UpdatedAt:       now,
	}
	a.apps[benefitID] = rec
	a.publishLocked(rec)
	a.scheduleLocked(benefitID, a.stepDelay(0), func() { a.advance(benefitID, 0) })
	return rec.clone(), true, nil
}

// SubmitDocuments records the upload for an application waiting on
// documents. Any other state is left untouched and accepted is false.
func (a *ApplicationSimulator) SubmitDocuments(benefitID string) (app BenefitApplication, accepted bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.apps[benefitID]
	if !ok {
		return BenefitApplication{}, false
	}
	if rec.Status != StatusDocumentsNeeded {
		return rec.clone(), false
	}
	a.submitLocked(rec)
	return rec.clone(), true
}

// advance applies processing step i, then either schedules the next step or
// takes the document branch.
func (a *ApplicationSimulator) advance(benefitID string, i int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pending, benefitID)
	rec, ok := a.apps[benefitID]
	if !ok || rec.Status != StatusProcessing {
		return
	}

	if i < len(processingSteps) {
		step := processingSteps[i]
		a.setLocked(rec, StatusProcessing, step.progress, step.nextStep)
		a.scheduleLocked(benefitID, a.stepDelay(i+1), func() { a.advance(benefitID, i+1) })
		return
	}

	if a.branches.Decide(a.tuning.DocumentsProbability) {
		rec.RequiredDocuments = a.requiredDocuments(benefitID)
		a.setLocked(rec, StatusDocumentsNeeded, a.tuning.DocumentsProgress, stepDocuments)
		return
	}
	a.submitLocked(rec)
}

func (a *ApplicationSimulator) submitLocked(rec *BenefitApplication) {
	rec.RequiredDocuments = nil
	a.setLocked(rec, StatusSubmitted, 100, stepSubmitted)
	id := rec.BenefitID
	a.scheduleLocked(id, a.tuning.DecisionDelay, func() { a.decide(id) })
}

func (a *ApplicationSimulator) decide(benefitID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pending, benefitID)
	rec, ok := a.apps[benefitID]
	if !ok || rec.Status != StatusSubmitted {
		return
	}
	if a.branches.Decide(a.tuning.ApprovalProbability) {
		a.setLocked(rec, StatusApproved, 100, stepApproved)
	} else {
		a.setLocked(rec, StatusRejected, 100, stepRejected)
	}
}

func (a *ApplicationSimulator) setLocked(rec *BenefitApplication, status Status, progress int, nextStep string) {
	if rec.Status.Terminal() {
		return
	}
	if progress < rec.ProgressPercent {
		progress = rec.ProgressPercent
	}
	rec.Status = status
	rec.ProgressPercent = progress
	rec.NextStep = nextStep
	rec.UpdatedAt = a.sched.Now()
	a.logger.Debug("application transitioned",
		zap.String("benefit_id", rec.BenefitID),
		zap.String("status", string(status)),
		zap.Int("progress", progress))
	a.publishLocked(rec)
}

func (a *ApplicationSimulator) publishLocked(rec *BenefitApplication) {
	snap := rec.clone()
	a.emitter.Emit(Event{Type: EventApplication, At: rec.UpdatedAt, Application: &snap})
}

func (a *ApplicationSimulator) scheduleLocked(benefitID string, d time.Duration, fn func()) {
	if prev, ok := a.pending[benefitID]; ok {
		prev.Cancel()
	}
	a.pending[benefitID] = a.sched.Schedule(d, fn)
}

func (a *ApplicationSimulator) stepDelay(i int) time.Duration {
	if i < len(a.tuning.StepDelays) {
		return a.tuning.StepDelays[i]
	}
	return 0
}

func (a *ApplicationSimulator) requiredDocuments(benefitID string) []string {
	b, ok := a.lookup(benefitID)
	if !ok {
		return nil
	}
	n := min(a.tuning.RequiredDocuments, len(b.Documents))
	return slices.Clone(b.Documents[:n])
}

// Applications returns a snapshot of every record keyed by benefit id.
func (a *ApplicationSimulator) Applications() map[string]BenefitApplication {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]BenefitApplication, len(a.apps))
	for id, rec := range a.apps {
		out[id] = rec.clone()
	}
	return out
}

func (a *ApplicationSimulator) Application(benefitID string) (BenefitApplication, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.apps[benefitID]
	if !ok {
		return BenefitApplication{}, false
	}
	return rec.clone(), true
}

// Pending reports whether a transition is scheduled for benefitID.
func (a *ApplicationSimulator) Pending(benefitID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.pending[benefitID]
	return ok && t.Pending()
}
