package report

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"

	"github.com/networkteam/screenplay"
)

// Recorder records the steps of actors as a TestOutcome.
type Recorder struct {
	mu       sync.Mutex
	outcome  *TestOutcome
	stack    []*Step
	finished bool
}

var (
	_ screenplay.StepListener     = &Recorder{}
	_ screenplay.EvidenceListener = &Recorder{}
)

// NewRecorder starts recording a test outcome.
func NewRecorder(name string, tags ...string) *Recorder {
	return &Recorder{
		outcome: &TestOutcome{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      name,
			Tags:      tags,
			Result:    ResultPending,
			StartedAt: time.Now(),
		},
	}
}

// ForTest records the outcome of a test and saves it to store (if not nil) when the test finishes.
func ForTest(t testing.TB, store *Store) *Recorder {
	t.Helper()

	r := NewRecorder(t.Name())
	t.Cleanup(func() {
		var err error
		if t.Failed() {
			err = fmt.Errorf("test failed")
		}
		outcome := r.Finish(err)
		if t.Skipped() {
			outcome.Result = ResultSkipped
		}
		if store == nil {
			return
		}
		if err := store.Save(outcome); err != nil {
			t.Errorf("saving test outcome: %v", err)
		}
	})
	return r
}

func (r *Recorder) StepStarted(actor *screenplay.Actor, title string) {
	r.start(actor.Name(), title)
}

func (r *Recorder) StepFinished(actor *screenplay.Actor, title string, err error) {
	r.finish(err)
}

func (r *Recorder) EvidenceAttached(actor *screenplay.Actor, evidence screenplay.Evidence) {
	r.Attach(evidence)
}

// Attach adds evidence to the current step, or to the outcome outside of steps.
func (r *Recorder) Attach(evidence screenplay.Evidence) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := Evidence{Title: evidence.Title, ContentType: evidence.ContentType, Content: evidence.Content}
	if len(r.stack) == 0 {
		r.outcome.Evidence = append(r.outcome.Evidence, e)
		return
	}
	current := r.stack[len(r.stack)-1]
	current.Evidence = append(current.Evidence, e)
}

// Step records fn as a step without an actor.
func (r *Recorder) Step(title string, fn func() error) error {
	r.start("", title)
	err := fn()
	r.finish(err)
	return err
}

// Record records fn as a step without an actor. fn reports failures through the test,
// a step left open by t.FailNow is finished as interrupted.
func (r *Recorder) Record(title string, fn func()) {
	r.start("", title)
	fn()
	r.finish(nil)
}

// Finish completes the outcome. The outcome fails if err is not nil or a step failed.
func (r *Recorder) Finish(err error) *TestOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return r.outcome
	}
	r.finished = true

	// Steps still open were interrupted, e.g. by t.FailNow
	for len(r.stack) > 0 {
		r.pop(fmt.Errorf("step interrupted"))
	}

	r.outcome.Duration = time.Since(r.outcome.StartedAt)
	r.outcome.Result = ResultSuccess
	if err != nil {
		r.outcome.Result = ResultFailure
		r.outcome.Error = err.Error()
	}
	for _, s := range r.outcome.Steps {
		if s.Result == ResultFailure {
			r.outcome.Result = ResultFailure
			if r.outcome.Error == "" {
				r.outcome.Error = s.Error
			}
		}
	}
	return r.outcome
}

// Outcome returns the outcome recorded so far.
func (r *Recorder) Outcome() *TestOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

func (r *Recorder) start(actor, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step := &Step{
		Title:     title,
		Actor:     actor,
		Result:    ResultPending,
		StartedAt: time.Now(),
	}
	if len(r.stack) == 0 {
		r.outcome.Steps = append(r.outcome.Steps, step)
	} else {
		parent := r.stack[len(r.stack)-1]
		parent.Children = append(parent.Children, step)
	}
	r.stack = append(r.stack, step)
}

func (r *Recorder) finish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pop(err)
}

// pop expects r.mu to be held
func (r *Recorder) pop(err error) {
	if len(r.stack) == 0 {
		return
	}
	step := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]

	step.Duration = time.Since(step.StartedAt)
	step.Result = ResultSuccess
	if err != nil {
		step.Result = ResultFailure
		step.Error = err.Error()
	}
}
