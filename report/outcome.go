package report

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"
)

type Result string

const (
	ResultPending Result = "pending"
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultSkipped Result = "skipped"
)

// TestOutcome is the recorded run of one test or scenario.
type TestOutcome struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Tags      []string      `json:"tags,omitempty"`
	Result    Result        `json:"result"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	Steps     []*Step       `json:"steps"`
	// Evidence attached outside of any step
	Evidence []Evidence `json:"evidence,omitempty"`
}

// Step is a reported step, nested steps are children.
type Step struct {
	Title     string        `json:"title"`
	Actor     string        `json:"actor,omitempty"`
	Result    Result        `json:"result"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	Evidence  []Evidence    `json:"evidence,omitempty"`
	Children  []*Step       `json:"children,omitempty"`
}

// Evidence is an attachment of a step, content is base64 encoded in JSON.
type Evidence struct {
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}

// StepCount returns the number of steps including nested steps.
func (o *TestOutcome) StepCount() int {
	return countSteps(o.Steps)
}

func countSteps(steps []*Step) int {
	return lo.SumBy(steps, func(s *Step) int {
		return 1 + countSteps(s.Children)
	})
}

// AllEvidence returns outcome and step evidence in report order.
func (o *TestOutcome) AllEvidence() []Evidence {
	evidence := append([]Evidence(nil), o.Evidence...)
	var walk func(steps []*Step)
	walk = func(steps []*Step) {
		for _, s := range steps {
			evidence = append(evidence, s.Evidence...)
			walk(s.Children)
		}
	}
	walk(o.Steps)
	return evidence
}
