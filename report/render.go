package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"

	"github.com/networkteam/screenplay/report/views"
)

func indexProps(outcomes []*TestOutcome) views.IndexProps {
	return views.IndexProps{
		Outcomes: lo.Map(outcomes, func(o *TestOutcome, _ int) views.OutcomeSummary {
			return views.OutcomeSummary{
				ID:        o.ID.String(),
				Name:      o.Name,
				Result:    string(o.Result),
				StartedAt: o.StartedAt.Format(time.DateTime),
				Duration:  o.Duration.Round(time.Millisecond).String(),
				Steps:     o.StepCount(),
			}
		}),
	}
}

func outcomeProps(o *TestOutcome) views.OutcomeProps {
	index := 0
	evidenceProps := func(evidence []Evidence) []views.EvidenceProps {
		return lo.Map(evidence, func(e Evidence, _ int) views.EvidenceProps {
			p := views.EvidenceProps{Index: index, Title: e.Title, ContentType: e.ContentType, Content: e.Content}
			index++
			return p
		})
	}

	var stepProps func(steps []*Step) []views.StepProps
	stepProps = func(steps []*Step) []views.StepProps {
		return lo.Map(steps, func(s *Step, _ int) views.StepProps {
			return views.StepProps{
				Title:    s.Title,
				Result:   string(s.Result),
				Duration: s.Duration,
				Error:    s.Error,
				Evidence: evidenceProps(s.Evidence),
				Children: stepProps(s.Children),
			}
		})
	}

	// Evidence indexes follow the order of TestOutcome.AllEvidence
	props := views.OutcomeProps{
		ID:        o.ID.String(),
		Name:      o.Name,
		Result:    string(o.Result),
		StartedAt: o.StartedAt,
		Duration:  o.Duration,
		Error:     o.Error,
		Evidence:  evidenceProps(o.Evidence),
	}
	props.Steps = stepProps(o.Steps)
	return props
}

func staticContext() context.Context {
	return views.WithHandlerOptions(context.Background(), views.HandlerOptions{Static: true})
}

// RenderIndex writes a static HTML index of outcomes linking to <id>.html pages.
func RenderIndex(w io.Writer, outcomes []*TestOutcome) error {
	return views.Index(indexProps(outcomes)).Render(staticContext(), w)
}

// RenderOutcome writes a static HTML page of an outcome.
func RenderOutcome(w io.Writer, outcome *TestOutcome) error {
	return views.Outcome(outcomeProps(outcome)).Render(staticContext(), w)
}

// RenderSite writes index.html and one page per outcome to dir.
func RenderSite(dir string, outcomes []*TestOutcome) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := renderFile(filepath.Join(dir, "index.html"), func(w io.Writer) error {
		return RenderIndex(w, outcomes)
	}); err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := renderFile(filepath.Join(dir, o.ID.String()+".html"), func(w io.Writer) error {
			return RenderOutcome(w, o)
		}); err != nil {
			return err
		}
	}
	return nil
}

func renderFile(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}
