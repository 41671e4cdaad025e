package steps_test

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay/report"
	"github.com/networkteam/screenplay/todomvc"
	"github.com/networkteam/screenplay/todomvc/steps"
)

// todoPage answers the calls of the page object without a browser.
// Unexpected calls panic on the nil embedded interfaces.
type todoPage struct {
	playwright.Page
	visited []string
	texts   map[string]string
	counts  map[string]int
}

func (p *todoPage) Goto(url string, _ ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.visited = append(p.visited, url)
	return nil, nil
}

func (p *todoPage) WaitForLoadState(_ ...playwright.PageWaitForLoadStateOptions) error {
	return nil
}

func (p *todoPage) Evaluate(_ string, _ ...interface{}) (interface{}, error) {
	return nil, nil
}

func (p *todoPage) Reload(_ ...playwright.PageReloadOptions) (playwright.Response, error) {
	return nil, nil
}

func (p *todoPage) Locator(selector string, _ ...playwright.PageLocatorOptions) playwright.Locator {
	return &todoLocator{text: p.texts[selector], count: p.counts[selector]}
}

type todoLocator struct {
	playwright.Locator
	text  string
	count int
}

func (l *todoLocator) TextContent(_ ...playwright.LocatorTextContentOptions) (string, error) {
	return l.text, nil
}

func (l *todoLocator) Count() (int, error) {
	return l.count, nil
}

func stepTitles(outcome *report.TestOutcome) []string {
	return lo.Map(outcome.Steps, func(s *report.Step, _ int) string { return s.Title })
}

func TestTodoSteps(t *testing.T) {
	page := &todoPage{
		texts: map[string]string{
			".todo-count":         "2 items left",
			".filters a.selected": " Active ",
		},
		counts: map[string]int{".todo-list li": 3},
	}
	recorder := report.NewRecorder("Filtering todos")
	todoSteps := steps.New(todomvc.NewPage(t, page, ""), recorder)

	todoSteps.OpenApplication()
	assert.Equal(t, 3, todoSteps.VisibleTodoCount())
	assert.Equal(t, 2, todoSteps.RemainingCount())
	assert.Equal(t, "Active", todoSteps.SelectedFilter())

	assert.Equal(t, []string{todomvc.DefaultURL}, page.visited)

	outcome := recorder.Finish(nil)
	assert.Equal(t, report.ResultSuccess, outcome.Result)
	require.Len(t, outcome.Steps, 4)
	assert.Equal(t, []string{
		"Open the TodoMVC application",
		"Get the number of visible todos",
		"Get the remaining items count",
		"Get the selected filter",
	}, stepTitles(outcome))
}
