//go:build acceptance
// +build acceptance

package acceptance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/report"
	"github.com/networkteam/screenplay/todomvc"
	"github.com/networkteam/screenplay/todomvc/steps"
	"github.com/networkteam/screenplay/todomvc/tasks"
	"github.com/networkteam/screenplay/web"
)

// reportStore returns the store for test outcomes, nil if reports are disabled.
func reportStore() *report.Store {
	if !testConfig.Report.Enabled {
		return nil
	}
	return report.NewStore(testConfig.Report.Dir)
}

// NewActor creates an actor who can browse the web with the configured browser.
// Steps of the actor are recorded in the test report, the browser is closed when the test finishes.
func NewActor(t *testing.T, name string, opts ...func(o *web.Options)) *screenplay.Actor {
	t.Helper()

	recorder := report.ForTest(t, reportStore())

	options := web.OptionsFromConfig(testConfig)
	for _, opt := range opts {
		opt(&options)
	}

	actor := screenplay.Named(name).WhoCan(web.WithOptions(options))
	actor.Listen(recorder)

	// Registered after the recorder, so the browser is closed before the outcome is saved
	t.Cleanup(func() {
		if err := actor.WrapUp(); err != nil {
			t.Errorf("wrapping up %s: %v", actor, err)
		}
	})
	return actor
}

// WithSessionStateDir stores named session states in dir.
func WithSessionStateDir(dir string) func(o *web.Options) {
	return func(o *web.Options) {
		o.SessionStateDir = dir
	}
}

// OpenTodoMVC opens the configured TodoMVC application with an empty list.
func OpenTodoMVC() screenplay.Performable {
	return tasks.OpenTodoMvcAppAt(testConfig.TodoMVC.URL)
}

// NewTodoSteps creates the step library on a fresh page of the shared browser.
// Steps are recorded in the test report.
func NewTodoSteps(t *testing.T, pw *PlaywrightFixture) *steps.TodoSteps {
	t.Helper()

	recorder := report.ForTest(t, reportStore())
	page := todomvc.NewPage(t, pw.NewPage(t), testConfig.TodoMVC.URL)
	return steps.New(page, recorder)
}

// WithDemoApp starts the demo application and stops it when the test finishes.
func WithDemoApp(t *testing.T, fn func(t *testing.T, app *DemoApp)) {
	t.Helper()

	app := NewDemoApp(t)
	t.Cleanup(app.Close)

	fn(t, app)
}

// must fails the test on a step error.
func must(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}
