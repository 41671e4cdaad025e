//go:build acceptance
// +build acceptance

package acceptance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/ensure"
	"github.com/networkteam/screenplay/report"
	"github.com/networkteam/screenplay/web"
)

var (
	reportSummary  = web.The("report summary").LocatedBy("h1 + p")
	reportLinks    = web.The("test links").LocatedBy("tbody a")
	stepTitles     = web.The("step titles").LocatedBy("li.step")
	reportHeading  = web.The("report heading").LocatedBy("h1")
	stepError      = web.The("step error").LocatedBy("li.step .step-error")
	evidenceLinks  = web.The("evidence links").LocatedBy("a:text('raw')")
	stepList       = web.The("step list").LocatedBy("ul.steps")
	outcomeTable   = web.The("outcome table").LocatedBy("table")
	backToAllTests = web.The("back link").LocatedBy("a:has-text('All tests')")
)

func recordOutcome(t *testing.T, store *report.Store, name string, failWith error) {
	t.Helper()

	recorder := report.NewRecorder(name)
	_ = recorder.Step("Toby opens the TodoMVC application", func() error {
		recorder.Attach(screenplay.Evidence{Title: "todos", ContentType: "application/json", Content: []byte(`["Walk the dog"]`)})
		return nil
	})
	_ = recorder.Step("Toby adds a todo item called 'Walk the dog'", func() error {
		return failWith
	})
	outcome := recorder.Finish(nil)
	require.NoError(t, store.Save(outcome))
}

func TestReportViewer(t *testing.T) {
	WithDemoApp(t, func(t *testing.T, app *DemoApp) {
		recordOutcome(t, app.Reports, "Adding todos/can add a single todo item", nil)
		recordOutcome(t, app.Reports, "Completing todos/can mark a todo item as completed", errors.New("locator not found"))

		t.Run("lists all recorded outcomes", func(t *testing.T) {
			reviewer := NewActor(t, "Rita")

			must(t, reviewer.AttemptsTo(
				web.OpenURL(app.ReportsURL),
				ensure.ThatString(web.TextOf(reportSummary)).IsEqualTo("2 tests, 1 failed"),
				ensure.ThatList(web.TextsOf(reportLinks)).ContainsExactly(
					"Completing todos/can mark a todo item as completed",
					"Adding todos/can add a single todo item",
				),
			))
		})

		t.Run("shows the steps of an outcome", func(t *testing.T) {
			reviewer := NewActor(t, "Rita")

			must(t, reviewer.AttemptsTo(
				web.OpenURL(app.ReportsURL),
				web.ClickOn(web.The("failed test").LocatedBy("tbody a:text('Completing todos')")),
				web.WaitUntilVisible(stepList),
				ensure.ThatString(web.TextOf(reportHeading)).Contains("Completing todos/can mark a todo item as completed"),
				ensure.ThatInt(web.CountOf(stepTitles)).IsEqualTo(2),
				ensure.ThatString(web.TextOf(stepError)).Contains("locator not found"),
				ensure.ThatInt(web.CountOf(evidenceLinks)).IsEqualTo(1),
				web.ClickOn(backToAllTests),
				web.WaitUntilVisible(outcomeTable),
				ensure.ThatString(web.CurrentURL()).IsEqualTo(app.ReportsURL),
			))
		})

		t.Run("serves evidence downloads", func(t *testing.T) {
			reviewer := NewActor(t, "Rita")

			must(t, reviewer.AttemptsTo(
				web.OpenURL(app.ReportsURL),
				web.ClickOn(web.The("passed test").LocatedBy("tbody a:text('Adding todos')")),
				web.WaitUntilVisible(stepList),
			))

			href, err := screenplay.AsksFor(reviewer, web.AttributeOf(evidenceLinks, "href"))
			require.NoError(t, err)

			must(t, reviewer.AttemptsTo(
				web.Get(app.URL + href),
				ensure.ThatInt(web.LastAPIResponse().StatusCode()).IsEqualTo(200),
				ensure.ThatString(web.LastAPIResponse().Header("Content-Type")).IsEqualTo("application/json"),
				ensure.ThatString(web.LastAPIResponse().Body()).IsEqualTo(`["Walk the dog"]`),
			))
		})
	})
}
