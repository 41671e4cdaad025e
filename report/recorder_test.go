package report_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/report"
)

func TestRecorder_NestedActorSteps(t *testing.T) {
	recorder := report.NewRecorder("Adding todos")
	actor := screenplay.Named("Toby")
	actor.Listen(recorder)

	addTodo := func(name string) screenplay.Performable {
		return screenplay.TaskFunc("{actor} adds a todo item called "+name, func(actor *screenplay.Actor) error {
			actor.Attach(screenplay.Evidence{Title: "Todo", ContentType: "text/plain", Content: []byte(name)})
			return nil
		})
	}

	err := actor.AttemptsTo(
		screenplay.Task("{actor} adds todo items", addTodo("Buy milk"), addTodo("Walk the dog")),
	)
	require.NoError(t, err)

	outcome := recorder.Finish(nil)
	assert.Equal(t, report.ResultSuccess, outcome.Result)
	require.Len(t, outcome.Steps, 1)
	assert.Equal(t, "Toby adds todo items", outcome.Steps[0].Title)
	assert.Equal(t, "Toby", outcome.Steps[0].Actor)
	require.Len(t, outcome.Steps[0].Children, 2)
	assert.Equal(t, "Toby adds a todo item called Walk the dog", outcome.Steps[0].Children[1].Title)
	assert.Equal(t, []byte("Buy milk"), outcome.Steps[0].Children[0].Evidence[0].Content)
	assert.Equal(t, 3, outcome.StepCount())
	assert.Len(t, outcome.AllEvidence(), 2)
}

func TestRecorder_FailedStepFailsOutcome(t *testing.T) {
	recorder := report.NewRecorder("Deleting todos")

	err := recorder.Step("Delete the todo: 'Buy milk'", func() error {
		return errors.New("locator not found")
	})
	require.Error(t, err)
	_ = recorder.Step("Get the visible todo items", func() error { return nil })

	outcome := recorder.Finish(nil)
	assert.Equal(t, report.ResultFailure, outcome.Result)
	assert.Equal(t, "locator not found", outcome.Error)
	assert.Equal(t, report.ResultFailure, outcome.Steps[0].Result)
	assert.Equal(t, report.ResultSuccess, outcome.Steps[1].Result)

	// Finish is idempotent
	assert.Same(t, outcome, recorder.Finish(errors.New("ignored")))
}

func TestRecorder_EvidenceOutsideOfSteps(t *testing.T) {
	recorder := report.NewRecorder("Evidence")
	recorder.Attach(screenplay.Evidence{Title: "Screenshot", ContentType: "image/png"})

	outcome := recorder.Finish(errors.New("test failed"))
	assert.Len(t, outcome.Evidence, 1)
	assert.Equal(t, report.ResultFailure, outcome.Result)
	assert.Equal(t, "test failed", outcome.Error)
}

func TestRecorder_InterruptedSteps(t *testing.T) {
	recorder := report.NewRecorder("Interrupted")
	actor := screenplay.Named("Toby")
	recorder.StepStarted(actor, "Toby opens the TodoMVC application")

	outcome := recorder.Finish(nil)
	assert.Equal(t, report.ResultFailure, outcome.Steps[0].Result)
	assert.Equal(t, "step interrupted", outcome.Steps[0].Error)
}

func TestRecorder_Record(t *testing.T) {
	recorder := report.NewRecorder("Completing todos")
	recorder.Record("Add a todo: 'Walk the dog'", func() {})

	// A failing require ends the test goroutine inside the step
	done := make(chan struct{})
	go func() {
		defer close(done)
		recorder.Record("Complete the todo: 'Walk the dog'", runtime.Goexit)
	}()
	<-done

	outcome := recorder.Finish(nil)
	require.Len(t, outcome.Steps, 2)
	assert.Equal(t, report.ResultSuccess, outcome.Steps[0].Result)
	assert.Equal(t, report.ResultFailure, outcome.Steps[1].Result)
	assert.Equal(t, "step interrupted", outcome.Steps[1].Error)
	assert.Equal(t, report.ResultFailure, outcome.Result)
}

func TestForTest_SavesOutcome(t *testing.T) {
	store := report.NewStore(t.TempDir())

	var id string
	t.Run("recorded", func(t *testing.T) {
		recorder := report.ForTest(t, store)
		id = recorder.Outcome().ID.String()
		require.NoError(t, recorder.Step("Open the TodoMVC application", func() error { return nil }))
	})

	outcomes, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, id, outcomes[0].ID.String())
	assert.Equal(t, "TestForTest_SavesOutcome/recorded", outcomes[0].Name)
	assert.Equal(t, report.ResultSuccess, outcomes[0].Result)
}
