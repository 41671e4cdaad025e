package screenplay_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay"
)

type notepad struct {
	notes     []string
	tornDown  bool
	teardown  error
	evidences []screenplay.Evidence
}

func (n *notepad) TearDown() error {
	n.tornDown = true
	return n.teardown
}

func (n *notepad) FailureEvidence() []screenplay.Evidence {
	return n.evidences
}

func write(note string) screenplay.Performable {
	return screenplay.TaskFunc("{actor} writes "+note, func(actor *screenplay.Actor) error {
		pad, err := screenplay.AbilityOf[*notepad](actor)
		if err != nil {
			return err
		}
		pad.notes = append(pad.notes, note)
		return nil
	})
}

type recordingListener struct {
	events    []string
	evidences []screenplay.Evidence
}

func (l *recordingListener) StepStarted(actor *screenplay.Actor, title string) {
	l.events = append(l.events, "start "+title)
}

func (l *recordingListener) StepFinished(actor *screenplay.Actor, title string, err error) {
	l.events = append(l.events, fmt.Sprintf("finish %s (%v)", title, err))
}

func (l *recordingListener) EvidenceAttached(actor *screenplay.Actor, evidence screenplay.Evidence) {
	l.evidences = append(l.evidences, evidence)
}

func TestActor_AttemptsToReportsNestedSteps(t *testing.T) {
	pad := &notepad{}
	listener := &recordingListener{}
	actor := screenplay.Named("Toby").WhoCan(pad)
	actor.Listen(listener)

	err := actor.AttemptsTo(
		screenplay.Task("{actor} plans the day", write("Buy milk"), write("Walk the dog")),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Buy milk", "Walk the dog"}, pad.notes)
	assert.Equal(t, []string{
		"start Toby plans the day",
		"start Toby writes Buy milk",
		"finish Toby writes Buy milk (<nil>)",
		"start Toby writes Walk the dog",
		"finish Toby writes Walk the dog (<nil>)",
		"finish Toby plans the day (<nil>)",
	}, listener.events)
}

func TestActor_StopsAtFirstFailure(t *testing.T) {
	pad := &notepad{evidences: []screenplay.Evidence{{Title: "Console messages", ContentType: "text/plain"}}}
	listener := &recordingListener{}
	actor := screenplay.Named("Toby").WhoCan(pad)
	actor.Listen(listener)

	boom := errors.New("element not found")
	err := actor.AttemptsTo(
		screenplay.Task("{actor} plans the day",
			write("Buy milk"),
			screenplay.TaskFunc("{actor} fails", func(*screenplay.Actor) error { return boom }),
			write("Walk the dog"),
		),
	)

	require.ErrorIs(t, err, boom)
	var stepErr *screenplay.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "Toby fails", stepErr.Title)
	assert.Equal(t, "Toby fails: element not found", err.Error())

	assert.Equal(t, []string{"Buy milk"}, pad.notes)
	// Evidence is attached once for the innermost failing step
	assert.Len(t, listener.evidences, 1)
}

func TestAbilityOf_Missing(t *testing.T) {
	actor := screenplay.Named("Toby")

	_, err := screenplay.AbilityOf[*notepad](actor)
	assert.ErrorIs(t, err, screenplay.ErrMissingAbility)
	assert.ErrorContains(t, err, "Toby cannot use *screenplay_test.notepad")
}

func TestAsksFor(t *testing.T) {
	listener := &recordingListener{}
	actor := screenplay.Named("Toby").WhoCan(&notepad{notes: []string{"a", "b"}})
	actor.Listen(listener)

	count := screenplay.About("the number of notes", func(actor *screenplay.Actor) (int, error) {
		pad, err := screenplay.AbilityOf[*notepad](actor)
		if err != nil {
			return 0, err
		}
		return len(pad.notes), nil
	})

	answer, err := screenplay.AsksFor(actor, count)
	require.NoError(t, err)
	assert.Equal(t, 2, answer)
	assert.Equal(t, "start Toby asks about the number of notes", listener.events[0])
}

func TestActor_RememberAndRecall(t *testing.T) {
	actor := screenplay.Named("Toby")
	actor.Remember("session", "my-session")

	v, ok := screenplay.RecallAs[string](actor, "session")
	assert.True(t, ok)
	assert.Equal(t, "my-session", v)

	_, ok = screenplay.RecallAs[int](actor, "session")
	assert.False(t, ok)
	_, ok = actor.Recall("unknown")
	assert.False(t, ok)
}

func TestActor_WrapUpJoinsErrors(t *testing.T) {
	first := &notepad{teardown: errors.New("browser already closed")}
	second := &notepad{}
	actor := screenplay.Named("Toby").WhoCan(first, second)

	err := actor.WrapUp()
	assert.ErrorContains(t, err, "browser already closed")
	assert.True(t, first.tornDown)
	assert.True(t, second.tornDown)
}

func TestDescribe(t *testing.T) {
	actor := screenplay.Named("Toby")

	assert.Equal(t, "Toby writes x", screenplay.Describe(actor, write("x")))
	assert.Equal(t, "Toby performs *screenplay_test.notepad", screenplay.Describe(actor, &notepad{}))
}
