package tasks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/todomvc/tasks"
)

func TestDescriptions(t *testing.T) {
	toby := screenplay.Named("Toby")

	tests := map[string]struct {
		performable screenplay.Performable
		expected    string
	}{
		"open":            {tasks.OpenTodoMvcApp(), "Toby opens the TodoMVC application"},
		"add one":         {tasks.AddATodoItem("Buy milk"), "Toby adds todo items: Buy milk"},
		"add many":        {tasks.AddTodoItems("Buy milk", "Walk the dog"), "Toby adds todo items: Buy milk, Walk the dog"},
		"complete":        {tasks.Complete("Buy milk"), "Toby completes the todo item 'Buy milk'"},
		"delete":          {tasks.Delete("Buy milk"), "Toby deletes the todo item 'Buy milk'"},
		"toggle all":      {tasks.ToggleAll(), "Toby toggles all todos"},
		"clear completed": {tasks.ClearCompletedTodos(), "Toby clears all completed todos"},
		"edit":            {tasks.Edit("Buy milk").To("Buy oat milk"), "Toby edits the todo item 'Buy milk' to 'Buy oat milk'"},
		"cancel editing":  {tasks.CancelEditing("Buy milk"), "Toby cancels editing the todo item 'Buy milk'"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, screenplay.Describe(toby, tt.performable))
		})
	}
}

func TestFilterTodosToShow(t *testing.T) {
	toby := screenplay.Named("Toby")

	for name, expected := range map[string]string{
		"All":       "Toby filters to show all todos",
		"active":    "Toby filters to show active todos",
		"COMPLETED": "Toby filters to show completed todos",
	} {
		filter, err := tasks.FilterTodosToShow(name)
		require.NoError(t, err)
		assert.Equal(t, expected, screenplay.Describe(toby, filter))
	}

	_, err := tasks.FilterTodosToShow("archived")
	assert.ErrorIs(t, err, tasks.ErrUnknownFilter)
	assert.EqualError(t, err, "unknown filter type: archived")
}

func TestTasksRequireBrowseTheWeb(t *testing.T) {
	toby := screenplay.Named("Toby")

	err := toby.AttemptsTo(tasks.AddATodoItem("Buy milk"))
	assert.ErrorIs(t, err, screenplay.ErrMissingAbility)
}
