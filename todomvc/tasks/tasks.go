// Package tasks contains the business-level TodoMVC tasks of screenplay actors.
package tasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/todomvc"
	"github.com/networkteam/screenplay/todomvc/ui"
	"github.com/networkteam/screenplay/web"
)

// ErrUnknownFilter is returned by FilterTodosToShow for names other than all, active or completed.
var ErrUnknownFilter = errors.New("unknown filter type")

// OpenTodoMvcApp opens the application at todomvc.DefaultURL with an empty todo list.
func OpenTodoMvcApp() screenplay.Performable {
	return OpenTodoMvcAppAt(todomvc.DefaultURL)
}

// OpenTodoMvcAppAt opens the application at url with an empty todo list.
func OpenTodoMvcAppAt(url string) screenplay.Performable {
	return screenplay.Task("{actor} opens the TodoMVC application",
		web.OpenURL(url),
		// Todos are persisted in localStorage and would leak between tests
		web.ExecuteJavaScript("() => localStorage.clear()"),
		web.Reload(),
	)
}

func AddATodoItem(text string) screenplay.Performable {
	return AddTodoItems(text)
}

func AddTodoItems(texts ...string) screenplay.Performable {
	steps := make([]screenplay.Performable, 0, len(texts))
	for _, text := range texts {
		steps = append(steps, web.Enter(text).Into(ui.NewTodoInput).ThenHit("Enter"))
	}
	return screenplay.Task("{actor} adds todo items: "+strings.Join(texts, ", "), steps...)
}

func Complete(text string) screenplay.Performable {
	return screenplay.Task(fmt.Sprintf("{actor} completes the todo item '%s'", text),
		web.ClickOn(ui.CheckboxFor(text)),
	)
}

// Delete hovers over the todo to reveal its delete button.
func Delete(text string) screenplay.Performable {
	return screenplay.Task(fmt.Sprintf("{actor} deletes the todo item '%s'", text),
		web.HoverOver(ui.TodoItemCalled(text)),
		web.ClickOn(ui.DeleteButtonFor(text)),
	)
}

// ToggleAll marks all todos as completed or active.
func ToggleAll() screenplay.Performable {
	return screenplay.Task("{actor} toggles all todos",
		// The checkbox is visually hidden behind its label
		web.ForceClickOn(ui.ToggleAllCheckbox),
		screenplay.TaskFunc("{actor} waits for the screen to update", func(actor *screenplay.Actor) error {
			b, err := web.As(actor)
			if err != nil {
				return err
			}
			return b.NotifyScreenChange()
		}),
	)
}

func ClearCompletedTodos() screenplay.Performable {
	return screenplay.Task("{actor} clears all completed todos",
		web.ClickOn(ui.ClearCompletedButton),
	)
}

func FilterTodosToShowAll() screenplay.Performable {
	return screenplay.Task("{actor} filters to show all todos", web.ClickOn(ui.AllFilter))
}

func FilterTodosToShowActive() screenplay.Performable {
	return screenplay.Task("{actor} filters to show active todos", web.ClickOn(ui.ActiveFilter))
}

func FilterTodosToShowCompleted() screenplay.Performable {
	return screenplay.Task("{actor} filters to show completed todos", web.ClickOn(ui.CompletedFilter))
}

// FilterTodosToShow selects a filter by case-insensitive name.
func FilterTodosToShow(name string) (screenplay.Performable, error) {
	switch strings.ToLower(name) {
	case "all":
		return FilterTodosToShowAll(), nil
	case "active":
		return FilterTodosToShowActive(), nil
	case "completed":
		return FilterTodosToShowCompleted(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
}

// EditTodo is the first half of Edit(old).To(new).
type EditTodo struct {
	text string
}

// Edit starts editing the todo called text.
func Edit(text string) EditTodo {
	return EditTodo{text: text}
}

// To replaces the text of the todo.
func (e EditTodo) To(newText string) screenplay.Performable {
	return screenplay.Task(fmt.Sprintf("{actor} edits the todo item '%s' to '%s'", e.text, newText),
		web.DoubleClickOn(ui.LabelFor(e.text)),
		web.WaitUntilVisible(ui.EditingInput),
		web.Enter(newText).Into(ui.EditingInput).ThenHit("Enter"),
	)
}

// CancelEditing starts editing the todo and cancels with Escape.
func CancelEditing(text string) screenplay.Performable {
	return screenplay.Task(fmt.Sprintf("{actor} cancels editing the todo item '%s'", text),
		web.DoubleClickOn(ui.LabelFor(text)),
		web.PressKeys("Escape").In(ui.EditingInput),
	)
}
