// Package steps reports each interaction with the TodoMVC page as a step of the test outcome.
package steps

import (
	"fmt"
	"strings"

	"github.com/networkteam/screenplay/report"
	"github.com/networkteam/screenplay/todomvc"
)

// TodoSteps performs TodoMVC interactions as reported steps.
// Queries return data; assertions belong to the test.
type TodoSteps struct {
	page     *todomvc.Page
	recorder *report.Recorder
}

func New(page *todomvc.Page, recorder *report.Recorder) *TodoSteps {
	return &TodoSteps{page: page, recorder: recorder}
}

// Page returns the underlying page object.
func (s *TodoSteps) Page() *todomvc.Page {
	return s.page
}

func (s *TodoSteps) step(title string, fn func()) {
	s.recorder.Record(title, fn)
}

func query[T any](s *TodoSteps, title string, fn func() T) T {
	var result T
	s.step(title, func() {
		result = fn()
	})
	return result
}

func (s *TodoSteps) OpenApplication() {
	s.step("Open the TodoMVC application", s.page.Open)
}

func (s *TodoSteps) AddTodo(text string) {
	s.step(fmt.Sprintf("Add a todo: '%s'", text), func() {
		s.page.AddTodo(text)
	})
}

func (s *TodoSteps) AddTodos(texts ...string) {
	s.step("Add todos: "+strings.Join(texts, ", "), func() {
		s.page.AddTodos(texts...)
	})
}

func (s *TodoSteps) CompleteTodo(text string) {
	s.step(fmt.Sprintf("Complete the todo: '%s'", text), func() {
		s.page.CompleteTodo(text)
	})
}

func (s *TodoSteps) ToggleAll() {
	s.step("Toggle all todos", s.page.ToggleAll)
}

func (s *TodoSteps) EditTodo(oldText, newText string) {
	s.step(fmt.Sprintf("Edit todo '%s' to '%s'", oldText, newText), func() {
		s.page.EditTodo(oldText, newText)
	})
}

func (s *TodoSteps) CancelEdit(text string) {
	s.step(fmt.Sprintf("Cancel editing the todo: '%s'", text), func() {
		s.page.CancelEdit(text)
	})
}

func (s *TodoSteps) DeleteTodo(text string) {
	s.step(fmt.Sprintf("Delete the todo: '%s'", text), func() {
		s.page.DeleteTodo(text)
	})
}

func (s *TodoSteps) ClearCompleted() {
	s.step("Clear all completed todos", s.page.ClearCompleted)
}

func (s *TodoSteps) FilterAll() {
	s.step("Filter to show all todos", s.page.FilterAll)
}

func (s *TodoSteps) FilterActive() {
	s.step("Filter to show active todos only", s.page.FilterActive)
}

func (s *TodoSteps) FilterCompleted() {
	s.step("Filter to show completed todos only", s.page.FilterCompleted)
}

func (s *TodoSteps) VisibleTodoCount() int {
	return query(s, "Get the number of visible todos", s.page.VisibleTodoCount)
}

func (s *TodoSteps) VisibleTodos() []string {
	return query(s, "Get the visible todo items", s.page.VisibleTodoTexts)
}

func (s *TodoSteps) RemainingCount() int {
	return query(s, "Get the remaining items count", s.page.RemainingCount)
}

func (s *TodoSteps) TodoExists(text string) bool {
	return query(s, fmt.Sprintf("Check if todo '%s' exists", text), func() bool {
		return s.page.HasTodo(text)
	})
}

func (s *TodoSteps) TodoIsCompleted(text string) bool {
	return query(s, fmt.Sprintf("Check if todo '%s' is completed", text), func() bool {
		return s.page.IsCompleted(text)
	})
}

func (s *TodoSteps) TodoIsEditing(text string) bool {
	return query(s, fmt.Sprintf("Check if todo '%s' is being edited", text), func() bool {
		return s.page.IsEditing(text)
	})
}

func (s *TodoSteps) MainSectionIsVisible() bool {
	return query(s, "Check if main section is visible", s.page.IsMainSectionVisible)
}

func (s *TodoSteps) FooterIsVisible() bool {
	return query(s, "Check if footer is visible", s.page.IsFooterVisible)
}

func (s *TodoSteps) ClearCompletedIsVisible() bool {
	return query(s, "Check if 'Clear completed' button is visible", s.page.IsClearCompletedVisible)
}

func (s *TodoSteps) SelectedFilter() string {
	return query(s, "Get the selected filter", s.page.SelectedFilter)
}
