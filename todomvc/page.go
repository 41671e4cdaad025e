package todomvc

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// Page provides helper methods for interacting with the TodoMVC application.
// Failing interactions fail the test immediately.
type Page struct {
	Page playwright.Page
	URL  string
	t    testing.TB
}

// NewPage wraps a Playwright page. An empty url uses DefaultURL.
func NewPage(t testing.TB, page playwright.Page, url string) *Page {
	if url == "" {
		url = DefaultURL
	}
	return &Page{Page: page, URL: url, t: t}
}

func (p *Page) newTodoInput() playwright.Locator {
	return p.Page.GetByPlaceholder("What needs to be done?")
}

func (p *Page) todoItems() playwright.Locator {
	return p.Page.Locator(".todo-list li")
}

func (p *Page) todoItem(text string) playwright.Locator {
	return p.todoItems().Filter(playwright.LocatorFilterOptions{HasText: text})
}

func (p *Page) editInput() playwright.Locator {
	return p.Page.Locator(".todo-list li.editing .edit")
}

func (p *Page) filterLink(name string) playwright.Locator {
	return p.Page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{Name: name})
}

// Open navigates to the application and starts with an empty todo list.
func (p *Page) Open() {
	p.t.Helper()

	_, err := p.Page.Goto(p.URL)
	require.NoError(p.t, err, "failed to open TodoMVC")

	err = p.Page.WaitForLoadState()
	require.NoError(p.t, err)

	// Todos are persisted in localStorage and would leak between tests
	_, err = p.Page.Evaluate("() => localStorage.clear()")
	require.NoError(p.t, err, "failed to clear localStorage")

	_, err = p.Page.Reload()
	require.NoError(p.t, err)
}

func (p *Page) AddTodo(text string) {
	p.t.Helper()

	err := p.newTodoInput().Fill(text)
	require.NoError(p.t, err, "failed to fill new todo input")

	err = p.newTodoInput().Press("Enter")
	require.NoError(p.t, err)
}

func (p *Page) AddTodos(texts ...string) {
	p.t.Helper()

	for _, text := range texts {
		p.AddTodo(text)
	}
}

func (p *Page) CompleteTodo(text string) {
	p.t.Helper()

	err := p.todoItem(text).Locator(".toggle").Click()
	require.NoError(p.t, err, "failed to complete todo %q", text)
}

// ToggleAll marks all todos as completed or active.
func (p *Page) ToggleAll() {
	p.t.Helper()

	// The checkbox is visually hidden behind its label
	err := p.Page.Locator("#toggle-all").Click(playwright.LocatorClickOptions{
		Force: playwright.Bool(true),
	})
	require.NoError(p.t, err, "failed to toggle all todos")
}

// EditTodo replaces the text of a todo by double-clicking and typing the new text.
func (p *Page) EditTodo(oldText, newText string) {
	p.t.Helper()

	err := p.todoItem(oldText).Locator("label").Dblclick()
	require.NoError(p.t, err, "failed to start editing todo %q", oldText)

	err = p.editInput().WaitFor()
	require.NoError(p.t, err, "todo did not switch to editing mode")

	err = p.editInput().Clear()
	require.NoError(p.t, err)

	err = p.editInput().PressSequentially(newText)
	require.NoError(p.t, err)

	err = p.editInput().Press("Enter")
	require.NoError(p.t, err)
}

// CancelEdit starts editing a todo and cancels with Escape.
func (p *Page) CancelEdit(text string) {
	p.t.Helper()

	err := p.todoItem(text).Locator("label").Dblclick()
	require.NoError(p.t, err, "failed to start editing todo %q", text)

	err = p.editInput().Press("Escape")
	require.NoError(p.t, err)
}

func (p *Page) DeleteTodo(text string) {
	p.t.Helper()

	// The destroy button is only shown on hover
	err := p.todoItem(text).Hover()
	require.NoError(p.t, err)

	err = p.todoItem(text).Locator(".destroy").Click()
	require.NoError(p.t, err, "failed to delete todo %q", text)
}

func (p *Page) ClearCompleted() {
	p.t.Helper()

	err := p.Page.Locator(".clear-completed").Click()
	require.NoError(p.t, err, "failed to clear completed todos")
}

func (p *Page) FilterAll() {
	p.t.Helper()
	p.filter("All")
}

func (p *Page) FilterActive() {
	p.t.Helper()
	p.filter("Active")
}

func (p *Page) FilterCompleted() {
	p.t.Helper()
	p.filter("Completed")
}

func (p *Page) filter(name string) {
	p.t.Helper()

	err := p.filterLink(name).Click()
	require.NoError(p.t, err, "failed to select filter %s", name)
}

func (p *Page) VisibleTodoCount() int {
	p.t.Helper()

	count, err := p.todoItems().Count()
	require.NoError(p.t, err)
	return count
}

func (p *Page) VisibleTodoTexts() []string {
	p.t.Helper()

	texts, err := p.todoItems().Locator("label").AllTextContents()
	require.NoError(p.t, err)
	return texts
}

// RemainingCountText returns the footer text, e.g. "3 items left".
func (p *Page) RemainingCountText() string {
	p.t.Helper()

	text, err := p.Page.Locator(".todo-count").TextContent()
	require.NoError(p.t, err)
	return text
}

func (p *Page) RemainingCount() int {
	p.t.Helper()
	return ParseRemainingCount(p.RemainingCountText())
}

func (p *Page) HasTodo(text string) bool {
	p.t.Helper()

	count, err := p.todoItem(text).Count()
	require.NoError(p.t, err)
	return count > 0
}

func (p *Page) IsCompleted(text string) bool {
	p.t.Helper()
	return HasClass(p.todoClass(text), "completed")
}

func (p *Page) IsEditing(text string) bool {
	p.t.Helper()
	return HasClass(p.todoClass(text), "editing")
}

func (p *Page) todoClass(text string) string {
	p.t.Helper()

	class, err := p.todoItem(text).First().GetAttribute("class")
	require.NoError(p.t, err)
	return class
}

func (p *Page) IsMainSectionVisible() bool {
	p.t.Helper()
	return p.isPresentAndVisible(p.Page.Locator(".main"))
}

func (p *Page) IsFooterVisible() bool {
	p.t.Helper()
	return p.isPresentAndVisible(p.Page.Locator(".footer"))
}

// IsClearCompletedVisible reports the button, which is only rendered with completed todos.
func (p *Page) IsClearCompletedVisible() bool {
	p.t.Helper()
	return p.isPresentAndVisible(p.Page.Locator(".clear-completed"))
}

func (p *Page) isPresentAndVisible(locator playwright.Locator) bool {
	p.t.Helper()

	count, err := locator.Count()
	require.NoError(p.t, err)
	if count == 0 {
		return false
	}
	visible, err := locator.First().IsVisible()
	require.NoError(p.t, err)
	return visible
}

// SelectedFilter returns the name of the selected filter link.
func (p *Page) SelectedFilter() string {
	p.t.Helper()

	text, err := p.Page.Locator(".filters a.selected").TextContent()
	require.NoError(p.t, err)
	return strings.TrimSpace(text)
}
