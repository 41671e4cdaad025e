// Package questions contains the questions actors ask about the TodoMVC application.
package questions

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/todomvc"
	"github.com/networkteam/screenplay/todomvc/ui"
	"github.com/networkteam/screenplay/web"
)

func onPage[T any](subject string, fn func(page playwright.Page) (T, error)) screenplay.Question[T] {
	return screenplay.About(subject, func(actor *screenplay.Actor) (T, error) {
		page, err := web.CurrentPageOf(actor)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(page)
	})
}

// TheVisibleTodos are the labels of the todos shown with the current filter.
func TheVisibleTodos() screenplay.Question[[]string] {
	return onPage("the visible todos", func(page playwright.Page) ([]string, error) {
		return ui.TodoItemLabels.Resolve(page).AllTextContents()
	})
}

func TheVisibleTodoCount() screenplay.Question[int] {
	return onPage("the visible todo count", func(page playwright.Page) (int, error) {
		return ui.TodoItems.Resolve(page).Count()
	})
}

// TheRemainingCount is the number of active todos shown in the footer, 0 without footer text.
func TheRemainingCount() screenplay.Question[int] {
	return onPage("the remaining todo count", func(page playwright.Page) (int, error) {
		text, err := ui.TodoCount.Resolve(page).TextContent()
		if err != nil {
			return 0, err
		}
		return todomvc.ParseRemainingCount(text), nil
	})
}

func TheCurrentFilter() screenplay.Question[string] {
	return onPage("the current filter", func(page playwright.Page) (string, error) {
		text, err := ui.SelectedFilter.Resolve(page).TextContent()
		return strings.TrimSpace(text), err
	})
}

// TheClearCompletedButtonIsVisible checks the button, which is only rendered with completed todos.
func TheClearCompletedButtonIsVisible() screenplay.Question[bool] {
	return onPage("whether the Clear Completed button is visible", func(page playwright.Page) (bool, error) {
		return isPresentAndVisible(ui.ClearCompletedButton.Resolve(page))
	})
}

func isPresentAndVisible(locator playwright.Locator) (bool, error) {
	count, err := locator.Count()
	if err != nil || count == 0 {
		return false, err
	}
	return locator.First().IsVisible()
}

// TodoItemQuestions asks about a single todo item.
type TodoItemQuestions struct {
	text string
}

func TheTodoItem(text string) TodoItemQuestions {
	return TodoItemQuestions{text: text}
}

func (q TodoItemQuestions) IsVisible() screenplay.Question[bool] {
	return onPage(fmt.Sprintf("whether '%s' is visible", q.text), func(page playwright.Page) (bool, error) {
		return isPresentAndVisible(ui.TodoItemCalled(q.text).Resolve(page))
	})
}

func (q TodoItemQuestions) Exists() screenplay.Question[bool] {
	return onPage(fmt.Sprintf("whether '%s' exists", q.text), func(page playwright.Page) (bool, error) {
		count, err := ui.TodoItemCalled(q.text).Resolve(page).Count()
		return count > 0, err
	})
}

func (q TodoItemQuestions) IsCompleted() screenplay.Question[bool] {
	return TodoCompletion(q.text)
}

func (q TodoItemQuestions) IsEditing() screenplay.Question[bool] {
	return onPage(fmt.Sprintf("whether '%s' is being edited", q.text), func(page playwright.Page) (bool, error) {
		return hasClass(page, q.text, "editing")
	})
}

func hasClass(page playwright.Page, text, class string) (bool, error) {
	attr, err := ui.TodoItemCalled(text).Resolve(page).First().GetAttribute("class")
	if err != nil {
		return false, err
	}
	return todomvc.HasClass(attr, class), nil
}

type todoCompletion struct {
	text string
}

// TodoCompletion checks whether the todo is marked as completed.
func TodoCompletion(text string) screenplay.Question[bool] {
	return todoCompletion{text: text}
}

func (q todoCompletion) AnsweredBy(actor *screenplay.Actor) (bool, error) {
	page, err := web.CurrentPageOf(actor)
	if err != nil {
		return false, err
	}
	return hasClass(page, q.text, "completed")
}

func (q todoCompletion) Subject() string {
	return fmt.Sprintf("whether '%s' is completed", q.text)
}

func (q todoCompletion) Description() string {
	return fmt.Sprintf("{actor} checks if '%s' is completed", q.text)
}
