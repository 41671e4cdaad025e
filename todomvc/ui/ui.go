// Package ui defines the targets of the TodoMVC application.
package ui

import (
	"github.com/networkteam/screenplay/web"
)

var (
	NewTodoInput = web.The("new todo input").LocatedByPlaceholder("What needs to be done?")

	TodoItems      = web.The("todo items").LocatedBy(".todo-list li")
	TodoItemLabels = web.The("todo item labels").LocatedBy(".todo-list li label")
	EditingInput   = web.The("editing input").LocatedBy(".todo-list li.editing .edit")

	TodoCount            = web.The("todo count").LocatedBy(".todo-count")
	ClearCompletedButton = web.The("clear completed button").LocatedBy(".clear-completed")
	ToggleAllCheckbox    = web.The("toggle all checkbox").LocatedBy("#toggle-all")

	AllFilter       = web.The("All filter").LocatedBy(".filters a" + web.HasText("All"))
	ActiveFilter    = web.The("Active filter").LocatedBy(".filters a" + web.HasText("Active"))
	CompletedFilter = web.The("Completed filter").LocatedBy(".filters a" + web.HasText("Completed"))
	SelectedFilter  = web.The("selected filter").LocatedBy(".filters a.selected")

	MainSection   = web.The("main section").LocatedBy(".main")
	FooterSection = web.The("footer section").LocatedBy(".footer")
)

func todoItemSelector(text string) string {
	return ".todo-list li" + web.HasText(text)
}

// TodoItemCalled is the list item containing text.
func TodoItemCalled(text string) web.Target {
	return web.The("todo item '" + text + "'").LocatedBy(todoItemSelector(text))
}

func CheckboxFor(text string) web.Target {
	return web.The("checkbox for '" + text + "'").LocatedBy(todoItemSelector(text) + " .toggle")
}

func LabelFor(text string) web.Target {
	return web.The("label for '" + text + "'").LocatedBy(todoItemSelector(text) + " label")
}

func DeleteButtonFor(text string) web.Target {
	return web.The("delete button for '" + text + "'").LocatedBy(todoItemSelector(text) + " .destroy")
}
