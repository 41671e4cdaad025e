//go:build acceptance
// +build acceptance

package acceptance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddingTodos(t *testing.T) {
	pw := NewPlaywrightFixture(t, testConfig)

	t.Run("should add a single todo item", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("Buy milk")

		assert.Equal(t, 1, todo.VisibleTodoCount())
		assert.True(t, todo.TodoExists("Buy milk"))
	})

	t.Run("should add multiple todo items", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Buy milk", "Walk the dog", "Do laundry")

		assert.Equal(t, []string{"Buy milk", "Walk the dog", "Do laundry"}, todo.VisibleTodos())
	})

	t.Run("should update remaining count when adding todos", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("Task 1")
		assert.Equal(t, 1, todo.RemainingCount())
		todo.AddTodo("Task 2")
		assert.Equal(t, 2, todo.RemainingCount())
		todo.AddTodo("Task 3")
		assert.Equal(t, 3, todo.RemainingCount())
	})

	t.Run("should preserve order of added todos", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("First")
		todo.AddTodo("Second")
		todo.AddTodo("Third")

		assert.Equal(t, []string{"First", "Second", "Third"}, todo.VisibleTodos())
	})

	t.Run("should show main section and footer after adding", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("Buy milk")

		assert.True(t, todo.MainSectionIsVisible())
		assert.True(t, todo.FooterIsVisible())
	})
}

func TestCompletingTodos(t *testing.T) {
	pw := NewPlaywrightFixture(t, testConfig)

	t.Run("should mark a todo as completed", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("Buy milk")
		todo.CompleteTodo("Buy milk")

		assert.True(t, todo.TodoIsCompleted("Buy milk"))
	})

	t.Run("should decrease remaining count when completing a todo", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Task 1", "Task 2", "Task 3")
		assert.Equal(t, 3, todo.RemainingCount())

		todo.CompleteTodo("Task 2")
		assert.Equal(t, 2, todo.RemainingCount())
	})

	t.Run("should toggle all todos to completed", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Task 1", "Task 2", "Task 3")
		todo.ToggleAll()

		assert.True(t, todo.TodoIsCompleted("Task 1"))
		assert.True(t, todo.TodoIsCompleted("Task 2"))
		assert.True(t, todo.TodoIsCompleted("Task 3"))
		assert.Equal(t, 0, todo.RemainingCount())
	})

	t.Run("should toggle all todos back to active", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Task 1", "Task 2")
		todo.ToggleAll()
		assert.Equal(t, 0, todo.RemainingCount())

		todo.ToggleAll()
		assert.False(t, todo.TodoIsCompleted("Task 1"))
		assert.False(t, todo.TodoIsCompleted("Task 2"))
		assert.Equal(t, 2, todo.RemainingCount())
	})

	t.Run("should uncomplete a completed todo when clicked again", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("Toggle me")
		todo.CompleteTodo("Toggle me")
		assert.True(t, todo.TodoIsCompleted("Toggle me"))

		todo.CompleteTodo("Toggle me")
		assert.False(t, todo.TodoIsCompleted("Toggle me"))
	})
}

func TestEditingTodos(t *testing.T) {
	pw := NewPlaywrightFixture(t, testConfig)

	t.Run("should change the text of a todo", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Buy milk", "Walk the dog")
		todo.EditTodo("Buy milk", "Buy oat milk")

		assert.Equal(t, []string{"Buy oat milk", "Walk the dog"}, todo.VisibleTodos())
		assert.False(t, todo.TodoIsEditing("Buy oat milk"))
	})

	t.Run("should keep the text when editing is cancelled", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("Buy milk")
		todo.CancelEdit("Buy milk")

		assert.Equal(t, []string{"Buy milk"}, todo.VisibleTodos())
		assert.False(t, todo.TodoIsEditing("Buy milk"))
	})
}

func TestDeletingTodos(t *testing.T) {
	pw := NewPlaywrightFixture(t, testConfig)

	t.Run("should delete a single todo", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("Delete me")
		todo.DeleteTodo("Delete me")

		assert.Equal(t, 0, todo.VisibleTodoCount())
		assert.False(t, todo.TodoExists("Delete me"))
	})

	t.Run("should delete one todo and keep others", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Keep me", "Delete me", "Keep me too")
		todo.DeleteTodo("Delete me")

		assert.Equal(t, 2, todo.VisibleTodoCount())
		assert.Equal(t, []string{"Keep me", "Keep me too"}, todo.VisibleTodos())
	})

	t.Run("should clear all completed todos", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Active 1", "Complete 1", "Active 2", "Complete 2")
		todo.CompleteTodo("Complete 1")
		todo.CompleteTodo("Complete 2")
		todo.ClearCompleted()

		assert.Equal(t, 2, todo.VisibleTodoCount())
		assert.Equal(t, []string{"Active 1", "Active 2"}, todo.VisibleTodos())
	})

	t.Run("should hide clear completed button after clearing", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodo("Complete me")
		todo.CompleteTodo("Complete me")
		assert.True(t, todo.ClearCompletedIsVisible())

		todo.ClearCompleted()
		assert.False(t, todo.ClearCompletedIsVisible())
	})

	t.Run("should update remaining count after deleting", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Task 1", "Task 2", "Task 3")
		assert.Equal(t, 3, todo.RemainingCount())

		todo.DeleteTodo("Task 2")
		assert.Equal(t, 2, todo.RemainingCount())
	})
}

func TestFilteringTodos(t *testing.T) {
	pw := NewPlaywrightFixture(t, testConfig)

	t.Run("should show all todos by default", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Active task", "Completed task")
		todo.CompleteTodo("Completed task")

		assert.Equal(t, "All", todo.SelectedFilter())
		assert.Equal(t, 2, todo.VisibleTodoCount())
	})

	t.Run("should filter to show only active todos", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Active 1", "Completed 1", "Active 2")
		todo.CompleteTodo("Completed 1")
		todo.FilterActive()

		assert.Equal(t, "Active", todo.SelectedFilter())
		assert.Equal(t, 2, todo.VisibleTodoCount())
		assert.Equal(t, []string{"Active 1", "Active 2"}, todo.VisibleTodos())
	})

	t.Run("should filter to show only completed todos", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Active 1", "Completed 1", "Completed 2")
		todo.CompleteTodo("Completed 1")
		todo.CompleteTodo("Completed 2")
		todo.FilterCompleted()

		assert.Equal(t, "Completed", todo.SelectedFilter())
		assert.Equal(t, 2, todo.VisibleTodoCount())
		assert.Equal(t, []string{"Completed 1", "Completed 2"}, todo.VisibleTodos())
	})

	t.Run("should switch back to all filter", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Task 1", "Task 2")
		todo.CompleteTodo("Task 1")
		todo.FilterActive()
		assert.Equal(t, 1, todo.VisibleTodoCount())

		todo.FilterAll()
		assert.Equal(t, "All", todo.SelectedFilter())
		assert.Equal(t, 2, todo.VisibleTodoCount())
	})

	t.Run("should show no todos when filtering active with all completed", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Task 1", "Task 2")
		todo.ToggleAll()
		todo.FilterActive()

		assert.Equal(t, 0, todo.VisibleTodoCount())
	})

	t.Run("should show no todos when filtering completed with none completed", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Task 1", "Task 2")
		todo.FilterCompleted()

		assert.Equal(t, 0, todo.VisibleTodoCount())
	})

	t.Run("should maintain remaining count regardless of filter", func(t *testing.T) {
		todo := NewTodoSteps(t, pw)

		todo.OpenApplication()
		todo.AddTodos("Active 1", "Completed 1", "Active 2")
		todo.CompleteTodo("Completed 1")
		assert.Equal(t, 2, todo.RemainingCount())

		todo.FilterCompleted()
		assert.Equal(t, 2, todo.RemainingCount())

		todo.FilterActive()
		assert.Equal(t, 2, todo.RemainingCount())
	})
}
