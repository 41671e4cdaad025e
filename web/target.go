package web

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Target is a named element locator.
type Target struct {
	name     string
	selector string
	locate   func(page playwright.Page) playwright.Locator
}

// TargetBuilder names a target before its locator is defined.
type TargetBuilder struct {
	name string
}

// The starts a target definition, e.g. The("new todo input").LocatedBy(".new-todo").
func The(name string) TargetBuilder {
	return TargetBuilder{name: name}
}

// LocatedBy locates the target with a CSS or Playwright selector.
func (b TargetBuilder) LocatedBy(selector string) Target {
	return Target{
		name:     b.name,
		selector: selector,
		locate: func(page playwright.Page) playwright.Locator {
			return page.Locator(selector)
		},
	}
}

// LocatedByRole locates the target by ARIA role and exact accessible name.
func (b TargetBuilder) LocatedByRole(role playwright.AriaRole, name string) Target {
	return Target{
		name:     b.name,
		selector: fmt.Sprintf("role=%s[name=%q]", role, name),
		locate: func(page playwright.Page) playwright.Locator {
			return page.GetByRole(role, playwright.PageGetByRoleOptions{
				Name:  name,
				Exact: playwright.Bool(true),
			})
		},
	}
}

// LocatedByPlaceholder locates an input by its placeholder text.
func (b TargetBuilder) LocatedByPlaceholder(text string) Target {
	return Target{
		name:     b.name,
		selector: fmt.Sprintf("[placeholder=%q]", text),
		locate: func(page playwright.Page) playwright.Locator {
			return page.GetByPlaceholder(text)
		},
	}
}

// Element is an anonymous target named by its selector.
func Element(selector string) Target {
	return The(selector).LocatedBy(selector)
}

func (t Target) Name() string {
	return t.name
}

func (t Target) Selector() string {
	return t.selector
}

// Resolve returns the locator of the target on a page.
func (t Target) Resolve(page playwright.Page) playwright.Locator {
	return t.locate(page)
}

func (t Target) String() string {
	return t.name
}

// EscapeText escapes single quotes for use in :has-text('...') selectors.
func EscapeText(text string) string {
	return strings.ReplaceAll(text, "'", `\'`)
}

// HasText returns a :has-text('...') pseudo-class matching text.
func HasText(text string) string {
	return ":has-text('" + EscapeText(text) + "')"
}
