package web

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/screenplay"
)

// OnPage creates a performable acting on the actor's current page.
func OnPage(title string, fn func(page playwright.Page) error) screenplay.Performable {
	return screenplay.TaskFunc(title, func(actor *screenplay.Actor) error {
		page, err := CurrentPageOf(actor)
		if err != nil {
			return err
		}
		return fn(page)
	})
}

// OnTarget creates a performable acting on the locator of a target.
func OnTarget(title string, target Target, fn func(locator playwright.Locator) error) screenplay.Performable {
	return OnPage(title, func(page playwright.Page) error {
		return fn(target.Resolve(page))
	})
}

// OpenURL navigates to url and waits for the page to load.
func OpenURL(url string) screenplay.Performable {
	return OnPage("{actor} opens "+url, func(page playwright.Page) error {
		if _, err := page.Goto(url); err != nil {
			return fmt.Errorf("navigating to %s: %w", url, err)
		}
		return nil
	})
}

func ClickOn(target Target) screenplay.Performable {
	return OnTarget("{actor} clicks on "+target.String(), target, func(locator playwright.Locator) error {
		return locator.Click()
	})
}

// ForceClickOn clicks without waiting for actionability, e.g. for visually hidden checkboxes.
func ForceClickOn(target Target) screenplay.Performable {
	return OnTarget("{actor} clicks on "+target.String(), target, func(locator playwright.Locator) error {
		return locator.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
	})
}

func DoubleClickOn(target Target) screenplay.Performable {
	return OnTarget("{actor} double-clicks on "+target.String(), target, func(locator playwright.Locator) error {
		return locator.Dblclick()
	})
}

func HoverOver(target Target) screenplay.Performable {
	return OnTarget("{actor} hovers over "+target.String(), target, func(locator playwright.Locator) error {
		return locator.Hover()
	})
}

func ClearField(target Target) screenplay.Performable {
	return OnTarget("{actor} clears "+target.String(), target, func(locator playwright.Locator) error {
		return locator.Clear()
	})
}

// EnterValue is the first half of Enter(value).Into(target).
type EnterValue struct {
	value string
}

func Enter(value string) EnterValue {
	return EnterValue{value: value}
}

// Into fills the value into the target.
func (e EnterValue) Into(target Target) EnterInto {
	return EnterInto{value: e.value, target: target}
}

// EnterInto fills a value into a target and optionally hits keys afterwards.
type EnterInto struct {
	value  string
	target Target
	keys   []string
}

// ThenHit presses keys in the target after filling it, e.g. "Enter".
func (e EnterInto) ThenHit(keys ...string) EnterInto {
	e.keys = append(e.keys, keys...)
	return e
}

func (e EnterInto) PerformAs(actor *screenplay.Actor) error {
	page, err := CurrentPageOf(actor)
	if err != nil {
		return err
	}
	locator := e.target.Resolve(page)
	if err := locator.Fill(e.value); err != nil {
		return fmt.Errorf("filling %s: %w", e.target, err)
	}
	for _, key := range e.keys {
		if err := locator.Press(key); err != nil {
			return fmt.Errorf("pressing %s in %s: %w", key, e.target, err)
		}
	}
	return nil
}

func (e EnterInto) Description() string {
	return fmt.Sprintf("{actor} enters '%s' into %s", e.value, e.target)
}

// Keys presses keys on the keyboard or, with In, in a target.
type Keys struct {
	keys   []string
	target *Target
}

// PressKeys presses keys on the keyboard in the focused element.
func PressKeys(keys ...string) Keys {
	return Keys{keys: keys}
}

// In presses the keys in the target instead of the focused element.
func (k Keys) In(target Target) Keys {
	k.target = &target
	return k
}

func (k Keys) PerformAs(actor *screenplay.Actor) error {
	page, err := CurrentPageOf(actor)
	if err != nil {
		return err
	}
	for _, key := range k.keys {
		if k.target != nil {
			err = k.target.Resolve(page).Press(key)
		} else {
			err = page.Keyboard().Press(key)
		}
		if err != nil {
			return fmt.Errorf("pressing %s: %w", key, err)
		}
	}
	return nil
}

func (k Keys) Description() string {
	if k.target != nil {
		return fmt.Sprintf("{actor} presses %s in %s", strings.Join(k.keys, ", "), k.target)
	}
	return "{actor} presses " + strings.Join(k.keys, ", ")
}

// ExecuteJavaScript evaluates a script on the page and waits for a returned promise.
func ExecuteJavaScript(script string) screenplay.Performable {
	return OnPage("{actor} executes JavaScript", func(page playwright.Page) error {
		if _, err := page.Evaluate(script); err != nil {
			return fmt.Errorf("executing JavaScript: %w", err)
		}
		return nil
	})
}

func Reload() screenplay.Performable {
	return OnPage("{actor} reloads the page", func(page playwright.Page) error {
		if _, err := page.Reload(); err != nil {
			return fmt.Errorf("reloading page: %w", err)
		}
		return nil
	})
}

func WaitUntilVisible(target Target) screenplay.Performable {
	return OnTarget("{actor} waits until "+target.String()+" is visible", target, func(locator playwright.Locator) error {
		return locator.WaitFor(playwright.LocatorWaitForOptions{
			State: playwright.WaitForSelectorStateVisible,
		})
	})
}
