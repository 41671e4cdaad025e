package web

import (
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/samber/lo"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/collector"
)

func pageQuestion[T any](subject string, fn func(page playwright.Page) (T, error)) screenplay.Question[T] {
	return screenplay.About(subject, func(actor *screenplay.Actor) (T, error) {
		page, err := CurrentPageOf(actor)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(page)
	})
}

func abilityQuestion[T any](subject string, fn func(b *BrowseTheWeb) (T, error)) screenplay.Question[T] {
	return screenplay.About(subject, func(actor *screenplay.Actor) (T, error) {
		b, err := As(actor)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(b)
	})
}

// TextOf is the trimmed text content of the first element matching the target.
func TextOf(target Target) screenplay.Question[string] {
	return pageQuestion("the text of "+target.String(), func(page playwright.Page) (string, error) {
		text, err := target.Resolve(page).First().TextContent()
		return strings.TrimSpace(text), err
	})
}

// TextsOf is the text content of all elements matching the target.
func TextsOf(target Target) screenplay.Question[[]string] {
	return pageQuestion("the texts of "+target.String(), func(page playwright.Page) ([]string, error) {
		return target.Resolve(page).AllTextContents()
	})
}

func CountOf(target Target) screenplay.Question[int] {
	return pageQuestion("the number of "+target.String(), func(page playwright.Page) (int, error) {
		return target.Resolve(page).Count()
	})
}

func VisibilityOf(target Target) screenplay.Question[bool] {
	return pageQuestion("the visibility of "+target.String(), func(page playwright.Page) (bool, error) {
		return target.Resolve(page).IsVisible()
	})
}

// AttributeOf is the attribute value of the first element matching the target.
func AttributeOf(target Target, name string) screenplay.Question[string] {
	return pageQuestion("the "+name+" of "+target.String(), func(page playwright.Page) (string, error) {
		return target.Resolve(page).First().GetAttribute(name)
	})
}

func CurrentURL() screenplay.Question[string] {
	return pageQuestion("the current URL", func(page playwright.Page) (string, error) {
		return page.URL(), nil
	})
}

func PageTitle() screenplay.Question[string] {
	return pageQuestion("the page title", func(page playwright.Page) (string, error) {
		return page.Title()
	})
}

// NetworkRequestQuestions query captured network requests.
type NetworkRequestQuestions struct{}

func NetworkRequests() NetworkRequestQuestions {
	return NetworkRequestQuestions{}
}

func (NetworkRequestQuestions) All() screenplay.Question[[]collector.CapturedRequest] {
	return abilityQuestion("all network requests", func(b *BrowseTheWeb) ([]collector.CapturedRequest, error) {
		return b.Network().Requests(), nil
	})
}

func (NetworkRequestQuestions) Count() screenplay.Question[int] {
	return abilityQuestion("the number of network requests", func(b *BrowseTheWeb) (int, error) {
		return b.Network().Count(), nil
	})
}

func (NetworkRequestQuestions) WithMethod(method string) screenplay.Question[[]collector.CapturedRequest] {
	return abilityQuestion("the "+method+" network requests", func(b *BrowseTheWeb) ([]collector.CapturedRequest, error) {
		return b.Network().WithMethod(method), nil
	})
}

func (NetworkRequestQuestions) ToURLContaining(fragment string) screenplay.Question[[]collector.CapturedRequest] {
	return abilityQuestion("the network requests to URLs containing "+fragment, func(b *BrowseTheWeb) ([]collector.CapturedRequest, error) {
		return b.Network().ToURLContaining(fragment), nil
	})
}

func (NetworkRequestQuestions) Failed() screenplay.Question[[]collector.CapturedRequest] {
	return abilityQuestion("the failed network requests", func(b *BrowseTheWeb) ([]collector.CapturedRequest, error) {
		return b.Network().Failed(), nil
	})
}

func (NetworkRequestQuestions) ClientErrors() screenplay.Question[[]collector.CapturedRequest] {
	return abilityQuestion("the network requests with client errors", func(b *BrowseTheWeb) ([]collector.CapturedRequest, error) {
		return b.Network().ClientErrors(), nil
	})
}

func (NetworkRequestQuestions) ServerErrors() screenplay.Question[[]collector.CapturedRequest] {
	return abilityQuestion("the network requests with server errors", func(b *BrowseTheWeb) ([]collector.CapturedRequest, error) {
		return b.Network().ServerErrors(), nil
	})
}

// URLs maps requests to their URLs, e.g. for list assertions.
func URLs(requests []collector.CapturedRequest) []string {
	return lo.Map(requests, func(r collector.CapturedRequest, _ int) string {
		return r.URL
	})
}

// ConsoleMessageQuestions query captured console messages. Answers are message texts.
type ConsoleMessageQuestions struct{}

func ConsoleMessages() ConsoleMessageQuestions {
	return ConsoleMessageQuestions{}
}

func consoleTexts(subject string, levels ...collector.ConsoleLevel) screenplay.Question[[]string] {
	return abilityQuestion(subject, func(b *BrowseTheWeb) ([]string, error) {
		messages := b.Console().Messages()
		if len(levels) > 0 {
			messages = b.Console().OfLevel(levels...)
		}
		return texts(messages), nil
	})
}

func texts(messages []collector.ConsoleMessage) []string {
	return lo.Map(messages, func(m collector.ConsoleMessage, _ int) string {
		return m.Text
	})
}

func (ConsoleMessageQuestions) All() screenplay.Question[[]string] {
	return consoleTexts("all console messages")
}

func (ConsoleMessageQuestions) Logs() screenplay.Question[[]string] {
	return consoleTexts("the console logs", collector.LevelLog)
}

func (ConsoleMessageQuestions) Infos() screenplay.Question[[]string] {
	return consoleTexts("the console infos", collector.LevelInfo)
}

func (ConsoleMessageQuestions) Errors() screenplay.Question[[]string] {
	return consoleTexts("the console errors", collector.LevelError)
}

func (ConsoleMessageQuestions) Warnings() screenplay.Question[[]string] {
	return consoleTexts("the console warnings", collector.LevelWarning)
}

func (ConsoleMessageQuestions) Containing(fragment string) screenplay.Question[[]string] {
	return abilityQuestion("the console messages containing "+fragment, func(b *BrowseTheWeb) ([]string, error) {
		return texts(b.Console().Containing(fragment)), nil
	})
}

func (ConsoleMessageQuestions) Count() screenplay.Question[int] {
	return abilityQuestion("the number of console messages", func(b *BrowseTheWeb) (int, error) {
		return b.Console().Count(), nil
	})
}

func (ConsoleMessageQuestions) ErrorCount() screenplay.Question[int] {
	return abilityQuestion("the number of console errors", func(b *BrowseTheWeb) (int, error) {
		return b.Console().CountOf(collector.LevelError), nil
	})
}

// Records returns the full captured messages including level and timestamp.
func (ConsoleMessageQuestions) Records() screenplay.Question[[]collector.ConsoleMessage] {
	return abilityQuestion("the console message records", func(b *BrowseTheWeb) ([]collector.ConsoleMessage, error) {
		return b.Console().Messages(), nil
	})
}
