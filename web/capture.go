package web

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/collector"
)

// ConsoleError is returned by a console check that found unexpected messages.
type ConsoleError struct {
	Messages []collector.ConsoleMessage
}

func (e *ConsoleError) Error() string {
	texts := lo.Map(e.Messages, func(m collector.ConsoleMessage, _ int) string {
		return m.String()
	})
	return fmt.Sprintf("found %d unexpected console message(s): %s", len(e.Messages), strings.Join(texts, "; "))
}

func withAbility(title string, fn func(actor *screenplay.Actor, b *BrowseTheWeb) error) screenplay.Performable {
	return screenplay.TaskFunc(title, func(actor *screenplay.Actor) error {
		b, err := As(actor)
		if err != nil {
			return err
		}
		return fn(actor, b)
	})
}

// CaptureNetworkRequests records all network requests of the page for the rest of the test.
func CaptureNetworkRequests() screenplay.Performable {
	return withAbility("{actor} starts capturing network requests", func(_ *screenplay.Actor, b *BrowseTheWeb) error {
		b.StartCapturingNetwork()
		return nil
	})
}

// ClearNetworkRequests drops the requests captured so far.
func ClearNetworkRequests() screenplay.Performable {
	return withAbility("{actor} clears captured network requests", func(_ *screenplay.Actor, b *BrowseTheWeb) error {
		b.Network().Clear()
		return nil
	})
}

// CaptureConsoleMessages records all console messages of the page for the rest of the test.
func CaptureConsoleMessages() screenplay.Performable {
	return withAbility("{actor} starts capturing console messages", func(_ *screenplay.Actor, b *BrowseTheWeb) error {
		b.StartCapturingConsole()
		return nil
	})
}

// ClearConsoleMessages drops the console messages captured so far.
func ClearConsoleMessages() screenplay.Performable {
	return withAbility("{actor} clears captured console messages", func(_ *screenplay.Actor, b *BrowseTheWeb) error {
		b.Console().Clear()
		return nil
	})
}

// ConsoleCheck fails if captured console messages of the checked levels exist.
type ConsoleCheck struct {
	levels     []collector.ConsoleLevel
	reportOnly bool
}

// CheckConsoleForErrors fails on captured console errors.
func CheckConsoleForErrors() ConsoleCheck {
	return ConsoleCheck{levels: []collector.ConsoleLevel{collector.LevelError}}
}

// CheckConsoleForErrorsAndWarnings fails on captured console errors or warnings.
func CheckConsoleForErrorsAndWarnings() ConsoleCheck {
	return ConsoleCheck{levels: []collector.ConsoleLevel{collector.LevelError, collector.LevelWarning}}
}

// AndReportOnly attaches found messages to the report instead of failing.
func (c ConsoleCheck) AndReportOnly() ConsoleCheck {
	c.reportOnly = true
	return c
}

func (c ConsoleCheck) PerformAs(actor *screenplay.Actor) error {
	b, err := As(actor)
	if err != nil {
		return err
	}

	found := b.Console().OfLevel(c.levels...)
	if len(found) == 0 {
		return nil
	}

	actor.Attach(ConsoleEvidence("Console "+c.levelNames(), found))
	if c.reportOnly {
		return nil
	}
	return &ConsoleError{Messages: found}
}

func (c ConsoleCheck) Description() string {
	return "{actor} checks the console for " + c.levelNames()
}

func (c ConsoleCheck) levelNames() string {
	names := lo.Map(c.levels, func(l collector.ConsoleLevel, _ int) string {
		return string(l) + "s"
	})
	return strings.Join(names, " and ")
}

// ReportConsoleMessages attaches captured console messages of the given levels, or all, to the report.
func ReportConsoleMessages(levels ...collector.ConsoleLevel) screenplay.Performable {
	return withAbility("{actor} reports console messages", func(actor *screenplay.Actor, b *BrowseTheWeb) error {
		messages := b.Console().Messages()
		if len(levels) > 0 {
			messages = b.Console().OfLevel(levels...)
		}
		actor.Attach(ConsoleEvidence("Console messages", messages))
		return nil
	})
}

// ReportNetworkRequests attaches captured network requests to the report.
func ReportNetworkRequests() screenplay.Performable {
	return withAbility("{actor} reports network requests", func(actor *screenplay.Actor, b *BrowseTheWeb) error {
		actor.Attach(NetworkEvidence("Network requests", b.Network().Requests()))
		return nil
	})
}

// ConsoleEvidence formats console messages as a plain text attachment.
func ConsoleEvidence(title string, messages []collector.ConsoleMessage) screenplay.Evidence {
	var sb strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&sb, "%s %s\n", m.Timestamp.Format("15:04:05.000"), m)
	}
	return screenplay.Evidence{Title: title, ContentType: "text/plain", Content: []byte(sb.String())}
}

// NetworkEvidence formats captured requests as a plain text attachment.
func NetworkEvidence(title string, requests []collector.CapturedRequest) screenplay.Evidence {
	var sb strings.Builder
	for _, r := range requests {
		status := "pending"
		switch {
		case r.Failure != "":
			status = r.Failure
		case r.Status > 0:
			status = fmt.Sprintf("%d %s", r.Status, r.StatusText)
		}
		fmt.Fprintf(&sb, "%s %s -> %s (%s, %s)\n", r.Method, r.URL, status, r.ResourceType, r.Duration())
	}
	return screenplay.Evidence{Title: title, ContentType: "text/plain", Content: []byte(sb.String())}
}
