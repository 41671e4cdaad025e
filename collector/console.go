package collector

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

type ConsoleLevel string

const (
	LevelLog     ConsoleLevel = "log"
	LevelInfo    ConsoleLevel = "info"
	LevelWarning ConsoleLevel = "warning"
	LevelError   ConsoleLevel = "error"
	LevelDebug   ConsoleLevel = "debug"
)

// ParseConsoleLevel maps a browser console message type to a level.
// Browsers report both "warn" and "warning" for console.warn.
func ParseConsoleLevel(typ string) ConsoleLevel {
	switch level := strings.ToLower(typ); level {
	case "warn":
		return LevelWarning
	default:
		return ConsoleLevel(level)
	}
}

// ConsoleMessage is a message written to the browser console
type ConsoleMessage struct {
	Level     ConsoleLevel
	Text      string
	URL       string
	Timestamp time.Time
}

func (m ConsoleMessage) String() string {
	return fmt.Sprintf("[%s] %s", m.Level, m.Text)
}

// ConsoleCollectorOptions configures a console collector
type ConsoleCollectorOptions struct {
	// Capacity is the maximum number of messages kept, older messages are dropped
	Capacity uint64

	NotifierOptions NotifierOptions
}

// DefaultConsoleCollectorOptions returns default options for a console collector
func DefaultConsoleCollectorOptions() ConsoleCollectorOptions {
	return ConsoleCollectorOptions{
		Capacity:        1000,
		NotifierOptions: DefaultNotifierOptions(),
	}
}

// ConsoleCollector buffers console messages in arrival order
type ConsoleCollector struct {
	buffer   *RingBuffer[ConsoleMessage]
	notifier *Notifier[ConsoleMessage]
}

// NewConsoleCollector creates a console collector with the given capacity
func NewConsoleCollector(capacity uint64) *ConsoleCollector {
	options := DefaultConsoleCollectorOptions()
	options.Capacity = capacity
	return NewConsoleCollectorWithOptions(options)
}

func NewConsoleCollectorWithOptions(options ConsoleCollectorOptions) *ConsoleCollector {
	return &ConsoleCollector{
		buffer:   NewRingBuffer[ConsoleMessage](options.Capacity),
		notifier: NewNotifierWithOptions[ConsoleMessage](options.NotifierOptions),
	}
}

// Add records a message and notifies subscribers
func (c *ConsoleCollector) Add(msg ConsoleMessage) {
	c.buffer.Add(msg)
	c.notifier.Notify(msg)
}

// Messages returns all messages in arrival order
func (c *ConsoleCollector) Messages() []ConsoleMessage {
	return c.buffer.All()
}

// Texts returns the text of all messages
func (c *ConsoleCollector) Texts() []string {
	return lo.Map(c.Messages(), func(m ConsoleMessage, _ int) string {
		return m.Text
	})
}

// OfLevel returns messages with any of the given levels
func (c *ConsoleCollector) OfLevel(levels ...ConsoleLevel) []ConsoleMessage {
	return lo.Filter(c.Messages(), func(m ConsoleMessage, _ int) bool {
		return slices.Contains(levels, m.Level)
	})
}

// Containing returns messages whose text contains the fragment
func (c *ConsoleCollector) Containing(fragment string) []ConsoleMessage {
	return lo.Filter(c.Messages(), func(m ConsoleMessage, _ int) bool {
		return strings.Contains(m.Text, fragment)
	})
}

func (c *ConsoleCollector) Count() int {
	return int(c.buffer.Size())
}

func (c *ConsoleCollector) CountOf(level ConsoleLevel) int {
	return len(c.OfLevel(level))
}

// Clear drops all messages
func (c *ConsoleCollector) Clear() {
	c.buffer.Clear()
}

// Subscribe receives every message added after the call
func (c *ConsoleCollector) Subscribe(ctx context.Context) <-chan ConsoleMessage {
	return c.notifier.Subscribe(ctx)
}

// Close ends all subscriptions
func (c *ConsoleCollector) Close() {
	c.notifier.Close()
}
