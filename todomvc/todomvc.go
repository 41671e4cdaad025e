// Package todomvc drives the TodoMVC React application with a page object.
// The ui, tasks and questions subpackages express the same interactions for screenplay actors.
package todomvc

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultURL is the public TodoMVC React example, configurable as todomvc.url.
const DefaultURL = "https://todomvc.com/examples/react/dist/"

var countPattern = regexp.MustCompile(`\d+`)

// ParseRemainingCount extracts the number of a footer text like "3 items left", 0 if there is none.
func ParseRemainingCount(text string) int {
	match := countPattern.FindString(text)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// HasClass reports whether a class attribute value contains the class name.
func HasClass(classAttr, name string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == name {
			return true
		}
	}
	return false
}
