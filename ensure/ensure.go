// Package ensure provides assertions that actors perform as steps.
package ensure

import (
	"fmt"
	"slices"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/networkteam/screenplay"
)

// Error is returned by a failed assertion.
type Error struct {
	Subject  string
	Expected string
	Actual   any
}

func (e *Error) Error() string {
	return fmt.Sprintf("expected %s %s but was %v", e.Subject, e.Expected, e.Actual)
}

type assertion[T any] struct {
	question    screenplay.Question[T]
	expectation string
	check       func(actual T) bool
}

func (a assertion[T]) PerformAs(actor *screenplay.Actor) error {
	actual, err := a.question.AnsweredBy(actor)
	if err != nil {
		return fmt.Errorf("answering %s: %w", screenplay.SubjectOf(a.question), err)
	}
	if !a.check(actual) {
		return &Error{
			Subject:  screenplay.SubjectOf(a.question),
			Expected: a.expectation,
			Actual:   actual,
		}
	}
	return nil
}

func (a assertion[T]) Description() string {
	return fmt.Sprintf("{actor} ensures that %s %s", screenplay.SubjectOf(a.question), a.expectation)
}

// Value starts assertions on any answer.
type Value[T any] struct {
	question screenplay.Question[T]
}

func That[T any](q screenplay.Question[T]) Value[T] {
	return Value[T]{question: q}
}

func (v Value[T]) IsEqualTo(expected T) screenplay.Performable {
	return assertion[T]{v.question, fmt.Sprintf("is equal to %v", expected), func(actual T) bool {
		return assert.ObjectsAreEqual(expected, actual)
	}}
}

func (v Value[T]) IsNotEqualTo(unexpected T) screenplay.Performable {
	return assertion[T]{v.question, fmt.Sprintf("is not equal to %v", unexpected), func(actual T) bool {
		return !assert.ObjectsAreEqual(unexpected, actual)
	}}
}

// Satisfies checks the answer with a predicate described by expectation.
func (v Value[T]) Satisfies(expectation string, predicate func(actual T) bool) screenplay.Performable {
	return assertion[T]{v.question, expectation, predicate}
}

type Bool struct {
	question screenplay.Question[bool]
}

func ThatBool(q screenplay.Question[bool]) Bool {
	return Bool{question: q}
}

func (b Bool) IsTrue() screenplay.Performable {
	return assertion[bool]{b.question, "is true", func(actual bool) bool { return actual }}
}

func (b Bool) IsFalse() screenplay.Performable {
	return assertion[bool]{b.question, "is false", func(actual bool) bool { return !actual }}
}

type Int struct {
	question screenplay.Question[int]
}

func ThatInt(q screenplay.Question[int]) Int {
	return Int{question: q}
}

func (i Int) IsEqualTo(expected int) screenplay.Performable {
	return assertion[int]{i.question, fmt.Sprintf("is equal to %d", expected), func(actual int) bool {
		return actual == expected
	}}
}

func (i Int) IsGreaterThan(bound int) screenplay.Performable {
	return assertion[int]{i.question, fmt.Sprintf("is greater than %d", bound), func(actual int) bool {
		return actual > bound
	}}
}

func (i Int) IsLessThan(bound int) screenplay.Performable {
	return assertion[int]{i.question, fmt.Sprintf("is less than %d", bound), func(actual int) bool {
		return actual < bound
	}}
}

type String struct {
	question screenplay.Question[string]
}

func ThatString(q screenplay.Question[string]) String {
	return String{question: q}
}

func (s String) IsEqualTo(expected string) screenplay.Performable {
	return assertion[string]{s.question, fmt.Sprintf("is equal to %q", expected), func(actual string) bool {
		return actual == expected
	}}
}

func (s String) Contains(fragment string) screenplay.Performable {
	return assertion[string]{s.question, fmt.Sprintf("contains %q", fragment), func(actual string) bool {
		return strings.Contains(actual, fragment)
	}}
}

func (s String) ContainsIgnoringCase(fragment string) screenplay.Performable {
	return assertion[string]{s.question, fmt.Sprintf("contains %q ignoring case", fragment), func(actual string) bool {
		return strings.Contains(strings.ToLower(actual), strings.ToLower(fragment))
	}}
}

func (s String) StartsWith(prefix string) screenplay.Performable {
	return assertion[string]{s.question, fmt.Sprintf("starts with %q", prefix), func(actual string) bool {
		return strings.HasPrefix(actual, prefix)
	}}
}

type List[T comparable] struct {
	question screenplay.Question[[]T]
}

func ThatList[T comparable](q screenplay.Question[[]T]) List[T] {
	return List[T]{question: q}
}

// ContainsExactly checks elements and their order.
func (l List[T]) ContainsExactly(expected ...T) screenplay.Performable {
	return assertion[[]T]{l.question, fmt.Sprintf("contains exactly %v", expected), func(actual []T) bool {
		return slices.Equal(actual, expected)
	}}
}

// ContainsExactlyElementsFrom is ContainsExactly for an expected slice.
func (l List[T]) ContainsExactlyElementsFrom(expected []T) screenplay.Performable {
	return l.ContainsExactly(expected...)
}

// Contains checks that all given elements are present in any order.
func (l List[T]) Contains(elements ...T) screenplay.Performable {
	return assertion[[]T]{l.question, fmt.Sprintf("contains %v", elements), func(actual []T) bool {
		for _, e := range elements {
			if !slices.Contains(actual, e) {
				return false
			}
		}
		return true
	}}
}

func (l List[T]) DoesNotContain(elements ...T) screenplay.Performable {
	return assertion[[]T]{l.question, fmt.Sprintf("does not contain %v", elements), func(actual []T) bool {
		for _, e := range elements {
			if slices.Contains(actual, e) {
				return false
			}
		}
		return true
	}}
}

func (l List[T]) IsEmpty() screenplay.Performable {
	return assertion[[]T]{l.question, "is empty", func(actual []T) bool { return len(actual) == 0 }}
}

func (l List[T]) IsNotEmpty() screenplay.Performable {
	return assertion[[]T]{l.question, "is not empty", func(actual []T) bool { return len(actual) > 0 }}
}

func (l List[T]) HasSize(size int) screenplay.Performable {
	return assertion[[]T]{l.question, fmt.Sprintf("has size %d", size), func(actual []T) bool {
		return len(actual) == size
	}}
}
