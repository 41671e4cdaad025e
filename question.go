package screenplay

import "fmt"

// Question is asked to an actor and answered with the actor's abilities.
type Question[T any] interface {
	AnsweredBy(actor *Actor) (T, error)
}

// Subjected is implemented by questions with a readable subject.
type Subjected interface {
	Subject() string
}

type question[T any] struct {
	subject string
	fn      func(actor *Actor) (T, error)
}

// About creates a question from a function.
func About[T any](subject string, fn func(actor *Actor) (T, error)) Question[T] {
	return question[T]{subject: subject, fn: fn}
}

func (q question[T]) AnsweredBy(actor *Actor) (T, error) {
	return q.fn(actor)
}

func (q question[T]) Subject() string {
	return q.subject
}

// AsksFor lets the actor answer the question. The question is reported as a step.
func AsksFor[T any](actor *Actor, q Question[T]) (T, error) {
	title := "{actor} asks about " + SubjectOf(q)
	if _, ok := q.(Describable); ok {
		title = Describe(actor, q)
	}

	var answer T
	err := actor.perform(TaskFunc(title, func(actor *Actor) error {
		var err error
		answer, err = q.AnsweredBy(actor)
		return err
	}))
	return answer, err
}

// SubjectOf returns a readable subject for a question.
func SubjectOf(q any) string {
	switch s := q.(type) {
	case Subjected:
		return s.Subject()
	case Describable:
		return s.Description()
	default:
		return fmt.Sprintf("%T", q)
	}
}
