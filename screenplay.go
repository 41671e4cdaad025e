package screenplay

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrMissingAbility is returned when an actor is asked for an ability it was never granted.
var ErrMissingAbility = errors.New("actor lacks ability")

// Ability is a capability granted to an Actor, e.g. browsing the web.
// Abilities that own resources should implement HasTeardown.
type Ability interface{}

// HasTeardown is implemented by abilities that release resources when the actor wraps up.
type HasTeardown interface {
	TearDown() error
}

// EvidenceProvider is implemented by abilities that can contribute evidence when a step fails.
type EvidenceProvider interface {
	FailureEvidence() []Evidence
}

// Evidence is an attachment for the report of a step.
type Evidence struct {
	Title       string
	ContentType string
	Content     []byte
}

// StepListener is notified about every step an actor performs.
type StepListener interface {
	StepStarted(actor *Actor, title string)
	StepFinished(actor *Actor, title string, err error)
}

// EvidenceListener is an optional extension of StepListener to receive attachments.
type EvidenceListener interface {
	EvidenceAttached(actor *Actor, evidence Evidence)
}

// Performable is anything an actor can attempt: tasks, interactions and assertions.
type Performable interface {
	PerformAs(actor *Actor) error
}

// Describable gives a performable or question a report title.
// The placeholder {actor} is replaced with the name of the performing actor.
type Describable interface {
	Description() string
}

// Actor performs tasks and answers questions using its abilities.
type Actor struct {
	name      string
	abilities []Ability
	listeners []StepListener
	memory    map[string]any
	logger    *slog.Logger
}

// Named creates a new actor without abilities.
func Named(name string) *Actor {
	return &Actor{
		name:   name,
		memory: make(map[string]any),
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for step logging.
func (a *Actor) WithLogger(logger *slog.Logger) *Actor {
	a.logger = logger
	return a
}

// WhoCan grants abilities and returns the actor for chaining.
func (a *Actor) WhoCan(abilities ...Ability) *Actor {
	a.Can(abilities...)
	return a
}

// Can grants abilities to the actor.
func (a *Actor) Can(abilities ...Ability) {
	a.abilities = append(a.abilities, abilities...)
}

func (a *Actor) Name() string {
	return a.name
}

func (a *Actor) String() string {
	return a.name
}

// Listen registers listeners for steps and evidence.
func (a *Actor) Listen(listeners ...StepListener) {
	a.listeners = append(a.listeners, listeners...)
}

// AttemptsTo performs the given performables in order and stops at the first failure.
func (a *Actor) AttemptsTo(performables ...Performable) error {
	for _, p := range performables {
		if err := a.perform(p); err != nil {
			return err
		}
	}
	return nil
}

// WasAbleTo is an alias of AttemptsTo that reads better in preconditions.
func (a *Actor) WasAbleTo(performables ...Performable) error {
	return a.AttemptsTo(performables...)
}

// Remember stores a value in the actor's memory.
func (a *Actor) Remember(key string, value any) {
	a.memory[key] = value
}

// Recall returns a remembered value.
func (a *Actor) Recall(key string) (any, bool) {
	v, ok := a.memory[key]
	return v, ok
}

// Attach forwards evidence to all listeners that accept it.
func (a *Actor) Attach(evidence Evidence) {
	for _, l := range a.listeners {
		if el, ok := l.(EvidenceListener); ok {
			el.EvidenceAttached(a, evidence)
		}
	}
}

// WrapUp tears down all abilities of the actor.
func (a *Actor) WrapUp() error {
	var errs []error
	for _, ability := range a.abilities {
		if t, ok := ability.(HasTeardown); ok {
			if err := t.TearDown(); err != nil {
				errs = append(errs, fmt.Errorf("tearing down %T: %w", ability, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (a *Actor) perform(p Performable) error {
	title := Describe(a, p)
	a.stepStarted(title)

	err := p.PerformAs(a)
	if err != nil {
		var stepErr *StepError
		if !errors.As(err, &stepErr) {
			a.attachFailureEvidence()
			err = &StepError{Title: title, Err: err}
		}
	}

	a.stepFinished(title, err)
	return err
}

func (a *Actor) attachFailureEvidence() {
	for _, ability := range a.abilities {
		if p, ok := ability.(EvidenceProvider); ok {
			for _, e := range p.FailureEvidence() {
				a.Attach(e)
			}
		}
	}
}

func (a *Actor) stepStarted(title string) {
	a.logger.Debug("Step started", slog.String("actor", a.name), slog.String("step", title))
	for _, l := range a.listeners {
		l.StepStarted(a, title)
	}
}

func (a *Actor) stepFinished(title string, err error) {
	if err != nil {
		a.logger.Debug("Step failed", slog.String("actor", a.name), slog.String("step", title), slog.Any("error", err))
	}
	for _, l := range a.listeners {
		l.StepFinished(a, title, err)
	}
}

// StepError marks the innermost step that failed.
type StepError struct {
	Title string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Title, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// AbilityOf returns the ability of type T granted to the actor.
func AbilityOf[T Ability](actor *Actor) (T, error) {
	for _, ability := range actor.abilities {
		if t, ok := ability.(T); ok {
			return t, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s cannot use %T", ErrMissingAbility, actor.name, zero)
}

// RecallAs returns a remembered value of type T.
func RecallAs[T any](actor *Actor, key string) (T, bool) {
	v, ok := actor.Recall(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Describe renders the report title of a performable or question for an actor.
func Describe(actor *Actor, v any) string {
	var title string
	switch d := v.(type) {
	case Describable:
		title = d.Description()
	default:
		title = fmt.Sprintf("{actor} performs %T", v)
	}
	return strings.ReplaceAll(title, "{actor}", actor.name)
}
