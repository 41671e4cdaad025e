package screenplay

import (
	"errors"
	"sync"
)

// ErrEmptyStage is returned when no actor has been called onto the stage yet.
var ErrEmptyStage = errors.New("no actor in the spotlight")

// Cast creates a new actor for a name, typically granting default abilities.
type Cast func(name string) *Actor

// Stage keeps track of the actors of a scenario, so Gherkin steps can refer to them by name.
type Stage struct {
	cast Cast

	mu        sync.Mutex
	actors    map[string]*Actor
	order     []string
	spotlight *Actor
}

func NewStage(cast Cast) *Stage {
	if cast == nil {
		cast = Named
	}
	return &Stage{
		cast:   cast,
		actors: make(map[string]*Actor),
	}
}

// TheActorCalled returns the actor with the given name, creating it on first use.
// The actor is moved into the spotlight.
func (s *Stage) TheActorCalled(name string) *Actor {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, exists := s.actors[name]
	if !exists {
		actor = s.cast(name)
		s.actors[name] = actor
		s.order = append(s.order, name)
	}
	s.spotlight = actor
	return actor
}

// TheActorInTheSpotlight returns the actor that was called last.
func (s *Stage) TheActorInTheSpotlight() (*Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spotlight == nil {
		return nil, ErrEmptyStage
	}
	return s.spotlight, nil
}

// DrawTheCurtain wraps up all actors and clears the stage.
func (s *Stage) DrawTheCurtain() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, name := range s.order {
		if err := s.actors[name].WrapUp(); err != nil {
			errs = append(errs, err)
		}
	}

	s.actors = make(map[string]*Actor)
	s.order = nil
	s.spotlight = nil

	return errors.Join(errs...)
}
