package screenplay

type task struct {
	title string
	steps []Performable
}

// Task groups performables under a single report title.
func Task(title string, steps ...Performable) Performable {
	return task{title: title, steps: steps}
}

func (t task) PerformAs(actor *Actor) error {
	return actor.AttemptsTo(t.steps...)
}

func (t task) Description() string {
	return t.title
}

type taskFunc struct {
	title string
	fn    func(actor *Actor) error
}

// TaskFunc creates a performable from a function.
func TaskFunc(title string, fn func(actor *Actor) error) Performable {
	return taskFunc{title: title, fn: fn}
}

func (t taskFunc) PerformAs(actor *Actor) error {
	return t.fn(actor)
}

func (t taskFunc) Description() string {
	return t.title
}
