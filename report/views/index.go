package views

import "github.com/samber/lo"

// OutcomeSummary is a row of the report index.
type OutcomeSummary struct {
	ID        string
	Name      string
	Result    string
	StartedAt string
	Duration  string
	Steps     int
}

type IndexProps struct {
	Outcomes []OutcomeSummary
}

func failedCount(outcomes []OutcomeSummary) int {
	return lo.CountBy(outcomes, func(o OutcomeSummary) bool { return o.Result == "failure" })
}
