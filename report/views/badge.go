package views

import "strings"

type BadgeVariant string

const (
	BadgeVariantSecondary BadgeVariant = "secondary"
	BadgeVariantSuccess   BadgeVariant = "success"
	BadgeVariantWarning   BadgeVariant = "warning"
	BadgeVariantError     BadgeVariant = "error"
)

// BadgeVariantFor maps a result to a badge color.
func BadgeVariantFor(result string) BadgeVariant {
	switch result {
	case "success":
		return BadgeVariantSuccess
	case "failure":
		return BadgeVariantError
	case "skipped":
		return BadgeVariantWarning
	default:
		return BadgeVariantSecondary
	}
}

func badgeClasses(variant BadgeVariant) string {
	classes := []string{"badge"}
	switch variant {
	case BadgeVariantSuccess:
		classes = append(classes, "badge-success")
	case BadgeVariantWarning:
		classes = append(classes, "badge-warning")
	case BadgeVariantError:
		classes = append(classes, "badge-error")
	default:
		classes = append(classes, "badge-secondary")
	}
	return strings.Join(classes, " ")
}
