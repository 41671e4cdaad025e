package views

import (
	"encoding/base64"
	"strings"
	"time"
)

type OutcomeProps struct {
	ID        string
	Name      string
	Result    string
	StartedAt time.Time
	Duration  time.Duration
	Error     string
	Steps     []StepProps
	Evidence  []EvidenceProps
}

type StepProps struct {
	Title    string
	Result   string
	Duration time.Duration
	Error    string
	Evidence []EvidenceProps
	Children []StepProps
}

type EvidenceProps struct {
	// Index is the position of the evidence in the outcome, used for download links
	Index       int
	Title       string
	ContentType string
	Content     []byte
}

func (e EvidenceProps) isImage() bool {
	return strings.HasPrefix(e.ContentType, "image/")
}

// isHighlighted is true for content chroma can highlight by mime type
func (e EvidenceProps) isHighlighted() bool {
	return strings.Contains(e.ContentType, "json") ||
		strings.Contains(e.ContentType, "html") ||
		strings.Contains(e.ContentType, "xml")
}

func (e EvidenceProps) dataURL() string {
	return "data:" + e.ContentType + ";base64," + base64.StdEncoding.EncodeToString(e.Content)
}
