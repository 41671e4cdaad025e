package views

//go:generate go run github.com/a-h/templ/cmd/templ generate

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

type HandlerOptions struct {
	// PathPrefix where the report handler is mounted, empty for static rendering
	PathPrefix string
	// Static renders links to files instead of handler routes
	Static bool
}

type handlerOptionsKey struct{}

func WithHandlerOptions(ctx context.Context, opts HandlerOptions) context.Context {
	return context.WithValue(ctx, handlerOptionsKey{}, opts)
}

func MustGetHandlerOptions(ctx context.Context) HandlerOptions {
	opts, _ := ctx.Value(handlerOptionsKey{}).(HandlerOptions)
	return opts
}

func outcomeURL(ctx context.Context, id string) string {
	opts := MustGetHandlerOptions(ctx)
	if opts.Static {
		return id + ".html"
	}
	return opts.PathPrefix + "/outcome/" + id
}

func indexURL(ctx context.Context) string {
	opts := MustGetHandlerOptions(ctx)
	if opts.Static {
		return "index.html"
	}
	return opts.PathPrefix + "/"
}

func isStatic(ctx context.Context) bool {
	return MustGetHandlerOptions(ctx).Static
}

func evidenceURL(ctx context.Context, id string, n int) string {
	return fmt.Sprintf("%s/outcome/%s/evidence/%d", MustGetHandlerOptions(ctx).PathPrefix, id, n)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// highlightContent applies syntax highlighting to the content
func highlightContent(content string, contentType string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// Split content type before ;
		contentType = strings.Split(contentType, ";")[0]

		lexer := lexers.MatchMimeType(contentType)
		if lexer == nil {
			lexer = lexers.Fallback
		}

		formatter, style := chromaFormatterAndStyle()

		iterator, err := lexer.Tokenise(nil, content)
		if err != nil {
			return err
		}

		return formatter.Format(w, style, iterator)
	})
}

func chromaFormatterAndStyle() (*html.Formatter, *chroma.Style) {
	formatter := html.New(
		html.Standalone(false),
		html.WithClasses(true),
		html.TabWidth(2),
	)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	return formatter, style
}

func chromaStyles() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<style>")
		formatter, style := chromaFormatterAndStyle()
		err := formatter.WriteCSS(w, style)

		_, _ = io.WriteString(w, ".chroma { white-space: pre-wrap; }\n")
		_, _ = io.WriteString(w, "</style>")
		return err
	})
}
