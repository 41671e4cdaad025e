package report

// handlerOptions holds configuration for a report Handler.
type handlerOptions struct {
	// PathPrefix is where the handler is mounted (e.g. "/reports").
	PathPrefix string
	// TruncateAfter limits the number of outcomes shown in the index, 0 shows all.
	TruncateAfter int
}

// HandlerOption configures a report Handler.
type HandlerOption func(*handlerOptions)

// WithPathPrefix sets the path prefix where the handler is mounted.
// This is used for generating correct URLs in the report.
func WithPathPrefix(prefix string) HandlerOption {
	return func(o *handlerOptions) {
		o.PathPrefix = prefix
	}
}

// WithTruncateAfter limits the number of outcomes shown in the index.
func WithTruncateAfter(limit int) HandlerOption {
	return func(o *handlerOptions) {
		o.TruncateAfter = limit
	}
}
