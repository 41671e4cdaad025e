package report

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gofrs/uuid"

	"github.com/networkteam/screenplay/report/views"
)

// Handler serves recorded test outcomes as HTML.
type Handler struct {
	store   *Store
	options handlerOptions
	logger  *slog.Logger

	mux http.Handler
}

func NewHandler(store *Store, opts ...HandlerOption) *Handler {
	var options handlerOptions
	for _, opt := range opts {
		opt(&options)
	}

	mux := http.NewServeMux()
	handler := &Handler{
		store:   store,
		options: options,
		logger:  slog.Default(),
		mux:     setHandlerOptions(options, mux),
	}

	mux.HandleFunc("GET /{$}", handler.root)
	mux.HandleFunc("GET /outcome/{outcomeId}", handler.getOutcome)
	mux.HandleFunc("GET /outcome/{outcomeId}/evidence/{n}", handler.downloadEvidence)

	return handler
}

func setHandlerOptions(options handlerOptions, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := views.WithHandlerOptions(r.Context(), views.HandlerOptions{
			PathPrefix: options.PathPrefix,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	outcomes, err := h.store.LoadAll(r.Context())
	if err != nil {
		h.logger.Error("Loading test outcomes", slog.Any("error", err))
		http.Error(w, "Could not load test outcomes", http.StatusInternalServerError)
		return
	}
	if limit := h.options.TruncateAfter; limit > 0 && len(outcomes) > limit {
		outcomes = outcomes[:limit]
	}

	templ.Handler(views.Index(indexProps(outcomes))).ServeHTTP(w, r)
}

func (h *Handler) loadOutcome(w http.ResponseWriter, r *http.Request) (*TestOutcome, bool) {
	outcomeID, err := uuid.FromString(r.PathValue("outcomeId"))
	if err != nil {
		http.Error(w, "Invalid outcome id", http.StatusBadRequest)
		return nil, false
	}

	outcome, err := h.store.Load(outcomeID)
	if errors.Is(err, ErrOutcomeNotFound) {
		http.Error(w, "Outcome not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.logger.Error("Loading test outcome", slog.Any("error", err))
		http.Error(w, "Could not load test outcome", http.StatusInternalServerError)
		return nil, false
	}
	return outcome, true
}

func (h *Handler) getOutcome(w http.ResponseWriter, r *http.Request) {
	outcome, ok := h.loadOutcome(w, r)
	if !ok {
		return
	}

	templ.Handler(views.Outcome(outcomeProps(outcome))).ServeHTTP(w, r)
}

// downloadEvidence serves the raw content of the n-th evidence of an outcome
func (h *Handler) downloadEvidence(w http.ResponseWriter, r *http.Request) {
	outcome, ok := h.loadOutcome(w, r)
	if !ok {
		return
	}

	n, err := strconv.Atoi(r.PathValue("n"))
	evidence := outcome.AllEvidence()
	if err != nil || n < 0 || n >= len(evidence) {
		http.Error(w, "Evidence not found", http.StatusNotFound)
		return
	}
	e := evidence[n]

	w.Header().Set("Content-Type", evidenceContentType(e.ContentType))
	w.Header().Set("Content-Length", strconv.Itoa(len(e.Content)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "sandbox")
	_, _ = w.Write(e.Content)
}

// evidenceContentType keeps image (except SVG) and JSON types, anything else is plain text.
func evidenceContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "text/plain; charset=utf-8"
	}
	switch {
	case mediaType == "image/svg+xml":
		return "text/plain; charset=utf-8"
	case strings.HasPrefix(mediaType, "image/"), mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return contentType
	default:
		return "text/plain; charset=utf-8"
	}
}
