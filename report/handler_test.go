package report_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay/report"
)

func get(t *testing.T, handler http.Handler, path string) (*http.Response, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHandler(t *testing.T) {
	store := report.NewStore(t.TempDir())
	outcome := newOutcome("Completing <todos>", time.Now())
	outcome.Result = report.ResultFailure
	require.NoError(t, store.Save(outcome))

	handler := report.NewHandler(store, report.WithPathPrefix("/reports"))

	t.Run("index", func(t *testing.T) {
		resp, body := get(t, handler, "/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "1 tests, 1 failed")
		assert.Contains(t, body, "Completing &lt;todos&gt;")
		assert.Contains(t, body, `href="/reports/outcome/`+outcome.ID.String()+`"`)
	})

	t.Run("outcome", func(t *testing.T) {
		resp, body := get(t, handler, "/outcome/"+outcome.ID.String())
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Toby opens the TodoMVC application")
		assert.Contains(t, body, `class="chroma"`)
		assert.Contains(t, body, "/reports/outcome/"+outcome.ID.String()+"/evidence/0")
	})

	t.Run("evidence", func(t *testing.T) {
		resp, body := get(t, handler, "/outcome/"+outcome.ID.String()+"/evidence/0")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Equal(t, `{"id":1}`, body)

		resp, _ = get(t, handler, "/outcome/"+outcome.ID.String()+"/evidence/7")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("evidence with active content is served as plain text", func(t *testing.T) {
		page := newOutcome("Capturing pages", time.Now())
		page.Steps[0].Evidence = []report.Evidence{
			{Title: "page", ContentType: "text/html", Content: []byte("<script>alert(1)</script>")},
			{Title: "logo", ContentType: "image/svg+xml", Content: []byte(`<svg onload="alert(1)"/>`)},
			{Title: "screenshot", ContentType: "image/png", Content: []byte{0x89, 'P', 'N', 'G'}},
		}
		require.NoError(t, store.Save(page))

		tests := []struct {
			n           string
			contentType string
		}{
			{n: "0", contentType: "text/plain; charset=utf-8"},
			{n: "1", contentType: "text/plain; charset=utf-8"},
			{n: "2", contentType: "image/png"},
		}
		for _, tt := range tests {
			resp, _ := get(t, handler, "/outcome/"+page.ID.String()+"/evidence/"+tt.n)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"), "evidence %s", tt.n)
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
			assert.Equal(t, "sandbox", resp.Header.Get("Content-Security-Policy"))
		}
	})

	t.Run("invalid and unknown outcome", func(t *testing.T) {
		resp, _ := get(t, handler, "/outcome/not-a-uuid")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = get(t, handler, "/outcome/0190b6a4-4c4e-7d0a-8f4b-000000000000")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRenderSite(t *testing.T) {
	dir := t.TempDir()
	outcome := newOutcome("Filtering todos", time.Now())

	require.NoError(t, report.RenderSite(dir, []*report.TestOutcome{outcome}))

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="`+outcome.ID.String()+`.html"`)

	page, err := os.ReadFile(filepath.Join(dir, outcome.ID.String()+".html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Filtering todos")
	assert.Contains(t, string(page), `href="index.html"`)
	assert.NotContains(t, string(page), "/evidence/")
}
