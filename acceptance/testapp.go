//go:build acceptance
// +build acceptance

package acceptance

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"

	"github.com/networkteam/screenplay/report"
)

const (
	demoUsername = "tomsmith"
	demoPassword = "SuperSecretPassword!"

	sessionCookie = "demo_session"
)

// DemoApp is a local web application for browser and API tests.
// It provides a login with a secure area, a JSON posts API, header and cookie echo endpoints,
// arbitrary status codes, a page with a JavaScript error and the report viewer.
type DemoApp struct {
	Server     *httptest.Server
	URL        string
	ReportsURL string
	Reports    *report.Store

	mu       sync.Mutex
	sessions map[string]string
	posts    []post
	nextID   int
}

type post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// NewDemoApp starts the demo application on a local port.
func NewDemoApp(t *testing.T) *DemoApp {
	t.Helper()

	app := &DemoApp{
		Reports:  report.NewStore(t.TempDir()),
		sessions: make(map[string]string),
		posts: []post{
			{ID: 1, UserID: 1, Title: "Getting started", Body: "The first post"},
			{ID: 2, UserID: 1, Title: "Screenplay pattern", Body: "Actors perform tasks"},
			{ID: 3, UserID: 1, Title: "Playwright", Body: "Driving browsers"},
			{ID: 4, UserID: 2, Title: "Another author", Body: "Written by user 2"},
		},
		nextID: 5,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", app.home)
	mux.HandleFunc("GET /static/app.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript")
		_, _ = w.Write([]byte(`console.log("Demo app loaded");`))
	})

	mux.HandleFunc("GET /login", app.loginPage)
	mux.HandleFunc("POST /authenticate", app.authenticate)
	mux.HandleFunc("GET /secure", app.secureArea)
	mux.HandleFunc("GET /javascript_error", app.javascriptError)

	mux.HandleFunc("GET /api/posts", app.listPosts)
	mux.HandleFunc("POST /api/posts", app.createPost)
	mux.HandleFunc("GET /api/posts/{id}", app.withPost(app.getPost))
	mux.HandleFunc("PUT /api/posts/{id}", app.withPost(app.updatePost(false)))
	mux.HandleFunc("PATCH /api/posts/{id}", app.withPost(app.updatePost(true)))
	mux.HandleFunc("DELETE /api/posts/{id}", app.withPost(app.deletePost))

	mux.HandleFunc("GET /headers", func(w http.ResponseWriter, r *http.Request) {
		headers := make(map[string]string, len(r.Header))
		for name, values := range r.Header {
			headers[name] = values[0]
		}
		writeJSON(w, http.StatusOK, map[string]any{"headers": headers})
	})
	mux.HandleFunc("GET /cookies/set/{name}/{value}", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: r.PathValue("name"), Value: r.PathValue("value"), Path: "/"})
		http.Redirect(w, r, "/cookies", http.StatusFound)
	})
	mux.HandleFunc("GET /cookies", func(w http.ResponseWriter, r *http.Request) {
		cookies := lo.SliceToMap(r.Cookies(), func(c *http.Cookie) (string, string) {
			return c.Name, c.Value
		})
		writeJSON(w, http.StatusOK, map[string]any{"cookies": cookies})
	})
	mux.HandleFunc("GET /status/{code}", func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.Atoi(r.PathValue("code"))
		if err != nil || code < 100 || code > 599 {
			http.Error(w, "Invalid status code", http.StatusBadRequest)
			return
		}
		w.WriteHeader(code)
		_, _ = fmt.Fprintf(w, "%d %s", code, http.StatusText(code))
	})

	mux.Handle("/_reports/", http.StripPrefix("/_reports", report.NewHandler(app.Reports, report.WithPathPrefix("/_reports"))))

	app.Server = httptest.NewServer(mux)
	app.URL = app.Server.URL
	app.ReportsURL = app.Server.URL + "/_reports/"

	return app
}

// Close shuts down the demo application.
func (app *DemoApp) Close() {
	app.Server.Close()
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title><script src="/static/app.js"></script></head>
<body {{if .OnLoad}}onload="{{.OnLoad}}"{{end}}>
{{if .Flash}}<div id="flash" class="flash">{{.Flash}}</div>{{end}}
<h2>{{.Title}}</h2>
{{.Content}}
</body>
</html>`))

type pageData struct {
	Title   string
	Flash   string
	OnLoad  template.JS
	Content template.HTML
}

func renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (app *DemoApp) home(w http.ResponseWriter, r *http.Request) {
	renderPage(w, pageData{
		Title: "Demo App",
		Content: `<ul>
<li><a href="/login">Form Authentication</a></li>
<li><a href="/javascript_error">JavaScript onload event error</a></li>
<li><a href="/status/404">Not found</a></li>
</ul>`,
	})
}

func (app *DemoApp) loginPage(w http.ResponseWriter, r *http.Request) {
	var flash string
	if r.URL.Query().Has("error") {
		flash = "Your username or password is invalid!"
	}
	renderPage(w, pageData{
		Title: "Login Page",
		Flash: flash,
		Content: `<form id="login" action="/authenticate" method="post">
<label for="username">Username</label><input type="text" name="username" id="username">
<label for="password">Password</label><input type="password" name="password" id="password">
<button type="submit">Login</button>
</form>`,
	})
}

func (app *DemoApp) authenticate(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("username") != demoUsername || r.PostFormValue("password") != demoPassword {
		http.Redirect(w, r, "/login?error", http.StatusFound)
		return
	}

	token := uuid.Must(uuid.NewV4()).String()
	app.mu.Lock()
	app.sessions[token] = demoUsername
	app.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true})
	http.Redirect(w, r, "/secure?welcome", http.StatusFound)
}

func (app *DemoApp) secureArea(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	app.mu.Lock()
	user, ok := app.sessions[cookie.Value]
	app.mu.Unlock()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	var flash string
	if r.URL.Query().Has("welcome") {
		flash = "You logged into a secure area!"
	}
	renderPage(w, pageData{
		Title:   "Secure Area",
		Flash:   flash,
		Content: template.HTML(`<p>Welcome, ` + template.HTMLEscapeString(user) + `</p><a href="/login">Logout</a>`),
	})
}

func (app *DemoApp) javascriptError(w http.ResponseWriter, r *http.Request) {
	renderPage(w, pageData{
		Title:  "JavaScript error",
		OnLoad: `loadError()`,
		Content: `<p>This page has a JavaScript error in the onload event.</p>
<script>
function loadError() {
  console.error("Cannot read properties of undefined (reading 'xyz')");
  undefined.xyz();
}
</script>`,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (app *DemoApp) listPosts(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	posts := slices.Clone(app.posts)
	app.mu.Unlock()

	if userID := r.URL.Query().Get("userId"); userID != "" {
		posts = lo.Filter(posts, func(p post, _ int) bool {
			return strconv.Itoa(p.UserID) == userID
		})
	}
	writeJSON(w, http.StatusOK, posts)
}

func (app *DemoApp) createPost(w http.ResponseWriter, r *http.Request) {
	var p post
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	app.mu.Lock()
	p.ID = app.nextID
	app.nextID++
	app.posts = append(app.posts, p)
	app.mu.Unlock()

	writeJSON(w, http.StatusCreated, p)
}

// withPost resolves the post of the {id} path value, the handler is called with app.mu held.
func (app *DemoApp) withPost(handler func(w http.ResponseWriter, r *http.Request, idx int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
			return
		}

		app.mu.Lock()
		defer app.mu.Unlock()

		idx := slices.IndexFunc(app.posts, func(p post) bool { return p.ID == id })
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{})
			return
		}
		handler(w, r, idx)
	}
}

func (app *DemoApp) getPost(w http.ResponseWriter, r *http.Request, idx int) {
	writeJSON(w, http.StatusOK, app.posts[idx])
}

func (app *DemoApp) updatePost(partial bool) func(w http.ResponseWriter, r *http.Request, idx int) {
	return func(w http.ResponseWriter, r *http.Request, idx int) {
		p := post{ID: app.posts[idx].ID}
		if partial {
			p = app.posts[idx]
		}
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		p.ID = app.posts[idx].ID
		app.posts[idx] = p
		writeJSON(w, http.StatusOK, p)
	}
}

func (app *DemoApp) deletePost(w http.ResponseWriter, r *http.Request, idx int) {
	app.posts = slices.Delete(app.posts, idx, idx+1)
	writeJSON(w, http.StatusOK, map[string]string{})
}
