//go:build acceptance
// +build acceptance

package acceptance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/ensure"
	"github.com/networkteam/screenplay/web"
)

func newAPITester(t *testing.T) *screenplay.Actor {
	t.Helper()

	tester := NewActor(t, "API Tester")
	must(t, tester.WasAbleTo(web.OpenURL("about:blank")))
	return tester
}

func TestAPIRequests(t *testing.T) {
	WithDemoApp(t, func(t *testing.T, app *DemoApp) {
		t.Run("can fetch a single resource", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Get(app.URL+"/api/posts/1"),
				ensure.ThatInt(web.LastAPIResponse().StatusCode()).IsEqualTo(200),
				ensure.ThatBool(web.LastAPIResponse().OK()).IsTrue(),
			))

			post, err := screenplay.AsksFor(tester, web.LastAPIResponse().JSONBody())
			require.NoError(t, err)
			for _, key := range []string{"userId", "id", "title", "body"} {
				assert.Contains(t, post, key)
			}
			assert.Equal(t, 1.0, post["id"])
		})

		t.Run("can fetch a collection of resources", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Get(app.URL+"/api/posts").WithQueryParam("userId", "1"),
			))

			posts, err := screenplay.AsksFor(tester, web.LastAPIResponse().JSONBodyAsList())
			require.NoError(t, err)
			require.NotEmpty(t, posts)
			for _, post := range posts {
				assert.Equal(t, 1.0, post["userId"])
			}
		})

		t.Run("can add custom headers to requests", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Get(app.URL+"/headers").
					WithHeader("X-Custom-Header", "my-value").
					WithHeader("Accept-Language", "en-US"),
			))

			response, err := screenplay.AsksFor(tester, web.LastAPIResponse().JSONBody())
			require.NoError(t, err)
			headers, ok := response["headers"].(map[string]any)
			require.True(t, ok, "headers should be an object")
			assert.Equal(t, "my-value", headers["X-Custom-Header"])
			assert.Equal(t, "en-US", headers["Accept-Language"])
		})

		t.Run("can create a resource with JSON body", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Post(app.URL+"/api/posts").WithJSONBody(map[string]any{
					"title":  "My New Post",
					"body":   "This is the content of my post",
					"userId": 1,
				}),
				ensure.ThatInt(web.LastAPIResponse().StatusCode()).IsEqualTo(201),
			))

			created, err := screenplay.AsksFor(tester, web.LastAPIResponse().JSONBody())
			require.NoError(t, err)
			assert.Equal(t, "My New Post", created["title"])
			assert.NotNil(t, created["id"])
		})

		t.Run("can update a resource with PUT", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Put(app.URL+"/api/posts/2").WithJSONBody(map[string]any{
					"id":     2,
					"title":  "Updated Title",
					"body":   "Updated body content",
					"userId": 1,
				}),
				ensure.ThatInt(web.LastAPIResponse().StatusCode()).IsEqualTo(200),
			))

			updated, err := screenplay.AsksFor(tester, web.LastAPIResponse().JSONBody())
			require.NoError(t, err)
			assert.Equal(t, "Updated Title", updated["title"])
		})

		t.Run("can partially update a resource with PATCH", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Patch(app.URL+"/api/posts/3").WithJSONBody(map[string]any{"title": "Only Title Changed"}),
				ensure.ThatInt(web.LastAPIResponse().StatusCode()).IsEqualTo(200),
			))

			patched, err := screenplay.AsksFor(tester, web.LastAPIResponse().JSONBody())
			require.NoError(t, err)
			assert.Equal(t, "Only Title Changed", patched["title"])
			assert.Equal(t, "Driving browsers", patched["body"])
		})

		t.Run("can delete a resource", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Delete(app.URL+"/api/posts/4"),
				ensure.ThatInt(web.LastAPIResponse().StatusCode()).IsEqualTo(200),
				web.Get(app.URL+"/api/posts/4"),
				ensure.ThatInt(web.LastAPIResponse().StatusCode()).IsEqualTo(404),
			))
		})

		t.Run("can read response headers", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Get(app.URL+"/api/posts/1"),
				ensure.ThatString(web.LastAPIResponse().Header("Content-Type")).Contains("application/json"),
			))

			headers, err := screenplay.AsksFor(tester, web.LastAPIResponse().Headers())
			require.NoError(t, err)
			assert.NotEmpty(t, headers)
		})

		t.Run("can handle error responses", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Get(app.URL+"/api/posts/99999"),
				ensure.ThatInt(web.LastAPIResponse().StatusCode()).IsEqualTo(404),
				ensure.ThatBool(web.LastAPIResponse().OK()).IsFalse(),
			))
		})

		t.Run("can get the final URL after redirects", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.Get(app.URL+"/cookies/set/flavour/chocolate"),
				ensure.ThatString(web.LastAPIResponse().URL()).IsEqualTo(app.URL+"/cookies"),
			))
		})

		t.Run("API calls share browser session cookies", func(t *testing.T) {
			tester := newAPITester(t)

			must(t, tester.AttemptsTo(
				web.OpenURL(app.URL+"/cookies/set/session_token/abc123"),
				web.Get(app.URL+"/cookies"),
			))

			response, err := screenplay.AsksFor(tester, web.LastAPIResponse().JSONBody())
			require.NoError(t, err)
			cookies, ok := response["cookies"].(map[string]any)
			require.True(t, ok, "cookies should be an object")
			assert.Equal(t, "abc123", cookies["session_token"])
		})
	})
}
