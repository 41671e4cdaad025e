package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/screenplay"
)

// ErrNoAPIResponse is returned when asking for the last API response before any API request.
var ErrNoAPIResponse = errors.New("no API request was made")

// APIResponse is a snapshot of the response to an API request.
type APIResponse struct {
	Status     int
	StatusText string
	OK         bool
	URL        string
	// Headers with lower-cased names
	Headers map[string]string
	Body    []byte
}

// Header returns a header value, ignoring the case of name.
func (r *APIResponse) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// DecodeJSON unmarshals the body into v.
func (r *APIResponse) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding JSON response body: %w", err)
	}
	return nil
}

// APIRequest is an HTTP request sent through the browser context.
// Cookies of the browser session are sent along and cookies set by the response are stored.
type APIRequest struct {
	method           string
	url              string
	headers          map[string]string
	params           map[string]any
	form             map[string]any
	body             any
	timeout          time.Duration
	failOnStatusCode bool
	err              error
}

func newAPIRequest(method, url string) *APIRequest {
	return &APIRequest{
		method:  method,
		url:     url,
		headers: make(map[string]string),
	}
}

func Get(url string) *APIRequest    { return newAPIRequest(http.MethodGet, url) }
func Post(url string) *APIRequest   { return newAPIRequest(http.MethodPost, url) }
func Put(url string) *APIRequest    { return newAPIRequest(http.MethodPut, url) }
func Patch(url string) *APIRequest  { return newAPIRequest(http.MethodPatch, url) }
func Delete(url string) *APIRequest { return newAPIRequest(http.MethodDelete, url) }
func Head(url string) *APIRequest   { return newAPIRequest(http.MethodHead, url) }

func (r *APIRequest) WithQueryParam(name string, value any) *APIRequest {
	if r.params == nil {
		r.params = make(map[string]any)
	}
	r.params[name] = value
	return r
}

func (r *APIRequest) WithHeader(name, value string) *APIRequest {
	r.headers[name] = value
	return r
}

// WithJSONBody sends v encoded as JSON with a matching content type.
func (r *APIRequest) WithJSONBody(v any) *APIRequest {
	data, err := json.Marshal(v)
	if err != nil {
		r.err = fmt.Errorf("encoding JSON body: %w", err)
		return r
	}
	return r.WithBody(string(data), "application/json")
}

func (r *APIRequest) WithBody(body, contentType string) *APIRequest {
	r.body = body
	r.headers["Content-Type"] = contentType
	return r
}

// WithFormField sends an application/x-www-form-urlencoded field.
func (r *APIRequest) WithFormField(name string, value any) *APIRequest {
	if r.form == nil {
		r.form = make(map[string]any)
	}
	r.form[name] = value
	return r
}

func (r *APIRequest) WithTimeout(timeout time.Duration) *APIRequest {
	r.timeout = timeout
	return r
}

// FailOnStatusCode makes non-2xx/3xx responses fail the request.
func (r *APIRequest) FailOnStatusCode() *APIRequest {
	r.failOnStatusCode = true
	return r
}

func (r *APIRequest) Description() string {
	return fmt.Sprintf("{actor} sends a %s request to %s", r.method, r.url)
}

func (r *APIRequest) fetchOptions() playwright.APIRequestContextFetchOptions {
	opts := playwright.APIRequestContextFetchOptions{
		Method: playwright.String(r.method),
	}
	if len(r.headers) > 0 {
		opts.Headers = r.headers
	}
	if len(r.params) > 0 {
		opts.Params = r.params
	}
	if r.form != nil {
		opts.Form = r.form
	}
	if r.body != nil {
		opts.Data = r.body
	}
	if r.timeout > 0 {
		opts.Timeout = playwright.Float(float64(r.timeout.Milliseconds()))
	}
	if r.failOnStatusCode {
		opts.FailOnStatusCode = playwright.Bool(true)
	}
	return opts
}

func (r *APIRequest) PerformAs(actor *screenplay.Actor) error {
	if r.err != nil {
		return r.err
	}

	b, err := As(actor)
	if err != nil {
		return err
	}
	browserContext, err := b.CurrentContext()
	if err != nil {
		return err
	}

	resp, err := browserContext.Request().Fetch(r.url, r.fetchOptions())
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.url, err)
	}
	defer resp.Dispose()

	body, err := resp.Body()
	if err != nil {
		return fmt.Errorf("reading response body of %s %s: %w", r.method, r.url, err)
	}

	snapshot := &APIResponse{
		Status:     resp.Status(),
		StatusText: resp.StatusText(),
		OK:         resp.Ok(),
		URL:        resp.URL(),
		Headers:    lowerCaseKeys(resp.Headers()),
		Body:       body,
	}
	b.setLastAPIResponse(snapshot)

	actor.Attach(screenplay.Evidence{
		Title:       fmt.Sprintf("API %s %s -> %d", r.method, r.url, snapshot.Status),
		ContentType: snapshot.Header("Content-Type"),
		Content:     body,
	})
	return nil
}

func lowerCaseKeys(headers map[string]string) map[string]string {
	result := make(map[string]string, len(headers))
	for k, v := range headers {
		result[strings.ToLower(k)] = v
	}
	return result
}

// LastAPIResponseQuestions query the response of the actor's last API request.
type LastAPIResponseQuestions struct{}

func LastAPIResponse() LastAPIResponseQuestions {
	return LastAPIResponseQuestions{}
}

func lastResponseQuestion[T any](subject string, fn func(r *APIResponse) (T, error)) screenplay.Question[T] {
	return abilityQuestion(subject, func(b *BrowseTheWeb) (T, error) {
		resp, err := b.LastAPIResponse()
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(resp)
	})
}

func (LastAPIResponseQuestions) StatusCode() screenplay.Question[int] {
	return lastResponseQuestion("the API response status code", func(r *APIResponse) (int, error) {
		return r.Status, nil
	})
}

func (LastAPIResponseQuestions) OK() screenplay.Question[bool] {
	return lastResponseQuestion("the API response success", func(r *APIResponse) (bool, error) {
		return r.OK, nil
	})
}

func (LastAPIResponseQuestions) StatusText() screenplay.Question[string] {
	return lastResponseQuestion("the API response status text", func(r *APIResponse) (string, error) {
		return r.StatusText, nil
	})
}

func (LastAPIResponseQuestions) Body() screenplay.Question[string] {
	return lastResponseQuestion("the API response body", func(r *APIResponse) (string, error) {
		return string(r.Body), nil
	})
}

// JSONBody decodes a JSON object body. Numbers are float64.
func (LastAPIResponseQuestions) JSONBody() screenplay.Question[map[string]any] {
	return lastResponseQuestion("the API response JSON body", func(r *APIResponse) (map[string]any, error) {
		var v map[string]any
		err := r.DecodeJSON(&v)
		return v, err
	})
}

// JSONBodyAsList decodes a JSON array of objects.
func (LastAPIResponseQuestions) JSONBodyAsList() screenplay.Question[[]map[string]any] {
	return lastResponseQuestion("the API response JSON list", func(r *APIResponse) ([]map[string]any, error) {
		var v []map[string]any
		err := r.DecodeJSON(&v)
		return v, err
	})
}

func (LastAPIResponseQuestions) Header(name string) screenplay.Question[string] {
	return lastResponseQuestion("the API response header "+name, func(r *APIResponse) (string, error) {
		return r.Header(name), nil
	})
}

func (LastAPIResponseQuestions) Headers() screenplay.Question[map[string]string] {
	return lastResponseQuestion("the API response headers", func(r *APIResponse) (map[string]string, error) {
		return r.Headers, nil
	})
}

func (LastAPIResponseQuestions) URL() screenplay.Question[string] {
	return lastResponseQuestion("the API response URL", func(r *APIResponse) (string, error) {
		return r.URL, nil
	})
}
