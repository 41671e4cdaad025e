package collector

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"
)

// CapturedRequest is a browser network request observed on a page
type CapturedRequest struct {
	ID           uuid.UUID
	URL          string
	Method       string
	ResourceType string
	// Status is 0 until a response was received
	Status     int
	StatusText string
	StartedAt  time.Time
	FinishedAt time.Time
	// Failure is the transport error text, e.g. net::ERR_CONNECTION_REFUSED
	Failure string
}

func (r CapturedRequest) Identity() uuid.UUID {
	return r.ID
}

// Completed reports whether the request finished or failed
func (r CapturedRequest) Completed() bool {
	return !r.FinishedAt.IsZero()
}

// Duration is the time from start to finish, 0 while the request is pending
func (r CapturedRequest) Duration() time.Duration {
	if !r.Completed() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failed reports a transport failure or an HTTP error status
func (r CapturedRequest) Failed() bool {
	return r.Failure != "" || r.Status >= 400
}

func (r CapturedRequest) IsClientError() bool {
	return r.Status >= 400 && r.Status < 500
}

func (r CapturedRequest) IsServerError() bool {
	return r.Status >= 500 && r.Status < 600
}

// NetworkCollectorOptions configures a network collector
type NetworkCollectorOptions struct {
	// Capacity is the maximum number of requests kept, older requests are dropped
	Capacity uint64

	NotifierOptions NotifierOptions
}

// DefaultNetworkCollectorOptions returns default options for a network collector
func DefaultNetworkCollectorOptions() NetworkCollectorOptions {
	return NetworkCollectorOptions{
		Capacity:        1000,
		NotifierOptions: DefaultNotifierOptions(),
	}
}

// NetworkCollector buffers captured requests in arrival order.
// It is fed from browser event callbacks and safe for concurrent use.
type NetworkCollector struct {
	buffer   *LookupRingBuffer[CapturedRequest, uuid.UUID]
	notifier *Notifier[CapturedRequest]
}

// NewNetworkCollector creates a network collector with the given capacity
func NewNetworkCollector(capacity uint64) *NetworkCollector {
	options := DefaultNetworkCollectorOptions()
	options.Capacity = capacity
	return NewNetworkCollectorWithOptions(options)
}

func NewNetworkCollectorWithOptions(options NetworkCollectorOptions) *NetworkCollector {
	return &NetworkCollector{
		buffer:   NewLookupRingBuffer[CapturedRequest, uuid.UUID](options.Capacity),
		notifier: NewNotifierWithOptions[CapturedRequest](options.NotifierOptions),
	}
}

// RequestStarted records a new pending request
func (c *NetworkCollector) RequestStarted(id uuid.UUID, method, url, resourceType string, at time.Time) {
	c.buffer.Add(CapturedRequest{
		ID:           id,
		URL:          url,
		Method:       method,
		ResourceType: resourceType,
		StartedAt:    at,
	})
}

// ResponseReceived sets the response status of a request
func (c *NetworkCollector) ResponseReceived(id uuid.UUID, status int, statusText string, at time.Time) {
	c.buffer.Update(id, func(r CapturedRequest) CapturedRequest {
		r.Status = status
		r.StatusText = statusText
		return r
	})
}

// RequestFinished completes a request and notifies subscribers
func (c *NetworkCollector) RequestFinished(id uuid.UUID, at time.Time) {
	c.complete(id, func(r CapturedRequest) CapturedRequest {
		r.FinishedAt = at
		return r
	})
}

// RequestFailed completes a request with a transport failure and notifies subscribers
func (c *NetworkCollector) RequestFailed(id uuid.UUID, failure string, at time.Time) {
	c.complete(id, func(r CapturedRequest) CapturedRequest {
		r.Failure = failure
		r.FinishedAt = at
		return r
	})
}

func (c *NetworkCollector) complete(id uuid.UUID, fn func(CapturedRequest) CapturedRequest) {
	var completed CapturedRequest
	updated := c.buffer.Update(id, func(r CapturedRequest) CapturedRequest {
		completed = fn(r)
		return completed
	})
	if updated {
		c.notifier.Notify(completed)
	}
}

// Lookup returns a captured request by ID
func (c *NetworkCollector) Lookup(id uuid.UUID) (CapturedRequest, bool) {
	return c.buffer.Lookup(id)
}

// Requests returns all captured requests in arrival order
func (c *NetworkCollector) Requests() []CapturedRequest {
	return c.buffer.All()
}

func (c *NetworkCollector) Count() int {
	return int(c.buffer.Size())
}

// Filter returns the captured requests matching the predicate
func (c *NetworkCollector) Filter(predicate func(r CapturedRequest) bool) []CapturedRequest {
	return lo.Filter(c.Requests(), func(r CapturedRequest, _ int) bool {
		return predicate(r)
	})
}

// WithMethod returns requests with the given HTTP method, ignoring case
func (c *NetworkCollector) WithMethod(method string) []CapturedRequest {
	return c.Filter(func(r CapturedRequest) bool {
		return strings.EqualFold(r.Method, method)
	})
}

// ToURLContaining returns requests whose URL contains the fragment
func (c *NetworkCollector) ToURLContaining(fragment string) []CapturedRequest {
	return c.Filter(func(r CapturedRequest) bool {
		return strings.Contains(r.URL, fragment)
	})
}

func (c *NetworkCollector) Failed() []CapturedRequest {
	return c.Filter(CapturedRequest.Failed)
}

func (c *NetworkCollector) ClientErrors() []CapturedRequest {
	return c.Filter(CapturedRequest.IsClientError)
}

func (c *NetworkCollector) ServerErrors() []CapturedRequest {
	return c.Filter(CapturedRequest.IsServerError)
}

// Clear drops all captured requests
func (c *NetworkCollector) Clear() {
	c.buffer.Clear()
}

// Subscribe receives every request once it finished or failed
func (c *NetworkCollector) Subscribe(ctx context.Context) <-chan CapturedRequest {
	return c.notifier.Subscribe(ctx)
}

// Close ends all subscriptions
func (c *NetworkCollector) Close() {
	c.notifier.Close()
}
