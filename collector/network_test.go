package collector_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay/collector"
)

func TestNetworkCollector_RequestLifecycle(t *testing.T) {
	c := collector.NewNetworkCollector(10)
	defer c.Close()

	events := collector.Collect(t, c.Subscribe)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.Must(uuid.NewV7())

	c.RequestStarted(id, "GET", "http://localhost/api/posts", "fetch", start)

	pending, found := c.Lookup(id)
	require.True(t, found)
	assert.False(t, pending.Completed())
	assert.Equal(t, 0, pending.Status)
	assert.Zero(t, pending.Duration())

	c.ResponseReceived(id, 200, "OK", start.Add(10*time.Millisecond))
	c.RequestFinished(id, start.Add(25*time.Millisecond))

	finished := events.Wait(1)[0]
	assert.Equal(t, id, finished.ID)
	assert.Equal(t, 200, finished.Status)
	assert.True(t, finished.Completed())
	assert.False(t, finished.Failed())
	assert.Equal(t, 25*time.Millisecond, finished.Duration())
}

func TestNetworkCollector_Queries(t *testing.T) {
	c := collector.NewNetworkCollector(10)
	defer c.Close()

	now := time.Now()
	add := func(method, url string, status int, failure string) {
		id := uuid.Must(uuid.NewV4())
		c.RequestStarted(id, method, url, "fetch", now)
		if failure != "" {
			c.RequestFailed(id, failure, now)
			return
		}
		c.ResponseReceived(id, status, "", now)
		c.RequestFinished(id, now)
	}

	add("GET", "http://localhost/", 200, "")
	add("POST", "http://localhost/api/posts", 201, "")
	add("GET", "http://localhost/status/404", 404, "")
	add("GET", "http://localhost/status/500", 500, "")
	add("GET", "http://unreachable.invalid/", 0, "net::ERR_NAME_NOT_RESOLVED")

	assert.Equal(t, 5, c.Count())
	assert.Len(t, c.WithMethod("get"), 4)
	assert.Len(t, c.WithMethod("POST"), 1)
	assert.Len(t, c.ToURLContaining("/status/"), 2)
	assert.Len(t, c.Failed(), 3)
	assert.Len(t, c.ClientErrors(), 1)
	assert.Len(t, c.ServerErrors(), 1)
	assert.Equal(t, "http://localhost/", c.Requests()[0].URL)

	c.Clear()
	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.Requests())
}

func TestNetworkCollector_UnknownRequestIsIgnored(t *testing.T) {
	c := collector.NewNetworkCollector(1)
	defer c.Close()

	c.ResponseReceived(uuid.Must(uuid.NewV4()), 200, "OK", time.Now())
	c.RequestFinished(uuid.Must(uuid.NewV4()), time.Now())

	assert.Equal(t, 0, c.Count())
}
