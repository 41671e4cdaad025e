package collector_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Subscriptions and notifier dispatchers must not outlive their tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreCurrent())
}
