package gateway

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain checks for leaked goroutines across this package's test suite.
// Every test here that needs a Bridge builds it through newTestBridge, which
// wires up the queue without starting the uplink dial/drain goroutines, so a
// clean exit is expected; no test in this package calls NewBridge.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
