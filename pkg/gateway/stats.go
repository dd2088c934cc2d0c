package gateway

import "github.com/scottyob/FANET/pkg/mac"

// Stats is a snapshot of the bridge's own counters plus every managed
// engine's mac.Stats, for external monitoring.
type Stats struct {
	Engines          []mac.Stats
	Queued           uint64 // uplink records accepted onto the queue
	Sent             uint64 // uplink records written to the collector stream
	DroppedQueueFull uint64 // uplink records discarded because the queue was full
}
