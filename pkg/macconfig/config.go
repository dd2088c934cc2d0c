// Package macconfig holds the tunable constants that parameterize the MAC
// engine's scheduling behavior. Keeping them in one struct, rather than
// package-level constants, lets a caller run several engines (e.g. the
// gateway bridge) with different tuning without a build-time switch.
package macconfig

// Config is the MAC engine's tuning knobs. All time fields are
// milliseconds unless noted.
type Config struct {
	// TxMinPreambleHeaderTime is the fixed overhead charged to
	// csma_next_tx after every transmission, before the per-byte charge.
	TxMinPreambleHeaderTime uint32
	// TxTimePerByte is the per-byte charge added to csma_next_tx after
	// every transmission.
	TxTimePerByte uint32
	// TxAckTimeout is the deadline given to a frame awaiting ACK once its
	// retry budget is exhausted.
	TxAckTimeout uint32
	// TxRetransmissionTime scales the backoff applied between ACK retries:
	// the n-th retry waits TxRetransmissionTime * (Retrys - numTx).
	TxRetransmissionTime uint32
	// TxRetransmissionRetrys is the number of transmission attempts given
	// to a self-originated, ACK-requested unicast frame.
	TxRetransmissionRetrys uint8

	// BackoffExpMin and BackoffExpMax bound the carrier-sense exponential
	// backoff exponent.
	BackoffExpMin uint8
	BackoffExpMax uint8

	// ForwardMaxRSSIDbm is the loudest a received frame may be and still
	// be eligible for forwarding — forwarding exists to extend range, not
	// to relay things we're already hearing clearly.
	ForwardMaxRSSIDbm int16
	// ForwardMinDBBoost is how much stronger a duplicate reception must be
	// over our queued relay copy's RSSI before we defer to the original.
	ForwardMinDBBoost int16
	// ForwardDelayMin/Max bound the randomized relay transmission delay.
	ForwardDelayMin uint32
	ForwardDelayMax uint32

	// MaxNeighborsForTracking2Hop is the neighbor-count ceiling below which
	// self-originated tracking frames request two-hop forwarding.
	MaxNeighborsForTracking2Hop int

	// Coding48Threshold is the neighbor count below which the stronger,
	// slower 4/8 coding rate is used instead of 4/5.
	Coding48Threshold int

	// DefaultTxBackoff is the poll_tx revisit delay returned when the pool
	// has nothing ready to send, or when the airtime ceiling blocks
	// transmission.
	DefaultTxBackoff uint32
}

// Default returns the constants from the original engine: 15ms/2ms-per-byte
// preamble accounting, a 1s ACK timeout and retransmission step, 3 retries,
// backoff exponent in [7,12], -90dBm forward ceiling with a 20dB
// duplicate-RSSI boost, [100,300]ms forward delay, a 5-neighbor two-hop
// threshold, an 8-neighbor coding-rate threshold, and a 1s default backoff.
func Default() Config {
	return Config{
		TxMinPreambleHeaderTime:     15,
		TxTimePerByte:               2,
		TxAckTimeout:                1000,
		TxRetransmissionTime:        1000,
		TxRetransmissionRetrys:      3,
		BackoffExpMin:               7,
		BackoffExpMax:               12,
		ForwardMaxRSSIDbm:           -90,
		ForwardMinDBBoost:           20,
		ForwardDelayMin:             100,
		ForwardDelayMax:             300,
		MaxNeighborsForTracking2Hop: 5,
		Coding48Threshold:           8,
		DefaultTxBackoff:            1000,
	}
}
