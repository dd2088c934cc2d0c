// Package pool implements the fixed-capacity, first-fit block allocator
// that owns every queued frame's raw wire bytes, and the TxFrame descriptor
// view over an allocation. Queued frames hold slices into the pool's single
// backing array; the pool is the sole owner of the bytes.
package pool

import "github.com/scottyob/FANET/pkg/link"

// ForwardBitMask is the header byte's forward bit (bit 6), the one header
// bit a queued frame is allowed to mutate in place.
const ForwardBitMask = 0x40

// TxFrame is a live allocation inside a Pool: a byte slice aliasing the
// pool's backing array, plus the scheduling metadata the MAC engine attaches
// to every queued frame.
type TxFrame struct {
	data []byte

	NextTxMs uint32
	NumTx    uint8
	Self     bool
	RSSI     int8
	ID       uint16

	blockStart int
	blocksUsed int
	slot       int
}

// View wraps raw bytes (typically just received off the radio) as a
// read-only TxFrame, so the same header/address/payload accessors and
// Equal comparison used for pool-owned frames can be applied to them
// without copying into the pool. A view frame has no pool slot: passing it
// to Pool.Remove is a safe no-op.
func View(data []byte) *TxFrame {
	return &TxFrame{data: data, slot: -1}
}

// Data returns the frame's raw wire bytes.
func (f *TxFrame) Data() []byte {
	return f.data
}

// Len returns the length of the frame's raw wire bytes.
func (f *TxFrame) Len() int {
	return len(f.data)
}

// Header returns the frame's common header byte.
func (f *TxFrame) Header() link.Header {
	h, _ := link.ReadHeader(link.NewReader(f.data[:1]))
	return h
}

// Type returns the frame's message type.
func (f *TxFrame) Type() link.MessageType {
	return f.Header().Type
}

// IsTrackingType reports whether the frame carries a Tracking or
// GroundTracking payload; these get the self-originated fast path in
// poll_tx.
func (f *TxFrame) IsTrackingType() bool {
	t := f.Type()
	return t == link.Tracking || t == link.GroundTracking
}

// Forward reports whether the frame's forward bit is set.
func (f *TxFrame) Forward() bool {
	return f.data[0]&ForwardBitMask != 0
}

// SetForward mutates the frame's forward bit in place, without touching any
// other header byte or reallocating.
func (f *TxFrame) SetForward(v bool) {
	if v {
		f.data[0] |= ForwardBitMask
	} else {
		f.data[0] &^= ForwardBitMask
	}
}

// Envelope re-parses the frame's envelope (header, addresses, extended
// header, signature). Pool.Add does not validate the bytes it copies, so an
// error is possible; the MAC engine only adds bytes it encoded itself or
// whose envelope it has already parsed successfully.
func (f *TxFrame) Envelope() (link.Envelope, error) {
	return link.ParseEnvelope(link.NewReader(f.data))
}

// Source returns the frame's source address.
func (f *TxFrame) Source() link.Address {
	env, _ := f.Envelope()
	return env.Source
}

// Destination returns the frame's destination address, or the zero address
// if the frame is not unicast.
func (f *TxFrame) Destination() link.Address {
	env, _ := f.Envelope()
	return env.Destination
}

// AckType returns the frame's requested ack type, or AckNone if the frame
// has no extended header.
func (f *TxFrame) AckType() link.AckType {
	env, _ := f.Envelope()
	if !env.Header.Extended {
		return link.AckNone
	}
	return env.ExtendedHeader.AckType
}

// Payload returns the frame's payload bytes, following the envelope.
func (f *TxFrame) Payload() []byte {
	env, err := f.Envelope()
	if err != nil {
		return nil
	}
	return f.data[env.Size():]
}

// Equal reports whether f and other carry the same (source, destination,
// type, length, payload bytes) — the comparison the MAC engine's HandleRx
// duplicate detection uses. RSSI and scheduling metadata are deliberately excluded.
func (f *TxFrame) Equal(other *TxFrame) bool {
	if f.Len() != other.Len() {
		return false
	}
	if f.Type() != other.Type() {
		return false
	}
	if f.Source() != other.Source() {
		return false
	}
	if f.Destination() != other.Destination() {
		return false
	}
	fp, op := f.Payload(), other.Payload()
	if len(fp) != len(op) {
		return false
	}
	for i := range fp {
		if fp[i] != op[i] {
			return false
		}
	}
	return true
}
