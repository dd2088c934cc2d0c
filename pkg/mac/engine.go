// Package mac implements the FANET MAC-layer scheduler: the transmit
// queue, frame-priority scheduler, retransmit/ACK state machine, carrier
// backoff, airtime accounting, duplicate/relay detection, and neighbor
// tracking that sit on top of the wire codec in pkg/link and pkg/app.
//
// The engine is single-threaded cooperative: SendPacket, HandleRx, and
// PollTx are the only entry points, none of them block beyond their own
// bookkeeping, and none spawn goroutines. The caller owns the clock (via
// Connector.CurrentTickMs) and is responsible for calling PollTx at or
// before the deadline it returns.
package mac

import (
	"github.com/scottyob/FANET/pkg/airtime"
	"github.com/scottyob/FANET/pkg/app"
	"github.com/scottyob/FANET/pkg/logger"
	"github.com/scottyob/FANET/pkg/link"
	"github.com/scottyob/FANET/pkg/macconfig"
	"github.com/scottyob/FANET/pkg/neighbor"
	"github.com/scottyob/FANET/pkg/pool"
)

// priority values used by pickNext; lower is more urgent.
const (
	prioritySelf     = 1
	priorityTracking = 2
	priorityAck      = 3
	priorityOther    = 4
)

// Engine is one MAC scheduler instance. The caller owns one Engine per
// radio; there is no process-wide state.
type Engine struct {
	connector Connector
	config    macconfig.Config
	logger    logger.Logger

	ownAddress link.Address
	// DoForward controls whether the engine ever relays frames carrying the
	// forward bit. Defaults to true.
	DoForward bool

	carrierBackoffExp uint8
	csmaNextTxMs      uint32

	airtimeEst *airtime.Estimator
	neighbors  *neighbor.Table
	txPool     *pool.Pool
	rng        xorshift

	stats Stats
}

// New creates an Engine with the default configuration, a default-sized
// pool (50 blocks x 16 bytes) and neighbor table (capacity 30), and own
// address 0x000001. log may be nil.
func New(connector Connector, log logger.Logger) *Engine {
	return NewWithConfig(connector, macconfig.Default(), log)
}

// NewWithConfig creates an Engine with an explicit tuning configuration.
func NewWithConfig(connector Connector, config macconfig.Config, log logger.Logger) *Engine {
	e := &Engine{
		connector:  connector,
		config:     config,
		logger:     logger.OrNoOp(log),
		ownAddress: link.Address{Manufacturer: 0x00, Unique: 0x0001},
		DoForward:  true,
		airtimeEst: airtime.NewDefault(),
		neighbors:  neighbor.NewDefault(),
		txPool:     pool.NewDefault(),
		rng:        newXorshift(connector.CurrentTickMs()),
	}
	e.carrierBackoffExp = config.BackoffExpMin
	return e
}

// OwnAddress returns the engine's own address.
func (e *Engine) OwnAddress() link.Address {
	return e.ownAddress
}

// SetOwnAddress sets the engine's own address. Reserved addresses
// (broadcast 0x000000, unassigned 0xFFFFFF) are rejected silently; the
// return value reports whether the address was applied.
func (e *Engine) SetOwnAddress(addr link.Address) bool {
	if addr.Reserved() {
		return false
	}
	e.ownAddress = addr
	return true
}

// Pool exposes the underlying tx pool, mainly for test inspection.
func (e *Engine) Pool() *pool.Pool {
	return e.txPool
}

// NeighborTable exposes the underlying neighbor table, mainly for test
// inspection.
func (e *Engine) NeighborTable() *neighbor.Table {
	return e.neighbors
}

// Stats returns a snapshot of the engine's aggregate counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.NeighborTableSize = uint32(e.neighbors.Len())
	return s
}

// timeReached reports whether tick is at or after deadline, using
// wrap-safe 32-bit arithmetic: ticks are free to wrap around 2^32 and the
// comparison must keep working across the wrap.
func timeReached(tick, deadline uint32) bool {
	return int32(tick-deadline) >= 0
}

// SendPacket queues pkt for transmission. When strict is true (the
// default posture for application-originated sends), the packet's source
// is overwritten with the engine's own address, and a non-NONE ack
// request forces forward=true with a full retry budget. id is an
// application-assigned tag surfaced later via Connector.AckReceived; it is
// opaque to the engine. Returns false if the pool is full.
func (e *Engine) SendPacket(pkt app.Packet, id uint16, strict bool) bool {
	var numTx uint8
	if strict {
		pkt.Envelope.Source = e.ownAddress
		if pkt.Envelope.ExtendedHeader.AckType != link.AckNone {
			pkt.Envelope.Header.Forward = true
			numTx = e.config.TxRetransmissionRetrys
		} else {
			numTx = 0
		}
	}

	buf := make([]byte, link.MaxEnvelopeSize+maxPayloadSize(pkt.Payload))
	n, err := pkt.EncodeTo(buf)
	if err != nil {
		e.logger.Warn("mac: failed to encode outgoing packet: %v", err)
		return false
	}

	frame, ok := e.txPool.Add(buf[:n])
	if !ok {
		e.logger.Debug("mac: send_packet dropped, pool full")
		return false
	}
	frame.Self = true
	frame.ID = id
	frame.NextTxMs = e.connector.CurrentTickMs()
	frame.NumTx = numTx
	return true
}

func maxPayloadSize(p app.Payload) int {
	switch p.Type {
	case link.Name:
		return app.MaxNameBytes
	case link.Message:
		return app.MaxMessageBytes + 1
	default:
		return 32
	}
}

// HandleRx processes a frame just received off the radio at the given
// RSSI, updating the neighbor table, generating or consuming ACKs, and
// queuing relay copies as forward admission allows. It returns the
// frame's message type even when the payload itself could not be decoded.
func (e *Engine) HandleRx(rssiDbm int16, data []byte) link.MessageType {
	now := e.connector.CurrentTickMs()
	view := pool.View(data)
	e.stats.Rx++

	e.neighbors.RemoveOutdated(now)

	env, envErr := link.ParseEnvelope(link.NewReader(data))
	if envErr != nil {
		return 0
	}

	if env.Source == e.ownAddress {
		e.stats.RxFromUsDrop++
		return env.Header.Type
	}

	e.neighbors.AddOrUpdate(env.Source, now)
	e.stats.Processed++

	if dup := e.findDuplicate(view); dup != nil {
		if int32(rssiDbm)-int32(dup.RSSI) > int32(e.config.ForwardMinDBBoost) {
			e.txPool.Remove(dup)
		} else {
			dup.NextTxMs = now + e.rng.intRange(e.config.ForwardDelayMin, e.config.ForwardDelayMax)
		}
		return env.Header.Type
	}

	destinedToUsOrBroadcast := !env.ExtendedHeader.Unicast || env.Destination == e.ownAddress

	if destinedToUsOrBroadcast {
		if env.Header.Type == link.Ack {
			if id := e.removeDeleteAckedFrame(env.Source); id != 0 {
				e.connector.AckReceived(id)
			}
		} else if env.Header.Extended && env.ExtendedHeader.AckType != link.AckNone {
			e.enqueueAck(env, now)
		}
	}

	e.admitForward(env, view, rssiDbm, now)

	return env.Header.Type
}

func (e *Engine) findDuplicate(view *pool.TxFrame) *pool.TxFrame {
	var found *pool.TxFrame
	e.txPool.Each(func(f *pool.TxFrame) bool {
		if f.Equal(view) {
			found = f
			return false
		}
		return true
	})
	return found
}

// enqueueAck builds and queues the single- or two-hop acknowledgment for a
// received frame that requested one: source is our own address,
// destination is the frame's source, and forward is set only for a
// two-hop request arriving with the forward bit already cleared (i.e.
// already relayed once).
func (e *Engine) enqueueAck(env link.Envelope, now uint32) {
	ack := app.Packet{
		Envelope: link.Envelope{
			Header: link.Header{
				Type:    link.Ack,
				Forward: env.ExtendedHeader.AckType == link.AckTwohop && !env.Header.Forward,
				Extended: true,
			},
			Source: e.ownAddress,
			ExtendedHeader: link.ExtendedHeader{
				Unicast: true,
			},
			Destination: env.Source,
		},
	}

	buf := make([]byte, link.MaxEnvelopeSize)
	n, err := ack.EncodeTo(buf)
	if err != nil {
		e.logger.Warn("mac: failed to encode ack: %v", err)
		return
	}
	if frame, ok := e.txPool.Add(buf[:n]); ok {
		frame.NextTxMs = now
		e.stats.TxAck++
	}
}

// admitForward decides whether a received frame should be relayed, and
// queues the relay copy if so.
func (e *Engine) admitForward(env link.Envelope, view *pool.TxFrame, rssiDbm int16, now uint32) {
	if !e.DoForward || !env.Header.Forward {
		return
	}
	if rssiDbm > int16(e.config.ForwardMaxRSSIDbm) {
		e.stats.FwdDropRSSI++
		return
	}

	broadcastOrKnown := !env.ExtendedHeader.Unicast
	if !broadcastOrKnown {
		broadcastOrKnown = e.neighbors.LastSeen(env.Destination) != 0
	}
	if !broadcastOrKnown {
		e.stats.FwdDropUnreach++
		return
	}

	if e.airtimeEst.Get(now) >= 500 {
		e.stats.FwdDropAirtime++
		return
	}

	var numTx uint8
	if env.Header.Extended && env.ExtendedHeader.AckType != link.AckNone {
		numTx = 1
	}

	frame, ok := e.txPool.Add(view.Data())
	if !ok {
		return
	}
	frame.RSSI = int8(rssiDbm)
	frame.NumTx = numTx
	frame.NextTxMs = now + e.rng.intRange(e.config.ForwardDelayMin, e.config.ForwardDelayMax)
	frame.SetForward(false)
	e.stats.Forwarded++
}

// removeDeleteAckedFrame removes every pending frame addressed to source
// that is awaiting an ACK, returning the application id of the last one
// removed (0 if none matched).
func (e *Engine) removeDeleteAckedFrame(source link.Address) uint16 {
	var id uint16
	for _, f := range e.txPool.Frames() {
		if f.Destination() == source && f.AckType() != link.AckNone {
			id = f.ID
			e.txPool.Remove(f)
		}
	}
	return id
}

// PollTx drives the transmit side: it sends at most one frame per call and
// returns the tick at which the caller should invoke PollTx again.
func (e *Engine) PollTx() uint32 {
	now := e.connector.CurrentTickMs()
	if !timeReached(now, e.csmaNextTxMs) {
		return e.csmaNextTxMs
	}

	frame := e.pickNext(now)
	if frame == nil {
		return now + e.config.DefaultTxBackoff
	}

	if frame.Self && frame.IsTrackingType() {
		frame.SetForward(e.neighbors.Len() < e.config.MaxNeighborsForTracking2Hop)
		_, lengthBytes := e.sendFrame(frame, now)
		e.txPool.Remove(frame)
		e.carrierBackoffExp = e.config.BackoffExpMin
		e.csmaNextTxMs = now + e.config.TxMinPreambleHeaderTime + uint32(lengthBytes)*e.config.TxTimePerByte
		return e.csmaNextTxMs
	}

	if e.airtimeEst.Get(now) >= 900 {
		return now + e.config.DefaultTxBackoff
	}

	if frame.AckType() != link.AckNone && frame.NumTx == 0 {
		e.txPool.Remove(frame)
		return e.PollTx()
	}

	destination := frame.Destination()
	if !frame.Forward() && destination != link.Broadcast && e.neighbors.LastSeen(destination) == 0 {
		frame.SetForward(true)
	}

	sent, lengthBytes := e.sendFrame(frame, now)
	now = e.connector.CurrentTickMs()

	if sent {
		e.stats.TxSuccess++
		if frame.AckType() == link.AckNone || frame.Source() != e.ownAddress {
			e.txPool.Remove(frame)
		} else {
			frame.NumTx--
			if frame.NumTx > 0 {
				frame.NextTxMs = now + e.config.TxRetransmissionTime*uint32(e.config.TxRetransmissionRetrys-frame.NumTx)
			} else {
				frame.NextTxMs = now + e.config.TxAckTimeout
			}
		}
		e.carrierBackoffExp = e.config.BackoffExpMin
		e.csmaNextTxMs = now + e.config.TxMinPreambleHeaderTime + uint32(lengthBytes)*e.config.TxTimePerByte
		return e.csmaNextTxMs
	}

	e.stats.TxFailed++
	if e.carrierBackoffExp < e.config.BackoffExpMax {
		e.carrierBackoffExp++
	}
	e.csmaNextTxMs = now + e.rng.intRange(1<<(e.config.BackoffExpMin-1), 1<<e.carrierBackoffExp)
	return e.csmaNextTxMs
}

// pickNext scans the pool for the highest-priority ready frame: self (1) >
// tracking (2) > ack (3) > everything else (4), ties broken by earliest
// NextTxMs. Frames whose NextTxMs is still in the future are skipped.
func (e *Engine) pickNext(now uint32) *pool.TxFrame {
	var best *pool.TxFrame
	bestPriority := priorityOther + 1
	var bestTime uint32

	e.txPool.Each(func(f *pool.TxFrame) bool {
		if !timeReached(now, f.NextTxMs) {
			return true
		}

		priority := priorityOther
		switch {
		case f.Self:
			priority = prioritySelf
		case f.IsTrackingType():
			priority = priorityTracking
		case f.Type() == link.Ack:
			priority = priorityAck
		}

		if priority < bestPriority || (priority == bestPriority && f.NextTxMs < bestTime) {
			best = f
			bestPriority = priority
			bestTime = f.NextTxMs
		}
		return true
	})

	return best
}

// sendFrame transmits frame via the connector at the coding rate implied
// by the current neighbor count, and accounts its airtime.
func (e *Engine) sendFrame(frame *pool.TxFrame, now uint32) (bool, int) {
	cr := 8
	if e.neighbors.Len() >= e.config.Coding48Threshold {
		cr = 5
	}
	lengthBytes := frame.Len()
	computed := airtime.LoraAirtime(lengthBytes, 7, 250, cr-4, airtime.LowDRAuto, true, 8)
	e.airtimeEst.Set(now, uint16(computed))
	return e.connector.SendFrame(uint8(cr), frame.Data()), lengthBytes
}
