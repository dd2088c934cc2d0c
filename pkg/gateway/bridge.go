// Package gateway implements a ground-station bridge: it terminates one or
// more mac.Engine instances and relays any gateway-flagged Service traffic,
// plus ground-tracking distress calls, onward to a remote collector over a
// QUIC stream. Unlike the protocol core, this package is not embedded-safe:
// it allocates freely and uses goroutines and locks, the way the teacher's
// own non-embedded transport packages do.
package gateway

import (
	"crypto/tls"
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"

	"github.com/scottyob/FANET/pkg/app"
	"github.com/scottyob/FANET/pkg/logger"
	"github.com/scottyob/FANET/pkg/internal/queue"
	"github.com/scottyob/FANET/pkg/link"
	"github.com/scottyob/FANET/pkg/mac"
)

// priority bands for the uplink queue: distress traffic always drains ahead
// of routine telemetry.
const (
	priorityGroundDistress = 2
	priorityService        = 1
)

// Config configures a Bridge.
type Config struct {
	// CollectorAddress is the "host:port" the uplink QUIC connection dials.
	CollectorAddress string
	// TLSConfig is optional; a self-signed config is generated if nil.
	TLSConfig *tls.Config
	// ReconnectDelay is the pause between failed dial/stream attempts.
	// Defaults to 5s.
	ReconnectDelay time.Duration
	// DialTimeout bounds a single dial attempt. Defaults to 10s.
	DialTimeout time.Duration
	// MaxQueueLen caps the number of unsent uplink records buffered in
	// memory. 0 selects the default of 1024; a negative value means
	// unbounded.
	MaxQueueLen int
}

// Bridge aggregates N mac.Engine instances and uplinks gateway-flagged
// traffic to a collector.
type Bridge struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   *queue.PriorityQueue
	maxLen  int
	engines []*mac.Engine

	logger logger.Logger
	uplink *uplinkConn

	closed atomic.Bool
	wg     sync.WaitGroup

	queued           atomic.Uint64
	sent             atomic.Uint64
	droppedQueueFull atomic.Uint64
}

// NewBridge creates a Bridge and starts its uplink goroutines. Call
// Close to release them.
func NewBridge(config Config, log logger.Logger) (*Bridge, error) {
	if config.ReconnectDelay == 0 {
		config.ReconnectDelay = 5 * time.Second
	}
	if config.DialTimeout == 0 {
		config.DialTimeout = 10 * time.Second
	}
	if config.MaxQueueLen == 0 {
		config.MaxQueueLen = 1024
	}

	tlsConfig := config.TLSConfig
	if tlsConfig == nil {
		generated, err := selfSignedTLSConfig()
		if err != nil {
			return nil, err
		}
		tlsConfig = generated
	}

	b := &Bridge{
		queue:  queue.New(),
		maxLen: config.MaxQueueLen,
		logger: logger.OrNoOp(log),
		uplink: newUplinkConn(config.CollectorAddress, tlsConfig, config.DialTimeout, config.ReconnectDelay),
	}
	b.cond = sync.NewCond(&b.mu)

	b.uplink.start()
	b.wg.Add(1)
	go b.uplinkLoop()

	return b, nil
}

// AddEngine registers an engine with the bridge so its traffic is inspected
// for uplink-worthy payloads and its Stats are included in Bridge.Stats.
func (b *Bridge) AddEngine(e *mac.Engine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engines = append(b.engines, e)
}

// HandleRx forwards a just-received frame to e.HandleRx, and additionally
// inspects the decoded packet for gateway-flagged Service telemetry or
// ground-tracking distress calls, enqueuing an uplink record for either.
// tick is the caller's current connector tick, recorded on the record.
func (b *Bridge) HandleRx(e *mac.Engine, tick uint32, rssiDbm int16, data []byte) link.MessageType {
	msgType := e.HandleRx(rssiDbm, data)

	pkt, err := app.Parse(data)
	if err != nil {
		return msgType
	}

	switch {
	case pkt.Payload.Type == link.Service && pkt.Payload.Service.Gateway:
		b.enqueue(UplinkRecord{
			Source:  pkt.Envelope.Source,
			RSSI:    rssiDbm,
			Tick:    tick,
			Kind:    RecordService,
			Service: pkt.Payload.Service,
		}, priorityService)
	case pkt.Payload.Type == link.GroundTracking && pkt.Payload.GroundTracking.GroundType.Distress():
		b.enqueue(UplinkRecord{
			Source:         pkt.Envelope.Source,
			RSSI:           rssiDbm,
			Tick:           tick,
			Kind:           RecordGroundDistress,
			GroundTracking: pkt.Payload.GroundTracking,
		}, priorityGroundDistress)
	}

	return msgType
}

func (b *Bridge) enqueue(rec UplinkRecord, priority int) {
	b.mu.Lock()
	if b.maxLen > 0 && b.queue.Len() >= b.maxLen {
		b.mu.Unlock()
		b.droppedQueueFull.Add(1)
		b.logger.Debug("gateway: uplink queue full, dropping record from %v", rec.Source)
		return
	}
	b.queue.Push(rec, priority)
	b.mu.Unlock()

	b.queued.Add(1)
	b.cond.Signal()
}

func (b *Bridge) dequeue() (UplinkRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.queue.Len() == 0 {
		if b.closed.Load() {
			return UplinkRecord{}, false
		}
		b.cond.Wait()
	}
	return b.queue.Pop().(UplinkRecord), true
}

func (b *Bridge) uplinkLoop() {
	defer b.wg.Done()
	for {
		rec, ok := b.dequeue()
		if !ok {
			return
		}
		if err := b.sendRecord(rec); err != nil {
			b.logger.Warn("gateway: uplink send failed: %v", err)
			continue
		}
		b.sent.Add(1)
	}
}

func (b *Bridge) sendRecord(rec UplinkRecord) error {
	body, err := rec.Encode()
	if err != nil {
		return err
	}
	frame := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(frame[:4], uint32(len(body)))
	copy(frame[4:], body)
	return b.uplink.writeFrame(frame)
}

// Stats returns a snapshot of the bridge's uplink counters plus every
// registered engine's mac.Stats, in registration order.
func (b *Bridge) Stats() Stats {
	b.mu.Lock()
	engineStats := make([]mac.Stats, len(b.engines))
	for i, e := range b.engines {
		engineStats[i] = e.Stats()
	}
	b.mu.Unlock()

	return Stats{
		Engines:          engineStats,
		Queued:           b.queued.Load(),
		Sent:             b.sent.Load(),
		DroppedQueueFull: b.droppedQueueFull.Load(),
	}
}

// Close stops the uplink goroutine and the QUIC connection, waiting for
// both to finish.
func (b *Bridge) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}

	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()

	b.uplink.close()
	b.wg.Wait()
}
