package gateway

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/quic-go/quic-go"
)

// uplinkConn is the QUIC client half of the bridge: it dials the collector,
// opens a single stream, and silently redials on loss. Unlike the teacher's
// QUICChannel, which can run as either listener or dialer, the gateway only
// ever dials out, so there is no accept loop or server-mode branch.
type uplinkConn struct {
	address        string
	tlsConfig      *tls.Config
	dialTimeout    time.Duration
	reconnectDelay time.Duration

	mu         sync.RWMutex
	connection *quic.Conn
	stream     *quic.Stream

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newUplinkConn(address string, tlsConfig *tls.Config, dialTimeout, reconnectDelay time.Duration) *uplinkConn {
	ctx, cancel := context.WithCancel(context.Background())
	return &uplinkConn{
		address:        address,
		tlsConfig:      tlsConfig,
		dialTimeout:    dialTimeout,
		reconnectDelay: reconnectDelay,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// start dials the collector in the background and keeps redialing on
// failure or stream loss until Close is called.
func (u *uplinkConn) start() {
	u.wg.Add(1)
	go u.dialLoop()
}

func (u *uplinkConn) dialLoop() {
	defer u.wg.Done()

	for {
		select {
		case <-u.ctx.Done():
			return
		default:
		}

		if err := u.dial(); err != nil {
			select {
			case <-u.ctx.Done():
				return
			case <-time.After(u.reconnectDelay):
				continue
			}
		}

		// Block here until the connection drops, then redial.
		u.waitForLoss()

		select {
		case <-u.ctx.Done():
			return
		case <-time.After(u.reconnectDelay):
		}
	}
}

func (u *uplinkConn) dial() error {
	dialCtx, cancel := context.WithTimeout(u.ctx, u.dialTimeout)
	defer cancel()

	udpAddr, err := net.ResolveUDPAddr("udp", "0.0.0.0:0")
	if err != nil {
		return fmt.Errorf("gateway: resolve local address: %w", err)
	}
	udpConn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("gateway: open udp socket: %w", err)
	}

	remoteAddr, err := net.ResolveUDPAddr("udp", u.address)
	if err != nil {
		udpConn.Close()
		return fmt.Errorf("gateway: resolve collector address %s: %w", u.address, err)
	}

	conn, err := quic.Dial(dialCtx, udpConn, remoteAddr, u.tlsConfig, nil)
	if err != nil {
		udpConn.Close()
		return fmt.Errorf("gateway: dial collector %s: %w", u.address, err)
	}

	stream, err := conn.OpenStreamSync(dialCtx)
	if err != nil {
		conn.CloseWithError(0, "failed to open stream")
		return fmt.Errorf("gateway: open uplink stream: %w", err)
	}

	u.mu.Lock()
	u.connection = conn
	u.stream = stream
	u.mu.Unlock()

	return nil
}

func (u *uplinkConn) waitForLoss() {
	u.mu.RLock()
	conn := u.connection
	u.mu.RUnlock()
	if conn == nil {
		return
	}
	select {
	case <-conn.Context().Done():
	case <-u.ctx.Done():
	}
}

// writeFrame writes a length-prefixed frame to the current stream. It
// returns an error (without retrying) if no stream is currently connected;
// the caller's uplink loop is responsible for re-queuing or dropping.
func (u *uplinkConn) writeFrame(frame []byte) error {
	u.mu.RLock()
	stream := u.stream
	u.mu.RUnlock()
	if stream == nil {
		return fmt.Errorf("gateway: no uplink stream connected")
	}
	_, err := stream.Write(frame)
	return err
}

func (u *uplinkConn) close() {
	u.cancel()

	u.mu.Lock()
	if u.stream != nil {
		u.stream.Close()
		u.stream = nil
	}
	if u.connection != nil {
		u.connection.CloseWithError(0, "gateway closed")
		u.connection = nil
	}
	u.mu.Unlock()

	u.wg.Wait()
}
