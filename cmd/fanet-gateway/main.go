// Command fanet-gateway runs a ground-station bridge: it drives one mac.Engine
// per configured radio and relays gateway-flagged traffic to a collector over
// QUIC. The radio connector here is a stand-in; production use replaces it
// with a real LoRa driver implementing mac.Connector.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/scottyob/FANET/pkg/gateway"
	"github.com/scottyob/FANET/pkg/logger"
	"github.com/scottyob/FANET/pkg/mac"
)

// consoleConnector is a placeholder mac.Connector that never receives real
// radio traffic. It exists so the command runs standalone for inspection;
// wiring a real radio means replacing this with something backed by an
// actual LoRa module.
type consoleConnector struct {
	log   logger.Logger
	start time.Time
}

func (c *consoleConnector) CurrentTickMs() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

func (c *consoleConnector) SendFrame(codingRate uint8, data []byte) bool {
	c.log.Debug("gateway: tx %d bytes at cr %d", len(data), codingRate)
	return true
}

func (c *consoleConnector) AckReceived(id uint16) {
	c.log.Info("gateway: ack received for packet %d", id)
}

func main() {
	collector := flag.String("collector", "localhost:9443", "collector host:port")
	pollInterval := flag.Duration("poll", 250*time.Millisecond, "PollTx poll interval")
	flag.Parse()

	log := logger.NewDefault(logger.LevelInfo)

	bridge, err := gateway.NewBridge(gateway.Config{CollectorAddress: *collector}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fanet-gateway: %v\n", err)
		os.Exit(1)
	}
	defer bridge.Close()

	connector := &consoleConnector{log: log, start: time.Now()}
	engine := mac.New(connector, log)
	bridge.AddEngine(engine)

	log.Info("fanet-gateway: uplinking to %s", *collector)

	ticker := time.NewTicker(*pollInterval)
	defer ticker.Stop()
	for range ticker.C {
		engine.PollTx()
	}
}
