package mac

// fakeConnector is a controllable Connector for tests: the tick is set
// explicitly, sends can be scripted to succeed or fail, and every accepted
// send and every ack callback is recorded for assertions.
type fakeConnector struct {
	tick uint32

	sendResult bool
	sent       [][]byte
	sentCR     []uint8

	acked []uint16
}

func (c *fakeConnector) CurrentTickMs() uint32 {
	return c.tick
}

func (c *fakeConnector) SendFrame(codingRate uint8, data []byte) bool {
	cp := make([]byte, len(data))
	copy(cp, data)
	c.sent = append(c.sent, cp)
	c.sentCR = append(c.sentCR, codingRate)
	return c.sendResult
}

func (c *fakeConnector) AckReceived(id uint16) {
	c.acked = append(c.acked, id)
}

func newFakeConnector(tick uint32) *fakeConnector {
	return &fakeConnector{tick: tick, sendResult: true}
}
