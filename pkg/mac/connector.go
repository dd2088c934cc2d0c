package mac

// Connector is the engine's outward-facing port: the PHY driver, clock
// source, and application ACK callback. The engine never holds a
// reference to anything else outside itself and this interface.
type Connector interface {
	// CurrentTickMs returns a monotonic tick count. Wrap is tolerated.
	CurrentTickMs() uint32
	// SendFrame hands bytes to the PHY at the given LoRa coding rate (8 for
	// 4/8, 5 for 4/5). It returns true if the PHY accepted the frame for
	// transmission, false if the channel was busy.
	SendFrame(codingRate uint8, data []byte) bool
	// AckReceived notifies the application that a previously sent packet
	// carrying this application-assigned id was acknowledged.
	AckReceived(id uint16)
}
