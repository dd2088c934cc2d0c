package link

// MessageType is the 6-bit type field of the common header.
type MessageType uint8

const (
	Ack            MessageType = 0
	Tracking       MessageType = 1
	Name           MessageType = 2
	Message        MessageType = 3
	Service        MessageType = 4
	Landmarks      MessageType = 5 // reserved, pass-through only
	RemoteConfig   MessageType = 6 // reserved, pass-through only
	GroundTracking MessageType = 7
)

// String returns the FANET name of the message type, or "UNKNOWN" for any
// value outside the defined range (the 6-bit field can carry 8..63 on the
// wire, but no message type is assigned to those codes).
func (t MessageType) String() string {
	switch t {
	case Ack:
		return "ACK"
	case Tracking:
		return "TRACKING"
	case Name:
		return "NAME"
	case Message:
		return "MESSAGE"
	case Service:
		return "SERVICE"
	case Landmarks:
		return "LANDMARKS"
	case RemoteConfig:
		return "REMOTE_CONFIG"
	case GroundTracking:
		return "GROUND_TRACKING"
	default:
		return "UNKNOWN"
	}
}

// Known reports whether the engine decodes a payload for t. Landmarks and
// RemoteConfig are reserved type codes that parse as header-only frames.
func (t MessageType) Known() bool {
	switch t {
	case Ack, Tracking, Name, Message, Service, GroundTracking:
		return true
	default:
		return false
	}
}

// Header is the mandatory 1-byte common header: extended(1) | forward(1) | type(6),
// most significant bit first.
type Header struct {
	Extended bool
	Forward  bool
	Type     MessageType
}

// WriteTo packs the header into a single byte.
func (h Header) WriteTo(w *Writer) error {
	if err := w.WriteBool(h.Extended); err != nil {
		return err
	}
	if err := w.WriteBool(h.Forward); err != nil {
		return err
	}
	return w.WriteBits(uint64(h.Type), 6)
}

// ReadHeader unpacks the common header byte from r.
func ReadHeader(r *Reader) (Header, error) {
	extended, err := r.ReadBool()
	if err != nil {
		return Header{}, err
	}
	forward, err := r.ReadBool()
	if err != nil {
		return Header{}, err
	}
	typ, err := r.ReadBits(6)
	if err != nil {
		return Header{}, err
	}
	return Header{Extended: extended, Forward: forward, Type: MessageType(typ)}, nil
}
