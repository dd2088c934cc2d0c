package app

import "github.com/scottyob/FANET/pkg/link"

// Payload is a tagged union over the five decodable FANET payload variants.
// Only the field matching Type is meaningful; the others are zero values.
// Modeled as a plain struct rather than an interface so the MAC engine can
// inspect it without virtual dispatch, per the engine's design notes.
type Payload struct {
	Type           link.MessageType
	Tracking       TrackingPayload
	GroundTracking GroundTrackingPayload
	Name           NamePayload
	Message        MessagePayload
	Service        ServicePayload
}

// Encode dispatches to the variant matching p.Type. ACK, Landmarks, and
// RemoteConfig carry no payload bytes, so Encode is a no-op for them.
func (p Payload) Encode(w *link.Writer) error {
	switch p.Type {
	case link.Tracking:
		return p.Tracking.Encode(w)
	case link.GroundTracking:
		return p.GroundTracking.Encode(w)
	case link.Name:
		return p.Name.Encode(w)
	case link.Message:
		return p.Message.Encode(w)
	case link.Service:
		return p.Service.Encode(w)
	default:
		return nil
	}
}

// DecodePayload dispatches on typ and decodes the matching variant from r.
// Ack and the reserved Landmarks/RemoteConfig codes, along with any
// out-of-range type, decode to an empty Payload with no error: the header
// fields remain available to the caller even though no payload was parsed.
func DecodePayload(typ link.MessageType, r *link.Reader) (Payload, error) {
	p := Payload{Type: typ}
	var err error
	switch typ {
	case link.Tracking:
		p.Tracking, err = DecodeTrackingPayload(r)
	case link.GroundTracking:
		p.GroundTracking, err = DecodeGroundTrackingPayload(r)
	case link.Name:
		p.Name, err = DecodeNamePayload(r)
	case link.Message:
		p.Message, err = DecodeMessagePayload(r)
	case link.Service:
		p.Service, err = DecodeServicePayload(r)
	}
	return p, err
}

// Packet is a fully decoded FANET frame: the link-layer envelope plus its
// decoded payload.
type Packet struct {
	Envelope link.Envelope
	Payload  Payload
}

// Parse decodes a complete packet from raw bytes received off the radio.
// Unknown or reserved message types (Landmarks, RemoteConfig, and any
// out-of-range code) parse successfully with an empty Payload; only a
// truncated envelope or a truncated known payload is reported as an error.
func Parse(data []byte) (Packet, error) {
	r := link.NewReader(data)
	env, err := link.ParseEnvelope(r)
	if err != nil {
		return Packet{}, err
	}

	payload, err := DecodePayload(env.Header.Type, r)
	if err != nil {
		return Packet{Envelope: env, Payload: Payload{Type: env.Header.Type}}, err
	}

	return Packet{Envelope: env, Payload: payload}, nil
}

// EncodeTo writes the packet's envelope followed by its payload into buf,
// returning the number of bytes written. buf must be at least
// link.MaxEnvelopeSize bytes larger than the encoded payload length and
// must be zeroed, per link.Writer's contract.
func (p Packet) EncodeTo(buf []byte) (int, error) {
	w := link.NewWriter(buf)
	if err := p.Envelope.WriteTo(w); err != nil {
		return 0, err
	}
	if err := p.Payload.Encode(w); err != nil {
		return 0, err
	}
	return w.Len(), nil
}
