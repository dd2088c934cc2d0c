package app

import "github.com/scottyob/FANET/pkg/link"

// MaxMessageBytes bounds the message body, matching the original's 244-byte
// static bound (245-byte name budget minus the 1-byte subheader).
const MaxMessageBytes = 244

// MessagePayload is a short text message with an application-defined
// subheader byte (MessageType Message).
type MessagePayload struct {
	SubHeader uint8
	Message   []byte
}

// Encode writes the subheader followed by the raw message bytes.
func (p MessagePayload) Encode(w *link.Writer) error {
	if err := w.WriteByte(p.SubHeader); err != nil {
		return err
	}
	for _, b := range p.Message {
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMessagePayload reads the subheader byte, then whatever bytes remain
// in r, up to MaxMessageBytes.
func DecodeMessagePayload(r *link.Reader) (MessagePayload, error) {
	var p MessagePayload
	subHeader, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	p.SubHeader = subHeader

	for len(p.Message) < MaxMessageBytes && r.Remaining() >= 8 {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		p.Message = append(p.Message, b)
	}
	return p, nil
}
