package app

import "github.com/scottyob/FANET/pkg/link"

// MaxNameBytes is the largest Name payload this codec will decode, matching
// the original's 245-byte static bound (10 bytes below the 255-byte radio
// payload limit).
const MaxNameBytes = 245

// NamePayload is a free-text node name (MessageType Name). Bytes are
// interpreted as text by the application but are not validated here.
type NamePayload struct {
	Name []byte
}

// Encode writes the raw name bytes with no length prefix; the payload's
// length is implicit in the frame's total length.
func (p NamePayload) Encode(w *link.Writer) error {
	for _, b := range p.Name {
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// DecodeNamePayload reads whatever bytes remain in r, up to MaxNameBytes.
func DecodeNamePayload(r *link.Reader) (NamePayload, error) {
	var p NamePayload
	for len(p.Name) < MaxNameBytes && r.Remaining() >= 8 {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		p.Name = append(p.Name, b)
	}
	return p, nil
}
