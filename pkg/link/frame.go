package link

import "errors"

// ErrReservedAddress is returned when a reserved address (broadcast or
// unassigned) is used where a real node address is required.
var ErrReservedAddress = errors.New("link: reserved address")

// MaxEnvelopeSize is the largest possible envelope: header + source +
// extended header + destination + signature = 1+3+1+3+4.
const MaxEnvelopeSize = 12

// Envelope is everything in a FANET frame that isn't payload: the common
// header, the optional extended header, the source and (if unicast)
// destination addresses, and the optional signature. pkg/app builds on top
// of this to parse and encode the full packet including its payload.
type Envelope struct {
	Header         Header
	Source         Address
	ExtendedHeader ExtendedHeader // zero value if !Header.Extended
	Destination    Address        // valid iff ExtendedHeader.Unicast
	Signature      uint32         // valid iff ExtendedHeader.Signature
}

// Size returns the number of envelope bytes this header configuration
// occupies on the wire: one of {4, 5, 8, 9, 12}.
func (e Envelope) Size() int {
	n := 4 // header + source
	if !e.Header.Extended {
		return n
	}
	n++ // extended header
	if e.ExtendedHeader.Unicast {
		n += 3
	}
	if e.ExtendedHeader.Signature {
		n += 4
	}
	return n
}

// WriteTo packs the envelope fields, in wire order, into w.
func (e Envelope) WriteTo(w *Writer) error {
	if err := e.Header.WriteTo(w); err != nil {
		return err
	}
	if err := e.Source.WriteTo(w); err != nil {
		return err
	}
	if !e.Header.Extended {
		return nil
	}
	if err := e.ExtendedHeader.WriteTo(w); err != nil {
		return err
	}
	if e.ExtendedHeader.Unicast {
		if err := e.Destination.WriteTo(w); err != nil {
			return err
		}
	}
	if e.ExtendedHeader.Signature {
		if err := w.WriteUint32LE(e.Signature); err != nil {
			return err
		}
	}
	return nil
}

// ParseEnvelope reads an Envelope from r, leaving r positioned at the start
// of the payload.
func ParseEnvelope(r *Reader) (Envelope, error) {
	var e Envelope
	header, err := ReadHeader(r)
	if err != nil {
		return Envelope{}, err
	}
	e.Header = header

	source, err := ReadAddress(r)
	if err != nil {
		return Envelope{}, err
	}
	e.Source = source

	if !header.Extended {
		return e, nil
	}

	ext, err := ReadExtendedHeader(r)
	if err != nil {
		return Envelope{}, err
	}
	e.ExtendedHeader = ext

	if ext.Unicast {
		dest, err := ReadAddress(r)
		if err != nil {
			return Envelope{}, err
		}
		e.Destination = dest
	}

	if ext.Signature {
		sig, err := r.ReadUint32LE()
		if err != nil {
			return Envelope{}, err
		}
		e.Signature = sig
	}

	return e, nil
}
