package link

// AckType is the 2-bit acknowledgment-request field of the extended header.
type AckType uint8

const (
	AckNone      AckType = 0
	AckSinglehop AckType = 1
	AckTwohop    AckType = 2
	AckReserved  AckType = 3 // must be accepted by parsers, ignored by the scheduler
)

// String returns the FANET name of the ack type.
func (t AckType) String() string {
	switch t {
	case AckNone:
		return "NONE"
	case AckSinglehop:
		return "SINGLEHOP"
	case AckTwohop:
		return "TWOHOP"
	case AckReserved:
		return "RESERVED"
	default:
		return "UNKNOWN"
	}
}

// ExtendedHeader is the optional second header byte, present iff
// Header.Extended is set: ack_type(2) | unicast(1) | signature(1) |
// reserved(3) | geo_forward(1), most significant bit first.
type ExtendedHeader struct {
	AckType    AckType
	Unicast    bool
	Signature  bool
	GeoForward bool
}

// WriteTo packs the extended header into a single byte. The three reserved
// bits are always written as zero.
func (h ExtendedHeader) WriteTo(w *Writer) error {
	if err := w.WriteBits(uint64(h.AckType), 2); err != nil {
		return err
	}
	if err := w.WriteBool(h.Unicast); err != nil {
		return err
	}
	if err := w.WriteBool(h.Signature); err != nil {
		return err
	}
	if err := w.WriteBits(0, 3); err != nil {
		return err
	}
	return w.WriteBool(h.GeoForward)
}

// ReadExtendedHeader unpacks the extended header byte from r, discarding the
// reserved bits.
func ReadExtendedHeader(r *Reader) (ExtendedHeader, error) {
	ackType, err := r.ReadBits(2)
	if err != nil {
		return ExtendedHeader{}, err
	}
	unicast, err := r.ReadBool()
	if err != nil {
		return ExtendedHeader{}, err
	}
	signature, err := r.ReadBool()
	if err != nil {
		return ExtendedHeader{}, err
	}
	if _, err := r.ReadBits(3); err != nil {
		return ExtendedHeader{}, err
	}
	geoForward, err := r.ReadBool()
	if err != nil {
		return ExtendedHeader{}, err
	}
	return ExtendedHeader{
		AckType:    AckType(ackType),
		Unicast:    unicast,
		Signature:  signature,
		GeoForward: geoForward,
	}, nil
}
