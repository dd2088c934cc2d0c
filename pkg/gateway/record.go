package gateway

import (
	"github.com/scottyob/FANET/pkg/app"
	"github.com/scottyob/FANET/pkg/link"
)

// RecordKind discriminates the uplink record's payload variant.
type RecordKind uint8

const (
	// RecordService carries a Service payload flagged hasGateway.
	RecordService RecordKind = 0
	// RecordGroundDistress carries a GroundTracking payload whose
	// GroundType is one of the distress categories.
	RecordGroundDistress RecordKind = 1
)

// maxRecordBodySize bounds the address+rssi+tick+kind header (9 bytes) plus
// the larger of the two payload variants' worst-case encoded size.
const maxRecordBodySize = 9 + 32

// UplinkRecord is a single item relayed to the ground collector: who sent
// the original frame, at what signal strength and local tick, and the
// decoded field carrying the data of interest. Only the field matching Kind
// is meaningful, mirroring app.Payload's tagged-union shape.
type UplinkRecord struct {
	Source         link.Address
	RSSI           int16
	Tick           uint32
	Kind           RecordKind
	Service        app.ServicePayload
	GroundTracking app.GroundTrackingPayload
}

// Encode packs the record body (everything after the 4-byte length prefix
// applied by the uplink writer) using the same MSB-first bitstream codec as
// the rest of the wire protocol, rather than a general-purpose serializer
// like gob: the collector only ever needs to decode these fixed shapes.
func (r UplinkRecord) Encode() ([]byte, error) {
	buf := make([]byte, maxRecordBodySize)
	w := link.NewWriter(buf)

	if err := r.Source.WriteTo(w); err != nil {
		return nil, err
	}
	if err := w.WriteByte(uint8(int8(r.RSSI))); err != nil {
		return nil, err
	}
	if err := w.WriteUint32LE(r.Tick); err != nil {
		return nil, err
	}
	if err := w.WriteByte(uint8(r.Kind)); err != nil {
		return nil, err
	}

	switch r.Kind {
	case RecordService:
		if err := r.Service.Encode(w); err != nil {
			return nil, err
		}
	case RecordGroundDistress:
		if err := r.GroundTracking.Encode(w); err != nil {
			return nil, err
		}
	}

	return w.Bytes(), nil
}

// DecodeUplinkRecord is the inverse of Encode, used by collector-side code
// and by tests to check a round trip.
func DecodeUplinkRecord(data []byte) (UplinkRecord, error) {
	var rec UplinkRecord
	r := link.NewReader(data)

	addr, err := link.ReadAddress(r)
	if err != nil {
		return rec, err
	}
	rec.Source = addr

	rssi, err := r.ReadByte()
	if err != nil {
		return rec, err
	}
	rec.RSSI = int16(int8(rssi))

	tick, err := r.ReadUint32LE()
	if err != nil {
		return rec, err
	}
	rec.Tick = tick

	kind, err := r.ReadByte()
	if err != nil {
		return rec, err
	}
	rec.Kind = RecordKind(kind)

	switch rec.Kind {
	case RecordService:
		rec.Service, err = app.DecodeServicePayload(r)
	case RecordGroundDistress:
		rec.GroundTracking, err = app.DecodeGroundTrackingPayload(r)
	}
	if err != nil {
		return rec, err
	}

	return rec, nil
}
