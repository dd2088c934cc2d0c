package link

import "fmt"

// Broadcast and Unassigned are the two reserved address values. Broadcast
// marks a frame destined for every receiver; Unassigned/Ignore marks a
// frame whose destination field should not be matched against anything.
var (
	Broadcast  = Address{Manufacturer: 0x00, Unique: 0x0000}
	Unassigned = Address{Manufacturer: 0xFF, Unique: 0xFFFF}
)

// Address is the 24-bit FANET node address: a 1-byte manufacturer ID and a
// 2-byte manufacturer-assigned unique ID. On the wire the unique ID follows
// the manufacturer byte, least significant byte first.
type Address struct {
	Manufacturer uint8
	Unique       uint16
}

// Uint24 packs the address into the low 24 bits of a uint32, manufacturer in
// the high byte, matching the in-memory ordering used for equality and for
// TxFrame duplicate-detection comparisons.
func (a Address) Uint24() uint32 {
	return uint32(a.Manufacturer)<<16 | uint32(a.Unique)
}

// AddressFromUint24 is the inverse of Uint24.
func AddressFromUint24(v uint32) Address {
	return Address{
		Manufacturer: uint8(v >> 16),
		Unique:       uint16(v),
	}
}

// IsBroadcast reports whether a equals the broadcast address 0x000000.
func (a Address) IsBroadcast() bool {
	return a == Broadcast
}

// IsUnassigned reports whether a equals the ignore/unassigned address 0xFFFFFF.
func (a Address) IsUnassigned() bool {
	return a == Unassigned
}

// Reserved reports whether a is either reserved value; own_address setters
// reject these.
func (a Address) Reserved() bool {
	return a.IsBroadcast() || a.IsUnassigned()
}

// String renders the address as manufacturer:unique hex, e.g. "11:1111".
func (a Address) String() string {
	return fmt.Sprintf("%02X:%04X", a.Manufacturer, a.Unique)
}

// WriteTo serializes the address: manufacturer byte, then the unique ID
// little-endian.
func (a Address) WriteTo(w *Writer) error {
	if err := w.WriteByte(a.Manufacturer); err != nil {
		return err
	}
	return w.WriteUint16LE(a.Unique)
}

// ReadAddress deserializes an Address from r.
func ReadAddress(r *Reader) (Address, error) {
	mfg, err := r.ReadByte()
	if err != nil {
		return Address{}, err
	}
	unique, err := r.ReadUint16LE()
	if err != nil {
		return Address{}, err
	}
	return Address{Manufacturer: mfg, Unique: unique}, nil
}
