package link

import "testing"

func TestAddressUint24RoundTrip(t *testing.T) {
	a := Address{Manufacturer: 0x11, Unique: 0x2233}
	if got := AddressFromUint24(a.Uint24()); got != a {
		t.Errorf("got %v, want %v", got, a)
	}
}

func TestAddressReserved(t *testing.T) {
	if !Broadcast.Reserved() {
		t.Error("Broadcast should be reserved")
	}
	if !Unassigned.Reserved() {
		t.Error("Unassigned should be reserved")
	}
	if (Address{Manufacturer: 0x11, Unique: 0x1111}).Reserved() {
		t.Error("ordinary address should not be reserved")
	}
}

func TestAddressWireOrderLittleEndianUnique(t *testing.T) {
	buf := make([]byte, 3)
	w := NewWriter(buf)
	a := Address{Manufacturer: 0x11, Unique: 0x1111}
	if err := a.WriteTo(w); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x11, 0x11, 0x11}
	for i, b := range want {
		if buf[i] != b {
			t.Fatalf("buf[%d] = %#x, want %#x", i, buf[i], b)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	tests := []Header{
		{Extended: false, Forward: false, Type: Ack},
		{Extended: true, Forward: true, Type: Tracking},
		{Extended: false, Forward: true, Type: GroundTracking},
		{Extended: true, Forward: false, Type: Service},
	}
	for _, h := range tests {
		buf := make([]byte, 1)
		w := NewWriter(buf)
		if err := h.WriteTo(w); err != nil {
			t.Fatal(err)
		}
		got, err := ReadHeader(NewReader(buf))
		if err != nil {
			t.Fatal(err)
		}
		if got != h {
			t.Errorf("got %+v, want %+v", got, h)
		}
	}
}

func TestHeaderS1AckByte(t *testing.T) {
	// S1's generated ACK begins with header byte 0x80: extended=1, forward=0, type=0 (ACK).
	h := Header{Extended: true, Forward: false, Type: Ack}
	buf := make([]byte, 1)
	w := NewWriter(buf)
	if err := h.WriteTo(w); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0x80 {
		t.Fatalf("got %#x, want 0x80", buf[0])
	}
}

func TestHeaderS2TwoHopAckByte(t *testing.T) {
	// S2's two-hop ACK has header byte 0xC0: extended=1, forward=1, type=0.
	h := Header{Extended: true, Forward: true, Type: Ack}
	buf := make([]byte, 1)
	w := NewWriter(buf)
	if err := h.WriteTo(w); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0xC0 {
		t.Fatalf("got %#x, want 0xC0", buf[0])
	}
}

func TestExtendedHeaderRoundTrip(t *testing.T) {
	tests := []ExtendedHeader{
		{AckType: AckNone, Unicast: false, Signature: false, GeoForward: false},
		{AckType: AckSinglehop, Unicast: true, Signature: false, GeoForward: false},
		{AckType: AckTwohop, Unicast: false, Signature: true, GeoForward: true},
		{AckType: AckReserved, Unicast: true, Signature: true, GeoForward: false},
	}
	for _, h := range tests {
		buf := make([]byte, 1)
		w := NewWriter(buf)
		if err := h.WriteTo(w); err != nil {
			t.Fatal(err)
		}
		got, err := ReadExtendedHeader(NewReader(buf))
		if err != nil {
			t.Fatal(err)
		}
		if got != h {
			t.Errorf("got %+v, want %+v", got, h)
		}
	}
}

func TestExtendedHeaderS1Byte(t *testing.T) {
	// S1's ACK extended header byte 0x20: ack_type=0, unicast=1, signature=0, geo_forward=0.
	h := ExtendedHeader{AckType: AckNone, Unicast: true}
	buf := make([]byte, 1)
	w := NewWriter(buf)
	if err := h.WriteTo(w); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0x20 {
		t.Fatalf("got %#x, want 0x20", buf[0])
	}
}

func TestEnvelopeSizeForEachFlagCombination(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
		want int
	}{
		{"plain", Envelope{Header: Header{}}, 4},
		{"extended only", Envelope{Header: Header{Extended: true}}, 5},
		{"extended+unicast", Envelope{Header: Header{Extended: true}, ExtendedHeader: ExtendedHeader{Unicast: true}}, 8},
		{"extended+signature", Envelope{Header: Header{Extended: true}, ExtendedHeader: ExtendedHeader{Signature: true}}, 9},
		{"extended+unicast+signature", Envelope{Header: Header{Extended: true}, ExtendedHeader: ExtendedHeader{Unicast: true, Signature: true}}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.env.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := Envelope{
		Header:         Header{Extended: true, Forward: true, Type: Tracking},
		Source:         Address{Manufacturer: 0x55, Unique: 0x5555},
		ExtendedHeader: ExtendedHeader{AckType: AckTwohop, Unicast: true, Signature: true},
		Destination:    Address{Manufacturer: 0x11, Unique: 0x1111},
		Signature:      0xCAFEBABE,
	}

	buf := make([]byte, MaxEnvelopeSize)
	w := NewWriter(buf)
	if err := env.WriteTo(w); err != nil {
		t.Fatal(err)
	}
	if w.Len() != env.Size() {
		t.Fatalf("wrote %d bytes, want %d", w.Len(), env.Size())
	}

	got, err := ParseEnvelope(NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != env {
		t.Errorf("got %+v, want %+v", got, env)
	}
}

func TestEnvelopeTruncatedReturnsError(t *testing.T) {
	env := Envelope{
		Header: Header{Extended: true},
		Source: Address{Manufacturer: 0x11, Unique: 0x1111},
	}
	buf := make([]byte, MaxEnvelopeSize)
	w := NewWriter(buf)
	if err := env.WriteTo(w); err != nil {
		t.Fatal(err)
	}
	truncated := w.Bytes()[:w.Len()-1]
	if _, err := ParseEnvelope(NewReader(truncated)); err == nil {
		t.Fatal("expected error parsing truncated envelope")
	}
}

func TestMessageTypeKnown(t *testing.T) {
	known := []MessageType{Ack, Tracking, Name, Message, Service, GroundTracking}
	for _, mt := range known {
		if !mt.Known() {
			t.Errorf("%v should be known", mt)
		}
	}
	unknown := []MessageType{Landmarks, RemoteConfig, MessageType(31)}
	for _, mt := range unknown {
		if mt.Known() {
			t.Errorf("%v should not be known", mt)
		}
	}
}
