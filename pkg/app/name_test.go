package app

import (
	"bytes"
	"testing"

	"github.com/scottyob/FANET/pkg/link"
)

func TestNameRoundTrip(t *testing.T) {
	p := NamePayload{Name: []byte("Glider 42")}
	buf := make([]byte, 64)
	w := link.NewWriter(buf)
	if err := p.Encode(w); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeNamePayload(link.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Name, p.Name) {
		t.Errorf("Name = %q, want %q", got.Name, p.Name)
	}
}

func TestNameEmpty(t *testing.T) {
	p := NamePayload{}
	buf := make([]byte, 4)
	w := link.NewWriter(buf)
	if err := p.Encode(w); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeNamePayload(link.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Name) != 0 {
		t.Errorf("Name = %q, want empty", got.Name)
	}
}

func TestNameTruncatedAtMax(t *testing.T) {
	long := bytes.Repeat([]byte("x"), MaxNameBytes+50)
	buf := make([]byte, len(long))
	w := link.NewWriter(buf)
	if err := (NamePayload{Name: long}).Encode(w); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeNamePayload(link.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Name) != MaxNameBytes {
		t.Errorf("len(Name) = %d, want %d", len(got.Name), MaxNameBytes)
	}
}
