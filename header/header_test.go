package header

import (
	"bytes"
	"testing"
)

func u32(v uint32) *uint32 { return &v }

func TestModeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		h    Header
	}{
		{"reference small", Reference, Header{DecompressedLength: 1234}},
		{"reference zero", Reference, Header{DecompressedLength: 0}},
		{"maxis with compressed length", Maxis, Header{DecompressedLength: 5000, CompressedLength: u32(5009)}},
		{"maxis without compressed length", Maxis, Header{DecompressedLength: 5000}},
		{"maxis2 small", Maxis2, Header{DecompressedLength: 999}},
		{"maxis2 large", Maxis2, Header{DecompressedLength: 0x01020304}},
		{"simea small", SimEA, Header{DecompressedLength: 999}},
		{"simea large", SimEA, Header{DecompressedLength: 0x01020304}},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		if err := test.mode.Write(&buf, test.h); err != nil {
			t.Errorf("%s: Write: %v", test.name, err)
			continue
		}

		wantLen := test.mode.Length(int(test.h.DecompressedLength))
		if buf.Len() != wantLen {
			t.Errorf("%s: wrote %d bytes, Length reported %d", test.name, buf.Len(), wantLen)
		}

		got, err := test.mode.Read(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Errorf("%s: Read: %v", test.name, err)
			continue
		}
		if got.DecompressedLength != test.h.DecompressedLength {
			t.Errorf("%s: DecompressedLength = %d, want %d", test.name, got.DecompressedLength, test.h.DecompressedLength)
		}

		wantCompressed := test.h.CompressedLength != nil && *test.h.CompressedLength != 0
		gotCompressed := got.CompressedLength != nil
		if gotCompressed != wantCompressed {
			t.Errorf("%s: CompressedLength present = %v, want %v", test.name, gotCompressed, wantCompressed)
		}
		if gotCompressed && wantCompressed && *got.CompressedLength != *test.h.CompressedLength {
			t.Errorf("%s: CompressedLength = %d, want %d", test.name, *got.CompressedLength, *test.h.CompressedLength)
		}
	}
}

func TestMaxisClampsOversizeLength(t *testing.T) {
	var buf bytes.Buffer
	if err := Maxis.Write(&buf, Header{DecompressedLength: 0xFFFFFFFF}); err != nil {
		t.Fatal(err)
	}
	got, err := Maxis.Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.DecompressedLength != 0xFFFFFF {
		t.Errorf("DecompressedLength = %#x, want %#x", got.DecompressedLength, 0xFFFFFF)
	}
}

func TestMaxis2WidensForLargePayload(t *testing.T) {
	if got := Maxis2.Length(0xFFFFFF); got != 5 {
		t.Errorf("Length(0xFFFFFF) = %d, want 5", got)
	}
	if got := Maxis2.Length(0x1000000); got != 6 {
		t.Errorf("Length(0x1000000) = %d, want 6", got)
	}

	var buf bytes.Buffer
	if err := Maxis2.Write(&buf, Header{DecompressedLength: 0x1000000}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 6 {
		t.Fatalf("wrote %d bytes, want 6", buf.Len())
	}
	got, err := Maxis2.Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.DecompressedLength != 0x1000000 {
		t.Errorf("DecompressedLength = %#x, want %#x", got.DecompressedLength, 0x1000000)
	}
}

func TestReferenceBadFlags(t *testing.T) {
	buf := []byte{0x00, Magic, 0, 0, 0}
	_, err := Reference.Read(bytes.NewReader(buf))
	if err != ErrBadFlags {
		t.Errorf("Read: got %v, want ErrBadFlags", err)
	}
}

func TestReferenceBadMagic(t *testing.T) {
	buf := []byte{referenceFlags, 0x00, 0, 0, 0}
	_, err := Reference.Read(bytes.NewReader(buf))
	if err != ErrBadMagic {
		t.Errorf("Read: got %v, want ErrBadMagic", err)
	}
}

func TestMaxisBadFlags(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 0x00, Magic, 0, 0, 0}
	_, err := Maxis.Read(bytes.NewReader(buf))
	if err != ErrBadFlags {
		t.Errorf("Read: got %v, want ErrBadFlags", err)
	}
}

func TestMaxis2BadFlags(t *testing.T) {
	buf := []byte{0x20, Magic, 0, 0, 0}
	_, err := Maxis2.Read(bytes.NewReader(buf))
	if err != ErrBadFlags {
		t.Errorf("Read: got %v, want ErrBadFlags", err)
	}
}

func TestSimEARejectsReservedBits(t *testing.T) {
	buf := []byte{0b0011_1110, Magic, 0, 0, 0}
	_, err := SimEA.Read(bytes.NewReader(buf))
	if err != ErrBadFlags {
		t.Errorf("Read: got %v, want ErrBadFlags", err)
	}
}

func TestSimEAFlagsRoundTrip(t *testing.T) {
	tests := []simEAFlags{
		{},
		{bigDecompressed: true},
		{restricted: true},
		{compressedSize: true},
		{bigDecompressed: true, restricted: true, compressedSize: true},
	}

	for _, want := range tests {
		b := want.encode()
		got, err := readSimEAFlags(b)
		if err != nil {
			t.Errorf("%+v: readSimEAFlags: %v", want, err)
			continue
		}
		if got != want {
			t.Errorf("flags round trip: got %+v, want %+v", got, want)
		}
	}
}

func TestTruncatedHeaderIsError(t *testing.T) {
	modes := []Mode{Reference, Maxis, Maxis2, SimEA}
	for _, m := range modes {
		for n := 0; n < m.Length(0); n++ {
			buf := make([]byte, n)
			if _, err := m.Read(bytes.NewReader(buf)); err == nil {
				t.Errorf("%T: Read of %d-byte truncated header returned nil error", m, n)
			}
		}
	}
}
