package packet

import (
	"errors"
	"testing"

	"github.com/danmuck/bitsctl/internal/bits"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func decodeHex(t *testing.T, hex string) Packet {
	t.Helper()
	p, err := DecodeLines([]string{hex}, DefaultLimits())
	if err != nil {
		t.Fatalf("decode %s: %v", hex, err)
	}
	return p
}

func TestDecodeTransmissions(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Packet
	}{
		{
			name: "literal",
			hex:  "D2FE28",
			want: Literal{Version: 6, Value: 2021},
		},
		{
			name: "bit framed operator",
			hex:  "38006F45291200",
			want: Operator{Version: 1, TypeID: 6, LengthType: LengthBits, Children: []Packet{
				Literal{Version: 6, Value: 10},
				Literal{Version: 2, Value: 20},
			}},
		},
		{
			name: "count framed operator",
			hex:  "EE00D40C823060",
			want: Operator{Version: 7, TypeID: 3, LengthType: LengthCount, Children: []Packet{
				Literal{Version: 2, Value: 1},
				Literal{Version: 4, Value: 2},
				Literal{Version: 1, Value: 3},
			}},
		},
		{
			name: "lower case input",
			hex:  "d2fe28",
			want: Literal{Version: 6, Value: 2021},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeHex(t, tt.hex)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("decode %s mismatch (-want +got):\n%s", tt.hex, diff)
			}
		})
	}
}

func TestDecodeLinesConcatenatesLines(t *testing.T) {
	// 38006F45291200 split on a word boundary.
	got, err := DecodeLines([]string{"38006F45", "291200"}, DefaultLimits())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if VersionSum(got) != 9 {
		t.Fatalf("version sum: got %d, want 9", VersionSum(got))
	}
}

func TestDecodeInvalidHex(t *testing.T) {
	_, err := DecodeLines([]string{"D2FE2X"}, DefaultLimits())
	if !errors.Is(err, bits.ErrInvalidHex) {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
}

func TestDecodeTruncatedStream(t *testing.T) {
	// Declares 27 bits of children starting at bit 22, but the stream is 32 bits.
	_, err := DecodeLines([]string{"38006F45"}, DefaultLimits())
	if !errors.Is(err, bits.ErrShortStream) {
		t.Fatalf("expected ErrShortStream, got %v", err)
	}
	if _, err := DecodeLines(nil, DefaultLimits()); !errors.Is(err, bits.ErrShortStream) {
		t.Fatalf("empty input: expected ErrShortStream, got %v", err)
	}
}

func TestDecodeBitFramedLandsOnDeclaredEnd(t *testing.T) {
	tree := Operator{Version: 3, TypeID: 0, LengthType: LengthBits, Children: []Packet{
		Literal{Version: 1, Value: 2021},
		Operator{Version: 2, TypeID: 5, LengthType: LengthCount, Children: []Packet{
			Literal{Version: 0, Value: 7},
		}},
		Literal{Version: 4, Value: 1 << 40},
	}}
	var w bits.Writer
	if err := Encode(&w, tree); err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Trailing garbage must be left unread.
	if err := w.WriteBits(9, 0x1FF); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := bits.NewReader(w.Words())
	got, err := Decode(r, DefaultLimits())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(tree, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
	if r.Pos() != w.Len()-9 {
		t.Fatalf("cursor at %d, want %d", r.Pos(), w.Len()-9)
	}

	// Declared length field sits at bits 7..21; children start at 22.
	head := bits.NewReader(w.Words())
	if _, err := head.NextBits(7); err != nil {
		t.Fatalf("skip header: %v", err)
	}
	declared, err := head.NextBits(15)
	if err != nil {
		t.Fatalf("read length: %v", err)
	}
	if r.Pos() != head.Pos()+int(declared) {
		t.Fatalf("cursor at %d, want start %d + declared %d", r.Pos(), head.Pos(), declared)
	}
}

func TestDecodeBitFramedMismatch(t *testing.T) {
	var w bits.Writer
	write := func(n int, v uint32) {
		t.Helper()
		if err := w.WriteBits(n, v); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	// Operator declaring 12 bits of children.
	write(3, 1)
	write(3, 0)
	write(1, 0)
	write(15, 12)
	// Two 11-bit literals: the first stops short of 12, the second overshoots.
	for i := 0; i < 2; i++ {
		write(3, 0)
		write(3, 4)
		write(1, 0)
		write(4, 9)
	}

	_, err := Decode(bits.NewReader(w.Words()), DefaultLimits())
	if !errors.Is(err, ErrFramingMismatch) {
		t.Fatalf("expected ErrFramingMismatch, got %v", err)
	}
	var fe *FramingError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FramingError, got %T", err)
	}
	want := FramingError{Start: 22, Declared: 12, Actual: 44}
	if *fe != want {
		t.Fatalf("framing error: got %+v, want %+v", *fe, want)
	}
}

func TestDecodeCountFramedReadsExactlyCount(t *testing.T) {
	tree := Operator{Version: 5, TypeID: 2, LengthType: LengthCount, Children: []Packet{
		Literal{Version: 1, Value: 0},
		Literal{Version: 2, Value: 1<<36 - 1},
		Operator{Version: 3, TypeID: 7, LengthType: LengthBits, Children: []Packet{
			Literal{Version: 4, Value: 15},
			Literal{Version: 5, Value: 16},
		}},
	}}
	var w bits.Writer
	if err := Encode(&w, tree); err != nil {
		t.Fatalf("encode: %v", err)
	}
	end := w.Len()
	// A fourth packet after the declared three must not be consumed.
	if err := Encode(&w, Literal{Version: 7, Value: 99}); err != nil {
		t.Fatalf("encode trailer: %v", err)
	}
	r := bits.NewReader(w.Words())
	got, err := Decode(r, DefaultLimits())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	op, ok := got.(Operator)
	if !ok {
		t.Fatalf("expected Operator, got %T", got)
	}
	if len(op.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(op.Children))
	}
	if r.Pos() != end {
		t.Fatalf("cursor at %d, want %d", r.Pos(), end)
	}
}

func TestDecodeEmptyOperators(t *testing.T) {
	for _, lt := range []LengthType{LengthBits, LengthCount} {
		tree := Operator{Version: 1, TypeID: 1, LengthType: lt}
		var w bits.Writer
		if err := Encode(&w, tree); err != nil {
			t.Fatalf("%s: encode: %v", lt, err)
		}
		got, err := Decode(bits.NewReader(w.Words()), DefaultLimits())
		if err != nil {
			t.Fatalf("%s: decode: %v", lt, err)
		}
		if diff := cmp.Diff(Packet(tree), got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", lt, diff)
		}
	}
}

func TestDecodeLiteralOverflow(t *testing.T) {
	encodeGroups := func(groups int) bits.Words {
		var w bits.Writer
		_ = w.WriteBits(3, 0)
		_ = w.WriteBits(3, uint32(TypeLiteral))
		for i := 0; i < groups; i++ {
			more := uint32(1)
			if i == groups-1 {
				more = 0
			}
			_ = w.WriteBits(1, more)
			_ = w.WriteBits(4, 0xF)
		}
		return w.Words()
	}

	got, err := Decode(bits.NewReader(encodeGroups(16)), DefaultLimits())
	if err != nil {
		t.Fatalf("16 groups: %v", err)
	}
	if lit := got.(Literal); lit.Value != ^uint64(0) {
		t.Fatalf("16 groups: got %#x", lit.Value)
	}

	_, err = Decode(bits.NewReader(encodeGroups(17)), DefaultLimits())
	if !errors.Is(err, ErrLiteralOverflow) {
		t.Fatalf("17 groups: expected ErrLiteralOverflow, got %v", err)
	}
}

func nested(depth int) Packet {
	var p Packet = Literal{Version: 1, Value: 1}
	for i := 0; i < depth; i++ {
		p = Operator{Version: 1, TypeID: 0, LengthType: LengthCount, Children: []Packet{p}}
	}
	return p
}

func TestDecodeDepthLimit(t *testing.T) {
	var w bits.Writer
	if err := Encode(&w, nested(600)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, err := Decode(bits.NewReader(w.Words()), DefaultLimits())
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("default limits: expected ErrTooDeep, got %v", err)
	}

	got, err := Decode(bits.NewReader(w.Words()), Limits{})
	if err != nil {
		t.Fatalf("unlimited: %v", err)
	}
	if VersionSum(got) != 601 {
		t.Fatalf("version sum: got %d, want 601", VersionSum(got))
	}

	_, err = Decode(bits.NewReader(w.Words()), Limits{MaxDepth: 3})
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("depth 3: expected ErrTooDeep, got %v", err)
	}
}

func TestDecodeFieldErrorNamesField(t *testing.T) {
	var w bits.Writer
	_ = w.WriteBits(32, 0)
	r := bits.NewReader(w.Words())
	if _, err := r.NextBits(30); err != nil {
		t.Fatalf("skip: %v", err)
	}
	_, err := Decode(r, DefaultLimits())
	if !errors.Is(err, bits.ErrShortStream) {
		t.Fatalf("expected ErrShortStream, got %v", err)
	}
	if got := err.Error(); len(got) < 12 || got[:12] != "read version" {
		t.Fatalf("expected field name prefix, got %q", got)
	}
}
