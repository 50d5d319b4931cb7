package bits

import (
	"fmt"
	"strings"
)

// Writer appends MSB-first fields to a growing word buffer. The zero value
// is ready to use.
type Writer struct {
	words []uint32
	n     int
}

// WriteBits appends the low n bits of v (1 <= n <= 32).
func (w *Writer) WriteBits(n int, v uint32) error {
	if n < 1 || n > MaxWidth {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, n)
	}
	v &= mask(n)
	for n > 0 {
		off := w.n % WordBits
		if off == 0 {
			w.words = append(w.words, 0)
		}
		free := WordBits - off
		take := min(n, free)
		chunk := (v >> uint(n-take)) & mask(take)
		w.words[len(w.words)-1] |= chunk << uint(free-take)
		n -= take
		w.n += take
	}
	return nil
}

// Append copies every bit written to src onto w.
func (w *Writer) Append(src *Writer) error {
	r := NewReader(src.Words())
	for left := src.Len(); left > 0; {
		take := min(left, MaxWidth)
		v, err := r.NextBits(take)
		if err != nil {
			return err
		}
		if err := w.WriteBits(take, v); err != nil {
			return err
		}
		left -= take
	}
	return nil
}

// Len returns the number of bits written.
func (w *Writer) Len() int { return w.n }

// Words returns a copy of the written bits, left-justified in the final word.
func (w *Writer) Words() Words { return FromUint32s(w.words) }

// Hex renders the written bits as hex digits, zero-padding the final nibble.
func (w *Writer) Hex() string {
	digits := (w.n + digitBits - 1) / digitBits
	var b strings.Builder
	for _, word := range w.words {
		fmt.Fprintf(&b, "%08X", word)
	}
	return b.String()[:digits]
}
