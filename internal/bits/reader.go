package bits

import "fmt"

// Reader is a forward-only cursor over Words. Fields are read MSB-first and
// may straddle a word boundary.
type Reader struct {
	words  []uint32
	pos    int // next unread bit
	length int
}

func NewReader(w Words) *Reader {
	return &Reader{words: w.words, length: w.Len()}
}

// NextBits reads an n-bit field (1 <= n <= 32) and returns it in the low bits
// of the result. On error the cursor does not move.
func (r *Reader) NextBits(n int) (uint32, error) {
	if n < 1 || n > MaxWidth {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWidth, n)
	}
	if n > r.length-r.pos {
		return 0, fmt.Errorf("%w: read %d bits at pos %d of %d", ErrShortStream, n, r.pos, r.length)
	}
	last := r.pos + n - 1
	first := r.pos / WordBits
	end := last / WordBits
	shift := uint(WordBits - 1 - last%WordBits)

	var v uint32
	if first == end {
		v = r.words[first] >> shift
	} else {
		// end == first+1 since n <= WordBits; shift is at least 1 here.
		v = r.words[first]<<(WordBits-shift) | r.words[end]>>shift
	}
	r.pos += n
	return v & mask(n), nil
}

// Pos returns the index of the next unread bit.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total number of bits in the stream.
func (r *Reader) Len() int { return r.length }

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int { return r.length - r.pos }
