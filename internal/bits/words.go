package bits

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// WordBits is the width of one storage word.
	WordBits      = 32
	// MaxWidth is the widest field a single read or write can move.
	MaxWidth      = WordBits
	digitBits     = 4
	digitsPerWord = WordBits / digitBits
)

// Words is a transmission packed into 32-bit words, most significant digit
// first. A trailing short group is left-justified: missing digits become
// trailing zero bits. Bit i of the stream is bit 31-i%32 of word i/32.
type Words struct {
	words []uint32
}

// ParseWords packs one line of hex digits.
func ParseWords(line string) (Words, error) {
	out := make([]uint32, 0, (len(line)+digitsPerWord-1)/digitsPerWord)
	for start := 0; start < len(line); start += digitsPerWord {
		end := min(start+digitsPerWord, len(line))
		var v uint32
		for i := start; i < end; i++ {
			d, ok := hexDigit(line[i])
			if !ok {
				c, _ := utf8.DecodeRuneInString(line[i:])
				return Words{}, &DecodeError{Char: c, Offset: i, Line: line}
			}
			v = v<<digitBits | uint32(d)
		}
		v <<= uint(digitBits * (digitsPerWord - (end - start)))
		out = append(out, v)
	}
	return Words{words: out}, nil
}

// ParseLines packs each line independently and concatenates the words in
// line order.
func ParseLines(lines []string) (Words, error) {
	var out []uint32
	for i, line := range lines {
		w, err := ParseWords(line)
		if err != nil {
			return Words{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, w.words...)
	}
	return Words{words: out}, nil
}

// FromUint32s wraps a copy of raw words.
func FromUint32s(raw []uint32) Words {
	buf := make([]uint32, len(raw))
	copy(buf, raw)
	return Words{words: buf}
}

// Count returns the number of words.
func (w Words) Count() int { return len(w.words) }

// Len returns the number of bits held.
func (w Words) Len() int { return len(w.words) * WordBits }

// Word returns word i.
func (w Words) Word(i int) uint32 { return w.words[i] }

// Bit returns stream bit i (0 or 1).
func (w Words) Bit(i int) uint32 {
	return (w.words[i/WordBits] >> uint(WordBits-1-i%WordBits)) & 1
}

// Uint32s returns a copy of the packed words.
func (w Words) Uint32s() []uint32 {
	buf := make([]uint32, len(w.words))
	copy(buf, w.words)
	return buf
}

func (w Words) String() string {
	var b strings.Builder
	for _, word := range w.words {
		fmt.Fprintf(&b, "%x", word)
	}
	return b.String()
}

func (w Words) GoString() string {
	var b strings.Builder
	b.WriteString("Words([")
	for i, word := range w.words {
		if i != 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%x", word)
	}
	b.WriteString("])")
	return b.String()
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// mask returns the low n bits set, 0 <= n <= 32.
func mask(n int) uint32 {
	return uint32(uint64(1)<<uint(n) - 1)
}
