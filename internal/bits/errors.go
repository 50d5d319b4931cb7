package bits

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHex   = errors.New("bits: invalid hex digit")
	ErrInvalidWidth = errors.New("bits: field width out of range")
	ErrShortStream  = errors.New("bits: not enough bits remaining")
)

// DecodeError reports a character that is not a hex digit.
type DecodeError struct {
	Char   rune
	Offset int
	Line   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bits: bad digit %q at offset %d in line: %s", e.Char, e.Offset, e.Line)
}

func (e *DecodeError) Unwrap() error { return ErrInvalidHex }
