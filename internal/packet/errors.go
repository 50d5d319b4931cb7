package packet

import (
	"errors"
	"fmt"
)

var (
	ErrFramingMismatch = errors.New("packet: sub-packets did not end on declared length")
	ErrTooDeep         = errors.New("packet: nesting too deep")
	ErrLiteralOverflow = errors.New("packet: literal value overflows 64 bits")
	ErrFieldOverflow   = errors.New("packet: value does not fit field")
	ErrInvalidType     = errors.New("packet: invalid packet type")
)

// FramingError reports a length-delimited operator whose children did not
// end exactly on the declared bit position.
type FramingError struct {
	Start    int
	Declared int
	Actual   int
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("packet: sub-packets at bit %d declared %d bits but ended at bit %d (want %d)",
		e.Start, e.Declared, e.Actual, e.Start+e.Declared)
}

func (e *FramingError) Unwrap() error { return ErrFramingMismatch }
