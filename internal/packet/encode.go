package packet

import (
	"fmt"

	"github.com/danmuck/bitsctl/internal/bits"
)

// Encode writes p to w in wire format. Literals use the fewest groups that
// hold their value. Bit-framed operators are measured in a scratch writer
// before their length field is written.
func Encode(w *bits.Writer, p Packet) error {
	switch p := p.(type) {
	case Literal:
		if err := writeHeader(w, p.Header()); err != nil {
			return err
		}
		return writeLiteral(w, p.Value)
	case Operator:
		if p.TypeID == TypeLiteral {
			return fmt.Errorf("%w: operator with literal type id %d", ErrInvalidType, p.TypeID)
		}
		if err := writeHeader(w, p.Header()); err != nil {
			return err
		}
		switch p.LengthType {
		case LengthBits:
			return writeBitFramed(w, p.Children)
		case LengthCount:
			return writeCountFramed(w, p.Children)
		default:
			return fmt.Errorf("%w: length type %d", ErrFieldOverflow, p.LengthType)
		}
	default:
		return fmt.Errorf("%w: %T", ErrInvalidType, p)
	}
}

func writeHeader(w *bits.Writer, h Header) error {
	if h.Version >= 1<<versionBits {
		return fmt.Errorf("%w: version %d", ErrFieldOverflow, h.Version)
	}
	if h.TypeID >= 1<<typeBits {
		return fmt.Errorf("%w: type id %d", ErrFieldOverflow, h.TypeID)
	}
	if err := w.WriteBits(versionBits, uint32(h.Version)); err != nil {
		return err
	}
	return w.WriteBits(typeBits, uint32(h.TypeID))
}

func writeLiteral(w *bits.Writer, v uint64) error {
	groups := 1
	for rest := v >> groupBits; rest != 0; rest >>= groupBits {
		groups++
	}
	for i := groups - 1; i >= 0; i-- {
		more := uint32(0)
		if i > 0 {
			more = 1
		}
		if err := w.WriteBits(groupFlagBits, more); err != nil {
			return err
		}
		group := uint32(v>>uint(i*groupBits)) & (1<<groupBits - 1)
		if err := w.WriteBits(groupBits, group); err != nil {
			return err
		}
	}
	return nil
}

func writeBitFramed(w *bits.Writer, children []Packet) error {
	var body bits.Writer
	for _, child := range children {
		if err := Encode(&body, child); err != nil {
			return err
		}
	}
	if body.Len() >= 1<<totalLenBits {
		return fmt.Errorf("%w: sub-packet length %d", ErrFieldOverflow, body.Len())
	}
	if err := w.WriteBits(lengthTypeBits, uint32(LengthBits)); err != nil {
		return err
	}
	if err := w.WriteBits(totalLenBits, uint32(body.Len())); err != nil {
		return err
	}
	return w.Append(&body)
}

func writeCountFramed(w *bits.Writer, children []Packet) error {
	if len(children) >= 1<<countBits {
		return fmt.Errorf("%w: sub-packet count %d", ErrFieldOverflow, len(children))
	}
	if err := w.WriteBits(lengthTypeBits, uint32(LengthCount)); err != nil {
		return err
	}
	if err := w.WriteBits(countBits, uint32(len(children))); err != nil {
		return err
	}
	for _, child := range children {
		if err := Encode(w, child); err != nil {
			return err
		}
	}
	return nil
}
