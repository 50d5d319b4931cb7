package packet

import (
	"fmt"

	"github.com/danmuck/bitsctl/internal/bits"
)

// Limits constrains decode recursion.
type Limits struct {
	// MaxDepth bounds operator nesting; zero or negative disables the check.
	MaxDepth int
}

func DefaultLimits() Limits {
	return Limits{MaxDepth: 512}
}

// Decode reads one packet tree starting at the reader's cursor. Bits after
// the outermost packet are left unread.
func Decode(r *bits.Reader, limits Limits) (Packet, error) {
	d := decoder{r: r, limits: limits}
	return d.packet(0)
}

// DecodeLines packs hex lines into one stream and decodes the packet at its start.
func DecodeLines(lines []string, limits Limits) (Packet, error) {
	words, err := bits.ParseLines(lines)
	if err != nil {
		return nil, err
	}
	return Decode(bits.NewReader(words), limits)
}

type decoder struct {
	r      *bits.Reader
	limits Limits
}

func (d *decoder) packet(depth int) (Packet, error) {
	if d.limits.MaxDepth > 0 && depth >= d.limits.MaxDepth {
		return nil, fmt.Errorf("%w: depth %d at bit %d", ErrTooDeep, depth, d.r.Pos())
	}
	version, err := d.field(versionBits, "version")
	if err != nil {
		return nil, err
	}
	typeID, err := d.field(typeBits, "type id")
	if err != nil {
		return nil, err
	}
	if uint8(typeID) == TypeLiteral {
		value, err := d.literal()
		if err != nil {
			return nil, err
		}
		return Literal{Version: uint8(version), Value: value}, nil
	}

	lt, err := d.field(lengthTypeBits, "length type")
	if err != nil {
		return nil, err
	}
	op := Operator{Version: uint8(version), TypeID: uint8(typeID), LengthType: LengthType(lt)}
	if op.LengthType == LengthBits {
		op.Children, err = d.bitFramed(depth)
	} else {
		op.Children, err = d.countFramed(depth)
	}
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (d *decoder) literal() (uint64, error) {
	var v uint64
	for {
		more, err := d.field(groupFlagBits, "literal flag")
		if err != nil {
			return 0, err
		}
		group, err := d.field(groupBits, "literal group")
		if err != nil {
			return 0, err
		}
		if v>>(64-groupBits) != 0 {
			return 0, fmt.Errorf("%w: at bit %d", ErrLiteralOverflow, d.r.Pos())
		}
		v = v<<groupBits | uint64(group)
		if more == 0 {
			return v, nil
		}
	}
}

func (d *decoder) bitFramed(depth int) ([]Packet, error) {
	total, err := d.field(totalLenBits, "sub-packet length")
	if err != nil {
		return nil, err
	}
	start := d.r.Pos()
	end := start + int(total)
	var children []Packet
	for d.r.Pos() < end {
		child, err := d.packet(depth + 1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if d.r.Pos() != end {
		return nil, &FramingError{Start: start, Declared: int(total), Actual: d.r.Pos()}
	}
	return children, nil
}

func (d *decoder) countFramed(depth int) ([]Packet, error) {
	count, err := d.field(countBits, "sub-packet count")
	if err != nil {
		return nil, err
	}
	children := make([]Packet, 0, count)
	for i := 0; i < int(count); i++ {
		child, err := d.packet(depth + 1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (d *decoder) field(n int, name string) (uint32, error) {
	v, err := d.r.NextBits(n)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	return v, nil
}
