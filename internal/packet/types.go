package packet

import "fmt"

// Field widths of the wire format.
const (
	versionBits    = 3
	typeBits       = 3
	lengthTypeBits = 1
	groupFlagBits  = 1
	groupBits      = 4
	totalLenBits   = 15
	countBits      = 11
)

// TypeLiteral is the type id reserved for literal packets.
const TypeLiteral uint8 = 4

// LengthType selects how an operator frames its children.
type LengthType uint8

const (
	LengthBits  LengthType = 0
	LengthCount LengthType = 1
)

func (l LengthType) String() string {
	switch l {
	case LengthBits:
		return "bits"
	case LengthCount:
		return "count"
	default:
		return fmt.Sprintf("LengthType(%d)", uint8(l))
	}
}

// Header is the common prefix of every packet.
type Header struct {
	Version uint8
	TypeID  uint8
}

// Packet is either a Literal or an Operator.
type Packet interface {
	Header() Header
	sealed()
}

// Literal is a leaf carrying a value.
type Literal struct {
	Version uint8
	Value   uint64
}

func (l Literal) Header() Header { return Header{Version: l.Version, TypeID: TypeLiteral} }
func (Literal) sealed() {}

// Operator is an interior node. TypeID is never TypeLiteral.
type Operator struct {
	Version    uint8
	TypeID     uint8
	LengthType LengthType
	Children   []Packet
}

func (o Operator) Header() Header { return Header{Version: o.Version, TypeID: o.TypeID} }
func (Operator) sealed() {}
