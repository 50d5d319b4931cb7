package packet

// VersionSum adds up the version of every packet in the tree.
func VersionSum(p Packet) uint64 {
	switch p := p.(type) {
	case Literal:
		return uint64(p.Version)
	case Operator:
		sum := uint64(p.Version)
		for _, child := range p.Children {
			sum += VersionSum(child)
		}
		return sum
	default:
		return 0
	}
}

// Walk visits the tree in pre-order. Returning false from fn skips the
// children of the visited packet.
func Walk(p Packet, fn func(p Packet, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p Packet, depth int, fn func(Packet, int) bool) {
	if !fn(p, depth) {
		return
	}
	if op, ok := p.(Operator); ok {
		for _, child := range op.Children {
			walk(child, depth+1, fn)
		}
	}
}

// Stats summarises the shape of a tree.
type Stats struct {
	Packets   int
	Literals  int
	Operators int
	MaxDepth  int
}

func Count(p Packet) Stats {
	var s Stats
	Walk(p, func(p Packet, depth int) bool {
		s.Packets++
		if _, ok := p.(Literal); ok {
			s.Literals++
		} else {
			s.Operators++
		}
		s.MaxDepth = max(s.MaxDepth, depth)
		return true
	})
	return s
}
