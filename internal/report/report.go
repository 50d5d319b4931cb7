// Package report renders a decoded packet tree.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/bitsctl/internal/bits"
	"github.com/danmuck/bitsctl/internal/packet"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", raw)
	}
}

// Summary is the scalar outcome of one decode.
type Summary struct {
	VersionSum uint64 `json:"version_sum" yaml:"version_sum"`
	Packets    int    `json:"packets" yaml:"packets"`
	Literals   int    `json:"literals" yaml:"literals"`
	Operators  int    `json:"operators" yaml:"operators"`
	MaxDepth   int    `json:"max_depth" yaml:"max_depth"`
	BitsRead   int    `json:"bits_read" yaml:"bits_read"`
	BitsTotal  int    `json:"bits_total" yaml:"bits_total"`
}

// NewSummary describes p as decoded by r.
func NewSummary(p packet.Packet, r *bits.Reader) Summary {
	stats := packet.Count(p)
	return Summary{
		VersionSum: packet.VersionSum(p),
		Packets:    stats.Packets,
		Literals:   stats.Literals,
		Operators:  stats.Operators,
		MaxDepth:   stats.MaxDepth,
		BitsRead:   r.Pos(),
		BitsTotal:  r.Len(),
	}
}

// Node is the serialisable view of a packet.
type Node struct {
	Kind       string  `json:"kind" yaml:"kind"`
	Version    uint8   `json:"version" yaml:"version"`
	TypeID     uint8   `json:"type_id" yaml:"type_id"`
	Value      *uint64 `json:"value,omitempty" yaml:"value,omitempty"`
	LengthType string  `json:"length_type,omitempty" yaml:"length_type,omitempty"`
	Children   []Node  `json:"children,omitempty" yaml:"children,omitempty"`
}

func NewNode(p packet.Packet) Node {
	switch p := p.(type) {
	case packet.Literal:
		v := p.Value
		return Node{Kind: "literal", Version: p.Version, TypeID: packet.TypeLiteral, Value: &v}
	case packet.Operator:
		n := Node{Kind: "operator", Version: p.Version, TypeID: p.TypeID, LengthType: p.LengthType.String()}
		for _, child := range p.Children {
			n.Children = append(n.Children, NewNode(child))
		}
		return n
	default:
		return Node{Kind: "unknown"}
	}
}

// Document is everything one run emits. Tree is optional.
type Document struct {
	Summary Summary `json:"summary" yaml:"summary"`
	Tree    *Node   `json:"tree,omitempty" yaml:"tree,omitempty"`
	root    packet.Packet
}

// NewDocument builds a document; the tree is included when withTree is set.
func NewDocument(p packet.Packet, r *bits.Reader, withTree bool) Document {
	doc := Document{Summary: NewSummary(p, r)}
	if withTree {
		n := NewNode(p)
		doc.Tree = &n
		doc.root = p
	}
	return doc
}

func Render(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatText, "":
		return renderText(w, doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// renderText prints the version sum alone on the first line, then the tree
// indented two spaces per level.
func renderText(w io.Writer, doc Document) error {
	if _, err := fmt.Fprintln(w, doc.Summary.VersionSum); err != nil {
		return err
	}
	if doc.root == nil {
		return nil
	}
	var err error
	packet.Walk(doc.root, func(p packet.Packet, depth int) bool {
		if err != nil {
			return false
		}
		indent := strings.Repeat("  ", depth)
		switch p := p.(type) {
		case packet.Literal:
			_, err = fmt.Fprintf(w, "%sliteral v%d value=%d\n", indent, p.Version, p.Value)
		case packet.Operator:
			_, err = fmt.Fprintf(w, "%soperator v%d type=%d length=%s children=%d\n",
				indent, p.Version, p.TypeID, p.LengthType, len(p.Children))
		}
		return err == nil
	})
	return err
}
