// Package scene groups synthesized board solids into a hierarchical object
// tree inside a host document: one group per construction section, with a
// sub-group per part name when a record repeats.
package scene

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/woodshop-tools/framecad/internal/brep"
	"github.com/woodshop-tools/framecad/internal/model"
)

// Provenance records where a placed solid came from, so exports and labels
// can be produced without walking back to the cut-list.
type Provenance struct {
	RecordID   string  `json:"record_id"`
	RecordName string  `json:"record_name"`
	Section    string  `json:"section"`
	NominalDim string  `json:"nominal_dim"`
	LengthIn   float64 `json:"length_in"`
	AngleDeg   float64 `json:"angle_deg"`
	Instance   int     `json:"instance"` // 1-based when quantity > 1, else 0
}

// Node is a named object in the host document's tree.
type Node interface {
	Name() string
}

// Document is the narrow surface of the host CAD document that the
// placement stage mutates. Keeping it this small lets the synthesizer and
// placement logic run against an in-memory tree in tests.
type Document interface {
	CreateGroup(name string) Node
	CreateSolidObject(name string, solid *brep.Solid, color model.MaterialColor, prov Provenance) Node
	AddToGroup(parent, child Node)
}

// MemNode is a node of the in-memory document implementation.
type MemNode struct {
	NodeName string              `json:"name"`
	Solid    *brep.Solid         `json:"-"`
	Color    model.MaterialColor `json:"color"`
	Prov     Provenance          `json:"provenance"`
	Children []*MemNode          `json:"children,omitempty"`
}

func (n *MemNode) Name() string { return n.NodeName }

// IsGroup reports whether the node is a grouping node rather than a solid.
func (n *MemNode) IsGroup() bool { return n.Solid == nil }

// MemDocument is an in-memory Document for tests, exports, and headless
// runs. Roots holds the top-level groups in creation order.
type MemDocument struct {
	Roots []*MemNode
}

func NewMemDocument() *MemDocument { return &MemDocument{} }

func (d *MemDocument) CreateGroup(name string) Node {
	n := &MemNode{NodeName: name}
	d.Roots = append(d.Roots, n)
	return n
}

func (d *MemDocument) CreateSolidObject(name string, solid *brep.Solid, color model.MaterialColor, prov Provenance) Node {
	n := &MemNode{NodeName: name, Solid: solid, Color: color, Prov: prov}
	d.Roots = append(d.Roots, n)
	return n
}

// AddToGroup moves child under parent. Both must be MemNodes created by
// this document.
func (d *MemDocument) AddToGroup(parent, child Node) {
	p, pok := parent.(*MemNode)
	c, cok := child.(*MemNode)
	if !pok || !cok {
		return
	}
	for i, r := range d.Roots {
		if r == c {
			d.Roots = append(d.Roots[:i], d.Roots[i+1:]...)
			break
		}
	}
	p.Children = append(p.Children, c)
}

// WalkSolids visits every solid node in the tree in placement order.
func (d *MemDocument) WalkSolids(visit func(*MemNode)) {
	var walk func(n *MemNode)
	walk = func(n *MemNode) {
		if !n.IsGroup() {
			visit(n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range d.Roots {
		walk(r)
	}
}

// SanitizeName converts a display name into an identifier-safe object
// name: letters, digits, and underscores only, never starting with a
// digit.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '/' {
			b.WriteRune('_')
		}
		// Other punctuation is dropped.
	}
	s := b.String()
	if s == "" {
		s = "Part"
	}
	if unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	return s
}

// nameRegistry hands out collision-free object names by suffixing
// duplicates with a counter.
type nameRegistry struct {
	used map[string]int
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{used: map[string]int{}}
}

func (r *nameRegistry) claim(base string) string {
	n := r.used[base]
	r.used[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s_%03d", base, n+1)
}
