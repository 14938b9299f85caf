package object

import (
	"fmt"
	"strings"
)

// Walk visits root and its descendants depth-first, parents before
// children. Returning false from fn skips the object's children.
func Walk(root Object, fn func(obj Object, depth int) bool) {
	walk(root, 0, fn)
}

func walk(obj Object, depth int, fn func(Object, int) bool) {
	if !fn(obj, depth) {
		return
	}
	if c, ok := obj.(Container); ok {
		for _, ch := range c.Children() {
			walk(ch, depth+1, fn)
		}
	}
}

// Snapshot is a comparable description of an object tree.
type Snapshot struct {
	Type     string     `json:"type"`
	Name     string     `json:"name,omitempty"`
	Item     string     `json:"item,omitempty"`
	Children []Snapshot `json:"children,omitempty"`
	// Pool lists idle items of a list.
	Pool []Snapshot `json:"pool,omitempty"`
}

// Capture returns the snapshot of obj and everything it owns.
func Capture(obj Object) Snapshot {
	s := Snapshot{Type: obj.Type().String(), Name: obj.Name()}
	if a := obj.Asset(); a != nil {
		s.Item = a.URL()
	}
	if c, ok := obj.(Container); ok {
		for _, ch := range c.Children() {
			s.Children = append(s.Children, Capture(ch))
		}
	}
	if p, ok := obj.(ReusePooler); ok {
		for _, it := range p.ReusePool() {
			s.Pool = append(s.Pool, Capture(it))
		}
	}
	return s
}

// String renders the snapshot as an indented outline.
func (s Snapshot) String() string {
	var sb strings.Builder
	s.write(&sb, 0, "")
	return sb.String()
}

func (s Snapshot) write(sb *strings.Builder, depth int, marker string) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(marker)
	sb.WriteString(s.Type)
	if s.Name != "" {
		fmt.Fprintf(sb, " %q", s.Name)
	}
	if s.Item != "" {
		fmt.Fprintf(sb, " <%s>", s.Item)
	}
	sb.WriteByte('\n')
	for _, ch := range s.Children {
		ch.write(sb, depth+1, "")
	}
	for _, it := range s.Pool {
		it.write(sb, depth+1, "(idle) ")
	}
}

// Count returns the number of objects in the snapshot, idle items included.
func (s Snapshot) Count() int {
	n := 1
	for _, ch := range s.Children {
		n += ch.Count()
	}
	for _, it := range s.Pool {
		n += it.Count()
	}
	return n
}
