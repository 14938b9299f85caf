package object

import (
	"fmt"

	"github.com/go-drift/uipack/pkg/asset"
)

// Component is a container built from a component item.
type Component struct {
	Base
	children []Object
	outer    Container
}

// NewComponent returns an uninitialized component.
func NewComponent() *Component {
	return &Component{}
}

func (c *Component) Children() []Object { return c.children }

func (c *Component) NumChildren() int { return len(c.children) }

func (c *Component) ChildAt(i int) Object { return c.children[i] }

// AddChild appends obj, detaching it from any previous parent.
func (c *Component) AddChild(obj Object) {
	b := obj.base()
	if old, ok := b.parent.(interface{ RemoveChild(Object) bool }); ok {
		old.RemoveChild(obj)
	}
	b.parent = c.self()
	c.children = append(c.children, obj)
}

// RemoveChild detaches obj and reports whether it was a child.
func (c *Component) RemoveChild(obj Object) bool {
	for i, ch := range c.children {
		if ch == obj {
			c.children = append(c.children[:i], c.children[i+1:]...)
			obj.base().parent = nil
			return true
		}
	}
	return false
}

// self returns the outermost container embedding c, so children of a List
// see the List as their parent.
func (c *Component) self() Container {
	if c.outer != nil {
		return c.outer
	}
	return c
}

// ConstructFrom attaches children[offset:offset+count]. The component's
// description must declare exactly count child records; record i
// configures child i.
func (c *Component) ConstructFrom(children []Object, offset, count int) error {
	if offset < 0 || count < 0 || offset+count > len(children) {
		return fmt.Errorf("component %q: children [%d:%d] outside pool of %d", c.name, offset, offset+count, len(children))
	}
	content := c.Content()
	if content == nil {
		for _, ch := range children[offset : offset+count] {
			c.AddChild(ch)
		}
		return nil
	}

	buf := content.Data()
	if buf.Seek(0, asset.ComponentBasic) {
		w, h := int(buf.ReadInt()), int(buf.ReadInt())
		if c.width == 0 && c.height == 0 {
			c.width, c.height = w, h
		}
	}
	if !buf.Seek(0, asset.ComponentChildren) {
		if err := buf.Err(); err != nil {
			return fmt.Errorf("component %q: %w", content, err)
		}
		if count != 0 {
			return fmt.Errorf("component %q declares no children, given %d", content, count)
		}
		return nil
	}
	n := int(buf.ReadUshort())
	if n != count {
		return fmt.Errorf("component %q declares %d children, given %d", content, n, count)
	}

	for i := range n {
		dataLen := int(buf.ReadUshort())
		curPos := buf.Position()
		rec := buf.Slice(curPos, dataLen)
		child := children[offset+i]
		if rec.Seek(0, asset.RecordProps) {
			if err := child.base().setup(rec); err != nil {
				return fmt.Errorf("component %q: %w", content, err)
			}
		}
		if l, ok := child.(*List); ok && rec.Seek(0, asset.RecordListItems) {
			l.defaultItem, _ = rec.ReadS()
		}
		if err := rec.Err(); err != nil {
			return fmt.Errorf("component %q child %d: %w", content, i, err)
		}
		c.AddChild(child)
		buf.SetPosition(curPos + dataLen)
	}
	if err := buf.Err(); err != nil {
		return fmt.Errorf("component %q: %w", content, err)
	}
	return nil
}

// Dispose disposes the component and its children.
func (c *Component) Dispose() {
	for _, ch := range c.children {
		if d, ok := ch.(Disposer); ok {
			d.Dispose()
		}
	}
	c.children = nil
	c.Base.Dispose()
}
