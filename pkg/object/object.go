package object

import (
	"fmt"
	"image/color"

	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/bytebuf"
)

// Object is a live UI object. Every implementation embeds Base.
type Object interface {
	// Type returns the variant the object was created as.
	Type() asset.ObjectType
	// Asset returns the item the object was created from, or nil for bare objects.
	Asset() *asset.Asset
	// Content returns the item whose description built the object. It
	// differs from Asset when a branch or resolution variant was selected.
	Content() *asset.Asset
	ID() string
	Name() string
	Parent() Container
	Position() (x, y int)
	Size() (width, height int)
	Alpha() float32
	// Color returns the fill color and whether one was declared.
	Color() (color.RGBA, bool)

	base() *Base
}

// Container is an object that owns an ordered list of children.
type Container interface {
	Object
	// ConstructFrom attaches children[offset:offset+count] in order,
	// applying the properties of the matching child records.
	ConstructFrom(children []Object, offset, count int) error
	Children() []Object
	NumChildren() int
	ChildAt(i int) Object
}

// ReusePooler is an object that keeps idle, unattached items for reuse.
type ReusePooler interface {
	Object
	// SeedReusePool adds items[offset:offset+count] to the reuse pool.
	SeedReusePool(items []Object, offset, count int)
	ReusePool() []Object
}

// Disposer releases an object. Disposed objects must not be reused.
type Disposer interface {
	Dispose()
}

// Base carries the state shared by every object.
type Base struct {
	typ     asset.ObjectType
	item    *asset.Asset
	content *asset.Asset
	parent  Container

	id, name      string
	x, y          int
	width, height int
	alpha         float32
	fill          color.RGBA
	hasFill       bool
	disposed      bool
}

func (b *Base) base() *Base { return b }

func (b *Base) init(t asset.ObjectType, item *asset.Asset) {
	b.typ = t
	b.item = item
	b.content = item
	b.alpha = 1
	if item != nil {
		b.name = item.Name
		b.width, b.height = item.Width, item.Height
	}
}

func (b *Base) Type() asset.ObjectType { return b.typ }
func (b *Base) Asset() *asset.Asset    { return b.item }
func (b *Base) ID() string             { return b.id }
func (b *Base) Name() string           { return b.name }
func (b *Base) Parent() Container      { return b.parent }
func (b *Base) Alpha() float32         { return b.alpha }

func (b *Base) Content() *asset.Asset {
	if b.content != nil {
		return b.content
	}
	return b.item
}

func (b *Base) Position() (x, y int) { return b.x, b.y }

func (b *Base) Size() (width, height int) { return b.width, b.height }

func (b *Base) Color() (color.RGBA, bool) { return b.fill, b.hasFill }

func (b *Base) SetName(name string) { b.name = name }

func (b *Base) SetPosition(x, y int) { b.x, b.y = x, y }

func (b *Base) SetSize(width, height int) { b.width, b.height = width, height }

// Dispose detaches the object and marks it unusable.
func (b *Base) Dispose() {
	b.disposed = true
	b.parent = nil
}

// Disposed reports whether Dispose was called.
func (b *Base) Disposed() bool { return b.disposed }

// setup applies the props block of a child record. rec must be positioned
// at the start of the block.
func (b *Base) setup(rec *bytebuf.Buffer) error {
	rec.ReadUint8() // type, already used by the flattener
	rec.ReadS()     // src
	rec.ReadS()     // package
	b.id, _ = rec.ReadS()
	if name, ok := rec.ReadS(); ok && name != "" {
		b.name = name
	}
	b.x = int(rec.ReadInt())
	b.y = int(rec.ReadInt())
	if rec.ReadBool() {
		b.width = int(rec.ReadInt())
		b.height = int(rec.ReadInt())
	}
	b.alpha = rec.ReadFloat()
	if rec.ReadBool() {
		b.fill = rec.ReadColor()
		b.hasFill = true
	}
	if err := rec.Err(); err != nil {
		return fmt.Errorf("child record %q: %w", b.name, err)
	}
	return nil
}

// SetContent records the item whose description builds obj.
func SetContent(obj Object, content *asset.Asset) {
	obj.base().content = content
}

// Primitive is a leaf object: images, graphs, text and the like.
type Primitive struct {
	Base
}

// NewPrimitive returns an uninitialized leaf object.
func NewPrimitive() *Primitive {
	return &Primitive{}
}
