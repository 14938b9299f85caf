package asset

import (
	"github.com/go-drift/uipack/pkg/bytebuf"
)

// Asset is one registered package item. Assets are immutable once their
// package is decoded and are compared by pointer identity.
type Asset struct {
	ID     string
	Name   string
	Kind   Kind
	Type   ObjectType
	Width  int
	Height int

	// Branches holds item ids of alternate content, parallel to the
	// owning package's branch names. Empty entries mean no alternate.
	Branches []string
	// HighResolution holds item ids of alternate content for scale
	// levels 1..n.
	HighResolution []string

	Owner *Package

	data []byte
}

// Data returns a fresh cursor over the item's binary description.
// Each caller gets its own position, so runs never share cursor state.
func (a *Asset) Data() *bytebuf.Buffer {
	var strings []string
	if a.Owner != nil {
		strings = a.Owner.Strings
	}
	return bytebuf.New(a.data, strings)
}

// URL returns the ui:// address of the item.
func (a *Asset) URL() string {
	if a.Owner == nil {
		return URLPrefix + a.ID
	}
	return URLPrefix + a.Owner.ID + a.ID
}

func (a *Asset) String() string {
	if a.Owner == nil {
		return a.Name
	}
	return a.Owner.Name + "/" + a.Name
}

// Package is a decoded UI package: a string table shared by every item
// description, and the items themselves.
type Package struct {
	ID      string
	Name    string
	Version string

	// Branches names the alternate content sets items may provide.
	Branches []string
	Strings  []string

	items  []*Asset
	byID   map[string]*Asset
	byName map[string]*Asset
}

// Item returns the item with the given id, or nil.
func (p *Package) Item(id string) *Asset {
	return p.byID[id]
}

// ItemByName returns the item with the given name, or nil.
func (p *Package) ItemByName(name string) *Asset {
	return p.byName[name]
}

// Items returns the items in file order.
func (p *Package) Items() []*Asset {
	return p.items
}

// BranchIndex returns the position of the named branch, or -1.
func (p *Package) BranchIndex(name string) int {
	for i, b := range p.Branches {
		if b == name {
			return i
		}
	}
	return -1
}
