package object

import (
	"sync"

	"github.com/go-drift/uipack/pkg/asset"
)

// Creator returns a new, uninitialized object. The factory initializes it.
type Creator func() Object

// Factory maps object variants to constructors. Per-item extensions,
// keyed by ui:// address, take precedence over the variant constructor.
// A Factory is safe for concurrent use.
type Factory struct {
	mu         sync.RWMutex
	creators   map[asset.ObjectType]Creator
	extensions map[string]Creator
}

// NewFactory returns a factory with a constructor for every known variant.
func NewFactory() *Factory {
	f := &Factory{
		creators:   make(map[asset.ObjectType]Creator),
		extensions: make(map[string]Creator),
	}
	for _, t := range asset.ObjectTypes() {
		switch {
		case t == asset.TypeList:
			f.creators[t] = func() Object { return NewList() }
		case t.IsContainer():
			f.creators[t] = func() Object { return NewComponent() }
		default:
			f.creators[t] = func() Object { return NewPrimitive() }
		}
	}
	return f
}

// Register replaces the constructor for a variant.
func (f *Factory) Register(t asset.ObjectType, c Creator) {
	f.mu.Lock()
	f.creators[t] = c
	f.mu.Unlock()
}

// SetExtension installs a constructor for objects created from the item at
// url. A nil creator removes the extension.
func (f *Factory) SetExtension(url string, c Creator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c == nil {
		delete(f.extensions, url)
		return
	}
	f.extensions[url] = c
}

// NewObject creates an object for item. Component items always yield a
// Container, even when their declared variant maps to a leaf constructor.
func (f *Factory) NewObject(item *asset.Asset) Object {
	f.mu.RLock()
	c, ok := f.extensions[item.URL()]
	if !ok {
		c = f.creators[item.Type]
	}
	f.mu.RUnlock()

	var obj Object
	if c != nil {
		obj = c()
	}
	if item.Kind != asset.KindPrimitive {
		if _, isContainer := obj.(Container); !isContainer {
			obj = NewComponent()
		}
	} else if obj == nil {
		obj = NewPrimitive()
	}
	obj.base().init(item.Type, item)
	return obj
}

// NewBare creates an object of variant t with no backing item.
func (f *Factory) NewBare(t asset.ObjectType) Object {
	f.mu.RLock()
	c := f.creators[t]
	f.mu.RUnlock()

	var obj Object
	if c != nil {
		obj = c()
	}
	if obj == nil {
		obj = NewPrimitive()
	}
	obj.base().init(t, nil)
	return obj
}
