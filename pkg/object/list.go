package object

// List is a container whose items are recycled through a reuse pool.
// Idle items in the pool are not children of the list.
type List struct {
	Component
	defaultItem string
	idle        []Object
}

// NewList returns an uninitialized list.
func NewList() *List {
	l := &List{}
	l.outer = l
	return l
}

// DefaultItem returns the ui:// address used for items without their own.
func (l *List) DefaultItem() string { return l.defaultItem }

// SetDefaultItem changes the default item address.
func (l *List) SetDefaultItem(url string) { l.defaultItem = url }

// SeedReusePool adds items[offset:offset+count] to the reuse pool.
func (l *List) SeedReusePool(items []Object, offset, count int) {
	for _, obj := range items[offset : offset+count] {
		l.ReturnToPool(obj)
	}
}

// ReusePool returns the idle items, oldest first.
func (l *List) ReusePool() []Object { return l.idle }

// ReturnToPool makes obj idle. It is detached from its parent.
func (l *List) ReturnToPool(obj Object) {
	if p, ok := obj.Parent().(interface{ RemoveChild(Object) bool }); ok {
		p.RemoveChild(obj)
	}
	l.idle = append(l.idle, obj)
}

// GetFromPool takes the most recently returned idle item created from url.
// An empty url means the default item. It returns nil when none is idle.
func (l *List) GetFromPool(url string) Object {
	if url == "" {
		url = l.defaultItem
	}
	for i := len(l.idle) - 1; i >= 0; i-- {
		obj := l.idle[i]
		if poolKey(obj) == url {
			l.idle = append(l.idle[:i], l.idle[i+1:]...)
			return obj
		}
	}
	return nil
}

// AddItemFromPool moves an idle item for url into the list's children.
func (l *List) AddItemFromPool(url string) (Object, bool) {
	obj := l.GetFromPool(url)
	if obj == nil {
		return nil, false
	}
	l.AddChild(obj)
	return obj, true
}

// RemoveChildToPool detaches a child and makes it idle.
func (l *List) RemoveChildToPool(obj Object) bool {
	if !l.RemoveChild(obj) {
		return false
	}
	l.idle = append(l.idle, obj)
	return true
}

// Dispose disposes the list, its children and every idle item.
func (l *List) Dispose() {
	for _, obj := range l.idle {
		if d, ok := obj.(Disposer); ok {
			d.Dispose()
		}
	}
	l.idle = nil
	l.Component.Dispose()
}

func poolKey(obj Object) string {
	if a := obj.Asset(); a != nil {
		return a.URL()
	}
	return ""
}
