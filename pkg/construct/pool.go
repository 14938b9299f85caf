package construct

import "github.com/go-drift/uipack/pkg/object"

// pool is the stack of built objects awaiting a parent. A parent always
// finds its children in the top slots, in plan order.
type pool struct {
	items []object.Object
}

func (p *pool) push(obj object.Object) {
	p.items = append(p.items, obj)
}

func (p *pool) len() int { return len(p.items) }

// below returns the start of the count objects under the top slot.
func (p *pool) below(count int) (int, bool) {
	start := len(p.items) - 1 - count
	return start, start >= 0
}

// collapse removes the count objects under the top slot, so the top
// object takes their place.
func (p *pool) collapse(start, count int) {
	if count == 0 {
		return
	}
	top := len(p.items) - 1
	p.items[start] = p.items[top]
	clear(p.items[start+1:])
	p.items = p.items[:start+1]
}

func (p *pool) pop() object.Object {
	top := len(p.items) - 1
	obj := p.items[top]
	p.items[top] = nil
	p.items = p.items[:top]
	return obj
}

// dispose releases every pooled object and empties the pool.
func (p *pool) dispose() {
	for _, obj := range p.items {
		if d, ok := obj.(object.Disposer); ok {
			d.Dispose()
		}
	}
	clear(p.items)
	p.items = nil
}
