package testing

import (
	"fmt"

	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/object"
)

// Finder locates objects in a constructed tree.
type Finder interface {
	// Evaluate returns all matching objects under root (depth-first
	// pre-order, root included). Idle list items are not searched.
	Evaluate(root object.Object) []object.Object
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	objects []object.Object
	finder  Finder
}

// Find evaluates f under root.
func Find(root object.Object, f Finder) FinderResult {
	return FinderResult{objects: f.Evaluate(root), finder: f}
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() object.Object {
	if len(r.objects) == 0 {
		panic(fmt.Sprintf("Finder found no objects: %s", r.description()))
	}
	return r.objects[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() object.Object {
	if len(r.objects) == 0 {
		return nil
	}
	return r.objects[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) object.Object {
	if index < 0 || index >= len(r.objects) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.objects), r.description()))
	}
	return r.objects[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []object.Object {
	return r.objects
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.objects)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.objects) > 0
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

type predicateFinder struct {
	fn   func(object.Object) bool
	desc string
}

func (f *predicateFinder) Evaluate(root object.Object) []object.Object {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByName matches objects with the given name.
func ByName(name string) Finder {
	return &predicateFinder{
		fn:   func(o object.Object) bool { return o.Name() == name },
		desc: fmt.Sprintf("ByName(%q)", name),
	}
}

// ByType matches objects created as variant t.
func ByType(t asset.ObjectType) Finder {
	return &predicateFinder{
		fn:   func(o object.Object) bool { return o.Type() == t },
		desc: fmt.Sprintf("ByType(%s)", t),
	}
}

// ByItem matches objects created from the item at url.
func ByItem(url string) Finder {
	return &predicateFinder{
		fn: func(o object.Object) bool {
			a := o.Asset()
			return a != nil && a.URL() == url
		},
		desc: fmt.Sprintf("ByItem(%s)", url),
	}
}

// ByPredicate matches objects satisfying fn.
func ByPredicate(fn func(object.Object) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds objects matching 'matching' that are descendants
// of objects matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root object.Object) []object.Object {
	var results []object.Object
	seen := make(map[object.Object]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		c, ok := ancestor.(object.Container)
		if !ok {
			continue
		}
		// Search within each ancestor's subtree, skipping the ancestor itself.
		for _, child := range c.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches objects satisfying 'matching'
// that are descendants of objects matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

func collectMatches(root object.Object, fn func(object.Object) bool) []object.Object {
	if root == nil {
		return nil
	}
	var out []object.Object
	object.Walk(root, func(o object.Object, _ int) bool {
		if fn(o) {
			out = append(out, o)
		}
		return true
	})
	return out
}
