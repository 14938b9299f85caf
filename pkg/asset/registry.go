package asset

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds the loaded packages and resolves item references.
// All methods are safe for concurrent use. Lookups for the same package
// and item always return the same *Asset while the package is registered.
type Registry struct {
	mu         sync.RWMutex
	byID       map[string]*Package
	byName     map[string]*Package
	branch     string
	scaleLevel int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]*Package),
		byName: make(map[string]*Package),
	}
}

// Add registers pkg. Package ids and names must be unique.
func (r *Registry) Add(pkg *Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[pkg.ID]; ok {
		return fmt.Errorf("package id %s already registered", pkg.ID)
	}
	if _, ok := r.byName[pkg.Name]; ok {
		return fmt.Errorf("package name %q already registered", pkg.Name)
	}
	r.byID[pkg.ID] = pkg
	r.byName[pkg.Name] = pkg
	return nil
}

// Remove unregisters the package with the given id and reports whether it
// was present.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	pkg, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	delete(r.byName, pkg.Name)
	return true
}

// Packages returns the registered packages sorted by name.
func (r *Registry) Packages() []*Package {
	r.mu.RLock()
	out := make([]*Package, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Package) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// PackageByID returns the package with the given id.
func (r *Registry) PackageByID(id string) (*Package, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	return p, ok
}

// PackageByName returns the package with the given name.
func (r *Registry) PackageByName(name string) (*Package, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	return p, ok
}

// ItemByURL resolves a ui:// address.
func (r *Registry) ItemByURL(url string) (*Asset, bool) {
	ref, ok := ParseURL(url)
	if !ok {
		return nil, false
	}
	if ref.ByName() {
		return r.ItemByName(ref.PackageName, ref.ItemName)
	}
	pkg, ok := r.PackageByID(ref.PackageID)
	if !ok {
		return nil, false
	}
	a := pkg.Item(ref.ItemID)
	return a, a != nil
}

// ItemByName resolves an item by package and item name.
func (r *Registry) ItemByName(pkgName, itemName string) (*Asset, bool) {
	pkg, ok := r.PackageByName(pkgName)
	if !ok {
		return nil, false
	}
	a := pkg.ItemByName(itemName)
	return a, a != nil
}

// SetBranch selects the named branch. An empty name selects the main content.
func (r *Registry) SetBranch(name string) {
	r.mu.Lock()
	r.branch = name
	r.mu.Unlock()
}

// Branch returns the selected branch name.
func (r *Registry) Branch() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.branch
}

// SetScaleLevel selects high resolution content. Level 0 is the base content.
func (r *Registry) SetScaleLevel(level int) {
	r.mu.Lock()
	r.scaleLevel = max(level, 0)
	r.mu.Unlock()
}

// ScaleLevel returns the selected scale level.
func (r *Registry) ScaleLevel() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scaleLevel
}

// Content returns the asset whose description should be used for a: the
// branch alternate first, then the high resolution alternate of that, and
// a itself when neither applies.
func (r *Registry) Content(a *Asset) *Asset {
	if a == nil || a.Owner == nil {
		return a
	}
	r.mu.RLock()
	branch, level := r.branch, r.scaleLevel
	r.mu.RUnlock()

	if branch != "" && len(a.Branches) > 0 {
		if i := a.Owner.BranchIndex(branch); i >= 0 && i < len(a.Branches) && a.Branches[i] != "" {
			if alt := a.Owner.Item(a.Branches[i]); alt != nil {
				a = alt
			}
		}
	}
	if level > 0 && level <= len(a.HighResolution) {
		if id := a.HighResolution[level-1]; id != "" {
			if alt := a.Owner.Item(id); alt != nil {
				a = alt
			}
		}
	}
	return a
}
