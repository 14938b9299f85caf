package testing

import (
	"testing"

	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/pack"
)

// Encode encodes src, failing the test on error.
func Encode(tb testing.TB, src *pack.PackageSource) []byte {
	tb.Helper()
	data, err := pack.Encode(src)
	if err != nil {
		tb.Fatalf("encode package %s: %v", src.Name, err)
	}
	return data
}

// NewRegistry encodes, decodes and registers every source.
func NewRegistry(tb testing.TB, srcs ...*pack.PackageSource) *asset.Registry {
	tb.Helper()
	reg := asset.NewRegistry()
	for _, src := range srcs {
		pkg, err := asset.Decode(Encode(tb, src))
		if err != nil {
			tb.Fatalf("decode package %s: %v", src.Name, err)
		}
		if err := reg.Add(pkg); err != nil {
			tb.Fatalf("register package %s: %v", src.Name, err)
		}
	}
	return reg
}

// Item resolves url, failing the test when it is missing.
func Item(tb testing.TB, reg *asset.Registry, url string) *asset.Asset {
	tb.Helper()
	a, ok := reg.ItemByURL(url)
	if !ok {
		tb.Fatalf("item %s not found", url)
	}
	return a
}

// Component returns a component item source.
func Component(id string, children ...pack.ChildSource) pack.ItemSource {
	return pack.ItemSource{ID: id, Name: id, Children: children}
}

// Primitive returns a primitive item source of the given variant.
func Primitive(id, typ string) pack.ItemSource {
	return pack.ItemSource{ID: id, Name: id, Kind: "primitive", Type: typ}
}

// Ref returns a child record referencing item src of the enclosing package.
func Ref(name, typ, src string) pack.ChildSource {
	return pack.ChildSource{Name: name, Type: typ, Src: src}
}

// Bare returns a child record with no item reference.
func Bare(name, typ string) pack.ChildSource {
	return pack.ChildSource{Name: name, Type: typ}
}

// List returns a list record. Each url overrides defaultItem for one
// item; an empty url uses the default.
func List(name, defaultItem string, urls ...string) pack.ChildSource {
	l := &pack.ListSource{DefaultItem: defaultItem}
	for _, u := range urls {
		l.Items = append(l.Items, pack.ListItemSource{URL: u})
	}
	return pack.ChildSource{Name: name, Type: "list", List: l}
}
