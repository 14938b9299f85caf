package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-drift/uipack/pkg/asset"
	uierrors "github.com/go-drift/uipack/pkg/errors"
	"github.com/go-drift/uipack/pkg/pack"
	uitest "github.com/go-drift/uipack/pkg/testing"
)

func encode(t *testing.T, id, name string) []byte {
	t.Helper()
	return uitest.Encode(t, &pack.PackageSource{
		ID:   id,
		Name: name,
		Items: []pack.ItemSource{
			uitest.Primitive("icon", "image"),
			uitest.Component("win", uitest.Ref("bg", "image", "icon")),
		},
	})
}

func TestPutGet(t *testing.T) {
	st, cleanup := MustGetTempStore()
	defer cleanup()

	data := encode(t, "main0001", "Main")
	pkg, err := st.Put(data)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if pkg.ID != "main0001" || pkg.Name != "Main" {
		t.Errorf("Put returned %s/%s", pkg.ID, pkg.Name)
	}

	got, err := st.Get("main0001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Get returned different bytes")
	}
	got, err = st.GetByName("Main")
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("GetByName = %d bytes, %v", len(got), err)
	}

	if _, err := st.Get("none0001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
	if _, err := st.GetByName("None"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByName missing = %v, want ErrNotFound", err)
	}
}

func TestPutRejectsInvalid(t *testing.T) {
	st, cleanup := MustGetTempStore()
	defer cleanup()

	_, err := st.Put([]byte("not a package"))
	if !errors.Is(err, asset.ErrBadMagic) {
		t.Errorf("Put = %v, want ErrBadMagic", err)
	}
	var e *uierrors.Error
	if !errors.As(err, &e) || e.Kind != uierrors.KindStore {
		t.Errorf("Put = %v, want a store error", err)
	}

	if _, err := st.Put(encode(t, "main0001", "Main")); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Put(encode(t, "main0002", "Main")); err == nil {
		t.Error("Put with a name owned by another id succeeded")
	}
}

func TestPutRenames(t *testing.T) {
	st, cleanup := MustGetTempStore()
	defer cleanup()

	if _, err := st.Put(encode(t, "main0001", "Main")); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Put(encode(t, "main0001", "Renamed")); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetByName("Main"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old name still resolves: %v", err)
	}
	entries, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "Renamed" {
		t.Errorf("List = %v", entries)
	}
}

func TestListAndDelete(t *testing.T) {
	st, cleanup := MustGetTempStore()
	defer cleanup()

	a := encode(t, "bbbb0001", "Beta")
	b := encode(t, "aaaa0001", "Alpha")
	for _, data := range [][]byte{a, b} {
		if _, err := st.Put(data); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{
		{ID: "aaaa0001", Name: "Alpha", Size: len(b)},
		{ID: "bbbb0001", Name: "Beta", Size: len(a)},
	}
	if len(entries) != len(want) {
		t.Fatalf("List = %v, want %v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, entries[i], want[i])
		}
	}

	if err := st.Delete("aaaa0001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := st.Delete("aaaa0001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
	if _, err := st.GetByName("Alpha"); !errors.Is(err, ErrNotFound) {
		t.Errorf("name index kept deleted package: %v", err)
	}
}

func TestLoadInto(t *testing.T) {
	st, cleanup := MustGetTempStore()
	defer cleanup()
	log := uitest.RecordErrors(t)

	for _, data := range [][]byte{encode(t, "main0001", "Main"), encode(t, "libr0001", "Lib")} {
		if _, err := st.Put(data); err != nil {
			t.Fatal(err)
		}
	}

	reg := asset.NewRegistry()
	// Lib is already registered, so the stored copy is skipped.
	lib, err := asset.Decode(encode(t, "libr0001", "Lib"))
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Add(lib); err != nil {
		t.Fatal(err)
	}

	n, err := st.LoadInto(reg)
	if err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if n != 1 {
		t.Errorf("loaded %d packages, want 1", n)
	}
	if _, ok := reg.ItemByURL("ui://main0001win"); !ok {
		t.Error("stored package not registered")
	}
	if errs := log.Errors(); len(errs) != 1 || errs[0].Kind != uierrors.KindStore {
		t.Errorf("reported %v, want one store error", errs)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.db")
	st, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.Put(encode(t, "main0001", "Main")); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if _, err := st.GetByName("Main"); err != nil {
		t.Errorf("package lost across reopen: %v", err)
	}
}
