package testing

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/uipack/pkg/object"
)

type recordingT struct {
	fatals []string
	errs   []string
}

func (r *recordingT) Helper()      {}
func (r *recordingT) Name() string { return "TestFake" }

func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func sampleSnapshot() object.Snapshot {
	return object.Snapshot{
		Type: "component",
		Name: "win",
		Item: "ui://main0001win",
		Children: []object.Snapshot{
			{Type: "image", Name: "a"},
			{Type: "list", Name: "rows", Pool: []object.Snapshot{{Type: "component", Name: "row"}}},
		},
	}
}

func TestMatchesFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "win.json")
	if err := UpdateFile(sampleSnapshot(), path); err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}

	rt := &recordingT{}
	MatchesFile(rt, sampleSnapshot(), path)
	if len(rt.fatals)+len(rt.errs) != 0 {
		t.Errorf("unexpected failures: %v %v", rt.fatals, rt.errs)
	}
}

func TestMatchesFile_Mismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "win.json")
	if err := UpdateFile(sampleSnapshot(), path); err != nil {
		t.Fatal(err)
	}

	changed := sampleSnapshot()
	changed.Children[0].Name = "b"
	rt := &recordingT{}
	MatchesFile(rt, changed, path)
	if len(rt.errs) != 1 {
		t.Fatalf("expected one error, got %v", rt.errs)
	}
	if !strings.Contains(rt.errs[0], UpdateSnapshotsEnv) || !strings.Contains(rt.errs[0], `"b"`) {
		t.Errorf("error should carry the diff and update hint: %s", rt.errs[0])
	}
}

func TestMatchesFile_Missing(t *testing.T) {
	rt := &recordingT{}
	MatchesFile(rt, sampleSnapshot(), filepath.Join(t.TempDir(), "none.json"))
	if len(rt.fatals) != 1 || !strings.Contains(rt.fatals[0], "snapshot file missing") {
		t.Errorf("fatals = %v", rt.fatals)
	}
}

func TestMatchesFile_Update(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "1")
	path := filepath.Join(t.TempDir(), "win.json")

	rt := &recordingT{}
	MatchesFile(rt, sampleSnapshot(), path)
	if len(rt.fatals)+len(rt.errs) != 0 {
		t.Fatalf("unexpected failures: %v %v", rt.fatals, rt.errs)
	}
	got, err := loadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count() != 4 {
		t.Errorf("stored snapshot has %d objects, want 4", got.Count())
	}
}
