package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/uipack/pkg/object"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// UpdateSnapshotsEnv names the variable that rewrites golden files.
const UpdateSnapshotsEnv = "UIPACK_UPDATE_SNAPSHOTS"

// MatchesFile compares the object tree snapshot against a golden JSON file.
// On mismatch it reports a diff and instructions for updating. When
// UIPACK_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func MatchesFile(t TestingT, got object.Snapshot, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := UpdateFile(got, path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got):\n%s\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes the snapshot to the given path, creating directories
// as needed.
func UpdateFile(s object.Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func loadSnapshot(path string) (object.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return object.Snapshot{}, err
	}
	var snap object.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return object.Snapshot{}, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return snap, nil
}

func marshalSnapshot(s object.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
