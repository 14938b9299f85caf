// Package testing provides helpers for testing package loading and
// construction.
//
// # Fixtures
//
// Build packages in code and register them in one call:
//
//	reg := uitest.NewRegistry(t, &pack.PackageSource{
//	    ID:   "main0001",
//	    Name: "Main",
//	    Items: []pack.ItemSource{
//	        uitest.Primitive("icon", "image"),
//	        uitest.Component("win", uitest.Ref("bg", "image", "icon")),
//	    },
//	})
//	win := uitest.Item(t, reg, "ui://main0001win")
//
// # Time
//
// FakeClock controls the time seen by the scheduler:
//
//	clk := uitest.NewFakeClock()
//	clk.AdvanceOnRead(time.Millisecond) // every budget check costs 1ms
//
// # Finding Objects
//
// Finders query a built tree:
//
//	bg := uitest.Find(root, uitest.ByName("bg")).First()
//	n := uitest.Find(root, uitest.ByType(asset.TypeText)).Count()
//
// # Reported Errors
//
// RecordErrors captures errors reported through pkg/errors for the rest
// of the test.
//
// # Snapshot Testing
//
// Compare an object tree against a golden file:
//
//	uitest.MatchesFile(t, object.Capture(root), "testdata/window.json")
//
// Update golden files with:
//
//	UIPACK_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import uitest "github.com/go-drift/uipack/pkg/testing"
package testing
