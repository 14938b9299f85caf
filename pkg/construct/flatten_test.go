package construct

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-drift/uipack/pkg/asset"
	uierrors "github.com/go-drift/uipack/pkg/errors"
	"github.com/go-drift/uipack/pkg/object"
	"github.com/go-drift/uipack/pkg/pack"
	uitest "github.com/go-drift/uipack/pkg/testing"
)

func TestFlattenTwoChildren(t *testing.T) {
	reg := newRegistry(t)
	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("win")))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(plan) != 3 {
		t.Fatalf("plan length = %d, want 3\n%s", len(plan), plan)
	}
	if got := plan[0].Asset.ID; got != "icon" {
		t.Errorf("plan[0] = %s, want icon", got)
	}
	if got := plan[1].Asset.ID; got != "label" {
		t.Errorf("plan[1] = %s, want label", got)
	}
	root := plan.Root()
	if root.Asset.ID != "win" || root.ChildCount != 2 {
		t.Errorf("closing node = %s, want win with 2 children", root)
	}
	if err := plan.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFlattenCountsEveryNestedNode(t *testing.T) {
	reg := newRegistry(t)
	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("nested")))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	// panel{icon, caption}, icon
	if len(plan) != 5 {
		t.Fatalf("plan length = %d, want 5\n%s", len(plan), plan)
	}
	want := []struct {
		id       string
		children int
	}{
		{"icon", 0},
		{"label", 0},
		{"panel", 2},
		{"icon", 0},
		{"nested", 2},
	}
	for i, w := range want {
		if plan[i].Asset.ID != w.id || plan[i].ChildCount != w.children {
			t.Errorf("plan[%d] = %s, want %s with %d children", i, plan[i], w.id, w.children)
		}
	}
}

func TestFlattenList(t *testing.T) {
	reg := newRegistry(t)
	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("menu")))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(plan) != 5 {
		t.Fatalf("plan length = %d, want 5\n%s", len(plan), plan)
	}
	list := plan[3]
	if list.Asset != nil || list.Type != asset.TypeList || list.ListItemCount != 3 {
		t.Errorf("list node = %s, want bare list with 3 items", list)
	}
	for i := range 3 {
		if plan[i].Asset.ID != "row" {
			t.Errorf("plan[%d] = %s, want row", i, plan[i])
		}
	}
	if root := plan.Root(); root.ChildCount != 1 {
		t.Errorf("root children = %d, want 1", root.ChildCount)
	}
}

func TestFlattenListSkipsUnresolvedItems(t *testing.T) {
	reg := newRegistry(t)
	log := uitest.RecordErrors(t)

	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("sparse")))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(plan) != 4 {
		t.Fatalf("plan length = %d, want 4\n%s", len(plan), plan)
	}
	if n := plan[2].ListItemCount; n != 2 {
		t.Errorf("list item count = %d, want 2", n)
	}
	if n := len(log.Errors()); n != 0 {
		t.Errorf("reported %d errors for dropped list items, want none", n)
	}
}

func TestFlattenListItemsWithChildren(t *testing.T) {
	reg := newRegistry(t)
	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("grid")))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	// icon, cell, icon, cell, list, grid
	if len(plan) != 6 {
		t.Fatalf("plan length = %d, want 6\n%s", len(plan), plan)
	}
	if plan[1].ChildCount != 1 || plan[3].ChildCount != 1 {
		t.Errorf("cells should own one child each:\n%s", plan)
	}
	if plan[4].ListItemCount != 2 {
		t.Errorf("list item count = %d, want 2", plan[4].ListItemCount)
	}
}

func TestFlattenUnresolvedChildDegradesToBare(t *testing.T) {
	reg := newRegistry(t)
	log := uitest.RecordErrors(t)

	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("broken")))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(plan) != 3 {
		t.Fatalf("plan length = %d, want 3", len(plan))
	}
	gone := plan[1]
	if gone.Asset != nil || gone.Type != asset.TypeImage {
		t.Errorf("unresolved child = %s, want bare image", gone)
	}

	errs := log.Errors()
	if len(errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(errs))
	}
	if errs[0].Kind != uierrors.KindResolve || errs[0].Item != "broken" {
		t.Errorf("reported %v, want a resolve error for broken", errs[0])
	}
}

func TestFlattenResolvesOtherPackages(t *testing.T) {
	reg := newRegistry(t)
	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("cross")))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	badge := plan[0].Asset
	if badge == nil || badge.Owner.ID != libID {
		t.Fatalf("plan[0] = %s, want badge from %s", plan[0], libID)
	}
	if want := uitest.Item(t, reg, asset.NameURL("Lib", "badge")); badge != want {
		t.Error("resolved asset is not the registered instance")
	}
}

func TestFlattenPrimitiveRoot(t *testing.T) {
	reg := newRegistry(t)
	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("icon")))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(plan) != 1 || plan[0].ChildCount != 0 {
		t.Errorf("plan = %s, want a single leaf", plan)
	}
}

func TestFlattenRejectsCycles(t *testing.T) {
	reg := newRegistry(t)
	for _, id := range []string{"loop", "ping"} {
		t.Run(id, func(t *testing.T) {
			_, err := Flatten(reg, uitest.Item(t, reg, mainURL(id)))
			if !errors.Is(err, ErrCyclicReference) {
				t.Fatalf("err = %v, want ErrCyclicReference", err)
			}
			var e *uierrors.Error
			if !errors.As(err, &e) || e.Kind != uierrors.KindParse {
				t.Errorf("err = %v, want a parse error", err)
			}
		})
	}
}

func TestFlattenCorruptRecordIsFatal(t *testing.T) {
	src := &pack.PackageSource{
		ID:   mainID,
		Name: "Main",
		Items: []pack.ItemSource{
			uitest.Primitive("icon", "image"),
			{
				ID: "win", Name: "win", Width: 0x7a7a7a7a, Height: 0x7b7b7b7b,
				Children: []pack.ChildSource{
					uitest.Ref("a", "image", "icon"),
					uitest.Ref("b", "image", "icon"),
				},
			},
		},
	}
	data := uitest.Encode(t, src)
	patchFirstRecordLen(t, data, 0x7a7a7a7a, 0x7b7b7b7b, 3)

	pkg, err := asset.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	reg := asset.NewRegistry()
	if err := reg.Add(pkg); err != nil {
		t.Fatal(err)
	}

	_, err = Flatten(reg, pkg.Item("win"))
	if !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("err = %v, want ErrCorruptRecord", err)
	}
	if !strings.Contains(err.Error(), "record 0") {
		t.Errorf("err = %v, want it to name record 0", err)
	}
}

func TestFlattenIgnoresTrailingRecordBytes(t *testing.T) {
	plain := newRegistry(t)

	src := mainSource()
	for i := range src.Items {
		for j := range src.Items[i].Children {
			src.Items[i].Children[j].Padding = 7
		}
	}
	padded := uitest.NewRegistry(t, src, libSource())

	for _, id := range []string{"win", "nested", "grid", "mixed"} {
		want, err := Flatten(plain, uitest.Item(t, plain, mainURL(id)))
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		got, err := Flatten(padded, uitest.Item(t, padded, mainURL(id)))
		if err != nil {
			t.Fatalf("%s padded: %v", id, err)
		}
		if got.String() != want.String() {
			t.Errorf("%s: padded plan differs\ngot:\n%swant:\n%s", id, got, want)
		}
	}
}

// Record lengths are unsigned: records past 32767 bytes still flatten
// and build.
func TestFlattenLongRecords(t *testing.T) {
	plain := newRegistry(t)

	src := mainSource()
	for i := range src.Items {
		for j := range src.Items[i].Children {
			src.Items[i].Children[j].Padding = 40000
		}
	}
	long := uitest.NewRegistry(t, src, libSource())

	for _, id := range []string{"win", "grid"} {
		want, err := Flatten(plain, uitest.Item(t, plain, mainURL(id)))
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		got, err := Flatten(long, uitest.Item(t, long, mainURL(id)))
		if err != nil {
			t.Fatalf("%s with long records: %v", id, err)
		}
		if got.String() != want.String() {
			t.Errorf("%s: plan differs\ngot:\n%swant:\n%s", id, got, want)
		}

		wantObj, err := RunSync(plain, uitest.Item(t, plain, mainURL(id)), Options{})
		if err != nil {
			t.Fatal(err)
		}
		gotObj, err := RunSync(long, uitest.Item(t, long, mainURL(id)), Options{})
		if err != nil {
			t.Fatalf("%s with long records: %v", id, err)
		}
		if g, w := object.Capture(gotObj).String(), object.Capture(wantObj).String(); g != w {
			t.Errorf("%s: tree differs\ngot:\n%swant:\n%s", id, g, w)
		}
	}
}

func TestFlattenSelectsVariants(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		scale    int
		content  string
		children int
	}{
		{"main", "", 0, "win", 2},
		{"branch", "de", 0, "win_de", 3},
		{"unknown branch", "fr", 0, "win", 2},
		{"high resolution", "", 1, "win_hd", 1},
		{"scale out of range", "", 2, "win", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newRegistry(t)
			reg.SetBranch(tt.branch)
			reg.SetScaleLevel(tt.scale)

			plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("win")))
			if err != nil {
				t.Fatalf("Flatten: %v", err)
			}
			root := plan.Root()
			if root.Asset.ID != "win" {
				t.Errorf("root asset = %s, want win", root.Asset.ID)
			}
			if root.Content.ID != tt.content {
				t.Errorf("root content = %s, want %s", root.Content.ID, tt.content)
			}
			if root.ChildCount != tt.children {
				t.Errorf("root children = %d, want %d", root.ChildCount, tt.children)
			}
		})
	}
}

func TestFlattenNilRoot(t *testing.T) {
	reg := newRegistry(t)
	if _, err := Flatten(reg, nil); !errors.Is(err, ErrRootNotFound) {
		t.Errorf("err = %v, want ErrRootNotFound", err)
	}
}

func TestPlanValidate(t *testing.T) {
	icon := &asset.Asset{ID: "icon", Name: "icon"}
	win := &asset.Asset{ID: "win", Name: "win", Kind: asset.KindComponent, Type: asset.TypeComponent}

	tests := []struct {
		name string
		plan Plan
		ok   bool
	}{
		{"leaf", Plan{{Asset: icon}}, true},
		{"two children", Plan{{Asset: icon}, {Asset: icon}, {Asset: win, ChildCount: 2}}, true},
		{"bare list", Plan{{Asset: icon}, {Type: asset.TypeList, ListItemCount: 1}}, true},
		{"empty", nil, false},
		{"underflow", Plan{{Asset: icon}, {Asset: win, ChildCount: 2}}, false},
		{"list underflow", Plan{{Type: asset.TypeList, ListItemCount: 1}}, false},
		{"leftover", Plan{{Asset: icon}, {Asset: icon}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrPoolUnderflow) {
				t.Errorf("err = %v, want ErrPoolUnderflow", err)
			}
		})
	}
}

func TestPlanString(t *testing.T) {
	reg := newRegistry(t)
	plan, err := Flatten(reg, uitest.Item(t, reg, mainURL("nested")))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(plan.String(), "\n"), "\n")
	if len(lines) != len(plan) {
		t.Fatalf("got %d lines, want %d", len(lines), len(plan))
	}
	// The label is a child of panel, which is a child of the root.
	if !strings.HasPrefix(lines[1], "  1     text Main/label") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "  4 component Main/nested") {
		t.Errorf("line 4 = %q", lines[4])
	}
}
