package construct

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/pack"
	uitest "github.com/go-drift/uipack/pkg/testing"
)

const (
	mainID = "main0001"
	libID  = "libr0001"
)

func mainURL(id string) string { return asset.URLPrefix + mainID + id }

func mainSource() *pack.PackageSource {
	win := uitest.Component("win",
		uitest.Ref("a", "image", "icon"),
		uitest.Ref("b", "text", "label"),
	)
	win.Branches = []string{"win_de"}
	win.HighResolution = []string{"win_hd"}

	return &pack.PackageSource{
		ID:       mainID,
		Name:     "Main",
		Branches: []string{"de"},
		Items: []pack.ItemSource{
			uitest.Primitive("icon", "image"),
			uitest.Primitive("label", "text"),
			uitest.Component("row"),
			uitest.Component("cell", uitest.Ref("icon", "image", "icon")),
			win,
			uitest.Component("win_de",
				uitest.Ref("a", "image", "icon"),
				uitest.Ref("b", "text", "label"),
				uitest.Ref("c", "text", "label"),
			),
			uitest.Component("win_hd", uitest.Ref("a", "image", "icon")),
			uitest.Component("panel",
				uitest.Ref("icon", "image", "icon"),
				uitest.Ref("caption", "text", "label"),
			),
			uitest.Component("nested",
				uitest.Ref("panel", "component", "panel"),
				uitest.Ref("icon", "image", "icon"),
			),
			uitest.Component("menu", uitest.List("items", mainURL("row"), "", "", "")),
			uitest.Component("sparse", uitest.List("items", mainURL("row"), mainURL("row"), mainURL("missing"), "")),
			uitest.Component("grid", uitest.List("cells", mainURL("cell"), "", "")),
			uitest.Component("broken",
				uitest.Ref("ok", "image", "icon"),
				uitest.Ref("gone", "image", "nope"),
			),
			uitest.Component("cross", pack.ChildSource{Name: "badge", Type: "image", Src: "badge", Package: libID}),
			uitest.Component("mixed",
				uitest.Bare("shape", "graph"),
				uitest.Ref("nested", "component", "nested"),
				uitest.List("items", mainURL("cell"), ""),
				uitest.Ref("a", "image", "icon"),
			),
			uitest.Component("loop", uitest.Ref("self", "component", "loop")),
			uitest.Component("ping", uitest.Ref("pong", "component", "pong")),
			uitest.Component("pong", uitest.Ref("ping", "component", "ping")),
		},
	}
}

func libSource() *pack.PackageSource {
	return &pack.PackageSource{
		ID:    libID,
		Name:  "Lib",
		Items: []pack.ItemSource{uitest.Primitive("badge", "image")},
	}
}

func newRegistry(t *testing.T) *asset.Registry {
	t.Helper()
	return uitest.NewRegistry(t, mainSource(), libSource())
}

// patchFirstRecordLen rewrites the declared length of the first child
// record of the component whose basic block holds width and height.
func patchFirstRecordLen(t *testing.T, data []byte, width, height int32, length uint16) {
	t.Helper()
	marker := binary.BigEndian.AppendUint32(nil, uint32(width))
	marker = binary.BigEndian.AppendUint32(marker, uint32(height))
	// The item header carries the same size, the description comes last.
	at := bytes.LastIndex(data, marker)
	if at < 0 {
		t.Fatal("component description not found")
	}
	// basic block, controllers block (uint16), record count (uint16)
	at += len(marker) + 2 + 2
	binary.BigEndian.PutUint16(data[at:], length)
}
