package pack

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/bytebuf"
)

const sampleYAML = `
id: main0001
name: Main
branches: [en, fr]
items:
  - id: icon
    name: Icon
    kind: primitive
  - id: row
    name: Row
    kind: list-item
    children:
      - {type: text, name: label}
  - id: win
    name: Window
    width: 320
    height: 200
    branches: ["", win_fr]
    children:
      - {type: image, src: icon, name: bg, x: 4, y: 8, color: cornflowerblue}
      - type: list
        name: rows
        list:
          default_item: ui://main0001row
          items:
            - {title: first}
            - {url: ui://Main/Row, title: second}
  - id: win_fr
    name: WindowFr
    children:
      - {type: graph, name: only, color: "#10203040"}
`

func TestLoadSourceAndEncode(t *testing.T) {
	src, err := LoadSource(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, src.Items, 4)

	data, err := Encode(src)
	require.NoError(t, err)

	pkg, err := asset.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "main0001", pkg.ID)
	assert.Equal(t, "Main", pkg.Name)
	assert.Equal(t, asset.FormatVersion, pkg.Version)
	assert.Equal(t, []string{"en", "fr"}, pkg.Branches)

	icon := pkg.Item("icon")
	require.NotNil(t, icon)
	assert.Equal(t, asset.KindPrimitive, icon.Kind)
	assert.Equal(t, asset.TypeImage, icon.Type)

	win := pkg.ItemByName("Window")
	require.NotNil(t, win)
	assert.Equal(t, asset.KindComponent, win.Kind)
	assert.Equal(t, asset.TypeComponent, win.Type)
	assert.Equal(t, 320, win.Width)
	assert.Equal(t, []string{"", "win_fr"}, win.Branches)
	assert.Equal(t, asset.KindListItem, pkg.Item("row").Kind)

	// Walk the component description the way the flattener does.
	buf := win.Data()
	require.True(t, buf.Seek(0, asset.ComponentChildren))
	assert.Equal(t, uint16(2), buf.ReadUshort())

	n := int(buf.ReadUshort())
	rec := buf.Slice(buf.Position(), n)
	require.True(t, rec.Seek(0, asset.RecordProps))
	assert.Equal(t, uint8(asset.TypeImage), rec.ReadUint8())
	s, ok := rec.ReadS()
	assert.True(t, ok)
	assert.Equal(t, "icon", s)
	_, ok = rec.ReadS()
	assert.False(t, ok, "package defaults to the owner")
	assert.False(t, rec.Seek(0, asset.RecordListItems))
	require.NoError(t, rec.Err())
	buf.Skip(n)

	n = int(buf.ReadUshort())
	rec = buf.Slice(buf.Position(), n)
	require.True(t, rec.Seek(0, asset.RecordListItems))
	def, ok := rec.ReadS()
	assert.True(t, ok)
	assert.Equal(t, "ui://main0001row", def)
	assert.Equal(t, uint16(2), rec.ReadUshort())
	require.NoError(t, rec.Err())
}

func TestLoadSourceRejectsUnknownFields(t *testing.T) {
	_, err := LoadSource(strings.NewReader("id: x\nname: y\nbogus: 1\n"))
	assert.Error(t, err)
}

func TestLoadSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	src, err := LoadSourceFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Main", src.Name)

	_, err = LoadSourceFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEncodeValidation(t *testing.T) {
	tests := []struct {
		name string
		src  PackageSource
		want string
	}{
		{"short id", PackageSource{ID: "abc", Name: "A", Items: []ItemSource{{ID: "x"}}}, "must be 8"},
		{"no name", PackageSource{ID: "abcdefgh", Items: []ItemSource{{ID: "x"}}}, "no name"},
		{"no items", PackageSource{ID: "abcdefgh", Name: "A"}, "no items"},
		{"duplicate", PackageSource{ID: "abcdefgh", Name: "A", Items: []ItemSource{{ID: "x"}, {ID: "x"}}}, "duplicate"},
		{"bad kind", PackageSource{ID: "abcdefgh", Name: "A", Items: []ItemSource{{ID: "x", Kind: "blob"}}}, "unknown item kind"},
		{"bad type", PackageSource{ID: "abcdefgh", Name: "A", Items: []ItemSource{{ID: "x", Children: []ChildSource{{Type: "widget"}}}}}, "unknown object type"},
		{"bad color", PackageSource{ID: "abcdefgh", Name: "A", Items: []ItemSource{{ID: "x", Children: []ChildSource{{Type: "graph", Color: "#12"}}}}}, "color"},
		{"list on image", PackageSource{ID: "abcdefgh", Name: "A", Items: []ItemSource{{ID: "x", Children: []ChildSource{{Type: "image", List: &ListSource{}}}}}}, "list section"},
		{"primitive children", PackageSource{ID: "abcdefgh", Name: "A", Items: []ItemSource{{ID: "x", Kind: "primitive", Children: []ChildSource{{Type: "image"}}}}}, "cannot have children"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(&tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, A: 0xff}, c)

	c, err = ParseColor("#01020304")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 4}, c)

	c, err = ParseColor("Red")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, c)

	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
	_, err = ParseColor("not-a-color")
	assert.Error(t, err)
}

func TestPaddingIsSkippedByReaders(t *testing.T) {
	src := &PackageSource{ID: "pad00001", Name: "Pad", Items: []ItemSource{{
		ID: "c",
		Children: []ChildSource{
			{Type: "graph", Name: "a", Padding: 17},
			{Type: "text", Name: "b"},
		},
	}}}
	data, err := Encode(src)
	require.NoError(t, err)
	pkg, err := asset.Decode(data)
	require.NoError(t, err)

	buf := pkg.Item("c").Data()
	require.True(t, buf.Seek(0, asset.ComponentChildren))
	require.Equal(t, uint16(2), buf.ReadUshort())
	n := int(buf.ReadUshort())
	buf.Skip(n)
	n = int(buf.ReadUshort())
	rec := buf.Slice(buf.Position(), n)
	require.True(t, rec.Seek(0, asset.RecordProps))
	assert.Equal(t, uint8(asset.TypeText), rec.ReadUint8())
}

func TestEncodeLongRecord(t *testing.T) {
	src := &PackageSource{ID: "pad00002", Name: "Long", Items: []ItemSource{{
		ID:       "c",
		Children: []ChildSource{{Type: "graph", Name: "a", Padding: 40000}},
	}}}
	data, err := Encode(src)
	require.NoError(t, err)
	pkg, err := asset.Decode(data)
	require.NoError(t, err)

	buf := pkg.Item("c").Data()
	require.True(t, buf.Seek(0, asset.ComponentChildren))
	require.Equal(t, uint16(1), buf.ReadUshort())
	n := int(buf.ReadUshort())
	assert.Greater(t, n, 40000)
	rec := buf.Slice(buf.Position(), n)
	require.NoError(t, rec.Err())
	require.True(t, rec.Seek(0, asset.RecordProps))
	assert.Equal(t, uint8(asset.TypeGraph), rec.ReadUint8())
}

func TestEncodeRejectsOversizedCounts(t *testing.T) {
	src := &PackageSource{ID: "big00001", Name: "Big", Items: []ItemSource{{
		ID:       "c",
		Branches: make([]string, 1<<16),
	}}}
	_, err := Encode(src)
	assert.ErrorIs(t, err, bytebuf.ErrTooLarge)
}
