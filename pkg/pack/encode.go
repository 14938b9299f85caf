package pack

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/bytebuf"
)

var errNoItems = errors.New("package has no items")

// Encode validates src and writes it as a package container readable by
// asset.Decode.
func Encode(src *PackageSource) ([]byte, error) {
	if len(src.ID) != asset.PackageIDLen {
		return nil, fmt.Errorf("package id %q must be %d characters", src.ID, asset.PackageIDLen)
	}
	if src.Name == "" {
		return nil, fmt.Errorf("package %s has no name", src.ID)
	}
	if len(src.Items) == 0 {
		return nil, fmt.Errorf("package %s: %w", src.Name, errNoItems)
	}

	strings := bytebuf.NewStringTable()
	items := bytebuf.NewWriter(strings)
	items.WriteCount(len(src.Items))
	seen := make(map[string]bool, len(src.Items))
	for i := range src.Items {
		item := &src.Items[i]
		if item.ID == "" {
			return nil, fmt.Errorf("item %d has no id", i)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = true
		if err := encodeItem(items, item); err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
	}
	if err := items.Err(); err != nil {
		return nil, err
	}

	w := bytebuf.NewWriter(nil)
	w.WriteBytes([]byte(asset.Magic))
	w.WriteString(asset.FormatVersion)
	tbl := w.WideBlockTable(asset.PackageBlocks)

	tbl.Mark(asset.PackageMeta)
	w.WriteString(src.ID)
	w.WriteString(src.Name)
	w.WriteCount(len(src.Branches))
	for _, b := range src.Branches {
		w.WriteString(b)
	}

	tbl.Mark(asset.PackageStrings)
	list := strings.List()
	w.WriteInt(int32(len(list)))
	for _, s := range list {
		w.WriteString(s)
	}

	tbl.Mark(asset.PackageItems)
	w.WriteBytes(items.Bytes())

	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func encodeItem(w *bytebuf.Writer, item *ItemSource) error {
	kind := asset.KindComponent
	if item.Kind != "" {
		k, err := asset.ParseKind(item.Kind)
		if err != nil {
			return err
		}
		kind = k
	}
	typ := asset.TypeComponent
	if kind == asset.KindPrimitive {
		typ = asset.TypeImage
	}
	if item.Type != "" {
		t, err := asset.ParseObjectType(item.Type)
		if err != nil {
			return err
		}
		typ = t
	}
	if kind == asset.KindPrimitive && len(item.Children) > 0 {
		return errors.New("primitive items cannot have children")
	}

	var data []byte
	if kind != asset.KindPrimitive {
		desc := bytebuf.NewWriter(w.Strings())
		if err := EncodeComponent(desc, item); err != nil {
			return err
		}
		data = desc.Bytes()
	}

	at := w.BeginIntLen()
	w.WriteUint8(uint8(kind))
	w.WriteUint8(uint8(typ))
	w.WriteS(item.ID)
	w.WriteS(item.Name)
	w.WriteInt(int32(item.Width))
	w.WriteInt(int32(item.Height))
	w.WriteCount(len(item.Branches))
	for _, id := range item.Branches {
		w.WriteS(id)
	}
	w.WriteCount(len(item.HighResolution))
	for _, id := range item.HighResolution {
		w.WriteS(id)
	}
	w.WriteInt(int32(len(data)))
	w.WriteBytes(data)
	w.EndIntLen(at)
	return w.Err()
}

// EncodeComponent writes the description of a component item: an index
// table, the basic block and the children block. w must be empty, since
// readers expect the table at offset 0.
func EncodeComponent(w *bytebuf.Writer, item *ItemSource) error {
	tbl := w.BlockTable(asset.ComponentBlocks)

	tbl.Mark(asset.ComponentBasic)
	w.WriteInt(int32(item.Width))
	w.WriteInt(int32(item.Height))

	tbl.Mark(asset.ComponentControllers)
	w.WriteCount(0)

	tbl.Mark(asset.ComponentChildren)
	w.WriteCount(len(item.Children))
	for i := range item.Children {
		at := w.BeginShortLen()
		if err := encodeRecord(w, &item.Children[i]); err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
		w.EndShortLen(at)
	}
	return w.Err()
}

func encodeRecord(w *bytebuf.Writer, c *ChildSource) error {
	typ, err := asset.ParseObjectType(c.Type)
	if err != nil {
		return err
	}
	var fill color.RGBA
	if c.Color != "" {
		if fill, err = ParseColor(c.Color); err != nil {
			return err
		}
	}
	if c.List != nil && typ != asset.TypeList {
		return fmt.Errorf("list section on a %s record", typ)
	}

	// Offsets in the record table are relative to the record start.
	tbl := w.BlockTable(asset.RecordBlocks)

	tbl.Mark(asset.RecordProps)
	w.WriteUint8(uint8(typ))
	w.WriteOptionalS(c.Src)
	w.WriteOptionalS(c.Package)
	w.WriteS(c.ID)
	w.WriteS(c.Name)
	w.WriteInt(int32(c.X))
	w.WriteInt(int32(c.Y))
	hasSize := c.Width != 0 || c.Height != 0
	w.WriteBool(hasSize)
	if hasSize {
		w.WriteInt(int32(c.Width))
		w.WriteInt(int32(c.Height))
	}
	alpha := float32(1)
	if c.Alpha != nil {
		alpha = *c.Alpha
	}
	w.WriteFloat(alpha)
	w.WriteBool(c.Color != "")
	if c.Color != "" {
		w.WriteColor(fill)
	}

	if c.List != nil {
		tbl.Mark(asset.RecordListItems)
		w.WriteOptionalS(c.List.DefaultItem)
		w.WriteCount(len(c.List.Items))
		for _, it := range c.List.Items {
			at := w.BeginShortLen()
			w.WriteOptionalS(it.URL)
			w.WriteOptionalS(it.Title)
			w.EndShortLen(at)
		}
	}

	if c.Padding > 0 {
		w.WriteBytes(make([]byte, c.Padding))
	}
	return w.Err()
}
