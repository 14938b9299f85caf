package construct

import (
	"errors"
	"fmt"

	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/bytebuf"
	uierrors "github.com/go-drift/uipack/pkg/errors"
)

// Resolver looks up the items a description references.
// *asset.Registry implements it.
type Resolver interface {
	PackageByID(id string) (*asset.Package, bool)
	ItemByURL(url string) (*asset.Asset, bool)
	// Content returns the variant of a whose description is used.
	Content(a *asset.Asset) *asset.Asset
}

type flattener struct {
	res  Resolver
	plan Plan
	path map[*asset.Asset]bool
}

// Flatten walks the description of root and of every component it
// references and returns the construction plan, children before parents.
//
// A child record whose item cannot be resolved becomes a bare object of
// its declared variant and is reported through the error handler. List
// items that cannot be resolved are left out. A record that reads past
// its declared length or a component that contains itself fails the
// whole plan.
func Flatten(res Resolver, root *asset.Asset) (Plan, error) {
	if root == nil {
		return nil, ErrRootNotFound
	}
	f := &flattener{res: res, path: make(map[*asset.Asset]bool)}
	closing := Node{Asset: root, Content: res.Content(root), Type: root.Type}
	if hasDescription(root) {
		n, err := f.collect(root)
		if err != nil {
			return nil, err
		}
		closing.ChildCount = n
	}
	f.plan = append(f.plan, closing)
	return f.plan, nil
}

func hasDescription(a *asset.Asset) bool {
	return a.Kind != asset.KindPrimitive
}

// collect appends the nodes for every child record of item and returns
// the number of direct children.
func (f *flattener) collect(item *asset.Asset) (int, error) {
	if f.path[item] {
		return 0, f.parseError(item, -1, ErrCyclicReference)
	}
	f.path[item] = true
	defer delete(f.path, item)

	content := f.res.Content(item)
	buf := content.Data()
	if !buf.Seek(0, asset.ComponentChildren) {
		if err := buf.Err(); err != nil {
			return 0, f.parseError(item, -1, err)
		}
		return 0, nil
	}

	count := int(buf.ReadUshort())
	for i := range count {
		dataLen := int(buf.ReadUshort())
		curPos := buf.Position()
		if err := buf.Err(); err != nil {
			return 0, f.parseError(item, i, err)
		}
		rec := buf.Slice(curPos, dataLen)
		if err := f.record(content, i, rec); err != nil {
			return 0, err
		}
		buf.SetPosition(curPos + dataLen)
	}
	if err := buf.Err(); err != nil {
		return 0, f.parseError(item, count, err)
	}
	return count, nil
}

// record appends the nodes for child record i of content.
func (f *flattener) record(content *asset.Asset, i int, rec *bytebuf.Buffer) error {
	if !rec.Seek(0, asset.RecordProps) {
		if err := rec.Err(); err != nil {
			return f.parseError(content, i, err)
		}
		return f.parseError(content, i, fmt.Errorf("%w: no properties block", ErrCorruptRecord))
	}
	typ := asset.ObjectType(rec.ReadUint8())
	src, hasSrc := rec.ReadS()
	pkgID, _ := rec.ReadS()
	if err := rec.Err(); err != nil {
		return f.parseError(content, i, err)
	}

	node := Node{Type: typ}
	switch {
	case hasSrc && src != "":
		pi := f.resolve(content, pkgID, src)
		if pi == nil {
			uierrors.Report(&uierrors.Error{
				Op:      "construct.Flatten",
				Kind:    uierrors.KindResolve,
				Package: packageName(content),
				Item:    content.Name,
				Err:     fmt.Errorf("child %d: item %q of package %q not found", i, src, pkgID),
			})
			break
		}
		node.Asset = pi
		node.Content = f.res.Content(pi)
		if hasDescription(pi) {
			n, err := f.collect(pi)
			if err != nil {
				return err
			}
			node.ChildCount = n
		}
	case typ == asset.TypeList:
		n, err := f.listItems(content, i, rec)
		if err != nil {
			return err
		}
		node.ListItemCount = n
	}
	f.plan = append(f.plan, node)
	return nil
}

// listItems appends a node for every resolvable item declared by the list
// record and returns how many were appended.
func (f *flattener) listItems(content *asset.Asset, i int, rec *bytebuf.Buffer) (int, error) {
	if !rec.Seek(0, asset.RecordListItems) {
		if err := rec.Err(); err != nil {
			return 0, f.parseError(content, i, err)
		}
		return 0, nil
	}
	defaultItem, _ := rec.ReadS()
	count := int(rec.ReadUshort())
	added := 0
	for range count {
		nextPos := int(rec.ReadUshort())
		nextPos += rec.Position()
		url, ok := rec.ReadS()
		if !ok || url == "" {
			url = defaultItem
		}
		if err := rec.Err(); err != nil {
			return 0, f.parseError(content, i, err)
		}
		if url != "" {
			if pi, found := f.res.ItemByURL(url); found {
				node := Node{Asset: pi, Content: f.res.Content(pi), Type: pi.Type}
				if hasDescription(pi) {
					n, err := f.collect(pi)
					if err != nil {
						return 0, err
					}
					node.ChildCount = n
				}
				f.plan = append(f.plan, node)
				added++
			}
		}
		rec.SetPosition(nextPos)
	}
	if err := rec.Err(); err != nil {
		return 0, f.parseError(content, i, err)
	}
	return added, nil
}

// resolve finds src in the named package, or in the package that owns
// content when pkgID is empty.
func (f *flattener) resolve(content *asset.Asset, pkgID, src string) *asset.Asset {
	owner := content.Owner
	if pkgID != "" && (owner == nil || owner.ID != pkgID) {
		pkg, ok := f.res.PackageByID(pkgID)
		if !ok {
			return nil
		}
		owner = pkg
	}
	if owner == nil {
		return nil
	}
	return owner.Item(src)
}

// parseError wraps a read failure of record i of item. Out of range reads
// inside a bounded record mean the record is longer than declared.
func (f *flattener) parseError(item *asset.Asset, i int, err error) error {
	if errors.Is(err, bytebuf.ErrOutOfRange) && i >= 0 {
		err = fmt.Errorf("%w: record %d: %w", ErrCorruptRecord, i, err)
	}
	return &uierrors.Error{
		Op:      "construct.Flatten",
		Kind:    uierrors.KindParse,
		Package: packageName(item),
		Item:    item.Name,
		Err:     err,
	}
}

func packageName(a *asset.Asset) string {
	if a.Owner == nil {
		return ""
	}
	return a.Owner.Name
}
