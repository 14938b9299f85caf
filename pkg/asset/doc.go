// Package asset models UI packages and resolves references between them.
//
// A package is a binary container holding a shared string table and a set
// of items. Each item (an Asset) carries a binary description; component
// items describe their child records, which may in turn reference items in
// the same or another package.
//
// The Registry is the resolver used during construction:
//
//	reg := asset.NewRegistry()
//	pkg, err := asset.Decode(data)
//	if err != nil {
//	    return err
//	}
//	if err := reg.Add(pkg); err != nil {
//	    return err
//	}
//	item, ok := reg.ItemByURL("ui://Main/Window")
//
// # Variants
//
// Items may provide alternate descriptions. SetBranch selects a named
// content branch and SetScaleLevel selects a high resolution alternate;
// Content applies both to an item.
package asset
