package asset

import "strings"

// URLPrefix starts every item address.
const URLPrefix = "ui://"

// Ref is a parsed item address. Exactly one of the id pair or the name
// pair is set.
type Ref struct {
	PackageID string
	ItemID    string

	PackageName string
	ItemName    string
}

// ByName reports whether the reference addresses the item by names.
func (r Ref) ByName() bool {
	return r.PackageName != ""
}

// ParseURL splits an item address. Two forms are accepted:
//
//	ui://<package id><item id>      package ids are PackageIDLen characters
//	ui://<package name>/<item name>
func ParseURL(url string) (Ref, bool) {
	rest, ok := strings.CutPrefix(url, URLPrefix)
	if !ok {
		return Ref{}, false
	}
	if pkgName, itemName, found := strings.Cut(rest, "/"); found {
		if pkgName == "" || itemName == "" {
			return Ref{}, false
		}
		return Ref{PackageName: pkgName, ItemName: itemName}, true
	}
	if len(rest) <= PackageIDLen {
		return Ref{}, false
	}
	return Ref{PackageID: rest[:PackageIDLen], ItemID: rest[PackageIDLen:]}, true
}

// NameURL returns the by-name address of an item.
func NameURL(pkgName, itemName string) string {
	return URLPrefix + pkgName + "/" + itemName
}
