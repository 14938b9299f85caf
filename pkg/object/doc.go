// Package object provides the live objects materialized from UI packages.
//
// Objects are deliberately thin: they record the properties of the child
// record that produced them and own their children. A Component attaches
// already-built children through ConstructFrom; a List keeps pre-built,
// unattached items in a reuse pool.
//
// A Factory maps object variants to constructors:
//
//	f := object.NewFactory()
//	f.SetExtension("ui://main0001btn", func() object.Object { return NewMyButton() })
//	obj := f.NewObject(item)
//
// Custom objects embed Base (or Component for containers).
package object
