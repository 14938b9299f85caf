package pack

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// PackageSource is the authoring form of a UI package.
type PackageSource struct {
	// ID is the fixed-length package id used in ui:// addresses.
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Branches names the alternate content sets items may provide.
	Branches []string     `yaml:"branches,omitempty"`
	Items    []ItemSource `yaml:"items"`
}

// ItemSource describes one package item.
type ItemSource struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Kind is primitive, component or list-item. Defaults to component.
	Kind string `yaml:"kind,omitempty"`
	// Type is the object variant created for the item. Defaults to
	// component for components and list items, image for primitives.
	Type   string `yaml:"type,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`

	// Branches lists alternate item ids parallel to PackageSource.Branches.
	Branches []string `yaml:"branches,omitempty"`
	// HighResolution lists alternate item ids for scale levels 1..n.
	HighResolution []string `yaml:"high_resolution,omitempty"`

	Children []ChildSource `yaml:"children,omitempty"`
}

// ChildSource is one record in a component's display list.
type ChildSource struct {
	Type string `yaml:"type"`
	// Src is the referenced item id. Empty declares a bare object.
	Src string `yaml:"src,omitempty"`
	// Package is the id of the package owning Src. Empty means the
	// package of the enclosing item.
	Package string   `yaml:"package,omitempty"`
	ID      string   `yaml:"id,omitempty"`
	Name    string   `yaml:"name,omitempty"`
	X       int      `yaml:"x,omitempty"`
	Y       int      `yaml:"y,omitempty"`
	Width   int      `yaml:"width,omitempty"`
	Height  int      `yaml:"height,omitempty"`
	Alpha   *float32 `yaml:"alpha,omitempty"`
	// Color is #rrggbb, #rrggbbaa or a CSS color name.
	Color string      `yaml:"color,omitempty"`
	List  *ListSource `yaml:"list,omitempty"`

	// Padding appends unread bytes to the record, as a newer writer
	// would when it adds fields.
	Padding int `yaml:"padding,omitempty"`
}

// ListSource is the item section of a list record.
type ListSource struct {
	// DefaultItem is the ui:// address used by items without their own.
	DefaultItem string           `yaml:"default_item,omitempty"`
	Items       []ListItemSource `yaml:"items,omitempty"`
}

// ListItemSource is one pre-declared list item.
type ListItemSource struct {
	URL   string `yaml:"url,omitempty"`
	Title string `yaml:"title,omitempty"`
}

// LoadSource decodes a YAML package source. Unknown fields are rejected.
func LoadSource(r io.Reader) (*PackageSource, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var src PackageSource
	if err := dec.Decode(&src); err != nil {
		return nil, fmt.Errorf("failed to parse package source: %w", err)
	}
	return &src, nil
}

// LoadSourceFile reads and decodes the YAML package source at path.
func LoadSourceFile(path string) (*PackageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := LoadSource(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}
