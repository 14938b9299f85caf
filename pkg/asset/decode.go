package asset

import (
	"errors"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/go-drift/uipack/pkg/bytebuf"
)

// Magic opens every package container.
const Magic = "UIPK"

// FormatVersion is the container version written by this module. Readers
// accept any version with the same major number.
const FormatVersion = "v1.0.0"

// PackageIDLen is the fixed length of package ids; ui:// URLs rely on it.
const PackageIDLen = 8

// Blocks of the container index table.
const (
	PackageMeta = iota
	PackageStrings
	PackageItems

	PackageBlocks
)

var (
	ErrBadMagic            = errors.New("asset: not a UI package")
	ErrIncompatibleVersion = errors.New("asset: incompatible package format")
	ErrMalformed           = errors.New("asset: malformed package")
)

// Decode parses a package container. Item descriptions alias data, which
// must not be modified afterwards.
func Decode(data []byte) (*Package, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, ErrBadMagic
	}
	buf := bytebuf.New(data, nil)
	buf.Skip(len(Magic))

	version := buf.ReadString()
	if buf.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, buf.Err())
	}
	if !semver.IsValid(version) || semver.Major(version) != semver.Major(FormatVersion) {
		return nil, fmt.Errorf("%w: %q, reader supports %s", ErrIncompatibleVersion, version, semver.Major(FormatVersion))
	}

	base := buf.Position()
	pkg := &Package{
		Version: version,
		byID:    make(map[string]*Asset),
		byName:  make(map[string]*Asset),
	}

	if !buf.Seek(base, PackageMeta) {
		return nil, malformed(buf, "missing meta block")
	}
	pkg.ID = buf.ReadString()
	pkg.Name = buf.ReadString()
	branchCount := int(buf.ReadUshort())
	for range branchCount {
		pkg.Branches = append(pkg.Branches, buf.ReadString())
	}
	if err := buf.Err(); err != nil {
		return nil, fmt.Errorf("%w: meta: %v", ErrMalformed, err)
	}
	if len(pkg.ID) != PackageIDLen {
		return nil, fmt.Errorf("%w: package id %q must be %d characters", ErrMalformed, pkg.ID, PackageIDLen)
	}
	if pkg.Name == "" {
		return nil, fmt.Errorf("%w: package %s has no name", ErrMalformed, pkg.ID)
	}

	if buf.Seek(base, PackageStrings) {
		n := int(buf.ReadInt())
		if n < 0 || n > buf.Remaining() {
			return nil, malformed(buf, fmt.Sprintf("string count %d", n))
		}
		pkg.Strings = make([]string, n)
		for i := range pkg.Strings {
			pkg.Strings[i] = buf.ReadString()
		}
		if err := buf.Err(); err != nil {
			return nil, fmt.Errorf("%w: strings: %v", ErrMalformed, err)
		}
	}
	buf.Strings = pkg.Strings

	if !buf.Seek(base, PackageItems) {
		return pkg, nil
	}
	count := int(buf.ReadUshort())
	for i := range count {
		dataLen := int(buf.ReadInt())
		start := buf.Position()
		rec := buf.Slice(start, dataLen)
		a, err := decodeItem(rec, pkg)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformed, i, err)
		}
		if pkg.byID[a.ID] != nil {
			return nil, fmt.Errorf("%w: duplicate item id %q", ErrMalformed, a.ID)
		}
		pkg.items = append(pkg.items, a)
		pkg.byID[a.ID] = a
		if a.Name != "" {
			pkg.byName[a.Name] = a
		}
		buf.SetPosition(start + dataLen)
	}
	if err := buf.Err(); err != nil {
		return nil, fmt.Errorf("%w: items: %v", ErrMalformed, err)
	}
	return pkg, nil
}

func decodeItem(rec *bytebuf.Buffer, pkg *Package) (*Asset, error) {
	a := &Asset{Owner: pkg}
	a.Kind = Kind(rec.ReadUint8())
	a.Type = ObjectType(rec.ReadUint8())
	a.ID, _ = rec.ReadS()
	a.Name, _ = rec.ReadS()
	a.Width = int(rec.ReadInt())
	a.Height = int(rec.ReadInt())

	n := int(rec.ReadUshort())
	for range n {
		id, _ := rec.ReadS()
		a.Branches = append(a.Branches, id)
	}
	n = int(rec.ReadUshort())
	for range n {
		id, _ := rec.ReadS()
		a.HighResolution = append(a.HighResolution, id)
	}

	dataLen := int(rec.ReadInt())
	a.data = rec.ReadBytes(dataLen)
	if err := rec.Err(); err != nil {
		return nil, err
	}
	if a.ID == "" {
		return nil, errors.New("empty item id")
	}
	if a.Kind > KindListItem {
		return nil, fmt.Errorf("item %s: unknown kind %d", a.ID, a.Kind)
	}
	if !a.Type.Valid() {
		return nil, fmt.Errorf("item %s: unknown object type %d", a.ID, a.Type)
	}
	return a, nil
}

func malformed(buf *bytebuf.Buffer, what string) error {
	if err := buf.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, what, err)
	}
	return fmt.Errorf("%w: %s", ErrMalformed, what)
}
