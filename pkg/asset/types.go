package asset

import "fmt"

// Kind classifies a package item.
type Kind uint8

const (
	// KindPrimitive is a leaf resource such as an image or movie clip.
	KindPrimitive Kind = iota
	// KindComponent is a reusable fragment with its own child records.
	KindComponent
	// KindListItem is a fragment intended to be instantiated as a list item.
	KindListItem
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindComponent:
		return "component"
	case KindListItem:
		return "list-item"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for k := KindPrimitive; k <= KindListItem; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown item kind %q", s)
}

// ObjectType is the variant of live object a record or item declares.
// The numeric values are part of the binary format.
type ObjectType uint8

const (
	TypeImage ObjectType = iota
	TypeMovieClip
	TypeSwf
	TypeGraph
	TypeLoader
	TypeGroup
	TypeText
	TypeRichText
	TypeInputText
	TypeComponent
	TypeList
	TypeLabel
	TypeButton
	TypeComboBox
	TypeProgressBar
	TypeSlider
	TypeScrollBar
	TypeTree
	TypeLoader3D

	typeCount
)

var typeNames = [typeCount]string{
	TypeImage:       "image",
	TypeMovieClip:   "movieclip",
	TypeSwf:         "swf",
	TypeGraph:       "graph",
	TypeLoader:      "loader",
	TypeGroup:       "group",
	TypeText:        "text",
	TypeRichText:    "richtext",
	TypeInputText:   "inputtext",
	TypeComponent:   "component",
	TypeList:        "list",
	TypeLabel:       "label",
	TypeButton:      "button",
	TypeComboBox:    "combobox",
	TypeProgressBar: "progressbar",
	TypeSlider:      "slider",
	TypeScrollBar:   "scrollbar",
	TypeTree:        "tree",
	TypeLoader3D:    "loader3d",
}

func (t ObjectType) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Valid reports whether t is a known variant.
func (t ObjectType) Valid() bool {
	return t < typeCount
}

// IsContainer reports whether objects of this variant own child objects.
func (t ObjectType) IsContainer() bool {
	return t >= TypeComponent && t <= TypeTree
}

// ParseObjectType returns the ObjectType named s.
func ParseObjectType(s string) (ObjectType, error) {
	for i, name := range typeNames {
		if name == s {
			return ObjectType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown object type %q", s)
}

// ObjectTypes returns every known variant in wire order.
func ObjectTypes() []ObjectType {
	out := make([]ObjectType, typeCount)
	for i := range out {
		out[i] = ObjectType(i)
	}
	return out
}

// Blocks of a component descriptor, addressed through the index table at
// offset 0 of the item data.
const (
	ComponentBasic = iota
	ComponentControllers
	ComponentChildren
	ComponentRelations
	ComponentDisplay
	ComponentTransitions
	ComponentExtension
	ComponentScroll

	ComponentBlocks
)

// Blocks of one child record, addressed through the index table at the
// start of the record.
const (
	RecordProps = iota
	RecordFilters
	RecordGears
	RecordRelations
	RecordText
	RecordExtra
	RecordExtension
	RecordTooltip
	RecordListItems

	RecordBlocks
)
