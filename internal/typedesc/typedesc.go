// Package typedesc normalizes raw type expressions into canonical type
// descriptor trees. A descriptor classifies every node as a primitive leaf,
// a user-defined object, a tuple, or a generic wrapper (nullability,
// collection, map, or smart pointer) around further descriptors.
package typedesc

import (
	"strings"

	"github.com/oasgen/oasgen/internal/diagnostic"
)

// ValueKind identifies the primary kind of a descriptor node.
type ValueKind int

const (
	// KindPrimitive is a leaf covered by the primitive/format table.
	KindPrimitive ValueKind = iota
	// KindObject is a user-defined named type whose shape is resolved
	// lazily against the definition set.
	KindObject
	// KindTuple is a tuple of element descriptors. A tuple with no
	// elements is the unit type.
	KindTuple
)

func (k ValueKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Wrapper identifies a recognized generic wrapper type. Wrappers either
// change the schema shape (Option, Vec, Map) or are transparent ownership
// containers (Box, Cow, RefCell).
type Wrapper int

const (
	WrapperNone Wrapper = iota
	WrapperOption
	WrapperVec
	WrapperMap
	WrapperBox
	WrapperCow
	WrapperRefCell
)

func (w Wrapper) String() string {
	switch w {
	case WrapperOption:
		return "Option"
	case WrapperVec:
		return "Vec"
	case WrapperMap:
		return "Map"
	case WrapperBox:
		return "Box"
	case WrapperCow:
		return "Cow"
	case WrapperRefCell:
		return "RefCell"
	default:
		return ""
	}
}

// Transparent reports whether the wrapper has no schema-visible effect.
func (w Wrapper) Transparent() bool {
	return w == WrapperBox || w == WrapperCow || w == WrapperRefCell
}

// wrapperOf matches a base identifier against the fixed wrapper set.
func wrapperOf(name string) Wrapper {
	switch name {
	case "Option":
		return WrapperOption
	case "Vec":
		return WrapperVec
	case "HashMap", "BTreeMap", "Map":
		return WrapperMap
	case "Box":
		return WrapperBox
	case "Cow":
		return WrapperCow
	case "RefCell":
		return WrapperRefCell
	default:
		return WrapperNone
	}
}

// TypeDescriptor is a node of the normalized type tree. Exactly one of the
// following holds per node: a primitive leaf with no children, an object
// (possibly with generic arguments), a tuple, or a wrapper with a child.
type TypeDescriptor struct {
	Kind    ValueKind
	Wrapper Wrapper

	// Name is the resolved, post-alias base identifier. Set for primitive
	// and object nodes; empty for wrappers and tuples.
	Name string

	// Args holds all normalized generic arguments in declaration order.
	// For objects these drive canonical instantiation naming; for Map the
	// first argument is the (unschematized) key type.
	Args []*TypeDescriptor

	// Child is the schema-relevant child of a single-argument wrapper, or
	// the value type for Map. Nil otherwise.
	Child *TypeDescriptor

	// Elems holds tuple element descriptors. Empty for the unit type.
	Elems []*TypeDescriptor

	// Pos is the source location the descriptor was normalized from.
	Pos diagnostic.Pos
}

// IsWrapper reports whether the node is a generic wrapper container.
func (d *TypeDescriptor) IsWrapper() bool {
	return d.Wrapper != WrapperNone
}

// IsUnit reports whether the node is the unit (empty tuple) type.
func (d *TypeDescriptor) IsUnit() bool {
	return d.Kind == KindTuple && d.Wrapper == WrapperNone && len(d.Elems) == 0
}

// IsBytePrimitive reports whether the node is the byte primitive (u8),
// which triggers the byte-slice special case under Vec.
func (d *TypeDescriptor) IsBytePrimitive() bool {
	return d.Kind == KindPrimitive && d.Wrapper == WrapperNone && d.Name == "u8"
}

// String renders the descriptor back into canonical expression form.
// Used in error messages and collision reports.
func (d *TypeDescriptor) String() string {
	var sb strings.Builder
	d.write(&sb)
	return sb.String()
}

func (d *TypeDescriptor) write(sb *strings.Builder) {
	switch {
	case d.IsWrapper():
		sb.WriteString(d.Wrapper.String())
		sb.WriteString("<")
		for i, arg := range d.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			arg.write(sb)
		}
		sb.WriteString(">")
	case d.Kind == KindTuple:
		sb.WriteString("(")
		for i, elem := range d.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			elem.write(sb)
		}
		sb.WriteString(")")
	default:
		sb.WriteString(d.Name)
		if len(d.Args) > 0 {
			sb.WriteString("<")
			for i, arg := range d.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				arg.write(sb)
			}
			sb.WriteString(">")
		}
	}
}

// Clone returns a deep copy of the descriptor.
func (d *TypeDescriptor) Clone() *TypeDescriptor {
	if d == nil {
		return nil
	}
	out := &TypeDescriptor{
		Kind:    d.Kind,
		Wrapper: d.Wrapper,
		Name:    d.Name,
		Pos:     d.Pos,
	}
	if len(d.Args) > 0 {
		out.Args = make([]*TypeDescriptor, len(d.Args))
		for i, arg := range d.Args {
			out.Args[i] = arg.Clone()
		}
	}
	if len(d.Elems) > 0 {
		out.Elems = make([]*TypeDescriptor, len(d.Elems))
		for i, elem := range d.Elems {
			out.Elems[i] = elem.Clone()
		}
	}
	if d.Child != nil {
		// Child aliases an Args entry for wrappers; re-point instead of
		// cloning twice so the invariant survives the copy.
		if idx := d.childIndex(); idx >= 0 {
			out.Child = out.Args[idx]
		} else {
			out.Child = d.Child.Clone()
		}
	}
	return out
}

func (d *TypeDescriptor) childIndex() int {
	for i, arg := range d.Args {
		if arg == d.Child {
			return i
		}
	}
	return -1
}

// Substitute replaces every unresolved object leaf whose name appears in
// params with a copy of the bound descriptor. Used to instantiate generic
// definitions: the definition's field types are normalized once with the
// type parameters left as bare objects, then bound per instantiation.
func (d *TypeDescriptor) Substitute(params map[string]*TypeDescriptor) *TypeDescriptor {
	if d == nil || len(params) == 0 {
		return d
	}
	if d.Kind == KindObject && d.Wrapper == WrapperNone && len(d.Args) == 0 {
		if bound, ok := params[d.Name]; ok {
			return bound.Clone()
		}
	}
	out := &TypeDescriptor{
		Kind:    d.Kind,
		Wrapper: d.Wrapper,
		Name:    d.Name,
		Pos:     d.Pos,
	}
	childIdx := d.childIndex()
	if len(d.Args) > 0 {
		out.Args = make([]*TypeDescriptor, len(d.Args))
		for i, arg := range d.Args {
			out.Args[i] = arg.Substitute(params)
		}
	}
	if len(d.Elems) > 0 {
		out.Elems = make([]*TypeDescriptor, len(d.Elems))
		for i, elem := range d.Elems {
			out.Elems[i] = elem.Substitute(params)
		}
	}
	if d.Child != nil {
		if childIdx >= 0 {
			out.Child = out.Args[childIdx]
		} else {
			out.Child = d.Child.Substitute(params)
		}
	}
	return out
}
