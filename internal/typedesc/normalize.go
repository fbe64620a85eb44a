package typedesc

import (
	"github.com/oasgen/oasgen/internal/alias"
	"github.com/oasgen/oasgen/internal/diagnostic"
)

// Normalizer converts parsed type expressions into canonical descriptor
// trees. It consults the alias table for unknown identifiers and the
// primitive/format table for leaves; everything else becomes a lazily
// resolved object node.
type Normalizer struct {
	aliases   *alias.Table
	timeTypes bool
}

// NewNormalizer creates a normalizer backed by the given alias table.
// A nil table behaves like an empty one. timeTypes enables the date/time
// extension of the primitive table.
func NewNormalizer(aliases *alias.Table, timeTypes bool) *Normalizer {
	if aliases == nil {
		aliases = alias.Empty()
	}
	return &Normalizer{aliases: aliases, timeTypes: timeTypes}
}

// TimeTypes reports whether date/time primitives are enabled.
func (n *Normalizer) TimeTypes() bool {
	return n.timeTypes
}

// Parse parses and normalizes a type expression string in one step.
func (n *Normalizer) Parse(expr string, pos diagnostic.Pos) (*TypeDescriptor, error) {
	te, err := ParseExpr(expr, pos)
	if err != nil {
		return nil, err
	}
	return n.Normalize(&te)
}

// Normalize builds the canonical descriptor for a parsed type expression.
func (n *Normalizer) Normalize(e *TypeExpr) (*TypeDescriptor, error) {
	return n.normalize(e, nil)
}

// normalize recurses over the expression. seen tracks alias identifiers
// currently being expanded so alias cycles terminate with an error.
func (n *Normalizer) normalize(e *TypeExpr, seen map[string]bool) (*TypeDescriptor, error) {
	if e.Tuple {
		td := &TypeDescriptor{Kind: KindTuple, Pos: e.Pos}
		for i := range e.Elems {
			elem, err := n.normalize(&e.Elems[i], seen)
			if err != nil {
				return nil, err
			}
			td.Elems = append(td.Elems, elem)
		}
		return td, nil
	}

	// Recognized wrappers unwrap one layer at a time in encounter order.
	if w := wrapperOf(e.Name); w != WrapperNone {
		return n.normalizeWrapper(e, w, seen)
	}

	if _, ok := LookupPrimitive(e.Name, n.timeTypes); ok {
		// DateTime<Utc> and friends keep their timezone argument in source
		// form; it never reaches the schema.
		if len(e.Args) > 0 && !timePrimitive(e.Name) {
			return nil, diagnostic.Errorf(diagnostic.CategoryGenericArity, e.Pos,
				"primitive type %q cannot take generic arguments", e.Name)
		}
		return &TypeDescriptor{Kind: KindPrimitive, Name: e.Name, Pos: e.Pos}, nil
	}

	// Alias substitution is fully transparent: the replacement expression
	// is normalized as if it had been written at this position.
	if replacement, ok := n.aliases.Resolve(e.Name); ok && len(e.Args) == 0 {
		if seen[e.Name] {
			return nil, diagnostic.Errorf(diagnostic.CategoryUnresolvedIdentifier, e.Pos,
				"alias %q expands to itself through a cycle", e.Name)
		}
		sub, err := ParseExpr(replacement, e.Pos)
		if err != nil {
			return nil, err
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		seen[e.Name] = true
		td, err := n.normalize(&sub, seen)
		delete(seen, e.Name)
		return td, err
	}

	// A user-defined object type; its field or variant shape is resolved
	// lazily by the registry, not here.
	td := &TypeDescriptor{Kind: KindObject, Name: e.Name, Pos: e.Pos}
	for i := range e.Args {
		arg, err := n.normalize(&e.Args[i], seen)
		if err != nil {
			return nil, err
		}
		td.Args = append(td.Args, arg)
	}
	return td, nil
}

func (n *Normalizer) normalizeWrapper(e *TypeExpr, w Wrapper, seen map[string]bool) (*TypeDescriptor, error) {
	want := 1
	if w == WrapperMap {
		want = 2
	}
	if len(e.Args) != want {
		return nil, diagnostic.Errorf(diagnostic.CategoryGenericArity, e.Pos,
			"%s expects %d type argument(s), got %d", e.Name, want, len(e.Args))
	}

	td := &TypeDescriptor{Wrapper: w, Pos: e.Pos}
	for i := range e.Args {
		arg, err := n.normalize(&e.Args[i], seen)
		if err != nil {
			return nil, err
		}
		td.Args = append(td.Args, arg)
	}
	// Maps carry the value type as the schema-relevant child; the key is
	// assumed string-like and is not separately schematized.
	td.Child = td.Args[len(td.Args)-1]
	return td, nil
}
