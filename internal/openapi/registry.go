package openapi

import (
	"strings"

	"github.com/oasgen/oasgen/internal/diagnostic"
	"github.com/oasgen/oasgen/internal/typedesc"
)

// instKey identifies one generic instantiation: the component base name
// plus the canonical names of its resolved type arguments. Two
// instantiations with the same key share one canonical component name;
// two different keys must never collide on one.
type instKey struct {
	base string
	args string // canonical argument names joined by ","
}

func (k instKey) String() string {
	if k.args == "" {
		return k.base
	}
	return k.base + "<" + strings.ReplaceAll(k.args, ",", ", ") + ">"
}

// componentName derives the canonical component name: base name and
// argument names joined by a fixed separator. Stable across runs and call
// orders by construction.
func (k instKey) componentName() string {
	if k.args == "" {
		return k.base
	}
	return k.base + "_" + strings.ReplaceAll(k.args, ",", "_")
}

func instantiationKey(base string, args []*typedesc.TypeDescriptor) instKey {
	if len(args) == 0 {
		return instKey{base: base}
	}
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = canonicalArgName(arg)
	}
	return instKey{base: base, args: strings.Join(names, ",")}
}

// canonicalArgName names a type argument for instantiation keying.
// Transparent smart pointers vanish (Box<T> and T instantiate the same
// component); shape-changing wrappers keep their name.
func canonicalArgName(td *typedesc.TypeDescriptor) string {
	if td.IsWrapper() {
		if td.Wrapper.Transparent() {
			return canonicalArgName(td.Child)
		}
		parts := make([]string, 0, len(td.Args)+1)
		parts = append(parts, td.Wrapper.String())
		for _, arg := range td.Args {
			parts = append(parts, canonicalArgName(arg))
		}
		return strings.Join(parts, "_")
	}

	switch td.Kind {
	case typedesc.KindTuple:
		if td.IsUnit() {
			return "Unit"
		}
		parts := make([]string, 0, len(td.Elems)+1)
		parts = append(parts, "Tuple")
		for _, elem := range td.Elems {
			parts = append(parts, canonicalArgName(elem))
		}
		return strings.Join(parts, "_")
	case typedesc.KindObject:
		if len(td.Args) == 0 {
			return td.Name
		}
		parts := make([]string, 0, len(td.Args)+1)
		parts = append(parts, td.Name)
		for _, arg := range td.Args {
			parts = append(parts, canonicalArgName(arg))
		}
		return strings.Join(parts, "_")
	default:
		return td.Name
	}
}

// intern resolves an object descriptor to a component reference,
// registering its schema on first encounter. Re-requests are memoized; a
// name currently being synthesized (a self-reference) resolves to a $ref
// immediately, letting the recursive definition complete naturally.
func (g *SchemaGenerator) intern(td *typedesc.TypeDescriptor) (*Schema, error) {
	def, params, err := g.definitionFor(td)
	if err != nil {
		return nil, err
	}

	base := def.Name
	if def.Attrs.Rename != "" {
		base = def.Attrs.Rename
	}
	key := instantiationKey(base, td.Args)
	name := key.componentName()

	if prev, ok := g.keys[name]; ok {
		if prev != key {
			return nil, diagnostic.Errorf(diagnostic.CategoryNameCollision, td.Pos,
				"canonical name %q computed for both %s and %s", name, prev, key).
				WithHint("rename one of the conflicting types or adjust its generic arguments")
		}
		// Memoized, or in flight higher up the call stack.
		return &Schema{Ref: ComponentRef(name)}, nil
	}

	// Reserve the name before synthesizing the body so cycles terminate.
	g.keys[name] = key
	g.schemas.Set(name, nil)

	body, err := g.buildBody(def, params)
	if err != nil {
		return nil, err
	}
	g.schemas.Set(name, body)

	return &Schema{Ref: ComponentRef(name)}, nil
}
