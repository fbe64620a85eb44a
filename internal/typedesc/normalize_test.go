package typedesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasgen/oasgen/internal/alias"
	"github.com/oasgen/oasgen/internal/diagnostic"
)

func mustParse(t *testing.T, n *Normalizer, expr string) *TypeDescriptor {
	t.Helper()
	td, err := n.Parse(expr, diagnostic.Pos{})
	require.NoError(t, err, expr)
	return td
}

func TestNormalizePrimitives(t *testing.T) {
	n := NewNormalizer(nil, false)

	td := mustParse(t, n, "i32")
	assert.Equal(t, KindPrimitive, td.Kind)
	assert.Equal(t, "i32", td.Name)

	td = mustParse(t, n, "&'a str")
	assert.Equal(t, KindPrimitive, td.Kind)
	assert.Equal(t, "str", td.Name)

	t.Run("primitives reject generic arguments", func(t *testing.T) {
		_, err := n.Parse("String<i32>", diagnostic.Pos{})
		require.Error(t, err)
		assert.Equal(t, diagnostic.CategoryGenericArity, diagnostic.CategoryOf(err))
	})
}

func TestNormalizeWrappers(t *testing.T) {
	n := NewNormalizer(nil, false)

	t.Run("Option", func(t *testing.T) {
		td := mustParse(t, n, "Option<String>")
		assert.Equal(t, WrapperOption, td.Wrapper)
		require.NotNil(t, td.Child)
		assert.Equal(t, "String", td.Child.Name)
	})

	t.Run("Vec", func(t *testing.T) {
		td := mustParse(t, n, "Vec<u8>")
		assert.Equal(t, WrapperVec, td.Wrapper)
		assert.True(t, td.Child.IsBytePrimitive())
	})

	t.Run("map child is the value type", func(t *testing.T) {
		for _, expr := range []string{"HashMap<String, bool>", "BTreeMap<String, bool>", "Map<String, bool>"} {
			td := mustParse(t, n, expr)
			assert.Equal(t, WrapperMap, td.Wrapper, expr)
			require.Len(t, td.Args, 2, expr)
			assert.Same(t, td.Args[1], td.Child, expr)
			assert.Equal(t, "bool", td.Child.Name, expr)
		}
	})

	t.Run("transparent smart pointers keep their child", func(t *testing.T) {
		td := mustParse(t, n, "Box<Cow<RefCell<i64>>>")
		assert.True(t, td.Wrapper.Transparent())
		assert.Equal(t, WrapperCow, td.Child.Wrapper)
		assert.Equal(t, WrapperRefCell, td.Child.Child.Wrapper)
		assert.Equal(t, "i64", td.Child.Child.Child.Name)
	})

	t.Run("arity errors", func(t *testing.T) {
		for _, expr := range []string{"Option", "Vec<i32, i32>", "HashMap<String>", "Box"} {
			_, err := n.Parse(expr, diagnostic.Pos{})
			require.Error(t, err, expr)
			assert.Equal(t, diagnostic.CategoryGenericArity, diagnostic.CategoryOf(err), expr)
		}
	})
}

func TestNormalizeTuples(t *testing.T) {
	n := NewNormalizer(nil, false)

	td := mustParse(t, n, "(i32, String)")
	assert.Equal(t, KindTuple, td.Kind)
	require.Len(t, td.Elems, 2)
	assert.False(t, td.IsUnit())

	unit := mustParse(t, n, "()")
	assert.True(t, unit.IsUnit())
}

func TestNormalizeAliases(t *testing.T) {
	aliases := alias.NewTable(map[string]string{
		"MyType":   "bool",
		"Payload":  "HashMap<String, Vec<u8>>",
		"Loop":     "Indirect",
		"Indirect": "Loop",
	})
	n := NewNormalizer(aliases, false)

	t.Run("alias to primitive", func(t *testing.T) {
		td := mustParse(t, n, "MyType")
		assert.Equal(t, KindPrimitive, td.Kind)
		assert.Equal(t, "bool", td.Name)
	})

	t.Run("alias to a composite expression", func(t *testing.T) {
		td := mustParse(t, n, "Payload")
		assert.Equal(t, WrapperMap, td.Wrapper)
		assert.Equal(t, WrapperVec, td.Child.Wrapper)
	})

	t.Run("aliases apply inside generic arguments", func(t *testing.T) {
		td := mustParse(t, n, "Option<MyType>")
		assert.Equal(t, WrapperOption, td.Wrapper)
		assert.Equal(t, "bool", td.Child.Name)
	})

	t.Run("alias cycles fail", func(t *testing.T) {
		_, err := n.Parse("Loop", diagnostic.Pos{})
		require.Error(t, err)
		assert.Equal(t, diagnostic.CategoryUnresolvedIdentifier, diagnostic.CategoryOf(err))
	})
}

func TestNormalizeObjects(t *testing.T) {
	n := NewNormalizer(nil, false)

	td := mustParse(t, n, "Entry<i32, Option<String>>")
	assert.Equal(t, KindObject, td.Kind)
	assert.Equal(t, "Entry", td.Name)
	require.Len(t, td.Args, 2)
	assert.Equal(t, "i32", td.Args[0].Name)
	assert.Equal(t, WrapperOption, td.Args[1].Wrapper)
}

func TestNormalizeTimeTypes(t *testing.T) {
	off := NewNormalizer(nil, false)
	on := NewNormalizer(nil, true)

	td := mustParse(t, off, "NaiveDate")
	assert.Equal(t, KindObject, td.Kind, "time types are plain objects when disabled")

	td = mustParse(t, on, "NaiveDate")
	assert.Equal(t, KindPrimitive, td.Kind)
	assert.True(t, on.TimeTypes())

	t.Run("timezone arguments are ignored", func(t *testing.T) {
		for _, expr := range []string{"DateTime<Utc>", "chrono::DateTime<chrono::Local>"} {
			td := mustParse(t, on, expr)
			assert.Equal(t, KindPrimitive, td.Kind, expr)
			assert.Equal(t, "DateTime", td.Name, expr)
			assert.Empty(t, td.Args, expr)
		}

		// core primitives still reject arguments
		_, err := on.Parse("String<i32>", diagnostic.Pos{})
		require.Error(t, err)
		assert.Equal(t, diagnostic.CategoryGenericArity, diagnostic.CategoryOf(err))
	})
}

func TestSubstitute(t *testing.T) {
	n := NewNormalizer(nil, false)

	field := mustParse(t, n, "Option<Vec<T>>")
	bound := mustParse(t, n, "i32")

	out := field.Substitute(map[string]*TypeDescriptor{"T": bound})
	assert.Equal(t, WrapperOption, out.Wrapper)
	assert.Equal(t, WrapperVec, out.Child.Wrapper)
	assert.Equal(t, KindPrimitive, out.Child.Child.Kind)
	assert.Equal(t, "i32", out.Child.Child.Name)

	// the original tree is untouched
	assert.Equal(t, KindObject, field.Child.Child.Kind)
	assert.Equal(t, "T", field.Child.Child.Name)
}

func TestDescriptorString(t *testing.T) {
	n := NewNormalizer(nil, false)

	for expr, want := range map[string]string{
		"Option<Vec<u8>>":        "Option<Vec<u8>>",
		"(i32, String)":          "(i32, String)",
		"HashMap<String, bool>":  "Map<String, bool>",
		"Entry<i32>":             "Entry<i32>",
		"std::borrow::Cow<'a,T>": "Cow<T>",
	} {
		td := mustParse(t, n, expr)
		assert.Equal(t, want, td.String(), expr)
	}
}
