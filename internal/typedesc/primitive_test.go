package typedesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupPrimitive(t *testing.T) {
	cases := []struct {
		name   string
		typ    string
		format string
	}{
		{"String", "string", ""},
		{"str", "string", ""},
		{"char", "string", ""},
		{"bool", "boolean", ""},
		{"u8", "integer", "int32"},
		{"i32", "integer", "int32"},
		{"i64", "integer", "int64"},
		{"u64", "integer", "int64"},
		{"usize", "integer", ""},
		{"i128", "integer", ""},
		{"f32", "number", "float"},
		{"f64", "number", "double"},
	}
	for _, tc := range cases {
		p, ok := LookupPrimitive(tc.name, false)
		assert.True(t, ok, tc.name)
		assert.Equal(t, tc.typ, p.Type, tc.name)
		assert.Equal(t, tc.format, p.Format, tc.name)
	}

	t.Run("unknown identifiers are not primitives", func(t *testing.T) {
		_, ok := LookupPrimitive("User", false)
		assert.False(t, ok)
	})

	t.Run("time types gate on the capability flag", func(t *testing.T) {
		_, ok := LookupPrimitive("DateTime", false)
		assert.False(t, ok)

		p, ok := LookupPrimitive("DateTime", true)
		assert.True(t, ok)
		assert.Equal(t, "string", p.Type)
		assert.Equal(t, "date-time", p.Format)

		p, ok = LookupPrimitive("NaiveDate", true)
		assert.True(t, ok)
		assert.Equal(t, "date", p.Format)
	})
}
