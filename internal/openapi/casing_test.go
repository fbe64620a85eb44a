package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenameRuleApply(t *testing.T) {
	cases := []struct {
		rule RenameRule
		in   string
		want string
	}{
		{RenameLower, "VeryTasty", "verytasty"},
		{RenameUpper, "very_tasty", "VERYTASTY"},
		{RenamePascal, "very_tasty", "VeryTasty"},
		{RenameCamel, "very_tasty", "veryTasty"},
		{RenameCamel, "VeryTasty", "veryTasty"},
		{RenameSnake, "VeryTasty", "very_tasty"},
		{RenameScreamingSnake, "VeryTasty", "VERY_TASTY"},
		{RenameKebab, "VeryTasty", "very-tasty"},
		{RenameScreamingKebab, "very_tasty", "VERY-TASTY"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.rule.Apply(tc.in), "%s(%s)", tc.rule, tc.in)
	}

	t.Run("empty rule leaves names unchanged", func(t *testing.T) {
		assert.Equal(t, "raw_name", RenameRule("").Apply("raw_name"))
	})

	t.Run("unknown rule leaves names unchanged", func(t *testing.T) {
		assert.Equal(t, "raw_name", RenameRule("Title Case").Apply("raw_name"))
	})

	t.Run("digits stay with their word", func(t *testing.T) {
		assert.Equal(t, "http2_frame", RenameSnake.Apply("Http2Frame"))
	})
}
