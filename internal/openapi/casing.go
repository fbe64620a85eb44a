package openapi

import "strings"

// RenameRule is a rename_all casing rule applied to field names and enum
// variant tag values. The zero value leaves names unchanged.
type RenameRule string

const (
	RenameLower          RenameRule = "lowercase"
	RenameUpper          RenameRule = "UPPERCASE"
	RenamePascal         RenameRule = "PascalCase"
	RenameCamel          RenameRule = "camelCase"
	RenameSnake          RenameRule = "snake_case"
	RenameScreamingSnake RenameRule = "SCREAMING_SNAKE_CASE"
	RenameKebab          RenameRule = "kebab-case"
	RenameScreamingKebab RenameRule = "SCREAMING-KEBAB-CASE"
)

// Apply renames name according to the rule. Source names are expected in
// snake_case (fields) or PascalCase (variants); both are handled by
// splitting on underscores and case boundaries.
func (r RenameRule) Apply(name string) string {
	if r == "" || name == "" {
		return name
	}
	words := splitWords(name)
	switch r {
	case RenameLower:
		return strings.ToLower(strings.Join(words, ""))
	case RenameUpper:
		return strings.ToUpper(strings.Join(words, ""))
	case RenamePascal:
		var sb strings.Builder
		for _, w := range words {
			sb.WriteString(capitalize(w))
		}
		return sb.String()
	case RenameCamel:
		var sb strings.Builder
		for i, w := range words {
			if i == 0 {
				sb.WriteString(strings.ToLower(w))
			} else {
				sb.WriteString(capitalize(w))
			}
		}
		return sb.String()
	case RenameSnake:
		return strings.ToLower(strings.Join(words, "_"))
	case RenameScreamingSnake:
		return strings.ToUpper(strings.Join(words, "_"))
	case RenameKebab:
		return strings.ToLower(strings.Join(words, "-"))
	case RenameScreamingKebab:
		return strings.ToUpper(strings.Join(words, "-"))
	default:
		return name
	}
}

// splitWords splits a snake_case or PascalCase identifier into words.
func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
		case r >= 'A' && r <= 'Z':
			if i > 0 && cur.Len() > 0 {
				prev := name[i-1]
				if prev >= 'a' && prev <= 'z' || prev >= '0' && prev <= '9' {
					words = append(words, cur.String())
					cur.Reset()
				}
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
