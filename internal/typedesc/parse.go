package typedesc

import (
	"strings"

	"github.com/oasgen/oasgen/internal/diagnostic"
)

// TypeExpr is the raw syntactic form of a type reference, before
// normalization. References, lifetimes and mutability are already stripped
// by the parser since they are transparent to schema meaning.
type TypeExpr struct {
	// Name is the base identifier (last path segment). Empty for tuples.
	Name string
	// Args holds generic arguments in declaration order.
	Args []TypeExpr
	// Tuple marks a tuple expression; Elems holds its element types.
	// A tuple with no elements is the unit type.
	Tuple bool
	Elems []TypeExpr

	Pos diagnostic.Pos
}

// ParseExpr parses a type expression string such as
//
//	Option<Vec<u8>>
//	&'a str
//	std::collections::HashMap<String, Entry<i32>>
//	[u8]
//	(i32, String)
//
// into a TypeExpr. pos locates the expression in its manifest for error
// reporting.
func ParseExpr(expr string, pos diagnostic.Pos) (TypeExpr, error) {
	p := &exprParser{src: expr, pos: pos}
	te, err := p.parseType()
	if err != nil {
		return TypeExpr{}, err
	}
	p.skipSpace()
	if p.i < len(p.src) {
		return TypeExpr{}, p.errorf("unexpected %q after type expression", p.src[p.i:])
	}
	return te, nil
}

type exprParser struct {
	src string
	i   int
	pos diagnostic.Pos
}

func (p *exprParser) errorf(format string, args ...any) error {
	err := diagnostic.Errorf(diagnostic.CategoryTypeSyntax, p.pos, "invalid type expression %q: "+format,
		append([]any{p.src}, args...)...)
	return err
}

func (p *exprParser) skipSpace() {
	for p.i < len(p.src) && (p.src[p.i] == ' ' || p.src[p.i] == '\t') {
		p.i++
	}
}

// parseType parses one full type, stripping reference and lifetime
// wrapping first.
func (p *exprParser) parseType() (TypeExpr, error) {
	p.skipSpace()

	// &, &&, &'a mut ... are transparent.
	for p.i < len(p.src) && p.src[p.i] == '&' {
		p.i++
		p.skipSpace()
		if p.i < len(p.src) && p.src[p.i] == '\'' {
			p.i++
			p.ident()
			p.skipSpace()
		}
		if rest := p.src[p.i:]; strings.HasPrefix(rest, "mut") &&
			(len(rest) == len("mut") || !isIdentByte(rest[len("mut")])) {
			p.i += len("mut")
			p.skipSpace()
		}
	}

	if p.i >= len(p.src) {
		return TypeExpr{}, p.errorf("expected a type")
	}

	switch p.src[p.i] {
	case '(':
		return p.parseTuple()
	case '[':
		return p.parseSlice()
	}

	return p.parsePath()
}

// parseTuple parses "(A, B, ...)" including the unit type "()".
func (p *exprParser) parseTuple() (TypeExpr, error) {
	p.i++ // consume '('
	te := TypeExpr{Tuple: true, Pos: p.pos}
	p.skipSpace()
	for p.i < len(p.src) && p.src[p.i] != ')' {
		elem, err := p.parseType()
		if err != nil {
			return TypeExpr{}, err
		}
		te.Elems = append(te.Elems, elem)
		p.skipSpace()
		if p.i < len(p.src) && p.src[p.i] == ',' {
			p.i++
			p.skipSpace()
		}
	}
	if p.i >= len(p.src) {
		return TypeExpr{}, p.errorf("unterminated tuple")
	}
	p.i++ // consume ')'
	return te, nil
}

// parseSlice parses "[T]" and "[T; N]" as the Vec wrapper.
func (p *exprParser) parseSlice() (TypeExpr, error) {
	p.i++ // consume '['
	elem, err := p.parseType()
	if err != nil {
		return TypeExpr{}, err
	}
	p.skipSpace()
	if p.i < len(p.src) && p.src[p.i] == ';' {
		// fixed-size array: the length is irrelevant to the schema
		p.i++
		for p.i < len(p.src) && p.src[p.i] != ']' {
			p.i++
		}
	}
	if p.i >= len(p.src) || p.src[p.i] != ']' {
		return TypeExpr{}, p.errorf("unterminated slice")
	}
	p.i++ // consume ']'
	return TypeExpr{Name: "Vec", Args: []TypeExpr{elem}, Pos: p.pos}, nil
}

// parsePath parses "seg::seg::Name<args>"; only the last segment matters.
func (p *exprParser) parsePath() (TypeExpr, error) {
	name := p.ident()
	if name == "" {
		return TypeExpr{}, p.errorf("expected identifier at offset %d", p.i)
	}
	if name == "dyn" {
		// trait object prefix is transparent
		p.skipSpace()
		return p.parsePath()
	}
	for strings.HasPrefix(p.src[p.i:], "::") {
		p.i += 2
		next := p.ident()
		if next == "" {
			return TypeExpr{}, p.errorf("expected identifier after %q", "::")
		}
		name = next
	}
	te := TypeExpr{Name: name, Pos: p.pos}

	p.skipSpace()
	if p.i < len(p.src) && p.src[p.i] == '<' {
		p.i++
		p.skipSpace()
		for p.i < len(p.src) && p.src[p.i] != '>' {
			// lifetime arguments are ignored entirely
			if p.src[p.i] == '\'' {
				p.i++
				p.ident()
			} else {
				arg, err := p.parseType()
				if err != nil {
					return TypeExpr{}, err
				}
				te.Args = append(te.Args, arg)
			}
			p.skipSpace()
			if p.i < len(p.src) && p.src[p.i] == ',' {
				p.i++
				p.skipSpace()
			}
		}
		if p.i >= len(p.src) {
			return TypeExpr{}, p.errorf("unterminated generic argument list")
		}
		p.i++ // consume '>'
	}
	return te, nil
}

func (p *exprParser) ident() string {
	start := p.i
	for p.i < len(p.src) && isIdentByte(p.src[p.i]) {
		p.i++
	}
	return p.src[start:p.i]
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
