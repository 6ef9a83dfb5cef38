package cmd

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/arvedviehweger/sieve/checker/pattern"
	"github.com/arvedviehweger/sieve/checker/types"
)

// Parse the small pattern expression syntax of scenario files against an
// expected type:
//
//	_                    wildcard
//	x                    binding
//	true, false          boolean literals
//	.head, .head(p, q)   enum case patterns
//	(p, q)               tuple patterns, (p) plain grouping
//	is T                 dynamic type test
//	0, "lit"             expression patterns
//
// The expected type plays the role of the host type checker: every produced
// pattern node carries the type the engine would have been handed.
func parsePattern(src string, expected types.Type, env map[string]types.Type) (pattern.Pattern, error) {
	src = strings.TrimSpace(src)
	switch {
	case src == "":
		return nil, fmt.Errorf("empty pattern")
	case src == "_":
		return pattern.Any{Ty: expected}, nil
	case src == "true" || src == "false":
		return pattern.Bool{Value: src == "true", Ty: expected}, nil
	case strings.HasPrefix(src, "."):
		return parseEnumElement(src, expected, env)
	case strings.HasPrefix(src, "("):
		return parseGroup(src, expected, env)
	case strings.HasPrefix(src, "is "):
		tested, err := parseTypeRef(strings.TrimPrefix(src, "is "), env)
		if err != nil {
			return nil, err
		}
		return pattern.Is{Ty: tested}, nil
	case isLiteral(src):
		return pattern.Expr{Ty: expected}, nil
	case isIdent(src):
		return pattern.Named{Name: src, Ty: expected}, nil
	default:
		return nil, fmt.Errorf("unrecognized pattern %q", src)
	}
}

func parseEnumElement(src string, expected types.Type, env map[string]types.Type) (pattern.Pattern, error) {
	enum, ok := expected.(*types.Enum)
	if !ok {
		return nil, fmt.Errorf("case pattern %q against non-enum type %s", src, expected)
	}
	head, rest := src[1:], ""
	if open := strings.IndexByte(head, '('); open >= 0 {
		if !strings.HasSuffix(head, ")") {
			return nil, fmt.Errorf("unterminated payload in pattern %q", src)
		}
		head, rest = head[:open], head[open+1:len(head)-1]
	}
	c, ok := enum.CaseNamed(head)
	if !ok {
		return nil, fmt.Errorf("enum %s has no case '.%s'", enum.Name, head)
	}
	if rest == "" {
		return pattern.EnumElement{Name: head, Ty: expected}, nil
	}

	row := payloadRow(c)
	if len(row) == 0 {
		return nil, fmt.Errorf("case '.%s' of enum %s takes no payload", head, enum.Name)
	}
	parts := splitTopLevel(rest)
	if len(parts) == 1 {
		// A single sub-pattern matches the whole payload, however many
		// arguments the case declares.
		argTy := row[0]
		if len(row) > 1 {
			argTy = types.NewTuple(row...)
		}
		sub, err := parsePattern(parts[0], argTy, env)
		if err != nil {
			return nil, err
		}
		return pattern.EnumElement{
			Name: head,
			Sub:  pattern.Paren{Sub: sub, Ty: argTy},
			Ty:   expected,
		}, nil
	}
	if len(parts) != len(row) {
		return nil, fmt.Errorf("case '.%s' of enum %s takes %d arguments, pattern has %d",
			head, enum.Name, len(row), len(parts))
	}
	elements := make([]pattern.Pattern, 0, len(parts))
	for i, part := range parts {
		sub, err := parsePattern(part, row[i], env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, sub)
	}
	return pattern.EnumElement{
		Name: head,
		Sub:  pattern.Tuple{Elements: elements, Ty: types.NewTuple(row...)},
		Ty:   expected,
	}, nil
}

func parseGroup(src string, expected types.Type, env map[string]types.Type) (pattern.Pattern, error) {
	if !strings.HasSuffix(src, ")") {
		return nil, fmt.Errorf("unterminated pattern %q", src)
	}
	parts := splitTopLevel(src[1 : len(src)-1])
	if len(parts) == 1 {
		sub, err := parsePattern(parts[0], expected, env)
		if err != nil {
			return nil, err
		}
		return pattern.Paren{Sub: sub, Ty: expected}, nil
	}
	tup, ok := expected.(types.Tuple)
	if !ok {
		return nil, fmt.Errorf("tuple pattern %q against non-tuple type %s", src, expected)
	}
	if len(parts) != len(tup.Elements) {
		return nil, fmt.Errorf("tuple pattern %q has %d elements, type %s has %d",
			src, len(parts), expected, len(tup.Elements))
	}
	elements := make([]pattern.Pattern, 0, len(parts))
	for i, part := range parts {
		sub, err := parsePattern(part, tup.Elements[i], env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, sub)
	}
	return pattern.Tuple{Elements: elements, Ty: expected}, nil
}

// The argument row of an enum case as patterns see it: a single tuple-typed
// argument spreads into its elements.
func payloadRow(c types.Case) []types.Type {
	if len(c.Payload) == 1 {
		if tup, ok := c.Payload[0].(types.Tuple); ok {
			return tup.Elements
		}
	}
	return c.Payload
}

func isLiteral(s string) bool {
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		return true
	}
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return false
	}
	for _, r := range body {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if i > 0 && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return s != ""
}
