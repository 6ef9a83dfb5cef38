package pattern

import (
	"github.com/arvedviehweger/sieve/checker/types"
)

// The pattern syntax the engine understands, one variant per syntactic kind.
// Every pattern carries the type the host checker assigned to it; projection
// into spaces never re-derives types. Patterns the engine treats as opaque
// (type tests, typed annotations, arbitrary expressions) are still present as
// variants so a host can hand over a whole case label unfiltered.
type Pattern interface {
	Type() types.Type
}

// The wildcard `_`.
type Any struct {
	Ty types.Type
}

func (a Any) Type() types.Type {
	return a.Ty
}

// A name binding such as `x`.
type Named struct {
	Name string
	Ty   types.Type
}

func (n Named) Type() types.Type {
	return n.Ty
}

// A boolean literal pattern.
type Bool struct {
	Value bool
	Ty    types.Type
}

func (b Bool) Type() types.Type {
	return b.Ty
}

// A pattern with a type annotation. Opaque to exhaustiveness.
type Typed struct {
	Sub Pattern
	Ty  types.Type
}

func (t Typed) Type() types.Type {
	return t.Ty
}

// A dynamic type test. Opaque to exhaustiveness.
type Is struct {
	Ty types.Type
}

func (i Is) Type() types.Type {
	return i.Ty
}

// An arbitrary expression match, such as an integer or string literal.
// Opaque to exhaustiveness.
type Expr struct {
	Ty types.Type
}

func (e Expr) Type() types.Type {
	return e.Ty
}

// A `var`/`let` binding wrapper around an inner pattern.
type Var struct {
	Sub Pattern
	Ty  types.Type
}

func (v Var) Type() types.Type {
	return v.Ty
}

type Paren struct {
	Sub Pattern
	Ty  types.Type
}

func (p Paren) Type() types.Type {
	return p.Ty
}

// Strip parenthesis and binding wrappers down to the pattern that provides
// the match semantics.
func (p Paren) Semantic() Pattern {
	return Semantic(p.Sub)
}

// The sugar form matching a present optional value.
type OptionalSome struct {
	Sub Pattern
	Ty  types.Type
}

func (o OptionalSome) Type() types.Type {
	return o.Ty
}

// An enum case pattern `.head` or `.head(sub)`. Sub is nil when the pattern
// names only the head.
type EnumElement struct {
	Name string
	Sub  Pattern
	Ty   types.Type
}

func (e EnumElement) Type() types.Type {
	return e.Ty
}

type Tuple struct {
	Elements []Pattern
	Ty       types.Type
}

func (t Tuple) Type() types.Type {
	return t.Ty
}

// Semantic unwraps Paren and Var layers, returning the pattern that decides
// what the match means.
func Semantic(p Pattern) Pattern {
	for {
		switch sp := p.(type) {
		case Paren:
			p = sp.Sub
		case Var:
			p = sp.Sub
		default:
			return p
		}
	}
}
