package space

import (
	"fmt"
	"strings"

	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/rjNemo/underscore"
)

// The classification of a space value. Only a small constant number of kind
// pairs is meaningful to the algebra; dispatching on an unknown pair is an
// invariant violation, not a runtime condition.
type Kind int

const (
	KindEmpty Kind = iota + 1
	KindType
	KindConstructor
	KindDisjunct
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindType:
		return "type"
	case KindConstructor:
		return "constructor"
	case KindDisjunct:
		return "disjunct"
	case KindBool:
		return "bool"
	default:
		panic("space: invalid space kind encountered.")
	}
}

// A Space is an abstract set of values: the full set of values of a type, a
// constructor refinement of a type, one of the two boolean singletons, a
// finite union, or the empty set. Spaces are immutable; every operation
// returns a fresh value and the child graph is a tree by construction.
//
// The algebra below follows Fengyun Liu's space calculus together with Luc
// Maranget's warning algorithm: exhaustiveness of a match reduces to asking
// whether the subject type's space minus the union of the written pattern
// spaces is empty.
type Space struct {
	kind   Kind
	typ    types.Type
	head   string
	spaces []Space
	val    bool
}

func NewEmpty() Space {
	return Space{kind: KindEmpty}
}

func NewType(t types.Type) Space {
	return Space{kind: KindType, typ: t}
}

// A constructor refinement of type t with the given head label and payload
// spaces. Tuples use the empty head label.
func NewConstructor(t types.Type, head string, payload ...Space) Space {
	return Space{kind: KindConstructor, typ: t, head: head, spaces: payload}
}

func NewDisjunct(spaces []Space) Space {
	return Space{kind: KindDisjunct, spaces: spaces}
}

func NewBool(val bool) Space {
	return Space{kind: KindBool, val: val}
}

func (s Space) Kind() Kind {
	return s.kind
}

func (s Space) IsEmpty() bool {
	return s.kind == KindEmpty
}

func (s Space) Type() types.Type {
	if s.kind != KindType && s.kind != KindConstructor {
		panic("space: wrong kind of space tried to access space type.")
	}
	return s.typ
}

func (s Space) Head() string {
	if s.kind != KindConstructor {
		panic("space: wrong kind of space tried to access head.")
	}
	return s.head
}

func (s Space) Spaces() []Space {
	if s.kind != KindConstructor && s.kind != KindDisjunct {
		panic("space: wrong kind of space tried to access subspace list.")
	}
	return s.spaces
}

func (s Space) BoolValue() bool {
	if s.kind != KindBool {
		panic("space: wrong kind of space tried to access bool value.")
	}
	return s.val
}

// Structural equality of space values, used by tests and by tooling that
// deduplicates flattened witnesses.
func Equal(a Space, b Space) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindEmpty:
		return true
	case KindType:
		return a.typ.Equal(b.typ)
	case KindBool:
		return a.val == b.val
	case KindConstructor:
		if !a.typ.Equal(b.typ) || a.head != b.head {
			return false
		}
		fallthrough
	case KindDisjunct:
		if len(a.spaces) != len(b.spaces) {
			return false
		}
		for i, sub := range a.spaces {
			if !Equal(sub, b.spaces[i]) {
				return false
			}
		}
		return true
	default:
		panic("space: invalid space kind encountered.")
	}
}

// Render the space the way a user would write the matching pattern: a leading
// dot for enum heads, payloads in parentheses separated by commas, `_` for an
// unconstrained type, and the two boolean literals. Disjunctions are
// normalized before printing; use Dump for the raw structure.
func (s Space) String() string {
	return s.render(true)
}

// The raw structure of the space, disjunctions and empties included.
func Dump(s Space) string {
	return s.render(false)
}

func (s Space) render(normalize bool) string {
	switch s.kind {
	case KindEmpty:
		return "[EMPTY]"
	case KindDisjunct:
		if normalize {
			return s.Simplify().render(false)
		}
		parts := underscore.Map(s.spaces, func(sub Space) string { return sub.render(false) })
		return "DISJOIN(" + strings.Join(parts, " | ") + ")"
	case KindBool:
		if s.val {
			return "true"
		}
		return "false"
	case KindConstructor:
		var sb strings.Builder
		if s.head != "" {
			sb.WriteString(".")
			sb.WriteString(s.head)
		}
		if len(s.spaces) == 0 {
			return sb.String()
		}
		sb.WriteString("(")
		for i, param := range s.spaces {
			if i > 0 {
				sb.WriteString(", ")
			}
			if normalize {
				sb.WriteString(param.Simplify().render(normalize))
			} else {
				sb.WriteString(param.render(normalize))
			}
		}
		sb.WriteString(")")
		return sb.String()
	case KindType:
		if !normalize {
			return fmt.Sprintf("(_ : %s)", s.typ)
		}
		return "_"
	default:
		panic("space: invalid space kind encountered.")
	}
}
