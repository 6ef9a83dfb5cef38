package space

import (
	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/benbjohnson/immutable"
	"github.com/rjNemo/underscore"
)

// A pattern-matchable encoding of two space kinds, so each algebra operation
// can dispatch on the pair in a single flat switch.
func pair(left Kind, right Kind) int {
	return int(left)<<8 | int(right)
}

// The set of types already decomposed along the current recursion path. A
// persistent map gives each branch of the recursion its own extension of the
// path for free; marking a type on one branch never leaks into a sibling.
// Refusing to decompose a type twice on one path is what keeps the algebra
// terminating on mutually recursive enums.
type path struct {
	seen *immutable.SortedMap
}

func newPath() path {
	return path{immutable.NewSortedMap(nil)}
}

func (p path) canDecompose(t types.Type) bool {
	if !types.CanDecompose(t) {
		return false
	}
	_, visited := p.seen.Get(t.String())
	return !visited
}

func (p path) mark(t types.Type) path {
	return path{p.seen.Set(t.String(), struct{}{})}
}

// Collapse a decomposition into a single space: none is empty, one is itself,
// several form a disjunct.
func collapse(spaces []Space) Space {
	switch len(spaces) {
	case 0:
		return NewEmpty()
	case 1:
		return spaces[0]
	default:
		return NewDisjunct(spaces)
	}
}

// IsSubspace reports whether every value in s is also in other. It is an
// optimization over computing whether the difference of the two spaces is
// empty.
func (s Space) IsSubspace(other Space) bool {
	return s.isSubspace(other, newPath())
}

func (s Space) isSubspace(other Space, p path) bool {
	if s.IsEmpty() {
		return true
	}
	if other.IsEmpty() {
		return false
	}

	switch pair(s.kind, other.kind) {
	case pair(KindDisjunct, KindType),
		pair(KindDisjunct, KindConstructor),
		pair(KindDisjunct, KindDisjunct),
		pair(KindDisjunct, KindBool):
		// (S1 | ... | Sn) <= S iff S1 <= S && ... && Sn <= S
		for _, sub := range s.spaces {
			if !sub.isSubspace(other, p) {
				return false
			}
		}
		return true
	case pair(KindType, KindType):
		// Are the types equal? If so, the space is covered.
		if s.typ.Equal(other.typ) {
			return true
		}
		if p.canDecompose(s.typ) {
			if NewDisjunct(decomposeType(s.typ)).isSubspace(other, p.mark(s.typ)) {
				return true
			}
		}
		if p.canDecompose(other.typ) {
			return s.isSubspace(NewDisjunct(decomposeType(other.typ)), p.mark(other.typ))
		}
		// The host type checker has already related the two types.
		return true
	case pair(KindType, KindDisjunct):
		// (_ : T) <= (S1 | ... | Sn) iff some Si covers it, or D(T) does.
		if underscore.Any(other.spaces, func(sub Space) bool { return s.isSubspace(sub, p) }) {
			return true
		}
		if !p.canDecompose(s.typ) {
			return false
		}
		return NewDisjunct(decomposeType(s.typ)).isSubspace(other, p.mark(s.typ))
	case pair(KindType, KindConstructor):
		// (_ : T) <= H(p1, ..., pn) iff D(T) <= H(p1, ..., pn)
		if p.canDecompose(s.typ) {
			return NewDisjunct(decomposeType(s.typ)).isSubspace(other, p.mark(s.typ))
		}
		// An undecomposable type is always larger than its constructor space.
		return false
	case pair(KindConstructor, KindType):
		// Well-typed by construction.
		return true
	case pair(KindBool, KindType):
		return types.IsBool(other.typ)
	case pair(KindConstructor, KindConstructor):
		// If the heads don't match, subspace is impossible.
		if s.head != other.head {
			return false
		}
		// A head-only pattern covers the whole constructor space.
		if len(other.spaces) == 0 {
			return true
		}
		// H(a1, ..., an) <= H(b1, ..., bn) iff a1 <= b1 && ... && an <= bn
		for i := 0; i < len(s.spaces) && i < len(other.spaces); i++ {
			if !s.spaces[i].isSubspace(other.spaces[i], p) {
				return false
			}
		}
		return true
	case pair(KindConstructor, KindDisjunct),
		pair(KindBool, KindDisjunct):
		// S <= (S1 | ... | Sn) iff S <= S1 || ... || S <= Sn
		return underscore.Any(other.spaces, func(sub Space) bool { return s.isSubspace(sub, p) })
	case pair(KindBool, KindBool):
		return s.val == other.val
	case pair(KindConstructor, KindBool),
		pair(KindType, KindBool),
		pair(KindBool, KindConstructor):
		return false
	default:
		panic("space: uncovered pair found while computing subspaces.")
	}
}

// Intersect returns the largest subspace shared by both arguments.
func (s Space) Intersect(other Space) Space {
	return s.intersect(other, newPath())
}

func (s Space) intersect(other Space, p path) Space {
	// The intersection with an empty space is empty.
	if s.IsEmpty() || other.IsEmpty() {
		return NewEmpty()
	}

	switch pair(s.kind, other.kind) {
	case pair(KindType, KindDisjunct),
		pair(KindConstructor, KindDisjunct),
		pair(KindDisjunct, KindDisjunct),
		pair(KindBool, KindDisjunct):
		// S & (S1 | ... | Sn) = (S & S1) | ... | (S & Sn)
		intersected := underscore.Map(other.spaces, func(sub Space) Space { return s.intersect(sub, p) })
		return collapse(underscore.Filter(intersected, func(sub Space) bool { return !sub.IsEmpty() }))
	case pair(KindDisjunct, KindType),
		pair(KindDisjunct, KindConstructor),
		pair(KindDisjunct, KindBool):
		intersected := underscore.Map(s.spaces, func(sub Space) Space { return sub.intersect(other, p) })
		return collapse(underscore.Filter(intersected, func(sub Space) bool { return !sub.IsEmpty() }))
	case pair(KindType, KindType):
		// The intersection of equal types is that type.
		if s.typ.Equal(other.typ) {
			return other
		} else if p.canDecompose(s.typ) {
			return collapse(decomposeType(s.typ)).intersect(other, p.mark(s.typ))
		} else if p.canDecompose(other.typ) {
			return s.intersect(collapse(decomposeType(other.typ)), p.mark(other.typ))
		}
		return other
	case pair(KindType, KindConstructor):
		if p.canDecompose(s.typ) {
			return collapse(decomposeType(s.typ)).intersect(other, p.mark(s.typ))
		}
		// The constructor is a refinement of the type.
		return other
	case pair(KindConstructor, KindType):
		return s
	case pair(KindConstructor, KindConstructor):
		// Different heads occupy disjoint spaces.
		if s.head != other.head {
			return NewEmpty()
		}
		// A head-only pattern intersected with anything under the same head
		// is the whole original space.
		if len(other.spaces) == 0 {
			return s
		}
		// Likewise, a head-only pattern on the left leaves the other side's
		// refinement of that head.
		if len(s.spaces) == 0 {
			return other
		}
		params := make([]Space, 0, len(s.spaces))
		for i := 0; i < len(s.spaces) && i < len(other.spaces); i++ {
			intersection := s.spaces[i].intersect(other.spaces[i], p)
			if intersection.Simplify().IsEmpty() {
				return NewEmpty()
			}
			params = append(params, intersection)
		}
		return NewConstructor(s.typ, s.head, params...)
	case pair(KindBool, KindBool):
		if s.val == other.val {
			return s
		}
		return NewEmpty()
	case pair(KindBool, KindType):
		if types.IsBool(other.typ) {
			return s
		}
		if p.canDecompose(other.typ) {
			return s.intersect(collapse(decomposeType(other.typ)), p.mark(other.typ))
		}
		return NewEmpty()
	case pair(KindType, KindBool):
		if p.canDecompose(s.typ) {
			return collapse(decomposeType(s.typ)).intersect(other, p.mark(s.typ))
		}
		return NewEmpty()
	case pair(KindBool, KindConstructor),
		pair(KindConstructor, KindBool):
		return NewEmpty()
	default:
		panic("space: uncovered pair found while computing intersection.")
	}
}

// Minus returns the values of s not in other. When other covers s the result
// simplifies to empty; two unrelated opaque types also subtract to empty.
// Otherwise constructor payloads are unpacked one position at a time, so the
// uncovered cases of a constructor may overlap.
func (s Space) Minus(other Space) Space {
	return s.minus(other, newPath())
}

func (s Space) minus(other Space, p path) Space {
	if s.IsEmpty() {
		return NewEmpty()
	}
	if other.IsEmpty() {
		return s
	}

	switch pair(s.kind, other.kind) {
	case pair(KindType, KindType):
		// Equal types cover each other entirely.
		if s.typ.Equal(other.typ) {
			return NewEmpty()
		} else if p.canDecompose(s.typ) {
			return collapse(decomposeType(s.typ)).minus(other, p.mark(s.typ))
		} else if p.canDecompose(other.typ) {
			return s.minus(collapse(decomposeType(other.typ)), p.mark(other.typ))
		}
		return NewEmpty()
	case pair(KindType, KindConstructor):
		if p.canDecompose(s.typ) {
			return collapse(decomposeType(s.typ)).minus(other, p.mark(s.typ))
		}
		return s
	case pair(KindType, KindDisjunct),
		pair(KindConstructor, KindDisjunct),
		pair(KindDisjunct, KindDisjunct),
		pair(KindBool, KindDisjunct):
		// S - (S1 | ... | Sn) = ((S - S1) - ...) - Sn
		acc := s
		for _, sub := range other.spaces {
			acc = acc.minus(sub, p)
		}
		return acc
	case pair(KindDisjunct, KindType),
		pair(KindDisjunct, KindConstructor),
		pair(KindDisjunct, KindBool):
		return collapse(underscore.Map(s.spaces, func(sub Space) Space { return sub.minus(other, p) }))
	case pair(KindConstructor, KindType):
		// The type covers all of its constructors.
		return NewEmpty()
	case pair(KindConstructor, KindConstructor):
		// Different heads are disjoint, so the difference is the minuend.
		if s.head != other.head {
			return s
		}
		// A head-only pattern under a matching head covers the whole space.
		if len(other.spaces) == 0 {
			return NewEmpty()
		}

		reconstructed := make([]Space, 0, len(s.spaces))
		foundBad := false
		for i := 0; i < len(s.spaces) && i < len(other.spaces); i++ {
			s1, s2 := s.spaces[i], other.spaces[i]
			// If any pair of payload spaces is disjoint, the constructors
			// are disjoint and the difference is the minuend.
			if s1.intersect(s2, p).Simplify().IsEmpty() {
				return s
			}
			if !s1.isSubspace(s2, p) {
				foundBad = true
			}
			// Unpack one constructor argument at a time: copy the payload
			// row and replace only position i with the difference.
			row := make([]Space, len(s.spaces))
			copy(row, s.spaces)
			row[i] = s1.minus(s2, p)
			reconstructed = append(reconstructed, NewConstructor(s.typ, s.head, row...))
		}
		if foundBad {
			return collapse(reconstructed)
		}
		// Every argument was covered, so the whole constructor is.
		return NewEmpty()
	case pair(KindBool, KindBool):
		if s.val == other.val {
			return NewEmpty()
		}
		return s
	case pair(KindBool, KindType):
		if types.IsBool(other.typ) {
			return NewEmpty()
		}
		if p.canDecompose(other.typ) {
			return s.minus(collapse(decomposeType(other.typ)), p.mark(other.typ))
		}
		return s
	case pair(KindBool, KindConstructor):
		return s
	case pair(KindType, KindBool):
		if p.canDecompose(s.typ) {
			return collapse(decomposeType(s.typ)).minus(other, p.mark(s.typ))
		}
		return s
	case pair(KindConstructor, KindBool):
		return NewEmpty()
	default:
		panic("space: uncovered pair found while computing difference.")
	}
}
