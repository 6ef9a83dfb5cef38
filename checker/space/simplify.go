package space

import (
	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/rjNemo/underscore"
	"golang.org/x/exp/slices"
)

// Simplify normalizes a space bottom-up: empty payload slots empty the whole
// constructor, empty members drop out of disjunctions, singleton disjunctions
// unwrap, and the space of an uninhabited type collapses to empty. The result
// is a fixed point; simplifying twice changes nothing.
func (s Space) Simplify() Space {
	switch s.kind {
	case KindConstructor:
		// A constructor with no payload is an enum head and cannot be
		// simplified further.
		if len(s.spaces) == 0 {
			return s
		}
		simplified := underscore.Map(s.spaces, func(sub Space) Space { return sub.Simplify() })
		if underscore.Any(simplified, func(sub Space) bool { return sub.IsEmpty() }) {
			return NewEmpty()
		}
		return NewConstructor(s.typ, s.head, simplified...)
	case KindType:
		// The space of a type with an empty decomposition is empty.
		if types.CanDecompose(s.typ) && len(decomposeType(s.typ)) == 0 {
			return NewEmpty()
		}
		return s
	case KindDisjunct:
		simplified := underscore.Map(s.spaces, func(sub Space) Space { return sub.Simplify() })
		if len(simplified) == 1 {
			return simplified[0]
		}
		compacted := underscore.Filter(simplified, func(sub Space) bool { return !sub.IsEmpty() })
		switch len(compacted) {
		case 0:
			return NewEmpty()
		case 1:
			return compacted[0]
		default:
			return NewDisjunct(compacted)
		}
	default:
		return s
	}
}

// Flatten expands a space into a list of witnesses, none of them a disjunction
// at the top level, whose union covers the original, in left-to-right order.
// Constructor payloads are unpacked one position at a time: each witness
// replaces a single slot and keeps the other slots as they were, disjunctions
// included. A payload slot that is already flat contributes no variants of its
// own.
func Flatten(s Space) []Space {
	switch s.kind {
	case KindDisjunct:
		flats := []Space{}
		for _, sub := range s.spaces {
			flats = append(flats, Flatten(sub)...)
		}
		return flats
	case KindConstructor:
		flats := []Space{}
		for i, param := range s.spaces {
			switch param.kind {
			case KindConstructor, KindDisjunct, KindBool:
				variants := Flatten(param)
				if len(variants) == 1 && Equal(variants[0], param) {
					continue
				}
				for _, variant := range variants {
					row := slices.Clone(s.spaces)
					row[i] = variant
					flats = append(flats, NewConstructor(s.typ, s.head, row...))
				}
			}
		}
		if len(flats) == 0 {
			return []Space{s}
		}
		return flats
	default:
		return []Space{s}
	}
}
