package space

import (
	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/rjNemo/underscore"
)

// Decompose splits a decomposable type into its component constructor spaces:
// the two boolean singletons, one constructor per enum case, or a single
// empty-headed constructor for a tuple. Panics on a non-decomposable type.
//
// An enum case with missing type information contributes an empty space, so a
// malformed declaration degrades coverage reporting instead of crashing the
// analysis.
func Decompose(t types.Type) []Space {
	return decomposeType(t)
}

func decomposeType(t types.Type) []Space {
	switch ct := t.(type) {
	case types.Bool:
		return []Space{NewBool(true), NewBool(false)}
	case *types.Enum:
		return underscore.Map(ct.Cases, func(c types.Case) Space {
			if c.Malformed {
				return NewEmpty()
			}
			return NewConstructor(t, c.Name, payloadSpaces(c)...)
		})
	case types.Tuple:
		return []Space{NewConstructor(t, "", elementSpaces(ct)...)}
	default:
		panic("space: cannot decompose type.")
	}
}

// The payload row of a decomposed enum case. A single tuple-typed argument is
// spread into one space per tuple element so the row shape matches what the
// pattern projector produces for a multi-argument match.
func payloadSpaces(c types.Case) []Space {
	if len(c.Payload) == 1 {
		if tup, ok := c.Payload[0].(types.Tuple); ok {
			return elementSpaces(tup)
		}
	}
	return underscore.Map(c.Payload, func(arg types.Type) Space { return NewType(arg) })
}

func elementSpaces(t types.Tuple) []Space {
	return underscore.Map(t.Elements, func(elt types.Type) Space { return NewType(elt) })
}
