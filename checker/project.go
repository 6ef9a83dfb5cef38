package checker

import (
	"github.com/arvedviehweger/sieve/checker/pattern"
	"github.com/arvedviehweger/sieve/checker/space"
	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/rjNemo/underscore"
)

// Project converts a case-label pattern into the space of values it matches.
// Type tests, typed annotations, and expression patterns are opaque to the
// analysis and project to the empty space, so they never contribute coverage.
func Project(item pattern.Pattern) space.Space {
	switch pat := item.(type) {
	case pattern.Any, pattern.Named:
		return space.NewType(item.Type())
	case pattern.Bool:
		return space.NewBool(pat.Value)
	case pattern.Typed, pattern.Is, pattern.Expr:
		return space.NewEmpty()
	case pattern.Var:
		return Project(pat.Sub)
	case pattern.Paren:
		return Project(pat.Sub)
	case pattern.OptionalSome:
		return space.NewConstructor(pat.Ty, types.SomeName, Project(pat.Sub))
	case pattern.EnumElement:
		return projectEnumElement(pat)
	case pattern.Tuple:
		return space.NewConstructor(pat.Ty, "", projectAll(pat.Elements)...)
	default:
		panic("checker: unknown pattern kind in projection.")
	}
}

func projectAll(pats []pattern.Pattern) []space.Space {
	return underscore.Map(pats, func(p pattern.Pattern) space.Space { return Project(p) })
}

func projectEnumElement(pat pattern.EnumElement) space.Space {
	// With no sub-pattern there is no further recursive structure; the
	// head-only constructor covers the whole case.
	if pat.Sub == nil {
		return space.NewConstructor(pat.Ty, pat.Name)
	}

	switch sub := pat.Sub.(type) {
	case pattern.Tuple:
		return space.NewConstructor(pat.Ty, pat.Name, projectAll(sub.Elements)...)
	case pattern.Paren:
		sem := sub.Semantic()
		var args []space.Space
		switch sem.(type) {
		case pattern.Named, pattern.Any, pattern.Tuple:
			// A single binding may match the whole payload of a multi-argument
			// case. Spread it into the tuple it really is, so the row shape
			// lines up with the decomposed form of the enum.
			if tup, ok := sem.Type().(types.Tuple); ok {
				args = underscore.Map(tup.Elements, func(elt types.Type) space.Space {
					return space.NewType(elt)
				})
			} else {
				args = []space.Space{Project(sem)}
			}
		default:
			args = []space.Space{Project(sem)}
		}
		return space.NewConstructor(pat.Ty, pat.Name, args...)
	default:
		return Project(pat.Sub)
	}
}
