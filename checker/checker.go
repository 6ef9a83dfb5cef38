package checker

import (
	"github.com/arvedviehweger/sieve/checker/pattern"
	"github.com/arvedviehweger/sieve/checker/space"
	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/arvedviehweger/sieve/checker/util"
	"github.com/rjNemo/underscore"
)

// One case label item of a switch. A label with a guard expression matches
// conditionally, so it never counts toward coverage; a default label makes
// the switch trivially exhaustive.
type CaseItem struct {
	Pattern pattern.Pattern
	Guarded bool
	Default bool
}

// The engine's view of a switch statement: the subject's type and the case
// label items in source order.
type Switch struct {
	Subject types.Type
	Cases   []CaseItem
}

// CheckExhaustiveness decides whether the switch covers every value of its
// subject type and reports what is missing through the sink. In limited mode,
// used when the subject failed to type-check, only the empty-switch check
// runs.
func CheckExhaustiveness(sw *Switch, limited bool, sink Sink) {
	if limited {
		if len(sw.Cases) == 0 {
			sink.EmptySwitch(sw)
		}
		return
	}

	uncovered := Residual(sw)
	if uncovered.IsEmpty() {
		return
	}

	// If the entire space is uncovered we either suggest the type's full
	// decomposition, or, when the type cannot be decomposed, a default
	// clause.
	if uncovered.Kind() == space.KindType {
		if types.CanDecompose(uncovered.Type()) {
			sink.NonExhaustive(sw, false, witnesses(space.Decompose(uncovered.Type())))
		} else if len(sw.Cases) == 0 {
			sink.EmptySwitch(sw)
		} else {
			sink.NonExhaustive(sw, true, nil)
		}
		return
	}

	if uncovered.Kind() != space.KindDisjunct {
		uncovered = space.NewDisjunct([]space.Space{uncovered})
	}
	sink.NonExhaustive(sw, false, witnesses(uncovered.Spaces()))
}

// Residual computes the simplified uncovered space of the switch: the
// subject type's space minus the union of the non-guarded case projections.
// A default clause leaves no residual.
func Residual(sw *Switch) space.Space {
	caseSpaces := []space.Space{}
	for _, item := range sw.Cases {
		// Guarded labels do not contribute to the exhaustiveness of the match.
		if item.Guarded {
			continue
		}
		if item.Default {
			return space.NewEmpty()
		}
		caseSpaces = append(caseSpaces, Project(item.Pattern))
	}
	total := space.NewType(sw.Subject)
	covered := space.NewDisjunct(caseSpaces)
	return total.Minus(covered).Simplify()
}

// Expand the uncovered members into flattened witnesses, preserving
// projection order and dropping duplicates and absorbed (empty) members.
func witnesses(uncovered []space.Space) []space.Space {
	flats := []space.Space{}
	for _, sub := range uncovered {
		flats = append(flats, space.Flatten(sub)...)
	}
	flats = underscore.Filter(flats, func(s space.Space) bool { return !s.IsEmpty() })
	return util.UniqueCmp(flats, space.Equal)
}
