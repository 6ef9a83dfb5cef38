package checker

import (
	"fmt"
	"io"

	"github.com/arvedviehweger/sieve/checker/space"
	"github.com/rjNemo/underscore"
)

// The diagnostic sink a host plugs into the engine. The engine reports two
// conditions: a switch with no cases at all, and a non-exhaustive switch. For
// the latter, needsDefault asks for a single default suggestion; otherwise
// missing carries the concrete uncovered patterns, ready to render.
type Sink interface {
	EmptySwitch(sw *Switch)
	NonExhaustive(sw *Switch, needsDefault bool, missing []space.Space)
}

// SuggestedCases renders each missing space as a case line a user can paste
// back into the switch.
func SuggestedCases(missing []space.Space) []string {
	return underscore.Map(missing, func(s space.Space) string {
		return fmt.Sprintf("case %s:", s)
	})
}

// PrintSink writes human-readable diagnostics to an output stream.
type PrintSink struct {
	Out io.Writer
}

func (p PrintSink) EmptySwitch(sw *Switch) {
	fmt.Fprintf(p.Out, "error: switch over '%s' must have at least one case\n", sw.Subject)
	fmt.Fprintf(p.Out, "    default:\n")
}

func (p PrintSink) NonExhaustive(sw *Switch, needsDefault bool, missing []space.Space) {
	if needsDefault {
		fmt.Fprintf(p.Out, "error: switch over '%s' must be exhaustive, consider adding a default clause\n", sw.Subject)
		fmt.Fprintf(p.Out, "    default:\n")
		return
	}
	fmt.Fprintf(p.Out, "error: switch over '%s' must be exhaustive, consider adding missing cases\n", sw.Subject)
	for _, line := range SuggestedCases(missing) {
		fmt.Fprintf(p.Out, "    %s\n", line)
	}
}
