package cmd

import (
	"fmt"
	"io"

	"github.com/arvedviehweger/sieve/checker"
	"github.com/arvedviehweger/sieve/checker/space"
	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <scenario.yaml>",
	Short: "Check the switches of a scenario file for exhaustiveness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, env, err := LoadScenarios(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if verbose {
			reportMalformed(out, env)
		}

		failures := 0
		for _, scen := range scenarios {
			sink := &countingSink{inner: checker.PrintSink{Out: out}}
			if verbose && !scen.Limited {
				fmt.Fprintf(out, "%s: residual %s\n", scen.Name, space.Dump(checker.Residual(scen.Switch)))
			}
			checker.CheckExhaustiveness(scen.Switch, scen.Limited, sink)
			if sink.reports > 0 {
				fmt.Fprintf(out, "%s: not exhaustive\n", scen.Name)
				failures++
			} else {
				fmt.Fprintf(out, "%s: exhaustive\n", scen.Name)
			}
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d switches are not exhaustive", failures, len(scenarios))
		}
		return nil
	},
}

// Count diagnostics on their way to the real sink, so the command can pick
// an exit status.
type countingSink struct {
	inner   checker.Sink
	reports int
}

func (c *countingSink) EmptySwitch(sw *checker.Switch) {
	c.reports++
	c.inner.EmptySwitch(sw)
}

func (c *countingSink) NonExhaustive(sw *checker.Switch, needsDefault bool, missing []space.Space) {
	c.reports++
	c.inner.NonExhaustive(sw, needsDefault, missing)
}

func reportMalformed(out io.Writer, env map[string]types.Type) {
	for name, t := range env {
		if enum, ok := t.(*types.Enum); ok {
			for _, bad := range enum.MalformedCases() {
				fmt.Fprintf(out, "note: enum %s case '.%s' has no type information and is ignored\n", name, bad)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
