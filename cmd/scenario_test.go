package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arvedviehweger/sieve/checker"
	"github.com/arvedviehweger/sieve/checker/pattern"
	"github.com/arvedviehweger/sieve/checker/space"
	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/google/go-cmp/cmp"
)

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const optionalScenario = `
types:
  Maybe:
    cases:
      - name: none
      - name: some
        payload: [Bool]
switches:
  - name: optional bool
    subject: Maybe
    cases:
      - pattern: .none
      - pattern: .some(true)
`

func TestLoadScenarios(t *testing.T) {
	path := writeScenario(t, optionalScenario)
	scenarios, env, err := LoadScenarios(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(scenarios))
	}
	scen := scenarios[0]
	if scen.Name != "optional bool" || scen.Limited {
		t.Errorf("unexpected scenario header: %+v", scen)
	}

	maybe, ok := env["Maybe"].(*types.Enum)
	if !ok {
		t.Fatal("Maybe was not declared as an enum")
	}
	if !scen.Switch.Subject.Equal(maybe) {
		t.Errorf("subject is %s, want Maybe", scen.Switch.Subject)
	}
	if len(scen.Switch.Cases) != 2 {
		t.Fatalf("expected 2 case items, got %d", len(scen.Switch.Cases))
	}

	head, ok := scen.Switch.Cases[0].Pattern.(pattern.EnumElement)
	if !ok || head.Name != "none" || head.Sub != nil {
		t.Errorf("first case is not a head-only pattern: %#v", scen.Switch.Cases[0].Pattern)
	}
	payload, ok := scen.Switch.Cases[1].Pattern.(pattern.EnumElement)
	if !ok || payload.Name != "some" || payload.Sub == nil {
		t.Fatalf("second case is not a payload pattern: %#v", scen.Switch.Cases[1].Pattern)
	}
}

func TestLoadedScenarioChecks(t *testing.T) {
	path := writeScenario(t, optionalScenario)
	scenarios, _, err := LoadScenarios(path)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	checker.CheckExhaustiveness(scenarios[0].Switch, scenarios[0].Limited, checker.PrintSink{Out: &out})
	if !strings.Contains(out.String(), "case .some(false):") {
		t.Errorf("expected a .some(false) suggestion, got:\n%s", out.String())
	}
}

func TestParsePattern(t *testing.T) {
	boolTy := types.NewBool()
	maybe := types.NewOptional(boolTy)
	pairTuple := types.NewTuple(boolTy, boolTy)
	pairEnum := types.NewEnum("Pair", types.Case{Name: "two", Payload: []types.Type{pairTuple}})
	env := map[string]types.Type{
		types.BoolName: boolTy,
		"Maybe":        maybe,
		"Pair":         pairEnum,
	}

	t.Run("wildcard", func(t *testing.T) {
		pat, err := parsePattern("_", boolTy, env)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := pat.(pattern.Any); !ok {
			t.Errorf("got %#v, want a wildcard", pat)
		}
	})

	t.Run("binding", func(t *testing.T) {
		pat, err := parsePattern("x", maybe, env)
		if err != nil {
			t.Fatal(err)
		}
		named, ok := pat.(pattern.Named)
		if !ok || named.Name != "x" || !named.Ty.Equal(maybe) {
			t.Errorf("got %#v, want a binding of Maybe", pat)
		}
	})

	t.Run("multi argument case", func(t *testing.T) {
		pat, err := parsePattern(".two(true, _)", pairEnum, env)
		if err != nil {
			t.Fatal(err)
		}
		elem := pat.(pattern.EnumElement)
		tup, ok := elem.Sub.(pattern.Tuple)
		if !ok || len(tup.Elements) != 2 {
			t.Fatalf("payload did not parse as a two-element tuple: %#v", elem.Sub)
		}
	})

	t.Run("binding spreads across tuple payload", func(t *testing.T) {
		pat, err := parsePattern(".two(pair)", pairEnum, env)
		if err != nil {
			t.Fatal(err)
		}
		projected := checker.Project(pat)
		if got := len(projected.Spaces()); got != 2 {
			t.Errorf("expected the binding to spread into 2 children, got %d", got)
		}
	})

	t.Run("tuple pattern", func(t *testing.T) {
		pat, err := parsePattern("(true, _)", pairTuple, env)
		if err != nil {
			t.Fatal(err)
		}
		tup, ok := pat.(pattern.Tuple)
		if !ok || len(tup.Elements) != 2 {
			t.Fatalf("got %#v, want a tuple pattern", pat)
		}
	})

	t.Run("literals are opaque", func(t *testing.T) {
		for _, src := range []string{"0", "-42", `"lit"`} {
			pat, err := parsePattern(src, types.NewNamed("Int"), env)
			if err != nil {
				t.Fatal(err)
			}
			if !checker.Project(pat).IsEmpty() {
				t.Errorf("literal %s should project to the empty space", src)
			}
		}
	})

	t.Run("errors", func(t *testing.T) {
		testCases := []struct {
			name     string
			src      string
			expected types.Type
		}{
			{"unknown case", ".something", maybe},
			{"case on non-enum", ".none", boolTy},
			{"payload on nullary case", ".none(true)", maybe},
			{"arity mismatch", ".two(true, _, _)", pairEnum},
			{"tuple against scalar", "(true, false)", boolTy},
			{"unterminated", "(true", pairTuple},
			{"empty", "   ", boolTy},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := parsePattern(tc.src, tc.expected, env); err == nil {
					t.Errorf("expected an error for %q", tc.src)
				}
			})
		}
	})
}

func TestParseTypeRef(t *testing.T) {
	boolTy := types.NewBool()
	env := map[string]types.Type{types.BoolName: boolTy}

	testCases := []struct {
		name string
		ref  string
		want types.Type
	}{
		{"builtin", "Bool", boolTy},
		{"opaque", "Int", types.NewNamed("Int")},
		{"tuple", "(Bool, Int)", types.NewTuple(boolTy, types.NewNamed("Int"))},
		{"nested tuple", "((Bool, Bool), Int)", types.NewTuple(types.NewTuple(boolTy, boolTy), types.NewNamed("Int"))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTypeRef(tc.ref, env)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRecursivePayloadReference(t *testing.T) {
	path := writeScenario(t, `
types:
  List:
    cases:
      - name: nil
      - name: cons
        payload: [Bool, List]
switches:
  - subject: List
    cases:
      - pattern: .nil
      - pattern: .cons(_, _)
`)
	scenarios, _, err := LoadScenarios(path)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	checker.CheckExhaustiveness(scenarios[0].Switch, false, checker.PrintSink{Out: &out})
	if out.Len() != 0 {
		t.Errorf("expected the recursive switch to be exhaustive, got:\n%s", out.String())
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
types: {}
switchs: []
`)
	if _, _, err := LoadScenarios(path); err == nil {
		t.Error("expected a decoding error for a misspelled field")
	}
}

func TestSuggestionsRoundTrip(t *testing.T) {
	// Suggested case lines parse back into patterns that close the gap.
	path := writeScenario(t, optionalScenario)
	scenarios, env, err := LoadScenarios(path)
	if err != nil {
		t.Fatal(err)
	}
	sink := &collectingSink{}
	checker.CheckExhaustiveness(scenarios[0].Switch, false, sink)
	if diff := cmp.Diff([]string{".some(false)"}, sink.rendered); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}

	sw := scenarios[0].Switch
	for _, missing := range sink.rendered {
		pat, err := parsePattern(missing, sw.Subject, env)
		if err != nil {
			t.Fatalf("suggestion %q does not parse: %v", missing, err)
		}
		sw.Cases = append(sw.Cases, checker.CaseItem{Pattern: pat})
	}
	second := &collectingSink{}
	checker.CheckExhaustiveness(sw, false, second)
	if len(second.rendered) != 0 || second.reports != 0 {
		t.Errorf("pasting the suggestions back did not make the switch exhaustive")
	}
}

type collectingSink struct {
	reports  int
	rendered []string
}

func (c *collectingSink) EmptySwitch(sw *checker.Switch) {
	c.reports++
}

func (c *collectingSink) NonExhaustive(sw *checker.Switch, needsDefault bool, missing []space.Space) {
	if needsDefault {
		c.reports++
		return
	}
	for _, s := range missing {
		c.rendered = append(c.rendered, s.String())
	}
}
