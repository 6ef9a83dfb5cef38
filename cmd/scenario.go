package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/arvedviehweger/sieve/checker"
	"github.com/arvedviehweger/sieve/checker/types"
	"github.com/arvedviehweger/sieve/checker/util"
	"gopkg.in/yaml.v3"
)

// A scenario file declares a set of enum types and a list of switches to
// check against them. Example:
//
//	types:
//	  Maybe:
//	    cases:
//	      - name: none
//	      - name: some
//	        payload: [Bool]
//	switches:
//	  - name: optional bool
//	    subject: Maybe
//	    cases:
//	      - pattern: .none
//	      - pattern: .some(true)
//
// Type references are `Bool`, a declared enum name, a tuple `(A, B)`, or any
// other name, which is treated as an opaque nominal type.
type scenarioFile struct {
	Types    map[string]typeDecl `yaml:"types"`
	Switches []switchDecl        `yaml:"switches"`
}

type typeDecl struct {
	Cases []caseDecl `yaml:"cases"`
}

type caseDecl struct {
	Name      string   `yaml:"name"`
	Payload   []string `yaml:"payload"`
	Malformed bool     `yaml:"malformed"`
}

type switchDecl struct {
	Name    string      `yaml:"name"`
	Subject string      `yaml:"subject"`
	Limited bool        `yaml:"limited"`
	Cases   []caseLabel `yaml:"cases"`
}

type caseLabel struct {
	Pattern string `yaml:"pattern"`
	Guarded bool   `yaml:"guarded"`
	Default bool   `yaml:"default"`
}

// One switch to check, translated into the engine's input model.
type Scenario struct {
	Name    string
	Limited bool
	Switch  *checker.Switch
}

// LoadScenarios reads a YAML scenario file and translates its switches into
// engine inputs, in declaration order.
func LoadScenarios(path string) ([]Scenario, map[string]types.Type, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var decl scenarioFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&decl); err != nil {
		return nil, nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}

	env, err := buildEnv(decl.Types)
	if err != nil {
		return nil, nil, err
	}

	scenarios := make([]Scenario, 0, len(decl.Switches))
	for i, sw := range decl.Switches {
		name := sw.Name
		if name == "" {
			name = fmt.Sprintf("switch %d", i+1)
		}
		subject, err := parseTypeRef(sw.Subject, env)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		items := make([]checker.CaseItem, 0, len(sw.Cases))
		for _, label := range sw.Cases {
			if label.Default {
				items = append(items, checker.CaseItem{Default: true})
				continue
			}
			pat, err := parsePattern(label.Pattern, subject, env)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			items = append(items, checker.CaseItem{Pattern: pat, Guarded: label.Guarded})
		}
		scenarios = append(scenarios, Scenario{
			Name:    name,
			Limited: sw.Limited,
			Switch:  &checker.Switch{Subject: subject, Cases: items},
		})
	}
	return scenarios, env, nil
}

// Build the type environment: declared enums layered over the builtins.
// Enums are created first and filled in a second pass so case payloads may
// refer to any declared enum, including the enclosing one.
func buildEnv(decls map[string]typeDecl) (map[string]types.Type, error) {
	builtins := map[string]types.Type{
		types.BoolName: types.NewBool(),
	}
	declared := map[string]types.Type{}
	for name := range decls {
		declared[name] = types.NewEnum(name)
	}
	env := util.MergeMaps(builtins, declared, func(_ types.Type, enum types.Type) types.Type {
		return enum
	})

	for name, decl := range decls {
		enum := declared[name].(*types.Enum)
		for _, c := range decl.Cases {
			payload := make([]types.Type, 0, len(c.Payload))
			for _, ref := range c.Payload {
				arg, err := parseTypeRef(ref, env)
				if err != nil {
					return nil, fmt.Errorf("enum %s, case %s: %w", name, c.Name, err)
				}
				payload = append(payload, arg)
			}
			enum.Cases = append(enum.Cases, types.Case{
				Name:      c.Name,
				Payload:   payload,
				Malformed: c.Malformed,
			})
		}
	}
	return env, nil
}

func parseTypeRef(ref string, env map[string]types.Type) (types.Type, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty type reference")
	}
	if strings.HasPrefix(ref, "(") {
		if !strings.HasSuffix(ref, ")") {
			return nil, fmt.Errorf("unterminated tuple type %q", ref)
		}
		parts := splitTopLevel(ref[1 : len(ref)-1])
		elements := make([]types.Type, 0, len(parts))
		for _, part := range parts {
			elt, err := parseTypeRef(part, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, elt)
		}
		return types.NewTuple(elements...), nil
	}
	if t, ok := env[ref]; ok {
		return t, nil
	}
	return types.NewNamed(ref), nil
}

// Split a comma-separated list, ignoring commas nested inside parentheses.
func splitTopLevel(s string) []string {
	parts := []string{}
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
