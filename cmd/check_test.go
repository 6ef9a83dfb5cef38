package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func runCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCommandReportsMissingCases(t *testing.T) {
	path := writeScenario(t, optionalScenario)
	out, err := runCheck(t, "check", path)
	if err == nil {
		t.Fatal("expected a failing exit for a non-exhaustive scenario")
	}
	if !strings.Contains(out, "case .some(false):") {
		t.Errorf("expected a pasteable suggestion, got:\n%s", out)
	}
	if !strings.Contains(out, "optional bool: not exhaustive") {
		t.Errorf("expected a per-switch verdict, got:\n%s", out)
	}
}

func TestCheckCommandPassesExhaustiveScenario(t *testing.T) {
	path := writeScenario(t, `
types:
  Maybe:
    cases:
      - name: none
      - name: some
        payload: [Bool]
switches:
  - name: covered
    subject: Maybe
    cases:
      - pattern: .none
      - pattern: .some(_)
`)
	out, err := runCheck(t, "check", path)
	if err != nil {
		t.Fatalf("expected success, got %v:\n%s", err, out)
	}
	if !strings.Contains(out, "covered: exhaustive") {
		t.Errorf("expected a per-switch verdict, got:\n%s", out)
	}
}

func TestCheckCommandRejectsMissingFile(t *testing.T) {
	if _, err := runCheck(t, "check", "no-such-scenario.yaml"); err == nil {
		t.Error("expected an error for a missing scenario file")
	}
}
