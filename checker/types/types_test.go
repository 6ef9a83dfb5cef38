package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEquality(t *testing.T) {
	listA := NewEnum("List")
	listA.Cases = append(listA.Cases,
		Case{Name: "nil"},
		Case{Name: "cons", Payload: []Type{NewBool(), listA}},
	)

	testCases := []struct {
		name  string
		left  Type
		right Type
		want  bool
	}{
		{"bools", NewBool(), NewBool(), true},
		{"bool against named bool", NewBool(), NewNamed(BoolName), false},
		{"same named", NewNamed("Int"), NewNamed("Int"), true},
		{"different named", NewNamed("Int"), NewNamed("String"), false},
		{"same tuple", NewTuple(NewBool(), NewNamed("Int")), NewTuple(NewBool(), NewNamed("Int")), true},
		{"tuple arity", NewTuple(NewBool()), NewTuple(NewBool(), NewBool()), false},
		{"tuple elements", NewTuple(NewBool()), NewTuple(NewNamed("Int")), false},
		{"enums by name", NewEnum("E"), NewEnum("E", Case{Name: "a"}), true},
		{"different enums", NewEnum("E"), NewEnum("F"), false},
		{"recursive enum against itself", listA, listA, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.left.Equal(tc.right); got != tc.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tc.left, tc.right, got, tc.want)
			}
			if got := tc.right.Equal(tc.left); got != tc.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tc.right, tc.left, got, tc.want)
			}
		})
	}
}

func TestCanDecompose(t *testing.T) {
	testCases := []struct {
		name string
		typ  Type
		want bool
	}{
		{"bool", NewBool(), true},
		{"tuple", NewTuple(NewBool()), true},
		{"enum", NewEnum("E"), true},
		{"named", NewNamed("Int"), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanDecompose(tc.typ); got != tc.want {
				t.Errorf("CanDecompose(%s) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestIsBool(t *testing.T) {
	if !IsBool(NewBool()) {
		t.Error("IsBool(Bool) = false")
	}
	if IsBool(NewNamed(BoolName)) {
		t.Error("a named type is not the boolean type")
	}
}

func TestOptional(t *testing.T) {
	maybe := NewOptional(NewBool())
	none, ok := maybe.CaseNamed(NoneName)
	if !ok || len(none.Payload) != 0 {
		t.Errorf("expected a nullary none case, got %+v", none)
	}
	some, ok := maybe.CaseNamed(SomeName)
	if !ok || len(some.Payload) != 1 || !IsBool(some.Payload[0]) {
		t.Errorf("expected some to carry the inner type, got %+v", some)
	}
	if _, ok := maybe.CaseNamed("neither"); ok {
		t.Error("found a case that was never declared")
	}
}

func TestMalformedCases(t *testing.T) {
	e := NewEnum("E",
		Case{Name: "a"},
		Case{Name: "b", Malformed: true},
		Case{Name: "c", Malformed: true},
	)
	if diff := cmp.Diff([]string{"b", "c"}, e.MalformedCases()); diff != "" {
		t.Errorf("unexpected malformed cases (-want +got):\n%s", diff)
	}
}

func TestRendering(t *testing.T) {
	testCases := []struct {
		name string
		typ  Type
		want string
	}{
		{"bool", NewBool(), "Bool"},
		{"named", NewNamed("Int"), "Int"},
		{"enum", NewEnum("Maybe"), "Maybe"},
		{"tuple", NewTuple(NewBool(), NewNamed("Int")), "(Bool, Int)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
