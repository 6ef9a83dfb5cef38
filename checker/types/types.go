package types

import (
	"fmt"
	"strings"

	"github.com/rjNemo/underscore"
)

const (
	BoolName     string = "Bool"
	OptionalName string = "Optional"
	SomeName     string = "some"
	NoneName     string = "none"
)

// The type model of the engine is deliberately small: exhaustiveness checking
// only needs to know whether a type can be split into a finite set of
// constructors, and what those constructors look like. Three kinds of type
// admit such a split: booleans, tuples, and enumerations. Everything else is
// represented as an opaque named type, which the algebra treats as a single
// indivisible block of values.
type Type interface {
	fmt.Stringer
	// Structural equality for booleans and tuples, nominal equality for
	// enums and named types. Enums compare by name so that recursive
	// payloads terminate.
	Equal(other Type) bool
}

type Bool struct{}

func NewBool() Type {
	return Bool{}
}

func (b Bool) String() string {
	return BoolName
}

func (b Bool) Equal(other Type) bool {
	switch other.(type) {
	case Bool:
		return true
	default:
		return false
	}
}

// An opaque nominal type. The algebra never looks inside one; a switch over
// such a subject can only be completed with a default clause.
type Named struct {
	Name string
}

func NewNamed(name string) Type {
	return Named{name}
}

func (n Named) String() string {
	return n.Name
}

func (n Named) Equal(other Type) bool {
	switch o := other.(type) {
	case Named:
		return n.Name == o.Name
	default:
		return false
	}
}

type Tuple struct {
	Elements []Type
}

func NewTuple(elements ...Type) Type {
	return Tuple{elements}
}

func (t Tuple) String() string {
	elems := underscore.Map(t.Elements, func(e Type) string { return e.String() })
	return "(" + strings.Join(elems, ", ") + ")"
}

func (t Tuple) Equal(other Type) bool {
	switch o := other.(type) {
	case Tuple:
		if len(t.Elements) != len(o.Elements) {
			return false
		}
		for i, e := range t.Elements {
			if !e.Equal(o.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// A single alternative of an enumeration. The payload holds the declared
// argument types of the constructor: empty for a nullary case, and one entry
// per argument otherwise. A case whose type information could not be resolved
// by the host is marked malformed; it contributes nothing to decomposition
// but does not stop the analysis.
type Case struct {
	Name      string
	Payload   []Type
	Malformed bool
}

// Enums are pointer values so that a case payload may mention the enclosing
// enum, as in `List { nil, cons(Bool, List) }`. Add the cases after
// construction when a payload is recursive.
type Enum struct {
	Name  string
	Cases []Case
}

func NewEnum(name string, cases ...Case) *Enum {
	return &Enum{name, cases}
}

// Build the usual two-case option type over the given inner type.
func NewOptional(inner Type) *Enum {
	return NewEnum(OptionalName,
		Case{Name: NoneName},
		Case{Name: SomeName, Payload: []Type{inner}},
	)
}

func (e *Enum) String() string {
	return e.Name
}

func (e *Enum) Equal(other Type) bool {
	switch o := other.(type) {
	case *Enum:
		return e.Name == o.Name
	default:
		return false
	}
}

// Find the declared case with the given head name.
func (e *Enum) CaseNamed(name string) (Case, bool) {
	found, err := underscore.Find(e.Cases, func(c Case) bool { return c.Name == name })
	if err != nil {
		return Case{}, false
	}
	return found, true
}

// The names of cases whose type information is missing, for reporting by
// tooling. The analysis itself silently absorbs them.
func (e *Enum) MalformedCases() []string {
	bad := underscore.Filter(e.Cases, func(c Case) bool { return c.Malformed })
	return underscore.Map(bad, func(c Case) string { return c.Name })
}

func IsBool(t Type) bool {
	switch t.(type) {
	case Bool:
		return true
	default:
		return false
	}
}

// Whether the type's value set equals the union of a finite, concretely
// enumerable set of constructors.
func CanDecompose(t Type) bool {
	switch t.(type) {
	case Bool, Tuple, *Enum:
		return true
	default:
		return false
	}
}
