package styles

import (
	"strings"

	"stylekit/css"
)

// Declaration is a single "property: value;" fragment. Zero Declaration is
// the placeholder for an attribute which produced no output.
type Declaration struct {
	Property string
	Value    string
}

// Present reports whether declaration holds output.
func (d Declaration) Present() bool {
	return d.Property != ""
}

// String returns rendered declaration, placeholder renders as nothing.
func (d Declaration) String() string {
	if !d.Present() {
		return ""
	}
	return d.Property + ": " + d.Value + ";"
}

// List is an ordered sequence of declarations, possibly with placeholders.
// Order matters: when the same property appears twice the later one wins.
type List []Declaration

// Compact returns list without placeholders.
func (l List) Compact() List {
	out := make(List, 0, len(l))
	for _, d := range l {
		if d.Present() {
			out = append(out, d)
		}
	}
	return out
}

// Strings returns rendered declarations skipping placeholders.
func (l List) Strings() []string {
	out := make([]string, 0, len(l))
	for _, d := range l {
		if d.Present() {
			out = append(out, d.String())
		}
	}
	return out
}

// String returns concatenated declarations.
func (l List) String() string {
	return strings.Join(l.Strings(), " ")
}

// CSS converts present declarations to css object model.
func (l List) CSS() []css.Declaration {
	out := make([]css.Declaration, 0, len(l))
	for _, d := range l {
		if d.Present() {
			out = append(out, css.Declaration{Property: d.Property, Value: d.Value})
		}
	}
	return out
}
