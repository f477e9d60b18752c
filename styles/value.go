package styles

import (
	"fmt"
	"math"
	"strconv"

	yaml "gopkg.in/yaml.v3"
)

type valueKind int

const (
	kindUnset valueKind = iota
	kindString
	kindNumber
	kindFlag
)

// Value is an optional attribute value: string, number or boolean flag. Zero
// Value is unset.
type Value struct {
	kind valueKind
	str  string
	num  float64
	flag bool
}

// String returns Value holding text.
func String(s string) Value {
	return Value{kind: kindString, str: s}
}

// Number returns Value holding number.
func Number(n float64) Value {
	return Value{kind: kindNumber, num: n}
}

// Flag returns Value holding boolean flag.
func Flag(b bool) Value {
	return Value{kind: kindFlag, flag: b}
}

// IsSet reports whether value was supplied at all.
func (v Value) IsSet() bool {
	return v.kind != kindUnset
}

// IsZero is used by yaml encoder for omitempty.
func (v Value) IsZero() bool {
	return !v.IsSet()
}

// Blank reports whether value is an empty string.
func (v Value) Blank() bool {
	return v.kind == kindString && v.str == ""
}

// Present reports whether value should produce output: non-empty string,
// non-zero number which is not NaN or true flag.
func (v Value) Present() bool {
	switch v.kind {
	case kindString:
		return v.str != ""
	case kindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case kindFlag:
		return v.flag
	default:
		return false
	}
}

// String returns value text as it is interpolated into declarations.
func (v Value) String() string {
	switch v.kind {
	case kindString:
		return v.str
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindFlag:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// UnmarshalYAML implements yaml.Unmarshaler. Scalar type is taken from the
// resolved node tag, so `1` is a number, `"1"` is a string and `true` is a flag.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: attribute value must be scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*v = Value{}
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = Flag(b)
	case "!!int", "!!float":
		var n float64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*v = Number(n)
	default:
		*v = String(node.Value)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case kindString:
		return v.str, nil
	case kindNumber:
		return v.num, nil
	case kindFlag:
		return v.flag, nil
	default:
		return nil, nil
	}
}
