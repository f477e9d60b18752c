package styles

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrUnknownKey is returned when flex intent value is not in translation table.
var ErrUnknownKey = errors.New("unknown translation key")

// FlexIntent describes flex layout in terms of direction, wrapping, alignment
// and shifts.
type FlexIntent struct {
	Flex       Value  `yaml:"flex,omitempty"`
	Fill       Value  `yaml:"fill,omitempty"`
	Direction  string `yaml:"direction,omitempty"` // horizontal or vertical
	Wrap       Value  `yaml:"wrap,omitempty"`      // true, 1, false or 0
	VAlign     string `yaml:"valign,omitempty"`
	HAlign     string `yaml:"halign,omitempty"`
	ShiftLeft  Value  `yaml:"shiftLeft,omitempty"`
	ShiftRight Value  `yaml:"shiftRight,omitempty"`
	ShiftUp    Value  `yaml:"shiftUp,omitempty"`
	ShiftDown  Value  `yaml:"shiftDown,omitempty"`
}

const horizontal = "horizontal"

var (
	directions = map[string]string{
		horizontal: "row",
		"vertical": "column",
	}
	// keyed by Value text so flag true and number 1 (or "1") are the same key
	wraps = map[string]string{
		"true":  "wrap",
		"1":     "wrap",
		"false": "nowrap",
		"0":     "nowrap",
	}
	alignments = map[string]string{
		"top":    "flex-start",
		"left":   "flex-start",
		"bottom": "flex-end",
		"right":  "flex-end",
		"center": "center",
		"middle": "center",
	}
)

func translate(table string, tr map[string]string, key string) (string, error) {
	if v, ok := tr[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%s %q: %w", table, key, ErrUnknownKey)
}

// Flex translates intent into declarations. Values missing from translation
// tables are errors, all of them are reported together.
func Flex(f FlexIntent) (List, error) {
	var (
		out  List
		errs error
	)
	emit := func(property, table string, tr map[string]string, key string) {
		v, err := translate(table, tr, key)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		out = append(out, Declaration{Property: property, Value: v})
	}

	if f.Flex.Present() {
		out = append(out, Declaration{Property: "flex", Value: f.Flex.String()})
	}
	if f.Fill.Present() {
		out = append(out, Declaration{Property: "flex", Value: "1 1 auto"})
	}
	if f.Direction != "" {
		emit("flex-direction", "direction", directions, f.Direction)
	}
	// empty string is treated as absent
	if f.Wrap.IsSet() && !f.Wrap.Blank() {
		emit("flex-wrap", "wrap", wraps, f.Wrap.String())
	}

	// Main and cross axes swap with direction.
	if f.HAlign != "" {
		if f.Direction == horizontal {
			emit("justify-content", "align", alignments, f.HAlign)
		} else {
			emit("align-items", "align", alignments, f.HAlign)
		}
	}
	if f.VAlign != "" {
		if f.Direction == horizontal {
			emit("align-items", "align", alignments, f.VAlign)
		} else {
			emit("justify-content", "align", alignments, f.VAlign)
		}
	}

	if f.ShiftLeft.Present() {
		out = append(out, Declaration{Property: "margin-right", Value: "auto"})
	}
	if f.ShiftRight.Present() {
		out = append(out, Declaration{Property: "margin-left", Value: "auto"})
	}
	if f.ShiftUp.Present() {
		out = append(out, Declaration{Property: "margin-bottom", Value: "auto"})
	}
	if f.ShiftDown.Present() {
		out = append(out, Declaration{Property: "margin-top", Value: "auto"})
	}

	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func isFlexKey(key string) bool {
	switch key {
	case "flex", "fill", "direction", "wrap", "valign", "halign",
		"shiftLeft", "shiftRight", "shiftUp", "shiftDown":
		return true
	}
	return false
}
