package styles

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"stylekit/css"
)

// Range is a viewport width range in pixels, both ends inclusive.
type Range struct {
	Min int
	Max int
}

// Breakpoint is a named viewport width range.
type Breakpoint struct {
	ID    string
	Range Range
}

// Breakpoints keeps breakpoints in the order they were defined. In YAML it is
// a mapping of identifiers to [min, max] pairs.
type Breakpoints []Breakpoint

// Lookup returns breakpoint by identifier.
func (b Breakpoints) Lookup(id string) (Breakpoint, bool) {
	for _, bp := range b {
		if bp.ID == id {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// UnmarshalYAML implements yaml.Unmarshaler preserving document order.
func (b *Breakpoints) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: breakpoints must be a mapping", node.Line)
	}
	out := make(Breakpoints, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var pair []int
		if err := val.Decode(&pair); err != nil {
			return fmt.Errorf("line %d: breakpoint %q: %w", val.Line, key.Value, err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: breakpoint %q must be [min, max], got %d values", val.Line, key.Value, len(pair))
		}
		if _, exists := out.Lookup(key.Value); exists {
			return fmt.Errorf("line %d: duplicate breakpoint %q", key.Line, key.Value)
		}
		out = append(out, Breakpoint{ID: key.Value, Range: Range{Min: pair[0], Max: pair[1]}})
	}
	*b = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b Breakpoints) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, bp := range b {
		pair := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		pair.Content = []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(bp.Range.Min)},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(bp.Range.Max)},
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: bp.ID}, pair)
	}
	return node, nil
}

// Responsive carries breakpoints and per-breakpoint attribute overrides keyed
// by breakpoint identifier.
type Responsive struct {
	Breakpoints Breakpoints
	Overrides   map[string]*Attributes
}

// Block is a set of declarations applied only within a breakpoint range.
type Block struct {
	ID           string
	Range        Range
	Declarations List
}

// Media returns media query for the block range.
func (b Block) Media() css.MediaQuery {
	return css.WidthRange(b.Range.Min, b.Range.Max)
}

// MediaBlock wraps block declarations into @media block for selector.
func (b Block) MediaBlock(selector string) css.MediaBlock {
	return css.MediaBlock{
		Query: b.Media(),
		Rules: []css.Rule{{Selector: selector, Declarations: b.Declarations.CSS()}},
	}
}

// Expand returns one block per breakpoint which has overrides, in breakpoint
// order. Result is nil when there are no breakpoints.
func Expand(r Responsive) []Block {
	if r.Breakpoints == nil {
		return nil
	}
	blocks := make([]Block, 0, len(r.Breakpoints))
	for _, bp := range r.Breakpoints {
		bag := r.Overrides[bp.ID]
		if bag == nil {
			continue
		}
		blocks = append(blocks, Block{ID: bp.ID, Range: bp.Range, Declarations: Build(*bag)})
	}
	return blocks
}
