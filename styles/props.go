package styles

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"stylekit/css"
)

// Props is a single component description: base attributes, flex layout,
// breakpoints and per-breakpoint overrides, all as keys of one YAML mapping.
//
//	name: card
//	padding: 4px
//	direction: horizontal
//	halign: center
//	breakpoints:
//	  sm: [0, 600]
//	sm:
//	  padding: 1px
type Props struct {
	Name        string
	Base        Attributes
	Layout      FlexIntent
	Breakpoints Breakpoints // nil when document has no breakpoints key
	Overrides   map[string]*Attributes

	defaults Breakpoints
}

// ParseProps decodes props document. Defaults are breakpoints in effect when
// document does not define its own.
func ParseProps(data []byte, defaults Breakpoints) (*Props, error) {
	p := &Props{defaults: defaults}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to decode props document: %w", err)
	}
	return p, nil
}

// Responsive returns breakpoint view of the document.
func (p *Props) Responsive() Responsive {
	return Responsive{Breakpoints: p.effectiveBreakpoints(), Overrides: p.Overrides}
}

func (p *Props) effectiveBreakpoints() Breakpoints {
	if p.Breakpoints != nil {
		return p.Breakpoints
	}
	return p.defaults
}

// UnmarshalYAML implements yaml.Unmarshaler. Keys which are neither known
// attributes nor defined breakpoints are rejected.
func (p *Props) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: props document must be a mapping", node.Line)
	}

	// breakpoints may follow overrides in the document, so they go first
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "breakpoints" {
			if err := node.Content[i+1].Decode(&p.Breakpoints); err != nil {
				return err
			}
		}
	}

	base := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	layout := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch {
		case key.Value == "breakpoints":
		case key.Value == "name":
			if err := val.Decode(&p.Name); err != nil {
				return fmt.Errorf("line %d: name: %w", val.Line, err)
			}
		case isAttributeKey(key.Value):
			base.Content = append(base.Content, key, val)
		case isFlexKey(key.Value):
			layout.Content = append(layout.Content, key, val)
		default:
			if _, ok := p.effectiveBreakpoints().Lookup(key.Value); !ok {
				return fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
			}
			bag, err := decodeAttributes(val)
			if err != nil {
				return fmt.Errorf("breakpoint %q: %w", key.Value, err)
			}
			if bag == nil {
				continue
			}
			if p.Overrides == nil {
				p.Overrides = make(map[string]*Attributes)
			}
			p.Overrides[key.Value] = bag
		}
	}

	if err := base.Decode(&p.Base); err != nil {
		return err
	}
	return layout.Decode(&p.Layout)
}

// decodeAttributes decodes mapping of attributes, null node produces nil.
func decodeAttributes(node *yaml.Node) (*Attributes, error) {
	if node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: attributes must be a mapping", node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		if key := node.Content[i]; !isAttributeKey(key.Value) {
			return nil, fmt.Errorf("line %d: unknown attribute %q", key.Line, key.Value)
		}
	}
	a := &Attributes{}
	if err := node.Decode(a); err != nil {
		return nil, err
	}
	return a, nil
}

// SheetOptions controls how Props are turned into stylesheet.
type SheetOptions struct {
	Selector     string
	DebugOutline bool
}

// Stylesheet renders document into a rule for the selector followed by one
// @media block per expanded breakpoint.
func (p *Props) Stylesheet(opts SheetOptions) (*css.Stylesheet, error) {
	decls := Build(p.Base).Compact()

	layout, err := Flex(p.Layout)
	if err != nil {
		return nil, fmt.Errorf("unable to translate layout: %w", err)
	}
	decls = append(decls, layout...)
	if opts.DebugOutline {
		decls = append(decls, DebugOutline()...)
	}

	sheet := &css.Stylesheet{}
	sheet.AddRule(css.Rule{Selector: opts.Selector, Declarations: decls.CSS()})

	for _, b := range Expand(p.Responsive()) {
		sheet.AddMedia(b.MediaBlock(opts.Selector))
	}
	return sheet, nil
}
