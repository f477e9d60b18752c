package styles_test

import (
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"

	"stylekit/styles"
)

func TestExpand_NoBreakpoints(t *testing.T) {
	blocks := styles.Expand(styles.Responsive{
		Overrides: map[string]*styles.Attributes{"sm": {Padding: styles.String("1px")}},
	})
	if blocks != nil {
		t.Errorf("Expand() = %v, want nil", blocks)
	}
}

func TestExpand_SingleBreakpoint(t *testing.T) {
	blocks := styles.Expand(styles.Responsive{
		Breakpoints: styles.Breakpoints{{ID: "sm", Range: styles.Range{Min: 0, Max: 600}}},
		Overrides:   map[string]*styles.Attributes{"sm": {Padding: styles.String("1px")}},
	})
	if len(blocks) != 1 {
		t.Fatalf("Expand() returned %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.ID != "sm" || b.Range != (styles.Range{Min: 0, Max: 600}) {
		t.Errorf("unexpected block %s %+v", b.ID, b.Range)
	}
	if len(b.Declarations) != len(styles.Vocabulary()) {
		t.Errorf("block has %d entries, want full list", len(b.Declarations))
	}
	if got := b.Declarations.String(); got != "padding: 1px;" {
		t.Errorf("declarations = %q", got)
	}
	if got := b.Media().Raw; got != "(min-width: 0px) and (max-width: 600px)" {
		t.Errorf("Media() = %q", got)
	}
}

func TestExpand_OrderAndSkipping(t *testing.T) {
	blocks := styles.Expand(styles.Responsive{
		Breakpoints: styles.Breakpoints{
			{ID: "xl", Range: styles.Range{Min: 1201, Max: 9999}},
			{ID: "sm", Range: styles.Range{Min: 0, Max: 600}},
			{ID: "md", Range: styles.Range{Min: 601, Max: 1200}},
		},
		Overrides: map[string]*styles.Attributes{
			"sm": {Color: styles.String("red")},
			"xl": {Color: styles.String("blue")},
			"lg": {Color: styles.String("green")},
		},
	})
	var ids []string
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	if got := strings.Join(ids, ","); got != "xl,sm" {
		t.Errorf("block order = %s, want xl,sm", got)
	}
}

func TestExpand_EmptyOverrideStillProducesBlock(t *testing.T) {
	blocks := styles.Expand(styles.Responsive{
		Breakpoints: styles.Breakpoints{{ID: "sm", Range: styles.Range{Max: 600}}},
		Overrides:   map[string]*styles.Attributes{"sm": {}},
	})
	if len(blocks) != 1 {
		t.Fatalf("Expand() returned %d blocks, want 1", len(blocks))
	}
	if len(blocks[0].Declarations.Compact()) != 0 {
		t.Errorf("expected no declarations, got %v", blocks[0].Declarations.Strings())
	}
}

func TestBlock_MediaBlock(t *testing.T) {
	b := styles.Block{
		ID:           "sm",
		Range:        styles.Range{Min: 0, Max: 600},
		Declarations: styles.Build(styles.Attributes{Padding: styles.String("1px")}),
	}
	mb := b.MediaBlock(".card")
	if len(mb.Rules) != 1 || mb.Rules[0].Selector != ".card" {
		t.Fatalf("unexpected rules %+v", mb.Rules)
	}
	if len(mb.Rules[0].Declarations) != 1 || mb.Rules[0].Declarations[0].String() != "padding: 1px;" {
		t.Errorf("unexpected declarations %+v", mb.Rules[0].Declarations)
	}
}

func TestBreakpoints_YAMLKeepsOrder(t *testing.T) {
	var bps styles.Breakpoints
	data := `
md: [601, 1200]
sm: [0, 600]
lg: [1201, 1920]
`
	if err := yaml.Unmarshal([]byte(data), &bps); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(bps) != 3 {
		t.Fatalf("got %d breakpoints, want 3", len(bps))
	}
	if bps[0].ID != "md" || bps[1].ID != "sm" || bps[2].ID != "lg" {
		t.Errorf("order = %v", bps)
	}
	if bp, ok := bps.Lookup("lg"); !ok || bp.Range != (styles.Range{Min: 1201, Max: 1920}) {
		t.Errorf("Lookup(lg) = %+v, %v", bp, ok)
	}

	out, err := yaml.Marshal(bps)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(out), "md: [601, 1200]\nsm: [0, 600]\nlg: [1201, 1920]\n"; got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestBreakpoints_YAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a mapping", "[1, 2]"},
		{"single value", "sm: [600]"},
		{"three values", "sm: [0, 1, 2]"},
		{"not numbers", "sm: [a, b]"},
		{"duplicate", "sm: [0, 1]\nsm: [2, 3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bps styles.Breakpoints
			if err := yaml.Unmarshal([]byte(tt.data), &bps); err == nil {
				t.Errorf("expected error, got %v", bps)
			}
		})
	}
}
