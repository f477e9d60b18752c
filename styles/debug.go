package styles

import (
	"stylekit/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns readable tree of the parsed document for debug reports.
func (p *Props) String() string {
	if p == nil {
		return "<nil Props>"
	}
	return treeWriter{debug.NewTreeWriter()}.props(p).String()
}

func (tw treeWriter) props(p *Props) treeWriter {
	tw.Line(0, "Props")
	tw.TextBlock(1, "name", p.Name)
	tw.values(1, "base", &p.Base)
	tw.layout(1, &p.Layout)
	if p.Breakpoints == nil {
		tw.Line(1, "breakpoints: %d (defaults)", len(p.defaults))
	} else {
		tw.Line(1, "breakpoints: %d", len(p.Breakpoints))
	}
	for _, bp := range p.effectiveBreakpoints() {
		tw.Line(2, "%s [%d, %d]", bp.ID, bp.Range.Min, bp.Range.Max)
		if bag := p.Overrides[bp.ID]; bag != nil {
			tw.values(3, "override", bag)
		}
	}
	return tw
}

func (tw treeWriter) values(depth int, label string, a *Attributes) {
	tw.Line(depth, "%s", label)
	for i := range vocabulary {
		attr := &vocabulary[i]
		if v := attr.get(a); v.IsSet() {
			tw.TextBlock(depth+1, attr.key, v.String())
		}
	}
}

func (tw treeWriter) layout(depth int, f *FlexIntent) {
	tw.Line(depth, "layout")
	if f.Flex.IsSet() {
		tw.TextBlock(depth+1, "flex", f.Flex.String())
	}
	if f.Fill.IsSet() {
		tw.TextBlock(depth+1, "fill", f.Fill.String())
	}
	if f.Direction != "" {
		tw.TextBlock(depth+1, "direction", f.Direction)
	}
	if f.Wrap.IsSet() {
		tw.TextBlock(depth+1, "wrap", f.Wrap.String())
	}
	if f.VAlign != "" {
		tw.TextBlock(depth+1, "valign", f.VAlign)
	}
	if f.HAlign != "" {
		tw.TextBlock(depth+1, "halign", f.HAlign)
	}
	for _, s := range []struct {
		name string
		v    Value
	}{{"shiftLeft", f.ShiftLeft}, {"shiftRight", f.ShiftRight}, {"shiftUp", f.ShiftUp}, {"shiftDown", f.ShiftDown}} {
		if s.v.IsSet() {
			tw.TextBlock(depth+1, s.name, s.v.String())
		}
	}
}

// Listing returns raw declaration lists of the document: every vocabulary
// position of the base list (absent entries shown as "-"), flex declarations
// and one full list per expanded breakpoint.
func (p *Props) Listing(selector string) (string, error) {
	layout, err := Flex(p.Layout)
	if err != nil {
		return "", err
	}

	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "%s", selector)
	tw.list(1, Build(p.Base))
	if len(layout) > 0 {
		tw.Line(1, "layout")
		for _, d := range layout {
			tw.Line(2, "%s", d.String())
		}
	}
	for _, b := range Expand(p.Responsive()) {
		tw.Line(1, "@%s %s", b.ID, b.Media().Raw)
		tw.list(2, b.Declarations)
	}
	return tw.String(), nil
}

func (tw treeWriter) list(depth int, l List) {
	for i, d := range l {
		tw.Field(depth, vocabulary[i].key, d.String())
	}
}
