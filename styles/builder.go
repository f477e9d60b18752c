// Package styles turns declarative style attributes into CSS declarations.
//
// Everything here except InjectReset is a pure function of its arguments.
// InjectReset writes into a Sink, normally the process wide Global registry.
package styles

// Attributes is the set of recognized style attributes. Every field is
// optional, unset or "falsy" values produce no declaration.
type Attributes struct {
	Padding       Value `yaml:"padding,omitempty"`
	Margin        Value `yaml:"margin,omitempty"`
	Width         Value `yaml:"width,omitempty"`
	Height        Value `yaml:"height,omitempty"`
	Visibility    Value `yaml:"visibility,omitempty"`
	Display       Value `yaml:"display,omitempty"`
	Opacity       Value `yaml:"opacity,omitempty"`
	Color         Value `yaml:"color,omitempty"`
	Background    Value `yaml:"background,omitempty"`
	Border        Value `yaml:"border,omitempty"`
	FontSize      Value `yaml:"fontSize,omitempty"`
	FontWeight    Value `yaml:"fontWeight,omitempty"`
	FontStyle     Value `yaml:"fontStyle,omitempty"`
	FontFamily    Value `yaml:"fontFamily,omitempty"`
	LineHeight    Value `yaml:"lineHeight,omitempty"`
	TextTransform Value `yaml:"textTransform,omitempty"`
	Hidden        Value `yaml:"hidden,omitempty"`
}

type attribute struct {
	key      string
	property string
	get      func(*Attributes) Value
	fixed    string // emitted instead of the value when not empty
}

// vocabulary defines output order of Build. Hidden must stay last so it
// overrides display.
var vocabulary = [...]attribute{
	{"padding", "padding", func(a *Attributes) Value { return a.Padding }, ""},
	{"margin", "margin", func(a *Attributes) Value { return a.Margin }, ""},
	{"width", "width", func(a *Attributes) Value { return a.Width }, ""},
	{"height", "height", func(a *Attributes) Value { return a.Height }, ""},
	{"visibility", "visibility", func(a *Attributes) Value { return a.Visibility }, ""},
	{"display", "display", func(a *Attributes) Value { return a.Display }, ""},
	{"opacity", "opacity", func(a *Attributes) Value { return a.Opacity }, ""},
	{"color", "color", func(a *Attributes) Value { return a.Color }, ""},
	{"background", "background", func(a *Attributes) Value { return a.Background }, ""},
	{"border", "border", func(a *Attributes) Value { return a.Border }, ""},
	{"fontSize", "font-size", func(a *Attributes) Value { return a.FontSize }, ""},
	{"fontWeight", "font-weight", func(a *Attributes) Value { return a.FontWeight }, ""},
	{"fontStyle", "font-style", func(a *Attributes) Value { return a.FontStyle }, ""},
	{"fontFamily", "font-family", func(a *Attributes) Value { return a.FontFamily }, ""},
	{"lineHeight", "line-height", func(a *Attributes) Value { return a.LineHeight }, ""},
	{"textTransform", "text-transform", func(a *Attributes) Value { return a.TextTransform }, ""},
	{"hidden", "display", func(a *Attributes) Value { return a.Hidden }, "none"},
}

// Vocabulary returns attribute keys in the order Build emits them.
func Vocabulary() []string {
	keys := make([]string, len(vocabulary))
	for i, attr := range vocabulary {
		keys[i] = attr.key
	}
	return keys
}

func isAttributeKey(key string) bool {
	for _, attr := range vocabulary {
		if attr.key == key {
			return true
		}
	}
	return false
}

// Build returns one entry per vocabulary key. Entry is a declaration when the
// attribute is present and a placeholder otherwise. Values are used verbatim.
func Build(a Attributes) List {
	out := make(List, len(vocabulary))
	for i, attr := range vocabulary {
		v := attr.get(&a)
		if !v.Present() {
			continue
		}
		text := v.String()
		if attr.fixed != "" {
			text = attr.fixed
		}
		out[i] = Declaration{Property: attr.property, Value: text}
	}
	return out
}

// Empty reports whether no attribute is present.
func (a Attributes) Empty() bool {
	return len(Build(a).Compact()) == 0
}

// DebugOutline returns declarations which make element box visible.
func DebugOutline() List {
	return List{
		{Property: "background", Value: "rgba(0, 255, 255, 0.1)"},
		{Property: "border", Value: "1px dashed rgba(255, 0, 255, 1)"},
	}
}
