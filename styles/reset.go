package styles

import (
	"io"
	"strings"
	"sync"

	"stylekit/css"
)

// BodyConfig customizes document body in the reset stylesheet.
type BodyConfig struct {
	Margin     string `yaml:"margin"`
	Background string `yaml:"background"`
}

// ResetConfig parameterizes the global reset stylesheet.
type ResetConfig struct {
	Body BodyConfig `yaml:"body"`
	Font string     `yaml:"font"`
}

// Sink accepts blocks of global style text.
type Sink interface {
	Inject(block string)
}

// ResetStylesheet returns baseline stylesheet normalizing default presentation.
// Body margin defaults to "0", background and font family are only included
// when configured.
func ResetStylesheet(cfg ResetConfig) *css.Stylesheet {
	margin := cfg.Body.Margin
	if margin == "" {
		margin = "0"
	}
	body := []css.Declaration{{Property: "margin", Value: margin}}
	if cfg.Body.Background != "" {
		body = append(body, css.Declaration{Property: "background", Value: cfg.Body.Background})
	}
	if cfg.Font != "" {
		body = append(body, css.Declaration{Property: "font-family", Value: cfg.Font})
	}

	sheet := &css.Stylesheet{}
	sheet.AddRule(css.Rule{Selector: "html", Declarations: []css.Declaration{
		{Property: "line-height", Value: "1.15"},
		{Property: "text-size-adjust", Value: "100%"},
	}})
	sheet.AddRule(css.Rule{Selector: "body", Declarations: body})
	sheet.AddRule(css.Rule{Selector: "*", Declarations: []css.Declaration{
		{Property: "box-sizing", Value: "border-box"},
		{Property: "margin", Value: "0"},
		{Property: "padding", Value: "0"},
	}})
	return sheet
}

// InjectReset renders reset stylesheet into sink. It is meant to be called
// once during program initialization, every call injects another copy.
func InjectReset(sink Sink, cfg ResetConfig) {
	sink.Inject(ResetStylesheet(cfg).String())
}

// Registry accumulates global style blocks in injection order.
type Registry struct {
	mu     sync.Mutex
	blocks []string
}

// Global is the process wide registry.
var Global = &Registry{}

// Inject implements Sink.
func (r *Registry) Inject(block string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = append(r.blocks, block)
}

// Blocks returns copy of injected blocks.
func (r *Registry) Blocks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.blocks))
	copy(out, r.blocks)
	return out
}

// Len returns number of injected blocks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blocks)
}

// String returns all blocks separated by blank lines.
func (r *Registry) String() string {
	return strings.Join(r.Blocks(), "\n")
}

// WriteTo implements io.WriterTo.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// Clear drops all injected blocks.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = nil
}
