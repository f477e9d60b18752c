package render

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
)

// SelectorValues are available to selector template.
type SelectorValues struct {
	Name   string // document name, base file name when document has none
	Slug   string // Name suitable for class names
	Source string // path of the document relative to processed source
}

type selectorBuilder struct {
	tmpl *template.Template
}

func newSelectorBuilder(text string) (*selectorBuilder, error) {
	tmpl, err := template.New("selector").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse selector template: %w", err)
	}
	return &selectorBuilder{tmpl: tmpl}, nil
}

func selectorValues(name, source string) SelectorValues {
	if name == "" {
		base := filepath.Base(source)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return SelectorValues{Name: name, Slug: slug.Make(name), Source: filepath.ToSlash(source)}
}

func (b *selectorBuilder) build(name, source string) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, selectorValues(name, source)); err != nil {
		return "", fmt.Errorf("unable to expand selector template: %w", err)
	}
	selector := strings.TrimSpace(buf.String())
	if selector == "" {
		return "", errors.New("selector template produced empty selector")
	}
	return selector, nil
}
