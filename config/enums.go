package config

import (
	"fmt"
	"strings"
)

// OutputFormat specifies requested rendering output.
type OutputFormat string

const (
	// OutputFormatCSS produces stylesheet.
	OutputFormatCSS OutputFormat = "css"
	// OutputFormatList produces raw declaration lists, one line per attribute.
	OutputFormatList OutputFormat = "list"
)

var outputFormats = []OutputFormat{OutputFormatCSS, OutputFormatList}

// OutputFormatNames returns names of supported output formats.
func OutputFormatNames() []string {
	names := make([]string, len(outputFormats))
	for i, f := range outputFormats {
		names[i] = string(f)
	}
	return names
}

// ParseOutputFormat converts name to OutputFormat, case insensitive.
func ParseOutputFormat(name string) (OutputFormat, error) {
	for _, f := range outputFormats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%s is not a valid OutputFormat, try [%s]", name, strings.Join(OutputFormatNames(), ", "))
}

func (f OutputFormat) String() string {
	return string(f)
}
