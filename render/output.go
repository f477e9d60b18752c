package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"stylekit/config"
	"stylekit/css"
	"stylekit/state"
	"stylekit/styles"
)

type options struct {
	format      config.OutputFormat
	selector    *selectorBuilder
	breakpoints styles.Breakpoints // used when document has none
	outline     bool
	check       bool
}

// renderDocuments produces complete output: global style blocks first,
// followed by every document in order. Failing documents are skipped unless
// source was a single file.
func renderDocuments(ctx context.Context, docs []document, single bool, opts options, log *zap.Logger) ([]byte, error) {
	env := state.EnvFromContext(ctx)

	var (
		sheet    css.Stylesheet
		listings []string
	)
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, selector, err := prepareDocument(doc, opts)
		if err == nil {
			env.Rpt.StoreData(filepath.ToSlash(filepath.Join("props", doc.source+".txt")), []byte(p.String()))

			switch opts.format {
			case config.OutputFormatList:
				var text string
				if text, err = p.Listing(selector); err == nil {
					listings = append(listings, text)
				}
			default:
				var s *css.Stylesheet
				if s, err = p.Stylesheet(styles.SheetOptions{Selector: selector, DebugOutline: opts.outline}); err == nil {
					sheet.Append(s)
				}
			}
		}
		if err != nil {
			if single {
				return nil, fmt.Errorf("unable to render (%s): %w", doc.source, err)
			}
			log.Error("Unable to render document", zap.String("file", doc.source), zap.Error(err))
			continue
		}
		log.Debug("Document rendered", zap.String("file", doc.source), zap.String("selector", selector))
	}

	var out strings.Builder
	if opts.format == config.OutputFormatList {
		out.WriteString(strings.Join(listings, "\n"))
		return []byte(out.String()), nil
	}
	if env.Styles.Len() > 0 {
		out.WriteString(env.Styles.String())
		if len(sheet.Items) > 0 {
			out.WriteString("\n")
		}
	}
	if _, err := sheet.WriteTo(&out); err != nil {
		return nil, err
	}
	return []byte(out.String()), nil
}

func prepareDocument(doc document, opts options) (*styles.Props, string, error) {
	p, err := styles.ParseProps(doc.data, opts.breakpoints)
	if err != nil {
		return nil, "", err
	}
	selector, err := opts.selector.build(p.Name, doc.source)
	if err != nil {
		return nil, "", err
	}
	return p, selector, nil
}

// checkOutput parses produced CSS back, problems are reported but never
// fatal since attribute values are passed through as is.
func checkOutput(data []byte, log *zap.Logger) {
	sheet := css.NewParser(log).Parse(data, "output")
	for _, w := range sheet.Warnings {
		log.Warn("Produced stylesheet may be malformed", zap.String("problem", w))
	}
}

// writeOutput writes data to destination file or STDOUT when destination is
// empty. Existing file is only replaced when overwrite was requested.
func writeOutput(env *state.LocalEnv, data []byte, dst, reportName string, log *zap.Logger) error {
	env.Rpt.StoreData(reportName, data)

	if len(dst) == 0 {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		return nil
	}

	if fi, err := os.Stat(dst); err == nil {
		if fi.IsDir() {
			return fmt.Errorf("destination is a directory: %s", dst)
		}
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", dst)
		}
		log.Warn("Overwriting existing file", zap.String("file", dst))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	log.Info("Output written", zap.String("file", dst), zap.Int("bytes", len(data)))
	return nil
}
