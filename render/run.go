// Package render implements program commands turning props documents into
// stylesheets.
package render

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"stylekit/archive"
	"stylekit/config"
	"stylekit/state"
	"stylekit/styles"
)

// document is a single props document found in the source. "source" is
// path relative to the processed directory or archive, base file name when
// single file was specified.
type document struct {
	source string
	data   []byte
}

// Run is the action of render command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Render.Format
	if to := cmd.String("to"); len(to) > 0 {
		if format, err = config.ParseOutputFormat(to); err != nil {
			log.Warn("Unknown output format requested, switching to configured one", zap.Stringer("format", env.Cfg.Render.Format), zap.Error(err))
			format = env.Cfg.Render.Format
		}
	}

	selector, err := newSelectorBuilder(env.Cfg.Render.SelectorTemplate)
	if err != nil {
		return err
	}

	env.Overwrite = cmd.Bool("overwrite")

	// zip does not define file name encoding, old archives may need archaic
	// code page
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		if env.CodePage, err = ianaindex.IANA.Encoding(cp); err != nil || env.CodePage == nil {
			log.Warn("Unknown character set name. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	opts := options{
		format:      format,
		selector:    selector,
		breakpoints: env.Cfg.Render.Breakpoints,
		outline:     env.Cfg.Render.DebugOutline || cmd.Bool("debug-outline"),
		check:       env.Cfg.Render.CheckOutput,
	}
	if env.Cfg.Reset.Enable || cmd.Bool("reset") {
		styles.InjectReset(env.Styles, env.Cfg.Reset.ResetConfig)
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", destinationName(dst)), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	docs, single, err := process(ctx, src, log)
	if err != nil {
		return err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return natural.Less(docs[i].source, docs[j].source)
	})

	data, err := renderDocuments(ctx, docs, single, opts, log)
	if err != nil {
		return err
	}
	if opts.check && format == config.OutputFormatCSS {
		checkOutput(data, log)
	}
	return writeOutput(env, data, dst, "output."+format.String(), log)
}

// Reset is the action of reset command: it outputs global reset stylesheet.
func Reset(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("reset")

	dst := cmd.Args().Get(0)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	env.Overwrite = cmd.Bool("overwrite")

	styles.InjectReset(env.Styles, env.Cfg.Reset.ResetConfig)
	data := []byte(env.Styles.String())
	if env.Cfg.Render.CheckOutput {
		checkOutput(data, log)
	}
	return writeOutput(env, data, dst, "reset.css", log)
}

func destinationName(dst string) string {
	if len(dst) == 0 {
		return "STDOUT"
	}
	return dst
}

// process determines the input type (directory, archive, path in archive or
// single file) and collects props documents. Returned flag is set when
// source was a single file.
func process(ctx context.Context, src string, log *zap.Logger) (docs []document, single bool, err error) {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return nil, false, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if docs, err = processDir(ctx, head, log); err != nil {
				return nil, false, fmt.Errorf("unable to process directory: %w", err)
			}
			return docs, false, nil
		}

		if !fi.Mode().IsRegular() {
			return nil, false, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		arc, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return nil, false, fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if docs, err = processArchive(ctx, head, tail, "", log); err != nil {
				return nil, false, fmt.Errorf("unable to process archive: %w", err)
			}
			return docs, false, nil
		}

		props, enc, err := isPropsFile(head)
		if err != nil {
			return nil, false, fmt.Errorf("unable to check file type: %w", err)
		}
		if props && len(tail) == 0 {
			file, err := os.Open(head)
			if err != nil {
				return nil, false, err
			}
			defer file.Close()

			data, err := io.ReadAll(selectReader(file, enc))
			if err != nil {
				return nil, false, fmt.Errorf("unable to read file (%s): %w", head, err)
			}
			return []document{{source: filepath.Base(head), data: data}}, true, nil
		}
		return nil, false, fmt.Errorf("input was not recognized as props document (%s)", head)
	}
	return nil, false, fmt.Errorf("input source was not found (%s)", src)
}

// processDir walks directory tree collecting props documents including ones
// in archives.
func processDir(ctx context.Context, dir string, log *zap.Logger) (docs []document, err error) {
	defer func() {
		if err == nil && len(docs) == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		arc, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if arc {
			found, err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), log)
			if err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			docs = append(docs, found...)
			return nil
		}

		props, enc, err := isPropsFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !props {
			log.Debug("Skipping file, not recognized as props document or archive", zap.String("file", path))
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		data, err := io.ReadAll(selectReader(file, enc))
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		docs = append(docs, document{source: src, data: data})
		return nil
	})
	return docs, err
}

// processArchive walks all files inside archive and collects props documents
// under "pathIn". "pathOut" is prepended to names of found documents.
func processArchive(ctx context.Context, path, pathIn, pathOut string, log *zap.Logger) (docs []document, err error) {
	defer func() {
		if err == nil && len(docs) == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	cp := state.EnvFromContext(ctx).CodePage

	err = archive.Walk(path, pathIn, func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		props, enc, err := isPropsInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if !props {
			log.Debug("Skipping file, not recognized as props document", zap.String("archive", archive), zap.String("file", f.FileHeader.Name))
			return nil
		}

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		data, err := io.ReadAll(selectReader(r, enc))
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}

		pathInArchive := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		src := strings.TrimPrefix(filepath.Join(pathOut, pathInArchive), string(filepath.Separator))
		docs = append(docs, document{source: src, data: data})
		return nil
	})
	return docs, err
}
