package render

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"stylekit/config"
	"stylekit/state"
	"stylekit/styles"
)

const cardProps = `name: card
padding: 4px
direction: horizontal
halign: center
breakpoints:
  sm: [0, 600]
sm:
  padding: 1px
`

const cardCSS = `.card {
  padding: 4px;
  flex-direction: row;
  justify-content: center;
}

@media (min-width: 0px) and (max-width: 600px) {
  .card {
    padding: 1px;
  }
}
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	// keep tests away from process wide registry
	env.Styles = &styles.Registry{}
	return ctx, env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	zf, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zf.Close()

	w := zip.NewWriter(zf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s in zip: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
}

func sources(docs []document) map[string]bool {
	m := make(map[string]bool, len(docs))
	for _, d := range docs {
		m[filepath.ToSlash(d.source)] = true
	}
	return m
}

func TestProcess_SingleFile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	path := filepath.Join(t.TempDir(), "card.yaml")
	writeFile(t, path, cardProps)

	docs, single, err := process(ctx, path, env.Log)
	if err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if !single {
		t.Error("single file source not reported as such")
	}
	if len(docs) != 1 || docs[0].source != "card.yaml" || string(docs[0].data) != cardProps {
		t.Errorf("process() = %+v", docs)
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b2.yaml"), "padding: 1px\n")
	writeFile(t, filepath.Join(dir, "sub", "a.yml"), "margin: 1px\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a document")
	writeZip(t, filepath.Join(dir, "pack.zip"), map[string]string{
		"z.yaml":     "color: red\n",
		"readme.txt": "skip",
	})

	docs, single, err := process(ctx, dir, env.Log)
	if err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if single {
		t.Error("directory source reported as single file")
	}
	got := sources(docs)
	for _, want := range []string{"b2.yaml", "sub/a.yml", "z.yaml"} {
		if !got[want] {
			t.Errorf("document %s not found in %v", want, got)
		}
	}
	if len(docs) != 3 {
		t.Errorf("process() found %d documents, want 3", len(docs))
	}
}

func TestProcess_PathInArchive(t *testing.T) {
	ctx, env := setupTestEnv(t)
	zipPath := filepath.Join(t.TempDir(), "styles.zip")
	writeZip(t, zipPath, map[string]string{
		"set1/a.yaml": "padding: 1px\n",
		"set1/b.yaml": "padding: 2px\n",
		"set2/c.yaml": "padding: 3px\n",
	})

	docs, _, err := process(ctx, filepath.Join(zipPath, "set1"), env.Log)
	if err != nil {
		t.Fatalf("process() error = %v", err)
	}
	got := sources(docs)
	if len(docs) != 2 || !got["set1/a.yaml"] || !got["set1/b.yaml"] {
		t.Errorf("process() = %v", got)
	}
}

func TestProcess_Errors(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	writeFile(t, txt, "text")

	tests := []struct {
		name string
		src  string
	}{
		{"not found", filepath.Join(dir, "absent", "card.yaml")},
		{"not a document", txt},
		{"file with tail", filepath.Join(txt, "inner.yaml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := process(ctx, tt.src, env.Log); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func testOptions(t *testing.T, env *state.LocalEnv, format config.OutputFormat) options {
	t.Helper()
	selector, err := newSelectorBuilder(env.Cfg.Render.SelectorTemplate)
	if err != nil {
		t.Fatalf("newSelectorBuilder() error = %v", err)
	}
	return options{format: format, selector: selector}
}

func TestRenderDocuments_CSS(t *testing.T) {
	ctx, env := setupTestEnv(t)

	data, err := renderDocuments(ctx, []document{{source: "card.yaml", data: []byte(cardProps)}}, true, testOptions(t, env, config.OutputFormatCSS), env.Log)
	if err != nil {
		t.Fatalf("renderDocuments() error = %v", err)
	}
	if string(data) != cardCSS {
		t.Errorf("renderDocuments() =\n%s\nwant\n%s", data, cardCSS)
	}
}

func TestRenderDocuments_ResetFirst(t *testing.T) {
	ctx, env := setupTestEnv(t)
	styles.InjectReset(env.Styles, styles.ResetConfig{})

	data, err := renderDocuments(ctx, []document{{source: "card.yaml", data: []byte(cardProps)}}, true, testOptions(t, env, config.OutputFormatCSS), env.Log)
	if err != nil {
		t.Fatalf("renderDocuments() error = %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "html {") {
		t.Errorf("reset must come first:\n%s", out)
	}
	if !strings.HasSuffix(out, cardCSS) {
		t.Errorf("rendered document must follow reset:\n%s", out)
	}
}

func TestRenderDocuments_Failures(t *testing.T) {
	ctx, env := setupTestEnv(t)
	docs := []document{
		{source: "bad.yaml", data: []byte("unknown: 1\n")},
		{source: "card.yaml", data: []byte(cardProps)},
	}
	opts := testOptions(t, env, config.OutputFormatCSS)

	data, err := renderDocuments(ctx, docs, false, opts, env.Log)
	if err != nil {
		t.Fatalf("renderDocuments() error = %v", err)
	}
	if string(data) != cardCSS {
		t.Errorf("failing document must be skipped, got:\n%s", data)
	}

	if _, err := renderDocuments(ctx, docs[:1], true, opts, env.Log); err == nil {
		t.Error("single document failure must be returned")
	}
}

func TestRenderDocuments_NameFromFile(t *testing.T) {
	ctx, env := setupTestEnv(t)

	data, err := renderDocuments(ctx, []document{{source: "sub/Side Bar.yaml", data: []byte("margin: 1px\n")}}, true, testOptions(t, env, config.OutputFormatCSS), env.Log)
	if err != nil {
		t.Fatalf("renderDocuments() error = %v", err)
	}
	if want := ".side-bar {\n  margin: 1px;\n}\n"; string(data) != want {
		t.Errorf("renderDocuments() = %q, want %q", data, want)
	}
}

func TestRenderDocuments_List(t *testing.T) {
	ctx, env := setupTestEnv(t)

	data, err := renderDocuments(ctx, []document{{source: "card.yaml", data: []byte(cardProps)}}, true, testOptions(t, env, config.OutputFormatList), env.Log)
	if err != nil {
		t.Fatalf("renderDocuments() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{
		".card\n",
		"  padding = padding: 4px;\n",
		"  margin = -\n",
		"  hidden = -\n",
		"  layout\n    flex-direction: row;\n    justify-content: center;\n",
		"  @sm (min-width: 0px) and (max-width: 600px)\n    padding = padding: 1px;\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing misses %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, " = "); n != 2*len(styles.Vocabulary()) {
		t.Errorf("listing has %d entries, want %d", n, 2*len(styles.Vocabulary()))
	}
}

func TestWriteOutput(t *testing.T) {
	_, env := setupTestEnv(t)
	dst := filepath.Join(t.TempDir(), "out", "styles.css")

	if err := writeOutput(env, []byte("a {\n}\n"), dst, "output.css", env.Log); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	if err := writeOutput(env, []byte("b {\n}\n"), dst, "output.css", env.Log); err == nil {
		t.Error("existing destination must not be replaced without overwrite")
	}

	env.Overwrite = true
	if err := writeOutput(env, []byte("b {\n}\n"), dst, "output.css", env.Log); err != nil {
		t.Fatalf("writeOutput() with overwrite error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "b {\n}\n" {
		t.Errorf("output = %q", data)
	}

	if err := writeOutput(env, nil, filepath.Dir(dst), "output.css", env.Log); err == nil {
		t.Error("directory destination must be rejected")
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name: "skit",
		Commands: []*cli.Command{
			{
				Name:   "render",
				Action: Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to"},
					&cli.BoolFlag{Name: "reset"},
					&cli.BoolFlag{Name: "debug-outline"},
					&cli.BoolFlag{Name: "overwrite"},
					&cli.StringFlag{Name: "force-zip-cp"},
				},
			},
			{
				Name:   "reset",
				Action: Reset,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "overwrite"},
				},
			},
		},
	}
}

func TestRun(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "item10.yaml"), "name: item10\nmargin: 1px\n")
	writeFile(t, filepath.Join(src, "item2.yaml"), "name: item2\nmargin: 1px\n")
	writeFile(t, filepath.Join(src, "item1.yaml"), "name: item1\nmargin: 1px\n")
	dst := filepath.Join(dir, "out.css")

	if err := renderCommand().Run(ctx, []string{"skit", "render", "--reset", src, dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "html {") {
		t.Errorf("reset must come first:\n%s", out)
	}
	i1, i2, i10 := strings.Index(out, ".item1 {"), strings.Index(out, ".item2 {"), strings.Index(out, ".item10 {")
	if i1 < 0 || i2 < 0 || i10 < 0 || !(i1 < i2 && i2 < i10) {
		t.Errorf("documents must be in natural order:\n%s", out)
	}

	// second run without overwrite must fail
	if err := renderCommand().Run(ctx, []string{"skit", "render", src, dst}); err == nil {
		t.Error("expected error for existing destination")
	}
}

func TestRun_NoSource(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	if err := renderCommand().Run(ctx, []string{"skit", "render"}); err == nil {
		t.Error("expected error when source is missing")
	}
}

func TestReset(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.Cfg.Reset.Font = "Arial"
	dst := filepath.Join(t.TempDir(), "reset.css")

	if err := renderCommand().Run(ctx, []string{"skit", "reset", dst}); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != styles.ResetStylesheet(env.Cfg.Reset.ResetConfig).String() {
		t.Errorf("reset output =\n%s", data)
	}
	if env.Styles.Len() != 1 {
		t.Errorf("registry has %d blocks, want 1", env.Styles.Len())
	}
}
