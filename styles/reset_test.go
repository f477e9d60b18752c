package styles_test

import (
	"bytes"
	"strings"
	"testing"

	"stylekit/styles"
)

func TestResetStylesheet_Defaults(t *testing.T) {
	sheet := styles.ResetStylesheet(styles.ResetConfig{})

	want := `html {
  line-height: 1.15;
  text-size-adjust: 100%;
}

body {
  margin: 0;
}

* {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}
`
	if got := sheet.String(); got != want {
		t.Errorf("ResetStylesheet() =\n%s\nwant\n%s", got, want)
	}
}

func TestResetStylesheet_Configured(t *testing.T) {
	sheet := styles.ResetStylesheet(styles.ResetConfig{
		Body: styles.BodyConfig{Margin: "10px", Background: "red"},
		Font: "Arial",
	})

	body := sheet.RulesBySelector("body")
	if len(body) != 1 {
		t.Fatalf("expected one body rule, got %d", len(body))
	}
	var got []string
	for _, d := range body[0].Declarations {
		got = append(got, d.String())
	}
	want := "margin: 10px;|background: red;|font-family: Arial;"
	if strings.Join(got, "|") != want {
		t.Errorf("body declarations = %v", got)
	}
}

func TestResetStylesheet_FontOnly(t *testing.T) {
	text := styles.ResetStylesheet(styles.ResetConfig{Font: "serif"}).String()

	if strings.Contains(text, "background") {
		t.Error("background must be omitted when not configured")
	}
	if !strings.Contains(text, "font-family: serif;") {
		t.Error("font-family missing")
	}
}

func TestInjectReset_ReappliesEachCall(t *testing.T) {
	reg := &styles.Registry{}

	styles.InjectReset(reg, styles.ResetConfig{})
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d after first injection", reg.Len())
	}
	styles.InjectReset(reg, styles.ResetConfig{})
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d after second injection, want 2", reg.Len())
	}
	blocks := reg.Blocks()
	if blocks[0] != blocks[1] {
		t.Error("repeated injection must produce identical blocks")
	}
	if strings.Count(reg.String(), "box-sizing: border-box;") != 2 {
		t.Error("expected rule set to be duplicated")
	}

	reg.Clear()
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after Clear", reg.Len())
	}
}

type recordingSink struct {
	blocks []string
}

func (s *recordingSink) Inject(block string) {
	s.blocks = append(s.blocks, block)
}

func TestInjectReset_CustomSink(t *testing.T) {
	sink := &recordingSink{}
	styles.InjectReset(sink, styles.ResetConfig{Body: styles.BodyConfig{Background: "#fff"}})

	if len(sink.blocks) != 1 {
		t.Fatalf("sink received %d blocks", len(sink.blocks))
	}
	if !strings.Contains(sink.blocks[0], "background: #fff;") {
		t.Errorf("block does not contain background:\n%s", sink.blocks[0])
	}
}

func TestRegistry_WriteTo(t *testing.T) {
	reg := &styles.Registry{}
	reg.Inject("a {\n}\n")
	reg.Inject("b {\n}\n")

	var buf bytes.Buffer
	n, err := reg.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if got, want := buf.String(), "a {\n}\n\nb {\n}\n"; got != want {
		t.Errorf("WriteTo() = %q, want %q", got, want)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d bytes, buffer has %d", n, buf.Len())
	}
}
