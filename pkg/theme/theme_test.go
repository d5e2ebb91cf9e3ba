package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/strandlab/strandplot/pkg/core/render/svg"
	"github.com/strandlab/strandplot/pkg/errors"
)

func TestParseOverridesDefaults(t *testing.T) {
	opts, err := Parse([]byte(`
scale = 60.0
backbone_color = "#333333"
show_arrows = false
legend = "nucleotide"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opts.Scale != 60 {
		t.Errorf("Scale = %v, want 60", opts.Scale)
	}
	if opts.BackboneColor != "#333333" {
		t.Errorf("BackboneColor = %q", opts.BackboneColor)
	}
	if opts.ShowArrows {
		t.Error("ShowArrows not overridden")
	}
	if opts.Legend != svg.LegendNucleotide {
		t.Errorf("Legend = %q", opts.Legend)
	}

	// Unset keys keep defaults.
	if opts.BaseFill != "#900c00" {
		t.Errorf("BaseFill = %q, want default", opts.BaseFill)
	}
	if opts.PairWidth != 2.5 {
		t.Errorf("PairWidth = %v, want default", opts.PairWidth)
	}
}

func TestParseEmptyIsDefault(t *testing.T) {
	opts, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(opts, Default()) {
		t.Errorf("empty theme = %+v, want defaults", opts)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax error", `scale = `},
		{"unknown key", `backbone_wdith = 5.0`},
		{"bad legend", `legend = "rainbow"`},
		{"zero scale", `scale = 0.0`},
		{"negative padding", `padding = -1.0`},
		{"probability out of range", `probabilities = [0.5, 1.5]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidTheme) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTheme)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dark.toml")
	if err := os.WriteFile(path, []byte(`base_fill = "#1e6091"`), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.BaseFill != "#1e6091" {
		t.Errorf("BaseFill = %q", opts.BaseFill)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
