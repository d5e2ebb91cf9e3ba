package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/strandlab/strandplot/pkg/cache"
	"github.com/strandlab/strandplot/pkg/errors"
)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Structure: "(((...)))"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Format != FormatSVG {
		t.Errorf("Format should be %s, got %s", FormatSVG, opts.Format)
	}
	if opts.Style.Scale != 50 {
		t.Errorf("Style should get defaults, Scale = %v", opts.Style.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger default not set")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "invalid notation",
			opts:     Options{Structure: "((x))"},
			wantCode: errors.ErrCodeInvalidNotation,
		},
		{
			name:     "invalid sequence",
			opts:     Options{Structure: "((..))", Sequence: "GG!!CC"},
			wantCode: errors.ErrCodeInvalidSequence,
		},
		{
			name:     "invalid format",
			opts:     Options{Structure: "((..))", Format: "pdf"},
			wantCode: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Structure: "((..))", Format: "PNG"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	if opts.Format != FormatPNG {
		t.Errorf("Format should be normalized, got %s", opts.Format)
	}

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Format != FormatPNG {
		t.Error("Format changed on second call")
	}
}

func TestParseErrorCodes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		notation string
		wantCode errors.Code
	}{
		{"(((", errors.ErrCodeUnmatchedOpen},
		{"()))", errors.ErrCodeUnmatchedClose},
		{"([)]", errors.ErrCodeInvalidNotation},
	}

	for _, tt := range tests {
		_, err := Parse(ctx, tt.notation)
		if err == nil {
			t.Errorf("Parse(%q) should fail", tt.notation)
			continue
		}
		if got := errors.GetCode(err); got != tt.wantCode {
			t.Errorf("Parse(%q) code = %v, want %v", tt.notation, got, tt.wantCode)
		}
	}
}

func TestExecuteSVG(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{Structure: "(((...)))"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Layout == nil {
		t.Fatal("no layout computed")
	}
	if result.Stats.BaseCount != 9 {
		t.Errorf("BaseCount = %d, want 9", result.Stats.BaseCount)
	}
	if !bytes.HasPrefix(result.Artifact, []byte("<svg")) {
		t.Errorf("artifact is not SVG: %.40s", result.Artifact)
	}
	if result.Format != FormatSVG {
		t.Errorf("Format = %s", result.Format)
	}
}

func TestExecuteJSON(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{Structure: "((+))", Format: "json"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	s := string(result.Artifact)
	for _, key := range []string{`"layout"`, `"nicks"`, `"pairs"`, `"segments"`} {
		if !strings.Contains(s, key) {
			t.Errorf("JSON artifact missing %s", key)
		}
	}
}

func TestExecuteParseError(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(ctx, Options{Structure: "((("})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeUnmatchedOpen) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnmatchedOpen)
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Structure: "((..((...))..))"}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit cache")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit artifact cache")
	}
	if !bytes.Equal(first.Artifact, second.Artifact) {
		t.Error("cached artifact differs from rendered one")
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit cache")
	}
	if !bytes.Equal(first.Artifact, third.Artifact) {
		t.Error("refreshed artifact differs")
	}
}

func TestCacheKeySeparation(t *testing.T) {
	aligned := Options{Structure: "((..))"}
	aligned.SetRenderDefaults()
	unaligned := aligned
	unaligned.Style.AlignStem = false

	k := cache.NewDefaultKeyer()
	if k.LayoutKey(aligned.Structure, aligned.LayoutKeyOpts()) ==
		k.LayoutKey(unaligned.Structure, unaligned.LayoutKeyOpts()) {
		t.Error("alignment should separate layout cache keys")
	}

	seq := aligned
	seq.Sequence = "GGAACC"
	if k.ArtifactKey(aligned.Structure, aligned.ArtifactKeyOpts()) ==
		k.ArtifactKey(seq.Structure, seq.ArtifactKeyOpts()) {
		t.Error("sequence should separate artifact cache keys")
	}
}

func TestExecuteUnpairedOnly(t *testing.T) {
	// Structures without a single pair have nothing to lay out. The run
	// still succeeds, with a nil layout and an empty artifact.
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{Structure: "....."})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Layout != nil {
		t.Error("unpaired-only structure should have no layout")
	}
	if len(result.Artifact) != 0 {
		t.Errorf("artifact should be empty, got %d bytes", len(result.Artifact))
	}
}

func TestExecuteEmptyStructure(t *testing.T) {
	// The empty string is a structure with zero bases, not malformed
	// input: it takes the same nil-layout path as an all-dot structure.
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	for _, format := range []string{FormatSVG, FormatJSON} {
		result, err := runner.Execute(ctx, Options{Structure: "", Format: format})
		if err != nil {
			t.Fatalf("Execute(%q): %v", format, err)
		}
		if result.Layout != nil {
			t.Errorf("%s: empty structure should have no layout", format)
		}
	}
}
