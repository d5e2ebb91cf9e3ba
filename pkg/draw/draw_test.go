package draw

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/strandlab/strandplot/pkg/core/layout"
)

func mustDraw(t *testing.T, in string) *layout.Result {
	t.Helper()
	r, err := layout.Draw(in, layout.Options{})
	if err != nil {
		t.Fatalf("Draw(%q): %v", in, err)
	}
	return r
}

func TestMarshalShape(t *testing.T) {
	data, err := Marshal(mustDraw(t, "(((...)))"))
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"layout", "nicks", "pairs", "segments"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	// Loop fields must appear in alphabetical order for canonical output.
	var lay struct {
		Loops []json.RawMessage `json:"loops"`
	}
	if err := json.Unmarshal(doc["layout"], &lay); err != nil {
		t.Fatal(err)
	}
	first := string(lay.Loops[0])
	order := []string{`"arc_angle"`, `"height"`, `"pair_angle"`, `"pairs"`, `"radius"`, `"x"`, `"y"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(first, key)
		if idx < 0 {
			t.Fatalf("loop JSON missing %s: %s", key, first)
		}
		if idx < last {
			t.Errorf("loop field %s out of order", key)
		}
		last = idx
	}
}

func TestSegmentEncoding(t *testing.T) {
	data, err := Marshal(mustDraw(t, "(..)"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"t1"`) {
		t.Error("expected at least one arc segment in (..)")
	}
	if !strings.Contains(s, `"x1"`) {
		t.Error("expected at least one line segment in (..)")
	}
	if strings.Contains(s, `"Line"`) || strings.Contains(s, `"Arc"`) {
		t.Error("segments must serialize untagged")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{"()", "(((...)))", "(((.+.)))", "((..((.....))..((..)).))"} {
		orig := mustDraw(t, in)
		data, err := Marshal(orig)
		if err != nil {
			t.Fatal(err)
		}
		back, err := ReadResultBytes(data)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}

		if len(back.Layout.Bases) != len(orig.Layout.Bases) {
			t.Fatalf("%q: base count changed in round trip", in)
		}
		for i := range orig.Layout.Bases {
			if math.Abs(back.Layout.Bases[i].X-orig.Layout.Bases[i].X) > 1e-12 {
				t.Errorf("%q: base %d x drifted", in, i)
			}
		}
		for i := range orig.Segments {
			if (orig.Segments[i].In.Arc == nil) != (back.Segments[i].In.Arc == nil) {
				t.Errorf("%q: segment %d variant changed", in, i)
			}
		}
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	orig := mustDraw(t, "((...))")
	if err := WriteResultFile(orig, path); err != nil {
		t.Fatal(err)
	}
	back, err := ReadResultFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Pairs) != len(orig.Pairs) {
		t.Error("pair table changed in file round trip")
	}
}

func TestWriteResultIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(mustDraw(t, "()"), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("WriteResult output not indented")
	}
}
