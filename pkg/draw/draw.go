// Package draw serializes layout results to their canonical JSON form.
//
// The format is the exchange surface between the geometry core and
// external renderers: loops and bases with alphabetically ordered fields,
// untagged line/arc segments, and the pair table and nick list the layout
// derived from. Round-trips are lossless.
package draw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/strandlab/strandplot/pkg/core/layout"
)

// Marshal converts a layout result to compact JSON bytes.
func Marshal(r *layout.Result) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return data, nil
}

// WriteResult writes a layout result as indented JSON to w.
func WriteResult(r *layout.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteResultFile writes a layout result to a JSON file.
// The file is created with 0644 permissions.
func WriteResultFile(r *layout.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(r, f)
}

// ReadResult decodes a layout result from an io.Reader.
func ReadResult(rd io.Reader) (*layout.Result, error) {
	var r layout.Result
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &r, nil
}

// ReadResultFile reads a JSON file produced by [WriteResultFile].
func ReadResultFile(path string) (*layout.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadResult(f)
}

// ReadResultBytes decodes a layout result from raw JSON bytes.
func ReadResultBytes(data []byte) (*layout.Result, error) {
	return ReadResult(bytes.NewReader(data))
}
