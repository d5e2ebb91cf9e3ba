package errors

import (
	"strings"
	"testing"
)

func TestValidateNotation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid hairpin", "(((...)))", false},
		{"valid with nick", "((+))", false},
		{"valid unpaired only", "....", false},
		{"valid nick only", "+", false},
		{"unbalanced passes here", "(((", false},
		{"empty is nothing to draw", "", false},

		{"too long", strings.Repeat(".", 100001), true},
		{"letters", "((AA))", true},
		{"square bracket", "([.])", true},
		{"whitespace", "(( ))", true},
		{"null byte", "((\x00))", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNotation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNotationCodes(t *testing.T) {
	if got := GetCode(ValidateNotation("(x)")); got != ErrCodeInvalidNotation {
		t.Errorf("invalid character code = %v, want %v", got, ErrCodeInvalidNotation)
	}
	if got := GetCode(ValidateNotation(strings.Repeat("(", 100001))); got != ErrCodeInvalidNotation {
		t.Errorf("oversized notation code = %v, want %v", got, ErrCodeInvalidNotation)
	}
}

func TestValidateSequence(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty allowed", "", false},
		{"valid rna", "GGGAAACCC", false},
		{"valid dna", "ggtacc", false},
		{"valid mixed case", "GgAaUu", false},
		{"valid with nick", "GG+CC", false},
		{"valid ambiguous", "GNNCC", false},

		{"numbers", "GG12CC", true},
		{"whitespace", "GG CC", true},
		{"punctuation", "GG.CC", true},
		{"too long", strings.Repeat("A", 100001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSequence(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSequence(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"svg", "svg", false},
		{"png", "png", false},
		{"json", "json", false},
		{"uppercase", "SVG", false},

		{"empty", "", true},
		{"pdf", "pdf", true},
		{"garbage", "jpeg ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "out/structure.svg", false},
		{"valid absolute", "/tmp/structure.svg", false},
		{"valid simple", "structure.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a/", 300), true},
		{"path traversal", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
