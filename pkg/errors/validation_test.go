package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "graphs/a.ipe", false},
		{"absolute", "/tmp/out.graphml", false},
		{"stdio dash", "-", false},
		{"with spaces inside", "my graphs/a.line", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"trailing space", "a.ipe ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateDigits(t *testing.T) {
	tests := []struct {
		digits  int
		wantErr bool
	}{
		{0, false},
		{2, false},
		{MaxDigits, false},
		{-1, true},
		{MaxDigits + 1, true},
	}

	for _, tt := range tests {
		err := ValidateDigits(tt.digits)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDigits(%d) error = %v, wantErr %v", tt.digits, err, tt.wantErr)
		}
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(0, 5); err != nil {
		t.Errorf("ValidateRange(0, 5) = %v", err)
	}
	if err := ValidateRange(1, 1); err != nil {
		t.Errorf("ValidateRange(1, 1) = %v", err)
	}
	if err := ValidateRange(5, 0); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateRange(5, 0) = %v, want %v", err, ErrCodeInvalidInput)
	}
}
