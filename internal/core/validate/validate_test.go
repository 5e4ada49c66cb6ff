package validate

import (
	"strings"
	"testing"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid title", "Sprint Retro", false},
		{"valid with symbols", "Q3 / planning", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
		{"too long", strings.Repeat("a", 121), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Title(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Title(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "id_abc123xyz", false},
		{"missing prefix", "abc123xyz", true},
		{"too short", "id_abc", true},
		{"uppercase", "id_ABC123XYZ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestOpacity(t *testing.T) {
	for _, v := range []float64{0.05, 0.4, 1} {
		if err := Opacity(v); err != nil {
			t.Errorf("Opacity(%g) unexpected error: %v", v, err)
		}
	}
	for _, v := range []float64{0, -1, 1.5} {
		if err := Opacity(v); err == nil {
			t.Errorf("Opacity(%g) expected error", v)
		}
	}
}
