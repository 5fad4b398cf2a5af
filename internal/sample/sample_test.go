package sample

import "testing"

func TestNote(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    string
	}{
		{"default pair", []string{".env", ".env.local"}, "# NOTE: Key not found in .env or .env.local"},
		{"single source", []string{".env"}, "# NOTE: Key not found in .env"},
		{"three sources", []string{".env", ".env.local", ".env.ci"}, "# NOTE: Key not found in .env, .env.local or .env.ci"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Note(tt.sources); got != tt.want {
				t.Errorf("Note(%v) = %q, want %q", tt.sources, got, tt.want)
			}
		})
	}
}

func TestContent(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"plain lines", []string{"A=", "B="}, "A=\nB=\n"},
		{"trailing blanks dropped", []string{"A=", "", "   "}, "A=\n"},
		{"interior blanks kept", []string{"A=", "", "B="}, "A=\n\nB=\n"},
		{"no lines", nil, ""},
		{"only blanks", []string{"", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Content(tt.lines); got != tt.want {
				t.Errorf("Content(%v) = %q, want %q", tt.lines, got, tt.want)
			}
		})
	}
}
