package envfile

import "testing"

func TestFindTopLevelEquals(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"plain assignment", "FOO=bar", 3},
		{"no equals", "just text", -1},
		{"empty line", "", -1},
		{"first of several", "A=b=c", 1},
		{"equals inside single quotes", "'a=b'", -1},
		{"equals inside double quotes", `"a=b"`, -1},
		{"equals after closed quote", "'a=b'=c", 5},
		{"single quote inside double quotes", `"it's"=x`, 6},
		{"double quote inside single quotes", `'say "hi"'=x`, 10},
		{"unterminated quote hides equals", "'FOO=bar", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findTopLevelEquals(tt.line); got != tt.want {
				t.Errorf("findTopLevelEquals(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"simple", "FOO=bar", "FOO", "bar", true},
		{"empty value", "FOO=", "FOO", "", true},
		{"value kept untrimmed", "FOO=  bar  ", "FOO", "  bar  ", true},
		{"spaces around key", "  FOO  =bar", "FOO", "bar", true},
		{"export prefix", "export FOO=bar", "FOO", "bar", true},
		{"export with tab", "export\tFOO=bar", "FOO", "bar", true},
		{"indented export", "  export FOO=bar", "FOO", "bar", true},
		{"export as key", "export=1", "export", "1", true},
		{"export glued to key", "exportFOO=bar", "exportFOO", "bar", true},
		{"quoted value with equals", `KEY="a=b"`, "KEY", `"a=b"`, true},
		{"empty key", "=bar", "", "", false},
		{"whitespace key", "  =bar", "", "", false},
		{"no equals", "FOO bar", "", "", false},
		{"equals only inside quotes", "'FOO=bar'", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := ParseAssignment(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseAssignment(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if key != tt.wantKey {
				t.Errorf("ParseAssignment(%q) key = %q, want %q", tt.line, key, tt.wantKey)
			}
			if value != tt.wantValue {
				t.Errorf("ParseAssignment(%q) value = %q, want %q", tt.line, value, tt.wantValue)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantType LineType
		wantKey  string
	}{
		{"blank", "   ", LineBlank, ""},
		{"comment", "# docs", LineComment, ""},
		{"assignment", "FOO=bar", LineAssignment, "FOO"},
		{"commented-out assignment", "# PORT=3000", LineComment, ""},
		{"indented commented-out assignment", "  # PORT=3000", LineComment, ""},
		{"unparseable text kept as comment", "plain text", LineComment, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Classify(tt.line)
			if tok.Type != tt.wantType || tok.Key != tt.wantKey {
				t.Errorf("Classify(%q) = {%v %q}, want {%v %q}", tt.line, tok.Type, tok.Key, tt.wantType, tt.wantKey)
			}
			if tok.Raw != tt.line {
				t.Errorf("Classify(%q) Raw = %q, want the line verbatim", tt.line, tok.Raw)
			}
		})
	}
}
