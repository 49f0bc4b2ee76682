package relay

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"java fence", "```java\nSystem.out.println(1);\n```", "\nSystem.out.println(1);\n"},
		{"python fence", "```python\nprint(1)\n```", "\nprint(1)\n"},
		{"triple quotes", "'''docstring'''", "docstring"},
		{"no fences", "print('x')", "print('x')"},
		{"empty", "", ""},
		{"spliced triple quote", "''```'", ""},
		{"spliced backticks", "``'''`", ""},
		{"nested java", "``````javajava", "java"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if ContainsDelimiter(got) {
				t.Errorf("Sanitize(%q) still contains a delimiter: %q", tt.in, got)
			}
		})
	}
}

func TestSanitizeRoundTrip(t *testing.T) {
	pieces := []string{"`", "'", "``", "''", "```", "'''", "java", "python", "x", "\n", "```java", "```python"}
	// Every concatenation of three pieces.
	for _, a := range pieces {
		for _, b := range pieces {
			for _, c := range pieces {
				in := a + b + c
				if out := Sanitize(in); ContainsDelimiter(out) {
					t.Fatalf("Sanitize(%q) = %q contains a delimiter", in, out)
				}
			}
		}
	}
}

func TestContainsDelimiter(t *testing.T) {
	for _, d := range Delimiters {
		if !ContainsDelimiter("prefix " + d + " suffix") {
			t.Errorf("ContainsDelimiter missed %q", d)
		}
	}
	for _, s := range []string{"``", "''", "`'`", "plain text"} {
		if ContainsDelimiter(s) {
			t.Errorf("ContainsDelimiter(%q) = true", s)
		}
	}
}
