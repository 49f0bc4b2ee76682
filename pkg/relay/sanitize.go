package relay

import "strings"

// Delimiters are the code fences refused in prompts and stripped from
// generated text. Longer fences come first so "```java" is removed
// whole rather than leaving "java" behind.
var Delimiters = []string{"```java", "```python", "'''", "```"}

// ContainsDelimiter reports whether s contains any prohibited delimiter.
func ContainsDelimiter(s string) bool {
	for _, d := range Delimiters {
		if strings.Contains(s, d) {
			return true
		}
	}
	return false
}

// Sanitize removes every prohibited delimiter from s. Removal repeats
// until nothing changes because deleting one fence can join its
// neighbours into a new one ("''```'" becomes "'''").
func Sanitize(s string) string {
	for {
		out := s
		for _, d := range Delimiters {
			out = strings.ReplaceAll(out, d, "")
		}
		if out == s {
			return out
		}
		s = out
	}
}
