package filter

import (
	"testing"
)

func TestBlocks(t *testing.T) {
	samples := map[string]string{
		"":                 "",
		"x = 1":            "x = 1",
		"if x:{:y = 1:}":   "if x:\n\ty = 1",
		"{:a{:b:}c:}d":     "\ta\n\t\tb\n\tc\nd",
		"a:}b":             "a\nb",
		"for i in r:{::}x": "for i in r:\nx",
		"{:  :}":           "",
	}

	for src, expected := range samples {
		got := Blocks(src)
		if got != expected {
			t.Errorf("sample %q: expected %q, got %q", src, expected, got)
		}
	}
}
