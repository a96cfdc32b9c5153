package source

import (
	"testing"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{9, 4, 4},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{-5, 1, 1},
		},
		"ж\nжж": {
			{2, 1, 2},
			{3, 2, 1},
			{5, 2, 2},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourceLines(t *testing.T) {
	samples := map[string][]string{
		"":             {""},
		"a":            {"a"},
		"a\n":          {"a", ""},
		"a\r\nb\n\nc": {"a", "b", "", "c"},
	}

	for text, expected := range samples {
		lines := New("", []byte(text)).Lines()
		if len(lines) != len(expected) {
			t.Errorf("sample %q: expected %d lines, got %d", text, len(expected), len(lines))
			continue
		}

		for i, l := range lines {
			if l.Num != i+1 || l.Text != expected[i] {
				t.Errorf("sample %q: line #%d: expected %q, got %d %q", text, i+1, expected[i], l.Num, l.Text)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	s := New("grammar.bnf", []byte("<a> ::= x\n<b> y\n"))
	p := s.Pos(14)
	if p.SourceName() != "grammar.bnf" || p.Line() != 2 || p.Col() != 5 {
		t.Errorf("unexpected position: %s %d:%d", p.SourceName(), p.Line(), p.Col())
	}
	if (Pos{}).SourceName() != "" {
		t.Error("expecting empty source name")
	}
}
