// Package source defines named grammar source split into lines.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is a named grammar text.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates source. name is used in error messages and to detect grammar dialect.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	s.lineStarts = make([]int, 1, bytes.Count(content, []byte("\n"))+1)
	for i, b := range content {
		if b == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *Source) Name() string {
	return s.name
}

// LineCol converts byte offset to 1-based line and column (in runes).
// Offsets out of range are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	index := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	start := s.lineStarts[index]
	return index + 1, utf8.RuneCount(s.content[start:pos]) + 1
}

// Line is a single source line without line terminator.
type Line struct {
	Num   int
	Start int
	Text  string
}

// Lines splits content into lines. Trailing "\r" is dropped.
func (s *Source) Lines() []Line {
	result := make([]Line, 0, len(s.lineStarts))
	for i, start := range s.lineStarts {
		end := len(s.content)
		if i+1 < len(s.lineStarts) {
			end = s.lineStarts[i+1] - 1
		}
		text := s.content[start:end]
		text = bytes.TrimSuffix(text, []byte("\r"))
		result = append(result, Line{i + 1, start, string(text)})
	}
	return result
}

// Pos returns position for byte offset.
func (s *Source) Pos(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, line, col}
}

// Pos is a position in source; implements gevo.SourcePos.
type Pos struct {
	src       *Source
	line, col int
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
