/*
Package gevo is a context-free grammar engine for grammatical evolution.

Consists of subpackages:
  - bnf: parses BNF grammar description and analyzes non-terminal depths and recursion;
  - grammar: defines frozen grammar structure and counts derivation trees per depth;
  - mapper: maps genotypes (codon sequences) to phenotypes (derived strings);
  - filter: text filter for block-structured grammar dialect;
  - source: defines named grammar source split into lines;
  - cmd/gemap: console utility analyzing a grammar and mapping genomes.

Typical usage is:

1. Describe grammar in BNF, one rule per line: <expr> ::= <expr><op><expr> | x | 1.

2. Parse grammar description using bnf subpackage. The resulting grammar is
read-only and can be shared by any number of goroutines.

3. Create a mapper for the grammar and feed it genomes. Check Result.Invalid:
a genome that cannot be fully derived within depth and wrap limits is not an error.
*/
package gevo

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	BnfErrors      = 1   // used by bnf parser
	AnalysisErrors = 101 // used by bnf analyzer
	CountErrors    = 201 // used by grammar permutation counter
)

// Error is the error type used by gevo subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos implements this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
