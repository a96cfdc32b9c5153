package bnf

import (
	"strings"

	"github.com/ava12/gevo"
	"github.com/ava12/gevo/source"
)

// Grammar format errors.
const (
	MalformedLineError = gevo.BnfErrors + iota
	NotNonterminalError
	RuleDefinedError
	UndefinedNonterminalError
)

// Analysis errors.
const (
	MissingStartRuleError = gevo.AnalysisErrors + iota
	UnresolvedError
)

// IsFormatError reports whether e is caused by malformed grammar description.
func IsFormatError(e error) bool {
	ee, valid := e.(*gevo.Error)
	return valid && ee.Code >= gevo.BnfErrors && ee.Code < gevo.AnalysisErrors
}

func malformedLineError(pos source.Pos) *gevo.Error {
	return gevo.FormatErrorPos(pos, MalformedLineError, "rule separator %q not found", ruleSeparator)
}

func notNonterminalError(pos source.Pos, lhs string) *gevo.Error {
	return gevo.FormatErrorPos(pos, NotNonterminalError, "left-hand side %q is not a non-terminal", lhs)
}

func ruleDefinedError(pos source.Pos, name string) *gevo.Error {
	return gevo.FormatErrorPos(pos, RuleDefinedError, "rule for %s already defined", name)
}

func undefinedNonterminalError(pos source.Pos, name string) *gevo.Error {
	return gevo.FormatErrorPos(pos, UndefinedNonterminalError, "non-terminal %s used but not defined", name)
}

func missingStartRuleError(name string) *gevo.Error {
	return gevo.FormatError(MissingStartRuleError, "no start rule in %s", name)
}

func unresolvedError(names []string) *gevo.Error {
	return gevo.FormatError(UnresolvedError, "cannot expand non-terminals to terminals: %s", strings.Join(names, ", "))
}
