/*
Package lrgen generates canonical LR(1) parse tables for context-free
grammars. The root package holds the basic vocabulary types shared by the
sub-packages: grammar symbols and the reserved lexemes of the production
notation.

Grammars are given as a list of production strings of the form

    S  -> '(' S '+' F ')'
    S  -> F
    F  -> 'a'

where terminals are single-quoted and non-terminals are bare names.
Package lr turns such a grammar into the canonical collection of LR(1)
item sets and into ACTION/GOTO parse tables.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrgen

import (
	"fmt"
	"strings"
)

// Reserved lexemes of the production notation. Grammars must not use any of
// these as a symbol name of their own.
const (
	RuleSeparator = "->" // separates LHS and RHS of a production
	EpsilonName   = "~"  // sole RHS of an empty production
	EOFName       = "$"  // end-of-input pseudo terminal
	StartName     = "S'" // LHS of the augmented start rule
)

// Symbol is a grammar symbol: a terminal, a non-terminal, the epsilon marker
// or the end-of-input marker. Symbols are identified by name. Terminal names
// keep their surrounding single quotes, i.e. the terminal for lexeme "+" has
// name "'+'". Symbols are interned per grammar, so clients may compare them
// by pointer.
type Symbol struct {
	Name string
}

// IsQuoted returns true if the symbol name is a quoted lexeme.
func (sym *Symbol) IsQuoted() bool {
	return len(sym.Name) >= 2 && strings.HasPrefix(sym.Name, "'") &&
		strings.HasSuffix(sym.Name, "'")
}

// IsTerminal returns true for quoted symbols and for the end-of-input marker.
func (sym *Symbol) IsTerminal() bool {
	return sym.IsQuoted() || sym.Name == EOFName
}

// IsEOF returns true for the end-of-input marker.
func (sym *Symbol) IsEOF() bool {
	return sym.Name == EOFName
}

// IsEpsilon returns true for the epsilon marker. Epsilon is neither a
// terminal nor a non-terminal.
func (sym *Symbol) IsEpsilon() bool {
	return sym.Name == EpsilonName
}

// IsNonTerminal returns true for bare (unquoted) symbol names, the augmented
// start symbol included.
func (sym *Symbol) IsNonTerminal() bool {
	return !sym.IsTerminal() && !sym.IsEpsilon()
}

// Lexeme returns the input lexeme a terminal stands for, i.e. the name with
// the surrounding quotes stripped. For every other symbol it is just the name.
func (sym *Symbol) Lexeme() string {
	if sym.IsQuoted() {
		return strings.Trim(sym.Name, "'")
	}
	return sym.Name
}

func (sym *Symbol) String() string {
	return sym.Name
}

// IsReservedName returns true if name is one of the reserved lexemes, which
// user grammars may not re-purpose.
func IsReservedName(name string) bool {
	switch name {
	case RuleSeparator, EpsilonName, EOFName, StartName:
		return true
	}
	return false
}

// --- Errors ----------------------------------------------------------------

// GrammarError flags a rejected grammar, naming the offending production.
// All grammar-load failures are of this type: malformed productions, reserved
// name collisions, quoted/unquoted name clashes and undefined non-terminals.
type GrammarError struct {
	Production string // the production the error was detected in, if any
	Reason     string
}

func (e *GrammarError) Error() string {
	if e.Production == "" {
		return fmt.Sprintf("invalid grammar: %s", e.Reason)
	}
	return fmt.Sprintf("invalid production %q: %s", e.Production, e.Reason)
}

// Grammarf creates a GrammarError for a production with a formatted reason.
func Grammarf(production string, format string, args ...interface{}) *GrammarError {
	return &GrammarError{
		Production: production,
		Reason:     fmt.Sprintf(format, args...),
	}
}
