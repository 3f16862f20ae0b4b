/*
Package scanner tokenizes grammar production strings.

A production string has the shape

    LHS -> RHS

where RHS is a whitespace-separated sequence of symbols. Quoted terminals
(e.g. '+', 'IF') are preserved as single tokens, the tilde '~' denotes an
empty RHS. The scanner is backed by a lexmachine DFA.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"strings"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lrgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.scanner")
}

// Token types produced by the scanner.
const (
	SymbolType   = iota // bare symbol name, i.e. a non-terminal
	TerminalType        // quoted terminal, quotes included in the lexeme
	EpsilonType         // the epsilon marker
)

// Token is a symbol token within a production string.
type Token struct {
	Type   int
	Lexeme string
}

// ProdScanner tokenizes production fragments. Create one with New; the
// contained DFA is compiled once and may be re-used for any number of
// productions.
type ProdScanner struct {
	lexer *lexmachine.Lexer
}

// New creates a production scanner. It returns an error if compiling the
// DFA failed.
func New() (*ProdScanner, error) {
	ps := &ProdScanner{}
	ps.lexer = lexmachine.NewLexer()
	ps.lexer.Add([]byte(`( |\t)+`), skip)
	ps.lexer.Add([]byte(`'[^' \t]+'`), makeToken(TerminalType))
	ps.lexer.Add([]byte(`~`), makeToken(EpsilonType))
	ps.lexer.Add([]byte(`[^' \t~]+`), makeToken(SymbolType))
	if err := ps.lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return ps, nil
}

// SplitProduction splits a production string at the rule separator '->'.
// A production without separator is rejected.
func SplitProduction(production string) (string, string, error) {
	parts := strings.SplitN(production, lrgen.RuleSeparator, 2)
	if len(parts) != 2 {
		return "", "", lrgen.Grammarf(production, "missing %q separator",
			lrgen.RuleSeparator)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// SymbolsOf tokenizes a fragment of a production (the LHS or the RHS) into
// symbol tokens. Whitespace separates tokens and is discarded; quoted
// terminals are single tokens.
func (ps *ProdScanner) SymbolsOf(fragment string) ([]Token, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, nil
	}
	s, err := ps.lexer.Scanner([]byte(fragment))
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			return nil, lrgen.Grammarf(fragment, "cannot scan symbols: %v", err)
		}
		t := tok.(*lexmachine.Token)
		tracer().Debugf("scanned symbol %q (%d)", string(t.Lexeme), t.Type)
		tokens = append(tokens, Token{
			Type:   t.Type,
			Lexeme: string(t.Lexeme),
		})
	}
	return tokens, nil
}

// skip is a lexer action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a lexer action which wraps a scanned match into a token.
func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
