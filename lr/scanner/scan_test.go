package scanner

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSplitProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	lhs, rhs, err := SplitProduction("S -> '(' S '+' F ')'")
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if lhs != "S" || rhs != "'(' S '+' F ')'" {
		t.Errorf("split wrong: %q / %q", lhs, rhs)
	}
	if _, _, err := SplitProduction("S F 'a'"); err == nil {
		t.Errorf("production without separator should be rejected")
	}
}

func TestSymbolsOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	ps, err := New()
	if err != nil {
		t.Fatalf("cannot create scanner: %v", err)
	}
	toks, err := ps.SymbolsOf("'(' S '+' F ')'")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %v", toks)
	}
	expected := []Token{
		{TerminalType, "'('"},
		{SymbolType, "S"},
		{TerminalType, "'+'"},
		{SymbolType, "F"},
		{TerminalType, "')'"},
	}
	for i, tok := range toks {
		if tok != expected[i] {
			t.Errorf("token %d: got %v, expected %v", i, tok, expected[i])
		}
	}
}

func TestSymbolsOfEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	ps, err := New()
	if err != nil {
		t.Fatalf("cannot create scanner: %v", err)
	}
	toks, err := ps.SymbolsOf("~")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(toks) != 1 || toks[0].Type != EpsilonType {
		t.Errorf("expected a single epsilon token, got %v", toks)
	}
}

func TestSymbolsOfMultiCharTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	ps, err := New()
	if err != nil {
		t.Fatalf("cannot create scanner: %v", err)
	}
	toks, err := ps.SymbolsOf("'if' Expr 'then' Stmt")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %v", toks)
	}
	if toks[0] != (Token{TerminalType, "'if'"}) {
		t.Errorf("quoted multi-char terminal distorted: %v", toks[0])
	}
	if toks[1] != (Token{SymbolType, "Expr"}) {
		t.Errorf("multi-char non-terminal distorted: %v", toks[1])
	}
}

func TestSymbolsOfRejectsStrayQuote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	ps, err := New()
	if err != nil {
		t.Fatalf("cannot create scanner: %v", err)
	}
	if _, err := ps.SymbolsOf("'a"); err == nil {
		t.Errorf("unterminated quote should be rejected")
	}
}
