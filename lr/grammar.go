package lr

import (
	"strings"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr/scanner"
)

// Rule is a grammar production (LHS, RHS). The RHS of an empty (epsilon)
// production has length 0. Rules are numbered by insertion order; after
// augmentation the rule at serial 0 is S' → S.
type Rule struct {
	Serial int           // order of appearance in the grammar
	LHS    *lrgen.Symbol // a non-terminal
	rhs    []*lrgen.Symbol
	text   string // the literal production text this rule was read from
}

// RHS returns the right-hand side of the rule. Clients must not modify the
// returned slice.
func (r *Rule) RHS() []*lrgen.Symbol {
	return r.rhs
}

// Text returns the literal production text, e.g. "S -> A 'c'". Reduce cells
// of the emitted parse table carry this text.
func (r *Rule) Text() string {
	return r.text
}

// IsEpsRule is true for empty productions.
func (r *Rule) IsEpsRule() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	rhs := make([]string, len(r.rhs))
	for i, sym := range r.rhs {
		rhs[i] = sym.Name
	}
	return r.LHS.Name + " " + lrgen.RuleSeparator + " " + strings.Join(rhs, " ")
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an ordered sequence of rules together with the interned symbols
// occurring in them. Create one with a GrammarBuilder. All structures are
// frozen after the builder returns; the symbol iteration order is the order
// of first appearance and is stable across runs.
type Grammar struct {
	Name    string
	rules   []*Rule
	symbols map[string]*lrgen.Symbol
	symlist []*lrgen.Symbol // insertion order, epsilon excluded
	eof     *lrgen.Symbol
}

// Size returns the number of rules, the augmented rule included.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns the rule at a serial position.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Symbol returns the interned symbol for a name, or nil if the grammar does
// not contain it. Terminal names include the quotes.
func (g *Grammar) Symbol(name string) *lrgen.Symbol {
	return g.symbols[name]
}

// EOF returns the end-of-input terminal.
func (g *Grammar) EOF() *lrgen.Symbol {
	return g.eof
}

// EachSymbol iterates over all symbols of the grammar, in order of first
// appearance. The mapper function may return a non-nil value to stop the
// iteration, and that value is returned.
func (g *Grammar) EachSymbol(f func(sym *lrgen.Symbol) interface{}) interface{} {
	for _, sym := range g.symlist {
		if r := f(sym); r != nil {
			return r
		}
	}
	return nil
}

// Terminals returns the terminals of the grammar in order of first
// appearance; the end-of-input marker comes last.
func (g *Grammar) Terminals() []*lrgen.Symbol {
	var terms []*lrgen.Symbol
	for _, sym := range g.symlist {
		if sym.IsTerminal() {
			terms = append(terms, sym)
		}
	}
	return terms
}

// NonTerminals returns the non-terminals of the grammar in order of first
// appearance, the augmented start symbol included.
func (g *Grammar) NonTerminals() []*lrgen.Symbol {
	var nonterms []*lrgen.Symbol
	for _, sym := range g.symlist {
		if sym.IsNonTerminal() {
			nonterms = append(nonterms, sym)
		}
	}
	return nonterms
}

// FindNonTermRules returns all rules with a given LHS, in serial order.
func (g *Grammar) FindNonTermRules(lhs *lrgen.Symbol) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == lhs {
			rules = append(rules, r)
		}
	}
	return rules
}

// IsAugmented is true as soon as rule 0 is the augmented start rule.
func (g *Grammar) IsAugmented() bool {
	return len(g.rules) > 0 && g.rules[0].LHS.Name == lrgen.StartName
}

// Augment inserts the start rule S' → S at serial 0, where S is the LHS of
// the first rule, and registers the end-of-input marker as a terminal.
// Augmenting an already augmented grammar is a no-op.
func (g *Grammar) Augment() {
	if g.IsAugmented() {
		return
	}
	start := g.rules[0].LHS
	sprime := g.intern(lrgen.StartName)
	g.eof = g.intern(lrgen.EOFName)
	aug := &Rule{
		LHS:  sprime,
		rhs:  []*lrgen.Symbol{start},
		text: lrgen.StartName + " " + lrgen.RuleSeparator + " " + start.Name,
	}
	g.rules = append([]*Rule{aug}, g.rules...)
	for i, r := range g.rules {
		r.Serial = i
	}
}

// Dump logs the grammar's rules (for debugging).
func (g *Grammar) Dump() {
	tracer().Debugf("grammar %s:", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
}

// intern returns the symbol for a name, creating and registering it on first
// use. Epsilon is never registered as a grammar symbol.
func (g *Grammar) intern(name string) *lrgen.Symbol {
	if sym, ok := g.symbols[name]; ok {
		return sym
	}
	sym := &lrgen.Symbol{Name: name}
	g.symbols[name] = sym
	if !sym.IsEpsilon() {
		g.symlist = append(g.symlist, sym)
	}
	return sym
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder build a Grammar from production strings. Use is as follows:
//
//    b := NewGrammarBuilder("G")
//    b.Prod("S -> F")
//    b.Prod("S -> '(' S '+' F ')'")
//    b.Prod("F -> 'a'")
//    g, err := b.Grammar()
//
// The first production is the start rule. Grammar() validates and augments
// the grammar; the first error encountered is returned from Grammar().
type GrammarBuilder struct {
	g   *Grammar
	ps  *scanner.ProdScanner
	err error
}

// NewGrammarBuilder creates a builder for a named grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	ps, err := scanner.New()
	return &GrammarBuilder{
		g: &Grammar{
			Name:    name,
			symbols: map[string]*lrgen.Symbol{},
		},
		ps:  ps,
		err: err,
	}
}

// Prod adds a production string to the grammar. The first error encountered
// sticks and is returned from Grammar().
func (b *GrammarBuilder) Prod(production string) *GrammarBuilder {
	if b.err != nil {
		return b
	}
	b.err = b.addProduction(production)
	return b
}

// Grammar validates the collected productions, augments the grammar and
// returns it.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.g.rules) == 0 {
		return nil, &lrgen.GrammarError{Reason: "grammar has no productions"}
	}
	b.g.Augment()
	return b.g, nil
}

func (b *GrammarBuilder) addProduction(production string) error {
	lhsFrag, rhsFrag, err := scanner.SplitProduction(production)
	if err != nil {
		return err
	}
	lhsToks, err := b.ps.SymbolsOf(lhsFrag)
	if err != nil {
		return err
	}
	if len(lhsToks) != 1 {
		return lrgen.Grammarf(production, "LHS must be a single symbol")
	}
	if lhsToks[0].Type != scanner.SymbolType {
		return lrgen.Grammarf(production, "LHS must be a non-terminal")
	}
	lhs, err := b.symbolFor(production, lhsToks[0])
	if err != nil {
		return err
	}
	rhsToks, err := b.ps.SymbolsOf(rhsFrag)
	if err != nil {
		return err
	}
	if len(rhsToks) == 0 {
		return lrgen.Grammarf(production, "RHS is empty; use %q for an empty production",
			lrgen.EpsilonName)
	}
	var rhs []*lrgen.Symbol
	for _, tok := range rhsToks {
		if tok.Type == scanner.EpsilonType {
			if len(rhsToks) != 1 {
				return lrgen.Grammarf(production,
					"epsilon must be the sole RHS symbol")
			}
			break // empty RHS
		}
		sym, err := b.symbolFor(production, tok)
		if err != nil {
			return err
		}
		rhs = append(rhs, sym)
	}
	b.g.rules = append(b.g.rules, &Rule{
		Serial: len(b.g.rules),
		LHS:    lhs,
		rhs:    rhs,
		text:   strings.TrimSpace(production),
	})
	return nil
}

// symbolFor interns a scanned symbol token, rejecting reserved names and
// clashes between a quoted and an unquoted form of the same name.
func (b *GrammarBuilder) symbolFor(production string, tok scanner.Token) (*lrgen.Symbol, error) {
	if lrgen.IsReservedName(tok.Lexeme) {
		return nil, lrgen.Grammarf(production, "%q is a reserved name", tok.Lexeme)
	}
	if tok.Type == scanner.TerminalType {
		bare := strings.Trim(tok.Lexeme, "'")
		if _, ok := b.g.symbols[bare]; ok {
			return nil, lrgen.Grammarf(production,
				"terminal %s clashes with non-terminal %s", tok.Lexeme, bare)
		}
	} else {
		if _, ok := b.g.symbols["'"+tok.Lexeme+"'"]; ok {
			return nil, lrgen.Grammarf(production,
				"non-terminal %s clashes with terminal '%s'", tok.Lexeme, tok.Lexeme)
		}
	}
	return b.g.intern(tok.Lexeme), nil
}
