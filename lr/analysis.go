package lr

import (
	"sort"
	"strings"

	"github.com/npillmayer/lrgen"
)

// SymSet is a set of terminal symbols with an epsilon flag, as computed by
// the FIRST-set analysis. FIRST(γ) contains every terminal that can begin a
// string derivable from γ; the epsilon flag is set iff γ is nullable.
type SymSet struct {
	syms map[*lrgen.Symbol]struct{}
	eps  bool
}

func newSymSet() *SymSet {
	return &SymSet{syms: map[*lrgen.Symbol]struct{}{}}
}

func (set *SymSet) add(sym *lrgen.Symbol) bool {
	if _, ok := set.syms[sym]; ok {
		return false
	}
	set.syms[sym] = struct{}{}
	return true
}

func (set *SymSet) addEps() bool {
	if set.eps {
		return false
	}
	set.eps = true
	return true
}

// mergeExceptEps adds all symbols of other, leaving the epsilon flag alone.
func (set *SymSet) mergeExceptEps(other *SymSet) bool {
	if other == nil {
		return false
	}
	changed := false
	for sym := range other.syms {
		if set.add(sym) {
			changed = true
		}
	}
	return changed
}

// Size returns the number of terminals in the set, epsilon not counted.
func (set *SymSet) Size() int {
	return len(set.syms)
}

// Contains checks membership of a terminal, by name.
func (set *SymSet) Contains(name string) bool {
	for sym := range set.syms {
		if sym.Name == name {
			return true
		}
	}
	return false
}

// HasEpsilon is true iff the symbol string the set was computed for is
// nullable.
func (set *SymSet) HasEpsilon() bool {
	return set.eps
}

// Symbols returns the terminals of the set, sorted by name.
func (set *SymSet) Symbols() []*lrgen.Symbol {
	syms := make([]*lrgen.Symbol, 0, len(set.syms))
	for sym := range set.syms {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Name < syms[j].Name
	})
	return syms
}

func (set *SymSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, sym := range set.Symbols() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.Name)
	}
	if set.eps {
		if len(set.syms) > 0 {
			b.WriteString(" ")
		}
		b.WriteString(lrgen.EpsilonName)
	}
	b.WriteString("}")
	return b.String()
}

// --- Grammar analysis ------------------------------------------------------

// LRAnalysis is the static analysis of a grammar: the FIRST sets of all of
// its symbols. It is the prerequisite for closure computation and table
// generation. Once created, an LRAnalysis is read-only.
type LRAnalysis struct {
	g     *Grammar
	first map[*lrgen.Symbol]*SymSet
}

// Analysis analyses an augmented grammar and computes the FIRST sets for
// all of its symbols. A non-terminal which occurs on some RHS but has no
// productions is reported as an error.
func Analysis(g *Grammar) (*LRAnalysis, error) {
	if !g.IsAugmented() {
		g.Augment()
	}
	if err := checkDefined(g); err != nil {
		return nil, err
	}
	ga := &LRAnalysis{
		g:     g,
		first: map[*lrgen.Symbol]*SymSet{},
	}
	g.EachSymbol(func(sym *lrgen.Symbol) interface{} {
		set := newSymSet()
		if sym.IsTerminal() {
			set.add(sym) // FIRST(t) = {t}, the end-of-input marker included
		}
		ga.first[sym] = set
		return nil
	})
	// Iterate to a fixed point. A single top-down pass would do for most
	// grammars, but left recursion through nullable non-terminals needs the
	// outer loop to converge.
	for {
		changed := false
		for _, r := range g.rules {
			acc := ga.first[r.LHS]
			if ruleFirst(ga, acc, r) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	tracer().Debugf("FIRST sets of grammar %s:", g.Name)
	g.EachSymbol(func(sym *lrgen.Symbol) interface{} {
		tracer().Debugf("    FIRST(%s) = %s", sym, ga.first[sym])
		return nil
	})
	return ga, nil
}

// ruleFirst merges the FIRST contribution of one rule into the accumulated
// FIRST set of its LHS. It returns true if the set changed.
func ruleFirst(ga *LRAnalysis, acc *SymSet, r *Rule) bool {
	if r.IsEpsRule() {
		return acc.addEps()
	}
	changed := false
	for _, sym := range r.rhs {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed
		}
		e := ga.first[sym]
		if acc.mergeExceptEps(e) {
			changed = true
		}
		if !e.HasEpsilon() {
			return changed
		}
	}
	if acc.addEps() {
		changed = true
	}
	return changed
}

// checkDefined verifies that every non-terminal occurring on some RHS has at
// least one production.
func checkDefined(g *Grammar) error {
	for _, r := range g.rules {
		for _, sym := range r.rhs {
			if sym.IsNonTerminal() && len(g.FindNonTermRules(sym)) == 0 {
				return lrgen.Grammarf(r.Text(),
					"non-terminal %s has no productions", sym)
			}
		}
	}
	return nil
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(sym) for a grammar symbol.
func (ga *LRAnalysis) First(sym *lrgen.Symbol) *SymSet {
	return ga.first[sym]
}

// FirstOfSeq computes FIRST over a string of symbols: the union of the
// FIRST sets of a longest nullable prefix and the set of the symbol ending
// it; epsilon is included iff the whole string is nullable. FIRST of the
// empty string is {ε}.
func (ga *LRAnalysis) FirstOfSeq(gamma []*lrgen.Symbol) *SymSet {
	set := newSymSet()
	for _, sym := range gamma {
		e := ga.first[sym]
		if e == nil {
			continue // not a grammar symbol; nothing to contribute
		}
		set.mergeExceptEps(e)
		if !e.HasEpsilon() {
			return set
		}
	}
	set.addEps()
	return set
}

// firstOfBeta computes FIRST(β·a) for closure expansion: the lookaheads for
// the items derived from an item [A → α·Bβ, a]. The result is sorted and
// never contains epsilon, as a is a terminal.
func (ga *LRAnalysis) firstOfBeta(beta []*lrgen.Symbol, la *lrgen.Symbol) []*lrgen.Symbol {
	gamma := make([]*lrgen.Symbol, 0, len(beta)+1)
	gamma = append(gamma, beta...)
	gamma = append(gamma, la)
	return ga.FirstOfSeq(gamma).Symbols()
}
