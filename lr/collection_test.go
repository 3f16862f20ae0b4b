package lr

import (
	"bytes"
	"testing"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestClosureFixpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	ga := analyse(t, "G1", "S -> F", "S -> '(' S '+' F ')'", "F -> 'a'")
	C := ga.closure(StartItem(ga.Grammar()))
	for _, x := range C.Values() {
		if !C.Contains(x) {
			t.Fatalf("closure does not contain its own item %v", x)
		}
	}
	CC := ga.closureSet(C)
	if fingerprint(C) != fingerprint(CC) {
		t.Errorf("closure(closure(I)) differs from closure(I)")
	}
	// I ⊆ closure(I)
	seed := newItemSet()
	seed.Add(StartItem(ga.Grammar()))
	if !CC.Contains(StartItem(ga.Grammar())) {
		t.Errorf("closure lost its kernel item")
	}
}

func TestClosureExpandsLookaheads(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	// Closure of [S' → ·S, $] for the textbook grammar: every C-production
	// gets the lookaheads FIRST(C $) = {'c', 'd'}.
	ga := analyse(t, "CC", "S -> C C", "C -> 'c' C", "C -> 'd'")
	g := ga.Grammar()
	C := ga.closure(StartItem(g))
	c, d := g.Symbol("'c'"), g.Symbol("'d'")
	for _, la := range []*lrgen.Symbol{c, d} {
		if !C.Contains(mkItem(g.Rule(2), 0, la)) {
			t.Errorf("closure misses [C -> .'c' C, %s]", la)
		}
		if !C.Contains(mkItem(g.Rule(3), 0, la)) {
			t.Errorf("closure misses [C -> .'d', %s]", la)
		}
	}
	if C.Contains(mkItem(g.Rule(2), 0, g.EOF())) {
		t.Errorf("closure of the start item must not reduce C at $ yet")
	}
	if C.Size() != 6 { // S'→·S | S→·CC | {C→·cC, C→·d} x {c, d}
		t.Errorf("closure should have 6 items, has %d", C.Size())
	}
}

func TestGotoCanonicalization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	ga := analyse(t, "CC", "S -> C C", "C -> 'c' C", "C -> 'd'")
	g := ga.Grammar()
	lrgen := NewTableGenerator(ga)
	cfsm := lrgen.CFSM()
	// recompute a goto set: its canonical form must resolve to the state
	// the builder recorded.
	c := g.Symbol("'c'")
	gotoset := ga.gotoSetClosure(cfsm.S0.items, c)
	s := cfsm.findStateByItems(gotoset)
	if s == nil {
		t.Fatalf("recomputed GOTO(I0,'c') is not a known state")
	}
	if got := cfsm.Transition(cfsm.S0.ID, c); got != s {
		t.Errorf("transition map and state index disagree: %v vs %v", got, s)
	}
	// a second computation must be equal in content
	if fingerprint(gotoset) != fingerprint(ga.gotoSetClosure(cfsm.S0.items, c)) {
		t.Errorf("GOTO is not deterministic")
	}
}

func TestCanonicalCollectionTextbook(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	// The classic textbook example: the canonical LR(1) collection for
	// S → CC, C → cC | d has exactly 10 states.
	lrgen := makeTables(t, "CC", "S -> C C", "C -> 'c' C", "C -> 'd'")
	cfsm := lrgen.CFSM()
	if cfsm.Size() != 10 {
		t.Errorf("canonical collection should have 10 states, has %d", cfsm.Size())
	}
	if lrgen.HasConflicts {
		t.Errorf("grammar CC should be conflict-free, got %v", lrgen.Conflicts())
	}
	// state IDs must be unique and contiguous
	seen := map[int]bool{}
	for _, s := range cfsm.States() {
		if seen[s.ID] {
			t.Errorf("duplicate state ID %d", s.ID)
		}
		seen[s.ID] = true
		if s.ID < 0 || s.ID >= cfsm.Size() {
			t.Errorf("state ID %d out of range", s.ID)
		}
	}
}

func TestStateUniqueness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	lrgen := makeTables(t, "CC", "S -> C C", "C -> 'c' C", "C -> 'd'")
	states := lrgen.CFSM().States()
	for i, s1 := range states {
		for _, s2 := range states[i+1:] {
			if fingerprint(s1.items) == fingerprint(s2.items) {
				t.Errorf("states %d and %d have equal item sets", s1.ID, s2.ID)
			}
		}
	}
}

func TestCollectionDistinguishesLookaheadContexts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	// LR(1) but not LALR(1): the reductions of A → ε and B → ε occur in
	// four distinct configurations, with the lookahead depending on the
	// context. LALR merging would collapse them; the canonical collection
	// must keep them apart.
	lrgen := makeTables(t, "G5",
		"S -> A 'a' A 'b'",
		"S -> B 'b' B 'a'",
		"A -> ~",
		"B -> ~")
	if lrgen.HasConflicts {
		t.Fatalf("grammar G5 should be conflict-free, got %v", lrgen.Conflicts())
	}
	g := lrgen.g
	type reduction struct {
		serial int
		la     string
	}
	where := map[reduction][]int{}
	for _, s := range lrgen.CFSM().States() {
		for _, i := range s.Items() {
			if i.IsReducing() && i.Rule().IsEpsRule() {
				key := reduction{i.Rule().Serial, i.Lookahead().Name}
				where[key] = append(where[key], s.ID)
			}
		}
	}
	A, B := g.Rule(3).Serial, g.Rule(4).Serial
	expected := []reduction{
		{A, "'a'"}, {A, "'b'"}, {B, "'a'"}, {B, "'b'"},
	}
	for _, red := range expected {
		if len(where[red]) == 0 {
			t.Errorf("no state reduces rule %d at %s", red.serial, red.la)
		}
	}
	if len(where) < 4 {
		t.Errorf("expected at least 4 distinct reducing configurations, got %d",
			len(where))
	}
	// the two A-contexts must live in different states
	if len(where[expected[0]]) == 1 && len(where[expected[1]]) == 1 &&
		where[expected[0]][0] == where[expected[1]][0] {
		t.Errorf("A-reductions at 'a' and 'b' collapsed into state %d",
			where[expected[0]][0])
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	// Two independent runs over the same grammar must emit bit-identical
	// tables.
	prods := []string{
		"E -> T X",
		"X -> '+' T X",
		"X -> ~",
		"T -> F Y",
		"Y -> '*' F Y",
		"Y -> ~",
		"F -> 'a'",
		"F -> '(' E ')'",
	}
	var out [2]bytes.Buffer
	for n := 0; n < 2; n++ {
		lrgen := makeTables(t, "G2", prods...)
		if err := lrgen.WriteTable(&out[n]); err != nil {
			t.Fatalf("cannot emit table: %v", err)
		}
	}
	if !bytes.Equal(out[0].Bytes(), out[1].Bytes()) {
		t.Errorf("two runs emitted different tables")
	}
}
