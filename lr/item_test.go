package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestItemOperations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	g := buildGrammar(t, "G", "S -> A 'c'", "A -> 'a' 'b'")
	i := StartItem(g) // [S' → ·S, $]
	if i.PeekSymbol() == nil || i.PeekSymbol().Name != "S" {
		t.Errorf("start item should have S after the dot, has %v", i.PeekSymbol())
	}
	if !i.IsAugmented() || i.IsReducing() {
		t.Errorf("start item misclassified: %v", i)
	}
	if i.Lookahead() != g.EOF() {
		t.Errorf("start item lookahead should be $, is %v", i.Lookahead())
	}
	ii := i.Advance() // [S' → S·, $]
	if !ii.IsReducing() || ii.PeekSymbol() != nil {
		t.Errorf("advanced start item should be reducing, is %v", ii)
	}
	if ii.Advance() != ii {
		t.Errorf("advancing a reducing item should not move the dot")
	}
	//
	r := g.Rule(1) // S -> A 'c'
	j := mkItem(r, 0, g.EOF())
	if beta := j.Beta(); len(beta) != 1 || beta[0].Name != "'c'" {
		t.Errorf("beta of %v should be ['c'], is %v", j, beta)
	}
	if beta := j.Advance().Beta(); len(beta) != 0 {
		t.Errorf("beta of %v should be empty, is %v", j.Advance(), beta)
	}
}

func TestItemEquality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	g := buildGrammar(t, "G", "S -> A 'c'", "A -> 'a'")
	r := g.Rule(1)
	i1 := mkItem(r, 1, g.EOF())
	i2 := mkItem(r, 0, g.EOF()).Advance()
	if i1 != i2 {
		t.Errorf("items %v and %v should be equal", i1, i2)
	}
	S := newItemSet()
	S.Add(i1)
	if S.Add(i2) {
		t.Errorf("inserting an already contained item should be a no-op")
	}
}

func TestItemSetFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	g := buildGrammar(t, "G", "S -> A 'c'", "A -> 'a'")
	i1 := StartItem(g)
	i2 := mkItem(g.Rule(1), 0, g.EOF())
	i3 := mkItem(g.Rule(2), 0, g.Symbol("'c'"))
	S1, S2 := newItemSet(), newItemSet()
	S1.Add(i1)
	S1.Add(i2)
	S1.Add(i3)
	S2.Add(i3) // same members, different insertion order
	S2.Add(i1)
	S2.Add(i2)
	if fingerprint(S1) != fingerprint(S2) {
		t.Errorf("fingerprint should not depend on insertion order")
	}
	S2.Add(mkItem(g.Rule(2), 1, g.Symbol("'c'")))
	if fingerprint(S1) == fingerprint(S2) {
		t.Errorf("different item sets with equal fingerprints")
	}
}
