package lr

import (
	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr/iteratable"
)

// === Closure and Goto-Set Operations =======================================

// Refer to the Dragon book, section 4.7.2: construction of LR(1) item sets.

// closure computes the closure of single items, usually the kernel seed
// [S' → ·S, $].
func (ga *LRAnalysis) closure(items ...Item) *iteratable.Set {
	S := newItemSet()
	for _, i := range items {
		S.Add(i)
	}
	return ga.closureSet(S)
}

// closureSet computes the closure of an item set: for every item
// [A → α·Bβ, a] with B non-terminal, every production B → γ and every
// terminal b ∈ FIRST(βa), the item [B → ·γ, b] is added. Newly inserted
// items queue up behind the iteration cursor, so the set is its own
// worklist; termination follows from the finiteness of the item space.
func (ga *LRAnalysis) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		B := item.PeekSymbol() // get symbol B after dot
		if B == nil || !B.IsNonTerminal() {
			continue
		}
		lookaheads := ga.firstOfBeta(item.Beta(), item.Lookahead())
		for _, r := range ga.g.FindNonTermRules(B) {
			for _, b := range lookaheads {
				C.Add(mkItem(r, 0, b))
			}
		}
	}
	return C
}

// gotoSet advances every item of a closure which has A right after the dot.
// The result is the kernel of GOTO(closure, A).
func (ga *LRAnalysis) gotoSet(closure *iteratable.Set, A *lrgen.Symbol) *iteratable.Set {
	// for every item in closure C
	// if item in C:  N → ... ·A ...
	//     advance N → ... A· ...
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

// gotoSetClosure computes GOTO(I, A): the closure of the advanced kernel.
// The result is empty iff no item of I has A right after its dot.
func (ga *LRAnalysis) gotoSetClosure(I *iteratable.Set, A *lrgen.Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(I, A)
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(I), A, itemSetString(gclosure))
	return gclosure
}
