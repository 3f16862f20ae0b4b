package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr/iteratable"
)

// Item is an LR(1) configuration [A → α·β, a]: a rule with a dot marking
// progress and a one-token lookahead. Items are value objects; two items are
// equal iff rule, dot position and lookahead are equal. Symbols are interned
// per grammar, so Go equality on the struct is structural equality.
type Item struct {
	rule *Rule
	dot  int
	la   *lrgen.Symbol // a terminal or the end-of-input marker
}

// StartItem returns the seed item [S' → ·S, $] for an augmented grammar.
func StartItem(g *Grammar) Item {
	return Item{rule: g.Rule(0), dot: 0, la: g.EOF()}
}

func mkItem(r *Rule, dot int, la *lrgen.Symbol) Item {
	return Item{rule: r, dot: dot, la: la}
}

// Rule returns the rule this item is a configuration of.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position, in [0, len(RHS)].
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal.
func (i Item) Lookahead() *lrgen.Symbol {
	return i.la
}

// PeekSymbol returns the symbol right after the dot, or nil if the item is
// reducing.
func (i Item) PeekSymbol() *lrgen.Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Beta returns the symbols strictly after the symbol after the dot: for
// [A → α·Xβ, a] it returns β.
func (i Item) Beta() []*lrgen.Symbol {
	if i.dot+1 >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot+1:]
}

// Advance returns the item with the dot moved one symbol to the right.
// Advancing a reducing item returns the item unchanged.
func (i Item) Advance() Item {
	if i.dot < len(i.rule.rhs) {
		i.dot++
	}
	return i
}

// IsReducing is true when the dot has passed the end of the RHS.
func (i Item) IsReducing() bool {
	return i.dot >= len(i.rule.rhs)
}

// IsAugmented is true for configurations of the augmented start rule.
func (i Item) IsAugmented() bool {
	return i.rule.Serial == 0
}

func (i Item) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" " + lrgen.RuleSeparator)
	for k, sym := range i.rule.rhs {
		b.WriteString(" ")
		if k == i.dot {
			b.WriteString(".")
		}
		b.WriteString(sym.Name)
	}
	if i.IsReducing() {
		b.WriteString(" .")
	}
	b.WriteString(", ")
	b.WriteString(i.la.Name)
	b.WriteString("]")
	return b.String()
}

// less is the canonical item order: lexicographic on (serial, dot,
// lookahead name).
func (i Item) less(j Item) bool {
	if i.rule.Serial != j.rule.Serial {
		return i.rule.Serial < j.rule.Serial
	}
	if i.dot != j.dot {
		return i.dot < j.dot
	}
	return i.la.Name < j.la.Name
}

// --- Item sets -------------------------------------------------------------

// Item sets are iteratable sets of Item values: pending items of a closure
// in progress sit behind the set's iteration cursor, which makes the set its
// own worklist.

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(0)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

// sortedItems returns the items of a set in canonical order.
func sortedItems(S *iteratable.Set) []Item {
	items := make([]Item, 0, S.Size())
	for _, x := range S.Values() {
		items = append(items, asItem(x))
	}
	sort.Slice(items, func(a, b int) bool {
		return items[a].less(items[b])
	})
	return items
}

// itemKey is the structural hash key of an item: no symbol name delimiters
// which could collide, just the three defining fields.
type itemKey struct {
	Serial    int
	Dot       int
	Lookahead string
}

// fingerprint computes a content hash over the canonical form of an item
// set. Two sets with the same members have the same fingerprint, regardless
// of insertion order.
func fingerprint(S *iteratable.Set) string {
	items := sortedItems(S)
	keys := make([]itemKey, len(items))
	for k, item := range items {
		keys[k] = itemKey{
			Serial:    item.rule.Serial,
			Dot:       item.dot,
			Lookahead: item.la.Name,
		}
	}
	return fmt.Sprintf("%x", structhash.Sha1(keys, 1))
}

// itemSetString pretty-prints an item set in canonical order.
func itemSetString(S *iteratable.Set) string {
	var b strings.Builder
	b.WriteString("{")
	for k, item := range sortedItems(S) {
		if k > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString("}")
	return b.String()
}

// Dump logs the items of a set (for debugging).
func Dump(S *iteratable.Set) {
	for k, item := range sortedItems(S) {
		tracer().Debugf("    #%d %s", k, item)
	}
}
