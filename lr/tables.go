package lr

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr/iteratable"
	"github.com/npillmayer/lrgen/lr/sparse"
)

// Actions for parser action tables.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar: a canonical set of
// LR(1) configuration items, identified by a stable serial ID.
type CFSMState struct {
	ID     int             // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	Accept bool            // is this an accepting state?
}

// CFSM edge between 2 states, directed and with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *lrgen.Symbol
}

// Items returns the configuration items of the state in canonical order.
func (s *CFSMState) Items() []Item {
	return sortedItems(s.items)
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// containsCompletedStartRule checks for the configuration [S' → S·, $].
func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.IsAugmented() && i.IsReducing() {
			return true
		}
	}
	return false
}

// Create a state from an item set
func state(id int, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

// Create an edge
func edge(from, to *CFSMState, label *lrgen.Symbol) *cfsmEdge {
	return &cfsmEdge{
		from:  from,
		to:    to,
		label: label,
	}
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// A transition of the CFSM: (state, symbol) → state.
type transition struct {
	from  int
	label *lrgen.Symbol
}

// CFSM is the characteristic finite state machine for an LR(1) grammar,
// i.e. the canonical collection of LR(1) item sets together with the GOTO
// transitions between them. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some
// methods defined on it, e.g, for debugging purposes.
type CFSM struct {
	g           *Grammar                  // this CFSM is for Grammar g
	states      *treeset.Set              // all the states, sorted by ID
	edges       *arraylist.List           // all the edges between states
	byHash      map[string]*CFSMState     // canonical content hash → state
	transitions map[transition]*CFSMState // (state, symbol) → state
	S0          *CFSMState                // start state
	cfsmIds     int                       // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.byHash = map[string]*CFSMState{}
	c.transitions = map[transition]*CFSMState{}
	return c
}

// Add a state to the CFSM, unless an equal state is already present.
// Equality is content-based: the fingerprint over the canonically ordered
// item set. Returns the state and whether it was newly created.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool) {
	fp := fingerprint(iset)
	if s, ok := c.byHash[fp]; ok {
		return s, false
	}
	s := state(c.cfsmIds, iset)
	c.cfsmIds++
	c.states.Add(s)
	c.byHash[fp] = s
	return s, true
}

// Find a CFSM state by the contained item set, or nil.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	return c.byHash[fingerprint(iset)]
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *lrgen.Symbol) *cfsmEdge {
	e := edge(s0, s1, sym)
	c.edges.Add(e)
	c.transitions[transition{from: s0.ID, label: sym}] = s1
	return e
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, in state-index order.
func (c *CFSM) States() []*CFSMState {
	values := c.states.Values()
	states := make([]*CFSMState, len(values))
	for i, x := range values {
		states[i] = x.(*CFSMState)
	}
	return states
}

// Transition returns the state reached from a state by shifting a symbol,
// or nil if the CFSM has no such transition.
func (c *CFSM) Transition(fromID int, sym *lrgen.Symbol) *CFSMState {
	return c.transitions[transition{from: fromID, label: sym}]
}

// AcceptingStates returns the IDs of all accepting states. For an LR(1)
// grammar this is the single state containing [S' → S·, $].
func (c *CFSM) AcceptingStates() []int {
	var acc []int
	for _, s := range c.States() {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

// === Table Generation ======================================================

// Conflict records a parse-table conflict: two different actions competing
// for the same (state, terminal) cell. The first action encountered stays in
// the table; both are reported.
type Conflict struct {
	State    int
	Symbol   *lrgen.Symbol
	Existing string // description of the action occupying the cell
	Incoming string // description of the action which lost the cell
}

// IsShiftReduce distinguishes shift/reduce from reduce/reduce conflicts.
func (c *Conflict) IsShiftReduce() bool {
	return c.Existing == "shift" || c.Incoming == "shift"
}

func (c *Conflict) String() string {
	kind := "reduce/reduce"
	if c.IsShiftReduce() {
		kind = "shift/reduce"
	}
	return fmt.Sprintf("%s conflict in state %d at %s: %s vs %s",
		kind, c.State, c.Symbol, c.Existing, c.Incoming)
}

// TableGenerator is a generator object to construct LR(1) parser tables.
// Clients usually create a Grammar G, then an LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and the parser tables for an LR(1)-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *sparse.Matrix
	actiontable  *sparse.Matrix
	columns      []*lrgen.Symbol
	colno        map[*lrgen.Symbol]int
	termCount    int
	conflicts    []*Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed)
// grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	return &TableGenerator{
		g:     ga.Grammar(),
		ga:    ga,
		colno: map[*lrgen.Symbol]int{},
	}
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call CreateTables() beforehand, but it is possible
// to call CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (tg *TableGenerator) CFSM() *CFSM {
	if tg.dfa == nil {
		tg.dfa = tg.buildCFSM()
	}
	return tg.dfa
}

// Columns returns the column layout of the parse table: all terminals first
// (the ACTION region, end-of-input marker included), then the non-terminals
// (the GOTO region). The augmented start symbol has no column. The layout
// order is the symbols' order of first appearance in the grammar.
func (tg *TableGenerator) Columns() []*lrgen.Symbol {
	return tg.columns
}

// TerminalCount returns the number of ACTION columns.
func (tg *TableGenerator) TerminalCount() int {
	return tg.termCount
}

// Conflicts returns all conflicts detected during table construction.
func (tg *TableGenerator) Conflicts() []*Conflict {
	return tg.conflicts
}

// GotoTable returns the GOTO table. The tables have to be built by calling
// CreateTables() previously. Terminal columns hold the shift targets,
// non-terminal columns the goto targets.
func (tg *TableGenerator) GotoTable() *sparse.Matrix {
	if tg.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return tg.gototable
}

// ActionTable returns the ACTION table. The tables have to be built by
// calling CreateTables() previously.
func (tg *TableGenerator) ActionTable() *sparse.Matrix {
	if tg.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return tg.actiontable
}

// CreateTables creates the CFSM and the ACTION and GOTO tables for an LR(1)
// parser. Conflicts do not abort the construction; they are collected and
// available from Conflicts() afterwards, with the first action winning the
// cell. An error signals a broken invariant of the construction itself.
func (tg *TableGenerator) CreateTables() error {
	tg.dfa = tg.buildCFSM()
	tg.buildColumns()
	statescnt := tg.dfa.Size()
	tracer().Infof("tables of size %d x %d", statescnt, len(tg.columns))
	tg.gototable = sparse.NewMatrix(statescnt, len(tg.columns), sparse.DefaultNullValue)
	tg.actiontable = sparse.NewMatrix(statescnt, len(tg.columns), sparse.DefaultNullValue)
	tg.buildGotoTable()
	err := tg.buildActionTable()
	tg.HasConflicts = len(tg.conflicts) > 0
	return err
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are numbered in first-discovery order; the iteration over the
// grammar's vocabulary is the stable order of first appearance, so the
// numbering is reproducible.
func (tg *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := tg.g
	cfsm := emptyCFSM(G)
	closure0 := tg.ga.closure(StartItem(G))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	queue := []*CFSMState{cfsm.S0}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		G.EachSymbol(func(A *lrgen.Symbol) interface{} {
			gotoset := tg.ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				return nil
			}
			snew, isnew := cfsm.addState(gotoset)
			if isnew {
				if snew.containsCompletedStartRule() {
					snew.Accept = true
				}
				queue = append(queue, snew)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
			return nil
		})
	}
	return cfsm
}

// BuildGotoTable fills the GOTO table from the edges of the CFSM. Every
// recorded transition gets an entry, terminal transitions included: shift
// actions read their target state from here.
func (tg *TableGenerator) buildGotoTable() {
	it := tg.dfa.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		col, ok := tg.colno[e.label]
		if !ok { // only the augmented start symbol has no column
			continue
		}
		tg.gototable.Set(e.from.ID, col, int32(e.to.ID))
	}
}

// For building the ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the configuration items within a state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the complete RHS of its rule, we produce
// a reduce entry at the item's lookahead, or the accept entry for the
// completed start rule.
//
// Shift entries are represented as -1, accept as -2. Reduce entries are
// encoded as the serial no. of the grammar rule to reduce. Reducing by the
// start rule does not occur; acceptance takes its place.
func (tg *TableGenerator) buildActionTable() error {
	for _, state := range tg.dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items() {
			tracer().Debugf("item in s%d = %v", state.ID, i)
			A := i.PeekSymbol()
			if A == nil { // dot is behind the RHS
				if i.IsAugmented() { // [S' → S·, $]
					tg.setAction(state, tg.g.EOF(), AcceptAction)
				} else {
					tg.setAction(state, i.Lookahead(), int32(i.Rule().Serial))
				}
				continue
			}
			if tg.dfa.Transition(state.ID, A) == nil {
				return fmt.Errorf("internal error: no transition recorded for state %d on %s",
					state.ID, A)
			}
			if A.IsTerminal() { // create a shift entry
				tg.setAction(state, A, ShiftAction)
			} // non-terminal transitions live in the GOTO table only
		}
	}
	return nil
}

// setAction enters an action into a cell of the ACTION table. Overwriting a
// cell with a different action is a conflict: the cell keeps its first
// action and the conflict is recorded.
func (tg *TableGenerator) setAction(s *CFSMState, sym *lrgen.Symbol, val int32) {
	col := tg.colno[sym]
	old, old2 := tg.actiontable.Values(s.ID, col)
	if old == tg.actiontable.NullValue() {
		tg.actiontable.Set(s.ID, col, val)
		return
	}
	if old == val || old2 == val {
		tracer().Debugf("relax, double action entry at (%d,%s)", s.ID, sym)
		return
	}
	tg.actiontable.Add(s.ID, col, val)
	tg.conflicts = append(tg.conflicts, &Conflict{
		State:    s.ID,
		Symbol:   sym,
		Existing: tg.describeAction(old),
		Incoming: tg.describeAction(val),
	})
}

// describeAction is a short helper to stringify an action table entry.
func (tg *TableGenerator) describeAction(v int32) string {
	switch {
	case v == AcceptAction:
		return "accept"
	case v == ShiftAction:
		return "shift"
	default:
		return "reduce " + tg.g.Rule(int(v)).Text()
	}
}

// buildColumns assigns table columns: terminals occupy the first block
// (ACTION), non-terminals the second block (GOTO). The augmented start
// symbol never appears on any RHS and gets no column.
func (tg *TableGenerator) buildColumns() {
	for _, t := range tg.g.Terminals() {
		tg.colno[t] = len(tg.columns)
		tg.columns = append(tg.columns, t)
	}
	tg.termCount = len(tg.columns)
	for _, n := range tg.g.NonTerminals() {
		if n.Name == lrgen.StartName {
			continue
		}
		tg.colno[n] = len(tg.columns)
		tg.columns = append(tg.columns, n)
	}
}
