/*
Package lr implements the construction of canonical LR(1) parse tables.

Building a Grammar

Grammars are specified as lists of production strings. Clients add
productions to a grammar builder object. Terminals are single-quoted,
non-terminals are bare names, and a tilde denotes an empty RHS.

Example:

    b := lr.NewGrammarBuilder("G")
    b.Prod("E -> T X")
    b.Prod("X -> '+' T X")
    b.Prod("X -> ~")
    b.Prod("T -> 'a'")
    g, err := b.Grammar()

The builder augments the grammar with a start rule S' → E at serial 0 and
recognizes the end-of-input marker '$' as a terminal.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST sets
for all grammar symbols, iterated to a fixed point so that left recursion
through nullable non-terminals is safe.

    ga, err := lr.Analysis(g)
    first := ga.First(g.Symbol("E"))   // FIRST-set for non-terminal E

Table Construction

Using grammar analysis as input, the canonical collection of LR(1) item
sets is built: a characteristic finite state machine (CFSM), where every
state is a canonically ordered set of items [A → α·β, a]. States are
deduplicated by a content hash over their items, and state numbers are
assigned in first-discovery order with a stable iteration order over the
grammar's vocabulary, so state numbering is reproducible across runs.
From the CFSM, ACTION and GOTO tables are filled; shift/reduce and
reduce/reduce conflicts are detected and collected rather than silently
overwritten.

    lrgen := lr.NewTableGenerator(ga)
    if err := lrgen.CreateTables(); err != nil { ... }
    if lrgen.HasConflicts { ... lrgen.Conflicts() ... }
    lrgen.WriteTable(w)                // text emission, CSV-like

The CFSM is not thrown away, but made available to the client. This is
intended for debugging purposes; it can be exported to Graphviz's
Dot-format.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.lr")
}
