package lr

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// === Table emission ========================================================

// The parse table is emitted as line-oriented text. Line 1 is the column
// header in layout order: terminals with their quotes preserved, the
// end-of-input marker as $, then the bare non-terminals. Every following
// line holds one state, in state-index order, cells separated by comma and
// space. Cells are empty (error), s<j> (shift), r<production-text> (reduce),
// <j> (goto) or accept.

// WriteTable writes the ACTION/GOTO table to w. The tables have to be built
// by calling CreateTables() previously. Conflicted cells carry the first
// action entered.
func (tg *TableGenerator) WriteTable(w io.Writer) error {
	if tg.actiontable == nil {
		return fmt.Errorf("tables not yet created; call CreateTables() first")
	}
	header := make([]string, len(tg.columns))
	for j, sym := range tg.columns {
		header[j] = sym.Name
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, ",")); err != nil {
		return err
	}
	for _, state := range tg.dfa.States() {
		cells := make([]string, len(tg.columns))
		for j := range tg.columns {
			cell, err := tg.cellString(state.ID, j)
			if err != nil {
				return err
			}
			cells[j] = cell
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// cellString renders a single table cell.
func (tg *TableGenerator) cellString(stateID int, col int) (string, error) {
	if col >= tg.termCount { // GOTO region
		v := tg.gototable.Value(stateID, col)
		if v == tg.gototable.NullValue() {
			return "", nil
		}
		return strconv.Itoa(int(v)), nil
	}
	v := tg.actiontable.Value(stateID, col)
	switch {
	case v == tg.actiontable.NullValue():
		return "", nil
	case v == AcceptAction:
		return "accept", nil
	case v == ShiftAction:
		j := tg.gototable.Value(stateID, col)
		if j == tg.gototable.NullValue() {
			return "", fmt.Errorf("internal error: shift in state %d at %s has no target",
				stateID, tg.columns[col])
		}
		return "s" + strconv.Itoa(int(j)), nil
	default:
		return "r" + tg.g.Rule(int(v)).Text(), nil
	}
}

// TableAsHTML exports the ACTION/GOTO table in HTML-format, for debugging.
// Conflicted cells show both actions, separated by a slash.
func (tg *TableGenerator) TableAsHTML(w io.Writer) error {
	if tg.actiontable == nil {
		return fmt.Errorf("tables not yet created; call CreateTables() first")
	}
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("<p>parse table for grammar %s, %d states</p>\n",
		tg.g.Name, tg.dfa.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, sym := range tg.columns {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", htmlEscape(sym.Name)))
	}
	io.WriteString(w, "</tr>\n")
	for _, state := range tg.dfa.States() {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for j := range tg.columns {
			td, err := tg.cellString(state.ID, j)
			if err != nil {
				return err
			}
			if j < tg.termCount {
				if _, v2 := tg.actiontable.Values(state.ID, j); v2 != tg.actiontable.NullValue() {
					td = td + "/" + tg.describeAction(v2)
				}
			}
			if td == "" {
				td = "&nbsp;"
			} else {
				td = htmlEscape(td)
			}
			io.WriteString(w, "<td>"+td+"</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	_, err := io.WriteString(w, "</table></body></html>\n")
	return err
}

// === CFSM export ===========================================================

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format, given a filename.
func (c *CFSM) CFSM2GraphViz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create Dot file: %w", err)
	}
	defer f.Close()
	f.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		f.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s)))
	}
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		f.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n",
			e.from.ID, e.to.ID, dotEscape(e.label.Name)))
	}
	_, err = f.WriteString("}\n")
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

// forGraphviz renders the items of a state as lines of an Mrecord label.
func forGraphviz(s *CFSMState) string {
	var b strings.Builder
	for k, item := range s.Items() {
		if k > 0 {
			b.WriteString("\\n")
		}
		b.WriteString(dotEscape(item.String()))
	}
	return b.String()
}

var dotReplacer = strings.NewReplacer(
	"{", "\\{", "}", "\\}", "|", "\\|", "<", "\\<", ">", "\\>", "\"", "\\\"")

func dotEscape(s string) string {
	return dotReplacer.Replace(s)
}

var htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func htmlEscape(s string) string {
	return htmlReplacer.Replace(s)
}
