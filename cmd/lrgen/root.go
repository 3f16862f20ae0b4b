package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/lrgen/lr"
)

// tracer traces with key 'lrgen.cli'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.cli")
}

var rootFlags = struct {
	grammar *string
	trace   *string
	dot     *string
	html    *string
}{}

var rootCmd = &cobra.Command{
	Use:   "lrgen [output-file]",
	Short: "Generate a canonical LR(1) parse table from a grammar",
	Long: `lrgen constructs the canonical collection of LR(1) item sets for one of
its built-in grammars and writes the ACTION/GOTO parse table to the given
output file. Shift/reduce and reduce/reduce conflicts are reported.`,
	Example:       `  lrgen -g expr table.csv`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.grammar = rootCmd.Flags().StringP("grammar", "g", "expr",
		"name of the built-in grammar to generate tables for")
	rootFlags.trace = rootCmd.Flags().StringP("trace", "t", "Error",
		"trace level [Debug|Info|Error]")
	rootFlags.dot = rootCmd.Flags().String("dot", "",
		"export the CFSM to this file in Graphviz Dot format")
	rootFlags.html = rootCmd.Flags().String("html", "",
		"export the parse table to this file as HTML")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(traceLevel(*rootFlags.trace))
	if len(args) == 0 {
		// No output path given: just print usage. Exit code stays 0.
		return cmd.Usage()
	}
	prods, ok := grammars[*rootFlags.grammar]
	if !ok {
		return fmt.Errorf("no built-in grammar %q; have %s",
			*rootFlags.grammar, strings.Join(grammarNames(), ", "))
	}
	b := lr.NewGrammarBuilder(*rootFlags.grammar)
	for _, p := range prods {
		b.Prod(p)
	}
	g, err := b.Grammar()
	if err != nil {
		return err
	}
	g.Dump()
	ga, err := lr.Analysis(g)
	if err != nil {
		return err
	}
	lrgen := lr.NewTableGenerator(ga)
	if err := lrgen.CreateTables(); err != nil {
		return err
	}
	if err := writeTableFile(lrgen, args[0]); err != nil {
		return err
	}
	pterm.Success.Printf("wrote parse table %s: %d states, %d columns\n",
		args[0], lrgen.CFSM().Size(), len(lrgen.Columns()))
	if *rootFlags.dot != "" {
		if err := lrgen.CFSM().CFSM2GraphViz(*rootFlags.dot); err != nil {
			return err
		}
	}
	if *rootFlags.html != "" {
		if err := writeHTMLFile(lrgen, *rootFlags.html); err != nil {
			return err
		}
	}
	if lrgen.HasConflicts {
		for _, c := range lrgen.Conflicts() {
			pterm.Error.Println(c.String())
		}
		return fmt.Errorf("parse table has %d conflicts", len(lrgen.Conflicts()))
	}
	return nil
}

func writeTableFile(lrgen *lr.TableGenerator, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := lrgen.WriteTable(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeHTMLFile(lrgen *lr.TableGenerator, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := lrgen.TableAsHTML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func grammarNames() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(name string) tracing.TraceLevel {
	switch strings.ToLower(name) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}
