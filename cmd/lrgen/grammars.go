package main

// The built-in grammars the generator knows about. Terminals are quoted,
// a tilde denotes an empty RHS; the first production is the start rule.
var grammars = map[string][]string{
	// parenthesized sums
	"paren": {
		"S -> F",
		"S -> '(' S '+' F ')'",
		"F -> 'a'",
	},
	// expression grammar with nullable tails
	"expr": {
		"E -> T X",
		"X -> '+' T X",
		"X -> ~",
		"T -> F Y",
		"Y -> '*' F Y",
		"Y -> ~",
		"F -> 'a'",
		"F -> '(' E ')'",
	},
	// expression grammar, right-recursive sums and products
	"terms": {
		"E -> T R",
		"R -> ~",
		"R -> '+' E",
		"T -> F S",
		"S -> ~",
		"S -> '*' T",
		"F -> 'n'",
		"F -> '(' E ')'",
	},
	// the classic LR(1) textbook example
	"cc": {
		"S -> C C",
		"C -> 'c' C",
		"C -> 'd'",
	},
	// statement lists with assignments
	"stmts": {
		"S -> S ';' A",
		"S -> A",
		"A -> E",
		"A -> 'i' '=' E",
		"E -> E '+' 'i'",
		"E -> 'i'",
	},
}
