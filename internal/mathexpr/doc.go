// Package mathexpr compiles single-variable real expressions in x and
// evaluates them. It backs both the local symbolic provider and the graph
// renderer.
//
// Accepted syntax is that of github.com/expr-lang/expr plus two
// conveniences of hand-written math: implicit multiplication between a
// number and a name or parenthesis ("2x", "3(x+1)", ")(") and "**" or "^"
// for powers.
package mathexpr
