// Package lang is the front end of the doji scripting language: it turns
// source text into a syntax tree with precise source locations for
// diagnostics.
//
// # Pipeline
//
// A [Scanner] pulls bytes from one source buffer and produces one [Token]
// per call. A [Parser] pulls tokens from its scanner and builds a tree of
// [Node] values by precedence climbing. Both stages charge every
// allocation against a shared [alloc.Allocator]; the tree's nodes live in
// an [Arena] that is released as a unit.
//
// # Grammar
//
// Informal EBNF:
//
//	Program  → Expr ';'? EOF
//	Expr     → Prefix* Primary Postfix* (Infix Expr)*
//	Prefix   → '-' | '!' | '~'
//	Primary  → Int | Float | 'nil' | 'true' | 'false' | Ident
//	         | '(' Expr ')'
//	         | '[' (Expr (',' Expr)* ','?)? ']'
//	         | '{' (Expr ':' Expr (',' Expr ':' Expr)* ','?)? '}'
//	Postfix  → '.' Ident | '(' Args? ')' | '[' Expr ']'
//	Infix    → '||' | '&&' | '==' | '!=' | '<' | '<=' | '>' | '>='
//	         | '|' | '^' | '&' | '+' | '-' | '*' | '/' | '%'
//
// Binding powers, loosest first:
//
//	||            1  2
//	&&            3  4
//	== !=         5  6
//	< <= > >=     7  8
//	|             9 10
//	^            11 12
//	&            13 14
//	+ -          15 16
//	* / %        17 18
//	prefix - ! ~ 19
//	postfix .    20
//	postfix (    21
//	postfix [    22
//
// The keywords fn, if, for, and while are reserved. Block, conditional,
// and loop nodes can be built through the [Arena] but have no surface
// syntax yet.
//
// # Diagnostics
//
// Scanning and parsing stop at the first error. The error is a
// [*Diagnostic] rendered as "path:line:col: message", for example:
//
//	main.doji:1:4: unexpected char '.', expected 'digit'
//	main.doji:1:7: unexpected EOF, expected )
//
// # Memory
//
// [Parse] establishes the recovery point for one top-level parse. If the
// [alloc.Provider] refuses a request at any depth, the parse is abandoned,
// its arena is released, and Parse returns [alloc.ErrOutOfMemory].
package lang
