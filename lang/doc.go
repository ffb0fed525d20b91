// Package lang parses, resolves, and evaluates the algebraic expressions
// used throughout a simulation configuration.
//
// # Grammar
//
// Informal EBNF, lowest precedence first:
//
//	Expr    → Term (('+' | '-') Term)*
//	Term    → Power (('*' | '/') Power | Power)*
//	Power   → Unary ('^' Power)?
//	Unary   → '-' Unary | Primary
//	Primary → Number | Ident | Ident '(' Args? ')' | '(' Expr ')'
//	Args    → Expr (',' Expr)*
//
// Juxtaposition is multiplication: "0.5 micro" and "2 a0 c" are the same
// as "0.5*micro" and "2*a0*c". Unary minus binds tighter than '^', so "-2^2"
// is 4. '^' is right-associative.
//
// A number multiplied by a built-in unit ("1.55 eV", "0.5 * micro") parses
// to a [UnitLiteral]. Every other name is an [Identifier] resolved through a
// [Scope] at evaluation time, so units, user constants, and per-particle
// fields share one namespace.
//
// # Resolution
//
// [Resolve] parses a set of named [Definition]s, orders them by dependency,
// rejects cycles and references to unknown names, and evaluates each once
// into an immutable [Table].
//
// # Evaluation
//
// [Eval] walks an expression tree against any [Scope]. [Compile] lowers an
// expression to an expr-lang program with every constant folded in; the
// resulting [Kernel] is safe for concurrent per-particle use.
package lang
