// Package ansi provides the base ANSI SQL dialect: the lexer table, the
// keyword sets and the grammar every other built-in dialect extends.
//
// Dialects like DuckDB or PostgreSQL inherit from ANSI and override only the
// rules, keywords and matchers that differ.
package ansi

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Name is the registry name of the dialect.
const Name = "ansi"

// Definition is the ANSI dialect. Register it with a dialect.Registry.
var Definition = build()

func build() *dialect.Definition {
	b := dialect.NewDialect(Name).
		Reserved(reservedKeywords...).
		Unreserved(unreservedKeywords...).
		Lexer(Matchers()...).
		Delimiters(token.Semicolon)
	addStatements(b)
	addSelect(b)
	addJoins(b)
	addExpressions(b)
	addDDL(b)
	return b.Build()
}

// Matchers returns the ANSI lexer table in declaration order. Longer matches
// win regardless of order; order only breaks ties.
func Matchers() []dialect.LexMatcher {
	return []dialect.LexMatcher{
		dialect.Pattern("whitespace", token.Whitespace, `[ \t\f\v]+`),
		dialect.Pattern("newline", token.Newline, `\r\n|\n|\r`),
		dialect.Pattern("inline_comment", token.Comment, `--[^\r\n]*`),
		dialect.Pattern("block_comment", token.Comment, `/\*(?s:.*?)\*/`),
		dialect.Pattern("single_quote", token.StringLiteral, `'(?:[^']|'')*'`),
		dialect.Pattern("double_quote", token.QuotedIdentifier, `"(?:[^"]|"")*"`),
		dialect.Pattern("back_quote", token.QuotedIdentifier, "`(?:[^`]|``)*`"),
		dialect.Pattern("numeric_literal", token.NumericLiteral, `(?:[0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)(?:[eE][+-]?[0-9]+)?`),
		dialect.WordPattern("word", `[\p{L}_][\p{L}\p{N}_$]*`),
		dialect.Pattern("comparison_operator", token.Comparison, `<>|!=|>=|<=|=|<|>`),
		dialect.Pattern("operator", token.Operator, `\|\||[+\-/%^&|~]`),
		dialect.Literal("star", token.Star, "*"),
		dialect.Literal("comma", token.Comma, ","),
		dialect.Literal("dot", token.Dot, "."),
		dialect.Literal("start_bracket", token.OpenParen, "("),
		dialect.Literal("end_bracket", token.CloseParen, ")"),
		dialect.Literal("start_square_bracket", token.OpenBracket, "["),
		dialect.Literal("end_square_bracket", token.CloseBracket, "]"),
		dialect.Literal("semicolon", token.Semicolon, ";"),
		dialect.Literal("colon", token.Colon, ":"),
		dialect.Literal("parameter", token.Parameter, "?"),
	}
}

var reservedKeywords = []string{
	"ALL", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CAST", "CHECK",
	"CONSTRAINT", "CREATE", "CROSS", "DEFAULT", "DELETE", "DESC", "DISTINCT",
	"DROP", "ELSE", "END", "EXCEPT", "EXISTS", "FALSE", "FETCH", "FOREIGN",
	"FROM", "FULL", "GROUP", "HAVING", "IN", "INNER", "INSERT", "INTERSECT",
	"INTO", "IS", "JOIN", "LEFT", "LIKE", "LIMIT", "NATURAL", "NOT", "NULL",
	"OFFSET", "ON", "OR", "ORDER", "OUTER", "OVER", "PARTITION", "PRIMARY",
	"RECURSIVE", "REFERENCES", "RIGHT", "SELECT", "SET", "TABLE", "THEN",
	"TRUE", "UNION", "UNIQUE", "UPDATE", "USING", "VALUES", "VIEW", "WHEN",
	"WHERE", "WINDOW", "WITH",
}

var unreservedKeywords = []string{
	"CASCADE", "CURRENT", "DATE", "ESCAPE", "EXCLUDE", "FILTER", "FIRST",
	"FOLLOWING", "GROUPS", "IF", "INTERVAL", "KEY", "LAST", "NEXT", "NULLS", "ONLY",
	"PRECEDING", "PRECISION", "RANGE", "REPLACE", "RESTRICT", "ROW", "ROWS",
	"SCHEMA", "TEMP", "TEMPORARY", "TIME", "TIMESTAMP", "UNBOUNDED", "VALUE",
	"VARYING", "WITHOUT", "ZONE",
}
