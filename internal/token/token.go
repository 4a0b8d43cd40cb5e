// Package token defines the lexical tokens of the NusaPascal language.
package token

import "fmt"

// Type identifies the kind of a token.
type Type int

const (
	Keyword Type = iota
	Identifier
	ArithmeticOperator
	RelationalOperator
	LogicalOperator
	AssignOperator
	Number
	CharLiteral
	StringLiteral
	Semicolon
	Comma
	Colon
	Dot
	LParenthesis
	RParenthesis
	LBracket
	RBracket
	RangeOperator
)

// typeNames provides string representations for token types. The uppercase
// forms match the kind names used by DFA rule files.
var typeNames = map[Type]string{
	Keyword:            "KEYWORD",
	Identifier:         "IDENTIFIER",
	ArithmeticOperator: "ARITHMETIC_OPERATOR",
	RelationalOperator: "RELATIONAL_OPERATOR",
	LogicalOperator:    "LOGICAL_OPERATOR",
	AssignOperator:     "ASSIGN_OPERATOR",
	Number:             "NUMBER",
	CharLiteral:        "CHAR_LITERAL",
	StringLiteral:      "STRING_LITERAL",
	Semicolon:          "SEMICOLON",
	Comma:              "COMMA",
	Colon:              "COLON",
	Dot:                "DOT",
	LParenthesis:       "LPARENTHESIS",
	RParenthesis:       "RPARENTHESIS",
	LBracket:           "LBRACKET",
	RBracket:           "RBRACKET",
	RangeOperator:      "RANGE_OPERATOR",
}

// String returns the rule-file name of the token type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// Token is an immutable lexical unit: a kind plus the literal text it was
// scanned from. Quoted literals carry their content without the quotes.
type Token struct {
	Type    Type
	Literal string
}

// String returns a compact representation used by diagnostics and the driver.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}
