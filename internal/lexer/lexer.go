// Package lexer turns source text into tokens by interpreting an externally
// supplied DFA table. Scanning is maximal munch: the lexer commits to the
// longest prefix for which the automaton reached a declared final state.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/nusapascal/nusapascal/internal/dfa"
	"github.com/nusapascal/nusapascal/internal/token"
)

// commentOpen marks the start of a comment. A scan that loops back to the
// automaton's start state after consuming text beginning with this rune is
// inter-token filler, not a token.
const commentOpen = '{'

// quote delimits string and char literals in the reference rule set.
const quote = '\''

// Error is the single fatal lexical failure: no DFA path matches starting at
// the given character. The remainder of the input is discarded after it.
type Error struct {
	Char rune
	Pos  int // rune offset in the source
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexical error: no token matches starting at %q (position %d)", e.Char, e.Pos)
}

// Lexer produces a finite, forward-only token sequence. It is not
// restartable; create a new Lexer per source text.
type Lexer struct {
	src   []rune
	table *dfa.Table
	pos   int
	dead  bool // set after a lexical error or end of input
}

// New creates a lexer over source using the given compiled DFA table.
func New(source string, table *dfa.Table) *Lexer {
	return &Lexer{src: []rune(source), table: table}
}

// Next returns the next token, or (nil, nil) once the input is exhausted.
// On a lexical error it reports the error once and discards the rest of the
// input; later calls return (nil, nil).
func (l *Lexer) Next() (*token.Token, error) {
	if l.dead {
		return nil, nil
	}

scan:
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			l.dead = true
			return nil, nil
		}

		start := l.pos
		state := l.table.StartState()
		lastFinal := -1
		var lastKind token.Type

		for i := l.pos; i < len(l.src); i++ {
			next, ok := l.table.Next(state, l.src[i])
			if !ok {
				break
			}
			state = next

			if state == l.table.StartState() && l.src[start] == commentOpen {
				// The automaton closed a loop back to its start state over a
				// comment: drop the text and rescan from here.
				l.pos = i + 1
				continue scan
			}
			if kind, ok := l.table.Final(state); ok {
				lastFinal = i + 1
				lastKind = kind
			}
		}

		if lastFinal < 0 {
			l.dead = true
			l.pos = len(l.src)
			return nil, &Error{Char: l.src[start], Pos: start}
		}

		// Commit to the last final position; anything consumed past it is
		// rolled back.
		text := string(l.src[start:lastFinal])
		l.pos = lastFinal

		tok := l.reclassify(token.Token{Type: lastKind, Literal: text})
		return &tok, nil
	}
}

// Tokenize drains the lexer into a slice.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		if tok == nil {
			return tokens, nil
		}
		tokens = append(tokens, *tok)
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
}

// reclassify applies the post-scan rules: identifier-shaped tokens are
// checked against the reserved-keyword set, then word-form logical operators,
// then word-form arithmetic operators, first match winning; quoted literals
// lose their quotes, and a single-character content becomes a char literal.
func (l *Lexer) reclassify(tok token.Token) token.Token {
	switch tok.Type {
	case token.Identifier:
		switch {
		case l.table.IsKeyword(tok.Literal):
			tok.Type = token.Keyword
		case l.table.IsWordLogicalOperator(tok.Literal):
			tok.Type = token.LogicalOperator
		case l.table.IsWordArithmeticOperator(tok.Literal):
			tok.Type = token.ArithmeticOperator
		}
	case token.StringLiteral:
		runes := []rune(tok.Literal)
		if len(runes) >= 2 && runes[0] == quote && runes[len(runes)-1] == quote {
			tok.Literal = string(runes[1 : len(runes)-1])
		}
		if utf8.RuneCountInString(tok.Literal) == 1 {
			tok.Type = token.CharLiteral
		}
	}
	return tok
}
