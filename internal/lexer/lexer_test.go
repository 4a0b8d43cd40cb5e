package lexer

import (
	"testing"

	"github.com/nusapascal/nusapascal/internal/dfa"
	"github.com/nusapascal/nusapascal/internal/token"
)

func loadRules(t *testing.T) *dfa.Table {
	t.Helper()
	table, err := dfa.Load("../../dfa_rules.json")
	if err != nil {
		t.Fatalf("loading reference rules: %v", err)
	}
	return table
}

func tokenize(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, err := New(source, loadRules(t)).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", source, err)
	}
	return tokens
}

func TestNextTokenSequence(t *testing.T) {
	source := `program contoh;
variabel x, luas: integer;
mulai
    x := 10;
    luas := x * 2
selesai.`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.Keyword, "program"},
		{token.Identifier, "contoh"},
		{token.Semicolon, ";"},
		{token.Keyword, "variabel"},
		{token.Identifier, "x"},
		{token.Comma, ","},
		{token.Identifier, "luas"},
		{token.Colon, ":"},
		{token.Keyword, "integer"},
		{token.Semicolon, ";"},
		{token.Keyword, "mulai"},
		{token.Identifier, "x"},
		{token.AssignOperator, ":="},
		{token.Number, "10"},
		{token.Semicolon, ";"},
		{token.Identifier, "luas"},
		{token.AssignOperator, ":="},
		{token.Identifier, "x"},
		{token.ArithmeticOperator, "*"},
		{token.Number, "2"},
		{token.Keyword, "selesai"},
		{token.Dot, "."},
	}

	lex := New(source, loadRules(t))
	for i, tt := range tests {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if tok == nil {
			t.Fatalf("tests[%d]: input exhausted early", i)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d]: token type = %v, want %v (%q)", i, tok.Type, tt.expectedType, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d]: literal = %q, want %q", i, tok.Literal, tt.expectedLiteral)
		}
	}
	if tok, err := lex.Next(); tok != nil || err != nil {
		t.Fatalf("after last token: got (%v, %v), want (nil, nil)", tok, err)
	}
}

// TestMaximalMunch verifies the longest-prefix rule for operators that share
// a prefix.
func TestMaximalMunch(t *testing.T) {
	tests := []struct {
		source          string
		expectedType    token.Type
		expectedLiteral string
	}{
		{"<=", token.RelationalOperator, "<="},
		{"<>", token.RelationalOperator, "<>"},
		{"<", token.RelationalOperator, "<"},
		{">=", token.RelationalOperator, ">="},
		{":=", token.AssignOperator, ":="},
		{":", token.Colon, ":"},
		{"..", token.RangeOperator, ".."},
		{".", token.Dot, "."},
		{"3.14", token.Number, "3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := tokenize(t, tt.source)
			if len(tokens) != 1 {
				t.Fatalf("Tokenize(%q) produced %d tokens, want 1", tt.source, len(tokens))
			}
			if tokens[0].Type != tt.expectedType || tokens[0].Literal != tt.expectedLiteral {
				t.Errorf("Tokenize(%q) = %s, want %s(%q)",
					tt.source, tokens[0], tt.expectedType, tt.expectedLiteral)
			}
		})
	}
}

// TestRangeAfterNumber pins the rollback behavior: "1..10" must not lex the
// leading "1." as a real number.
func TestRangeAfterNumber(t *testing.T) {
	tokens := tokenize(t, "1..10")

	expected := []token.Token{
		{Type: token.Number, Literal: "1"},
		{Type: token.RangeOperator, Literal: ".."},
		{Type: token.Number, Literal: "10"},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(expected))
	}
	for i, want := range expected {
		if tokens[i] != want {
			t.Errorf("tokens[%d] = %s, want %s", i, tokens[i], want)
		}
	}
}

func TestKeywordReclassification(t *testing.T) {
	tests := []struct {
		source       string
		expectedType token.Type
	}{
		{"variabel", token.Keyword},
		{"variabelku", token.Identifier}, // prefix of a keyword is still an identifier
		{"dan", token.LogicalOperator},
		{"atau", token.LogicalOperator},
		{"tidak", token.LogicalOperator},
		{"bagi", token.Keyword},
		{"true", token.Keyword},
		{"turun_ke", token.Keyword},
		{"_tmp", token.Identifier},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := tokenize(t, tt.source)
			if len(tokens) != 1 || tokens[0].Type != tt.expectedType {
				t.Errorf("Tokenize(%q) = %v, want single %v", tt.source, tokens, tt.expectedType)
			}
		})
	}
}

func TestQuotedLiterals(t *testing.T) {
	tests := []struct {
		source          string
		expectedType    token.Type
		expectedLiteral string
	}{
		{"'halo'", token.StringLiteral, "halo"},
		{"'a'", token.CharLiteral, "a"},
		{"''", token.StringLiteral, ""},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := tokenize(t, tt.source)
			if len(tokens) != 1 {
				t.Fatalf("Tokenize(%q) produced %d tokens, want 1", tt.source, len(tokens))
			}
			if tokens[0].Type != tt.expectedType || tokens[0].Literal != tt.expectedLiteral {
				t.Errorf("Tokenize(%q) = %s, want %s(%q)",
					tt.source, tokens[0], tt.expectedType, tt.expectedLiteral)
			}
		})
	}
}

func TestCommentsAndWhitespaceAreTransparent(t *testing.T) {
	plain := tokenize(t, "x := 1")
	commented := tokenize(t, "  x { komentar\n lanjut } :=\n\t{lagi} 1 {akhir}")

	if len(plain) != len(commented) {
		t.Fatalf("comment variant has %d tokens, plain has %d", len(commented), len(plain))
	}
	for i := range plain {
		if plain[i] != commented[i] {
			t.Errorf("tokens[%d]: %s vs %s", i, plain[i], commented[i])
		}
	}
}

func TestLexicalErrorStopsOnce(t *testing.T) {
	lex := New("x := @salah", loadRules(t))

	var err error
	var tok *token.Token
	for {
		tok, err = lex.Next()
		if tok == nil {
			break
		}
	}
	if err == nil {
		t.Fatal("expected a lexical error for '@'")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if lexErr.Char != '@' {
		t.Errorf("Error.Char = %q, want '@'", lexErr.Char)
	}

	// The lexer is dead afterwards.
	if tok, err := lex.Next(); tok != nil || err != nil {
		t.Errorf("after error: got (%v, %v), want (nil, nil)", tok, err)
	}
}

func TestUnterminatedCommentIsAnError(t *testing.T) {
	_, err := New("{ tidak pernah ditutup", loadRules(t)).Tokenize()
	if err == nil {
		t.Fatal("expected a lexical error for an unterminated comment")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if lexErr.Char != '{' {
		t.Errorf("Error.Char = %q, want '{'", lexErr.Char)
	}
}
