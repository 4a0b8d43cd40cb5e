package cmd

import (
	"fmt"
	"os"

	"github.com/nusapascal/nusapascal/internal/ast"
	"github.com/nusapascal/nusapascal/internal/dfa"
	"github.com/nusapascal/nusapascal/internal/lexer"
	"github.com/nusapascal/nusapascal/internal/parser"
	"github.com/nusapascal/nusapascal/internal/semantic"
	"github.com/nusapascal/nusapascal/internal/token"
)

// loadTable loads and compiles the automaton named by the --rules flag.
func loadTable() (*dfa.Table, error) {
	table, err := dfa.Load(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("loading rules %s: %w", rulesFile, err)
	}
	return table, nil
}

func tokenizeFile(path string) ([]token.Token, error) {
	table, err := loadTable()
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.New(string(source), table).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tokens, nil
}

func parseFile(path string) (*parser.ParseNode, error) {
	tokens, err := tokenizeFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// checkFile runs the whole front end. The analyzer is returned so callers
// can inspect the populated symbol table.
func checkFile(path string) (ast.Node, *semantic.Analyzer, []*semantic.Error, error) {
	tree, err := parseFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	analyzer := semantic.New()
	root, diags := analyzer.Analyze(tree)
	return root, analyzer, diags, nil
}
