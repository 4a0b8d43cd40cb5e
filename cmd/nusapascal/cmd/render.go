package cmd

import (
	"fmt"
	"strings"

	"github.com/nusapascal/nusapascal/internal/ast"
	"github.com/nusapascal/nusapascal/internal/parser"
	"github.com/nusapascal/nusapascal/internal/semantic"
	"github.com/nusapascal/nusapascal/internal/symtab"
	"github.com/nusapascal/nusapascal/internal/token"
)

func renderTokens(w *strings.Builder, tokens []token.Token) {
	fmt.Fprintf(w, "%s\n", renderTitle(fmt.Sprintf("Tokens (%d)", len(tokens))))
	for i, tok := range tokens {
		typeName := tok.Type.String()
		if !plainOut {
			typeName = tokenTypeStyle.Render(typeName)
		}
		fmt.Fprintf(w, "  %4d  %-22s %q\n", i, typeName, tok.Literal)
	}
}

func renderTree(w *strings.Builder, node *parser.ParseNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.IsTerminal() {
		fmt.Fprintf(w, "%s%s\n", indent, renderMuted(node.Token.String()))
		return
	}
	fmt.Fprintf(w, "%s%s\n", indent, node.Label())
	for _, child := range node.Children {
		renderTree(w, child, depth+1)
	}
}

func renderDiagnostics(w *strings.Builder, diags []*semantic.Error) {
	if len(diags) == 0 {
		fmt.Fprintf(w, "%s\n", renderOK("No semantic errors."))
		return
	}
	fmt.Fprintf(w, "%s\n", renderTitle(fmt.Sprintf("Semantic errors (%d)", len(diags))))
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", renderError(d.Message))
	}
}

// renderSymbols prints the user portion of the identifier table and the
// per-block size records. The seeded range is elided.
func renderSymbols(w *strings.Builder, st *symtab.SymbolTable) {
	fmt.Fprintf(w, "%s\n", renderTitle("Identifiers"))
	fmt.Fprintf(w, "  %s\n", headerRow("idx", "name", "kind", "type", "ref", "lvl", "addr"))
	for i := symtab.UserStart; i < len(st.Tab); i++ {
		e := st.Tab[i]
		fmt.Fprintf(w, "  %4d  %-14s %-10s %-10s %4d %4d %5d\n",
			i, e.Name, e.Obj, e.Type, e.Ref, e.Level, e.Address)
	}

	fmt.Fprintf(w, "%s\n", renderTitle("Blocks"))
	fmt.Fprintf(w, "  %s\n", headerRow("idx", "last", "lastpar", "psize", "vsize"))
	for i, b := range st.BTab {
		fmt.Fprintf(w, "  %4d  %4d %7d %6d %6d\n", i, b.Last, b.LastPar, b.ParamSize, b.VarSize)
	}

	if len(st.ATab) > 0 {
		fmt.Fprintf(w, "%s\n", renderTitle("Arrays"))
		fmt.Fprintf(w, "  %s\n", headerRow("idx", "elem", "low", "high", "esize", "total"))
		for i, a := range st.ATab {
			fmt.Fprintf(w, "  %4d  %-10s %4d %4d %6d %6d\n",
				i, a.ElementType, a.Low, a.High, a.ElementSize, a.TotalSize)
		}
	}
}

// renderAST prints the decorated tree, one node per line with its resolved
// type where the node carries one.
func renderAST(w *strings.Builder, node ast.Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s\n", indent, node.String())

	switch n := node.(type) {
	case *ast.Program:
		for _, decl := range n.Declarations {
			renderAST(w, decl, depth+1)
		}
		renderAST(w, n.Body, depth+1)
	case *ast.ProcDecl:
		for _, p := range n.Params {
			renderAST(w, p, depth+1)
		}
		for _, decl := range n.Declarations {
			renderAST(w, decl, depth+1)
		}
		renderAST(w, n.Body, depth+1)
	case *ast.FuncDecl:
		for _, p := range n.Params {
			renderAST(w, p, depth+1)
		}
		for _, decl := range n.Declarations {
			renderAST(w, decl, depth+1)
		}
		renderAST(w, n.Body, depth+1)
	case *ast.ConstDecl:
		renderAST(w, n.Value, depth+1)
	case *ast.Block:
		for _, stmt := range n.Statements {
			renderAST(w, stmt, depth+1)
		}
	case *ast.Assign:
		renderAST(w, n.Target, depth+1)
		renderAST(w, n.Value, depth+1)
	case *ast.If:
		renderAST(w, n.Condition, depth+1)
		renderAST(w, n.Then, depth+1)
		if n.Else != nil {
			renderAST(w, n.Else, depth+1)
		}
	case *ast.While:
		renderAST(w, n.Condition, depth+1)
		renderAST(w, n.Body, depth+1)
	case *ast.Repeat:
		for _, stmt := range n.Body {
			renderAST(w, stmt, depth+1)
		}
		renderAST(w, n.Condition, depth+1)
	case *ast.For:
		renderAST(w, n.Start, depth+1)
		renderAST(w, n.End, depth+1)
		renderAST(w, n.Body, depth+1)
	case *ast.ProcCall:
		for _, arg := range n.Args {
			renderAST(w, arg, depth+1)
		}
	case *ast.BinOp:
		renderAST(w, n.Left, depth+1)
		renderAST(w, n.Right, depth+1)
	case *ast.UnaryOp:
		renderAST(w, n.Operand, depth+1)
	case *ast.FieldAccess:
		renderAST(w, n.Target, depth+1)
	}
}

func headerRow(cols ...string) string {
	row := strings.Join(cols, "  ")
	if plainOut {
		return row
	}
	return headerStyle.Render(row)
}
