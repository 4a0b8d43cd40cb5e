// Package parser implements the NusaPascal recursive descent parser and the
// concrete parse tree it produces.
package parser

import "github.com/nusapascal/nusapascal/internal/token"

// NodeKind tags an interior parse node with the grammar rule that produced
// it. Terminal leaves use NodeTerminal and wrap the matched token.
type NodeKind int

const (
	NodeTerminal NodeKind = iota
	NodeProgram
	NodeProgramHeader
	NodeDeclarationPart
	NodeConstDeclaration
	NodeTypeDeclaration
	NodeVarDeclaration
	NodeIdentifierList
	NodeTypeSpec
	NodeArrayType
	NodeRecordType
	NodeRange
	NodeSubprogramDeclaration
	NodeProcedureDeclaration
	NodeFunctionDeclaration
	NodeFormalParameterList
	NodeCompoundStatement
	NodeStatementList
	NodeAssignmentStatement
	NodeIfStatement
	NodeWhileStatement
	NodeRepeatStatement
	NodeForStatement
	NodeProcedureOrFunctionCall
	NodeParameterList
	NodeExpression
	NodeSimpleExpression
	NodeTerm
	NodeFactor
	NodeFieldAccess
)

var nodeLabels = map[NodeKind]string{
	NodeProgram:                 "<program>",
	NodeProgramHeader:           "<program-header>",
	NodeDeclarationPart:         "<declaration-part>",
	NodeConstDeclaration:        "<const-declaration>",
	NodeTypeDeclaration:         "<type-declaration>",
	NodeVarDeclaration:          "<var-declaration>",
	NodeIdentifierList:          "<identifier-list>",
	NodeTypeSpec:                "<type>",
	NodeArrayType:               "<array-type>",
	NodeRecordType:              "<record-type>",
	NodeRange:                   "<range>",
	NodeSubprogramDeclaration:   "<subprogram-declaration>",
	NodeProcedureDeclaration:    "<procedure-declaration>",
	NodeFunctionDeclaration:     "<function-declaration>",
	NodeFormalParameterList:     "<formal-parameter-list>",
	NodeCompoundStatement:       "<compound-statement>",
	NodeStatementList:           "<statement-list>",
	NodeAssignmentStatement:     "<assignment-statement>",
	NodeIfStatement:             "<if-statement>",
	NodeWhileStatement:          "<while-statement>",
	NodeRepeatStatement:         "<repeat-statement>",
	NodeForStatement:            "<for-statement>",
	NodeProcedureOrFunctionCall: "<procedure/function-call>",
	NodeParameterList:           "<parameter-list>",
	NodeExpression:              "<expression>",
	NodeSimpleExpression:        "<simple-expression>",
	NodeTerm:                    "<term>",
	NodeFactor:                  "<factor>",
	NodeFieldAccess:             "<field-access>",
}

// ParseNode is one node of the concrete syntax tree. A terminal leaf wraps
// the token it matched; an interior node holds its children in source order.
// The tree is built once by the parser and read-only afterwards.
type ParseNode struct {
	Kind     NodeKind
	Token    *token.Token // set only for NodeTerminal
	Children []*ParseNode
}

// NewNode creates an empty interior node for the given grammar rule.
func NewNode(kind NodeKind) *ParseNode {
	return &ParseNode{Kind: kind}
}

// NewTerminal creates a leaf wrapping tok.
func NewTerminal(tok token.Token) *ParseNode {
	return &ParseNode{Kind: NodeTerminal, Token: &tok}
}

func (n *ParseNode) add(children ...*ParseNode) {
	n.Children = append(n.Children, children...)
}

// IsTerminal reports whether n is a leaf.
func (n *ParseNode) IsTerminal() bool { return n.Kind == NodeTerminal }

// Label returns the grammar-rule label of an interior node, or the token
// representation of a leaf.
func (n *ParseNode) Label() string {
	if n.Kind == NodeTerminal {
		return n.Token.String()
	}
	return nodeLabels[n.Kind]
}

// Terminals returns the tree's terminal tokens in source order.
func (n *ParseNode) Terminals() []token.Token {
	var out []token.Token
	n.appendTerminals(&out)
	return out
}

func (n *ParseNode) appendTerminals(out *[]token.Token) {
	if n.Kind == NodeTerminal {
		*out = append(*out, *n.Token)
		return
	}
	for _, child := range n.Children {
		child.appendTerminals(out)
	}
}
