// Package ast defines the decorated abstract syntax tree produced by
// semantic analysis. Nodes carry resolved data types and, where relevant,
// stable indices into the identifier table; they are immutable once built.
package ast

import (
	"fmt"

	"github.com/nusapascal/nusapascal/internal/types"
)

// Node is the base interface for all decorated tree nodes.
type Node interface {
	node()
	String() string
}

// Decl is implemented by declaration nodes.
type Decl interface {
	Node
	declNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes; every expression answers its
// resolved data type.
type Expr interface {
	Node
	Type() types.DataType
}

// Program is the root node.
type Program struct {
	Name         string
	Declarations []Decl
	Body         *Block
	TabIndex     int
}

func (p *Program) node()          {}
func (p *Program) String() string { return fmt.Sprintf("program %s", p.Name) }

// VarDecl declares a single variable. Grouped source declarations are split
// so each declared name owns its node and table index.
type VarDecl struct {
	Name     string
	DataType types.DataType
	TabIndex int
	Level    int
}

func (d *VarDecl) node()          {}
func (d *VarDecl) declNode()      {}
func (d *VarDecl) String() string { return fmt.Sprintf("var %s: %s", d.Name, d.DataType) }

// ConstDecl declares one named constant with its evaluated initializer.
type ConstDecl struct {
	Name     string
	Value    Expr
	DataType types.DataType
	TabIndex int
}

func (d *ConstDecl) node()          {}
func (d *ConstDecl) declNode()      {}
func (d *ConstDecl) String() string { return fmt.Sprintf("const %s: %s", d.Name, d.DataType) }

// TypeDecl declares one named type.
type TypeDecl struct {
	Name       string
	Definition types.DataType
	TabIndex   int
}

func (d *TypeDecl) node()          {}
func (d *TypeDecl) declNode()      {}
func (d *TypeDecl) String() string { return fmt.Sprintf("type %s = %s", d.Name, d.Definition) }

// ParamDecl declares one formal parameter group of a subprogram.
type ParamDecl struct {
	Names      []string
	DataType   types.DataType
	IsVar      bool
	TabIndices []int
}

func (d *ParamDecl) node()          {}
func (d *ParamDecl) declNode()      {}
func (d *ParamDecl) String() string { return fmt.Sprintf("param %v: %s", d.Names, d.DataType) }

// ProcDecl declares a procedure together with its own block index.
type ProcDecl struct {
	Name         string
	Params       []*ParamDecl
	Declarations []Decl
	Body         *Block
	TabIndex     int
	BlockIndex   int
}

func (d *ProcDecl) node()          {}
func (d *ProcDecl) declNode()      {}
func (d *ProcDecl) String() string { return fmt.Sprintf("procedure %s", d.Name) }

// FuncDecl declares a function together with its own block index.
type FuncDecl struct {
	Name         string
	Params       []*ParamDecl
	ReturnType   types.DataType
	Declarations []Decl
	Body         *Block
	TabIndex     int
	BlockIndex   int
}

func (d *FuncDecl) node()          {}
func (d *FuncDecl) declNode()      {}
func (d *FuncDecl) String() string { return fmt.Sprintf("function %s: %s", d.Name, d.ReturnType) }

// Block is a compound statement with the block and level it executes in.
type Block struct {
	Statements []Stmt
	BlockIndex int
	Level      int
}

func (b *Block) node()          {}
func (b *Block) stmtNode()      {}
func (b *Block) String() string { return "block" }

// Assign is an assignment, typed as the target's declared type.
type Assign struct {
	Target   Expr
	Value    Expr
	DataType types.DataType
}

func (a *Assign) node()          {}
func (a *Assign) stmtNode()      {}
func (a *Assign) String() string { return fmt.Sprintf("assign: %s", a.DataType) }

// If is a conditional statement; Else may be nil.
type If struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (i *If) node()          {}
func (i *If) stmtNode()      {}
func (i *If) String() string { return "if" }

// While is a pre-tested loop.
type While struct {
	Condition Expr
	Body      Stmt
}

func (w *While) node()          {}
func (w *While) stmtNode()      {}
func (w *While) String() string { return "while" }

// Repeat is a post-tested loop; the body runs at least once.
type Repeat struct {
	Body      []Stmt
	Condition Expr
}

func (r *Repeat) node()          {}
func (r *Repeat) stmtNode()      {}
func (r *Repeat) String() string { return "repeat" }

// For is a counted loop. Downto records the direction keyword; the loop is
// not desugared.
type For struct {
	VarName  string
	Start    Expr
	End      Expr
	Downto   bool
	Body     Stmt
	TabIndex int
}

func (f *For) node()          {}
func (f *For) stmtNode()      {}
func (f *For) String() string { return fmt.Sprintf("for %s", f.VarName) }

// ProcCall is a procedure or function call. In expression position its type
// is the callee's declared result type.
type ProcCall struct {
	Name     string
	Args     []Expr
	TabIndex int
	DataType types.DataType
}

func (c *ProcCall) node()                {}
func (c *ProcCall) stmtNode()            {}
func (c *ProcCall) Type() types.DataType { return c.DataType }
func (c *ProcCall) String() string       { return fmt.Sprintf("call %s", c.Name) }

// BinOp is a binary operation carrying its synthesized result type.
type BinOp struct {
	Op       string
	Left     Expr
	Right    Expr
	DataType types.DataType
}

func (b *BinOp) node()                {}
func (b *BinOp) Type() types.DataType { return b.DataType }
func (b *BinOp) String() string       { return fmt.Sprintf("binop %q: %s", b.Op, b.DataType) }

// UnaryOp is a unary operation (sign or logical not).
type UnaryOp struct {
	Op       string
	Operand  Expr
	DataType types.DataType
}

func (u *UnaryOp) node()                {}
func (u *UnaryOp) Type() types.DataType { return u.DataType }
func (u *UnaryOp) String() string       { return fmt.Sprintf("unaryop %q: %s", u.Op, u.DataType) }

// VarRef is a resolved identifier reference.
type VarRef struct {
	Name     string
	DataType types.DataType
	TabIndex int
	Level    int
}

func (v *VarRef) node()                {}
func (v *VarRef) Type() types.DataType { return v.DataType }
func (v *VarRef) String() string       { return fmt.Sprintf("var %s: %s", v.Name, v.DataType) }

// FieldAccess is a resolved record field selection.
type FieldAccess struct {
	Target   Expr
	Field    string
	DataType types.DataType
	TabIndex int
}

func (f *FieldAccess) node()                {}
func (f *FieldAccess) Type() types.DataType { return f.DataType }
func (f *FieldAccess) String() string       { return fmt.Sprintf("field .%s: %s", f.Field, f.DataType) }

// Literal is a constant value.
type Literal struct {
	Value    LiteralValue
	DataType types.DataType
}

func (l *Literal) node()                {}
func (l *Literal) Type() types.DataType { return l.DataType }
func (l *Literal) String() string       { return fmt.Sprintf("literal %s: %s", l.Value, l.DataType) }

// Empty is the placeholder node: an empty statement, or the stand-in kept in
// the tree where analysis could not produce a real node.
type Empty struct{}

func (e *Empty) node()                {}
func (e *Empty) stmtNode()            {}
func (e *Empty) Type() types.DataType { return types.Unknown }
func (e *Empty) String() string       { return "empty" }

// LiteralKind discriminates literal values.
type LiteralKind int

const (
	LitInteger LiteralKind = iota
	LitReal
	LitBoolean
	LitChar
	LitString
)

// LiteralValue is the closed set of literal payloads.
type LiteralValue struct {
	Kind LiteralKind
	Int  int64
	Real float64
	Bool bool
	Char rune
	Str  string
}

// IntValue wraps an integer literal payload.
func IntValue(v int64) LiteralValue { return LiteralValue{Kind: LitInteger, Int: v} }

// RealValue wraps a real literal payload.
func RealValue(v float64) LiteralValue { return LiteralValue{Kind: LitReal, Real: v} }

// BoolValue wraps a boolean literal payload.
func BoolValue(v bool) LiteralValue { return LiteralValue{Kind: LitBoolean, Bool: v} }

// CharValue wraps a char literal payload.
func CharValue(v rune) LiteralValue { return LiteralValue{Kind: LitChar, Char: v} }

// StringValue wraps a string literal payload.
func StringValue(v string) LiteralValue { return LiteralValue{Kind: LitString, Str: v} }

func (v LiteralValue) String() string {
	switch v.Kind {
	case LitInteger:
		return fmt.Sprintf("%d", v.Int)
	case LitReal:
		return fmt.Sprintf("%g", v.Real)
	case LitBoolean:
		return fmt.Sprintf("%t", v.Bool)
	case LitChar:
		return fmt.Sprintf("'%c'", v.Char)
	default:
		return fmt.Sprintf("%q", v.Str)
	}
}
