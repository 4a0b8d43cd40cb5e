// Package semantic implements the analysis pass: one top-down walk over the
// parse tree that builds the decorated AST, grows the symbol table and type
// checks, accumulating diagnostics instead of aborting. Wherever resolution
// fails the tree gets a well-typed placeholder so the pass stays total.
package semantic

import (
	"strconv"
	"strings"

	"github.com/nusapascal/nusapascal/internal/ast"
	"github.com/nusapascal/nusapascal/internal/parser"
	"github.com/nusapascal/nusapascal/internal/symtab"
	"github.com/nusapascal/nusapascal/internal/token"
	"github.com/nusapascal/nusapascal/internal/types"
)

// Analyzer holds the mutable state of one analysis run. Create one per
// compilation unit; the populated symbol table stays inspectable afterwards.
type Analyzer struct {
	Symbols *symtab.SymbolTable
	errors  []*Error
}

// New creates an analyzer with a freshly seeded symbol table.
func New() *Analyzer {
	return &Analyzer{Symbols: symtab.New()}
}

// Analyze walks the parse tree and returns the decorated AST together with
// every accumulated diagnostic. The AST is complete and traversable even
// when diagnostics are present.
func (a *Analyzer) Analyze(tree *parser.ParseNode) (ast.Node, []*Error) {
	root := a.visitProgram(tree)
	return root, a.errors
}

// Errors returns the diagnostics accumulated so far.
func (a *Analyzer) Errors() []*Error { return a.errors }

func (a *Analyzer) report(err *Error) {
	a.errors = append(a.errors, err)
}

// visitProgram handles program -> header declaration-part compound DOT.
func (a *Analyzer) visitProgram(node *parser.ParseNode) ast.Node {
	if node == nil || node.Kind != parser.NodeProgram {
		return &ast.Empty{}
	}

	nameTok := node.Children[0].Children[1].Token
	tabIndex := a.Symbols.Insert(symtab.TabEntry{
		Name:   nameTok.Literal,
		Link:   symtab.NoLink,
		Obj:    types.ObjProgram,
		Type:   types.Void,
		Ref:    symtab.NoLink,
		Normal: true,
	})

	declarations := a.visitDeclarationPart(node.Children[1])

	// The main body runs in its own block.
	a.Symbols.EnterBlock()
	body := a.visitCompoundStatement(node.Children[2])
	a.Symbols.ExitBlock()

	return &ast.Program{
		Name:         nameTok.Literal,
		Declarations: declarations,
		Body:         body,
		TabIndex:     tabIndex,
	}
}

func (a *Analyzer) visitDeclarationPart(node *parser.ParseNode) []ast.Decl {
	var declarations []ast.Decl
	for _, child := range node.Children {
		switch child.Kind {
		case parser.NodeConstDeclaration:
			declarations = append(declarations, a.visitConstDeclaration(child)...)
		case parser.NodeTypeDeclaration:
			declarations = append(declarations, a.visitTypeDeclaration(child)...)
		case parser.NodeVarDeclaration:
			declarations = append(declarations, a.visitVarDeclaration(child)...)
		case parser.NodeSubprogramDeclaration:
			if decl := a.visitSubprogramDeclaration(child); decl != nil {
				declarations = append(declarations, decl)
			}
		}
	}
	return declarations
}

// visitVarDeclaration splits every declared name into its own VarDecl so
// each one owns an addressable node and table index. Redeclarations are
// diagnosed and skipped without blocking sibling names.
func (a *Analyzer) visitVarDeclaration(node *parser.ParseNode) []ast.Decl {
	var declarations []ast.Decl
	level := a.Symbols.CurrentLevel()

	// children: 'variabel' (identifier-list ':' type ';')+
	for i := 1; i+2 < len(node.Children); i += 4 {
		idents := identifierTokens(node.Children[i])
		dt, ref := a.resolveType(node.Children[i+2], "")

		for _, tok := range idents {
			tok := tok
			if _, found := a.Symbols.LookupCurrentScope(tok.Literal); found {
				a.report(redeclared(tok.Literal, &tok))
				continue
			}

			address := a.Symbols.BTab[a.Symbols.CurrentBlock()].VarSize
			tabIndex := a.Symbols.Insert(symtab.TabEntry{
				Name:    tok.Literal,
				Link:    symtab.NoLink,
				Obj:     types.ObjVariable,
				Type:    dt,
				Ref:     typeRef(dt, ref),
				Normal:  true,
				Level:   level,
				Address: address,
			})
			a.Symbols.AddVarSize(1)

			declarations = append(declarations, &ast.VarDecl{
				Name:     tok.Literal,
				DataType: dt,
				TabIndex: tabIndex,
				Level:    level,
			})
		}
	}
	return declarations
}

func (a *Analyzer) visitConstDeclaration(node *parser.ParseNode) []ast.Decl {
	var declarations []ast.Decl

	// children: 'konstanta' (IDENTIFIER '=' expression ';')+
	for i := 1; i+2 < len(node.Children); i += 4 {
		nameTok := node.Children[i].Token
		value := a.visitExpression(node.Children[i+2])
		dt := value.Type()

		if _, found := a.Symbols.LookupCurrentScope(nameTok.Literal); found {
			a.report(redeclared(nameTok.Literal, nameTok))
			continue
		}

		tabIndex := a.Symbols.Insert(symtab.TabEntry{
			Name:   nameTok.Literal,
			Link:   symtab.NoLink,
			Obj:    types.ObjConstant,
			Type:   dt,
			Ref:    symtab.NoLink,
			Normal: true,
			Level:  a.Symbols.CurrentLevel(),
		})

		declarations = append(declarations, &ast.ConstDecl{
			Name:     nameTok.Literal,
			Value:    value,
			DataType: dt,
			TabIndex: tabIndex,
		})
	}
	return declarations
}

func (a *Analyzer) visitTypeDeclaration(node *parser.ParseNode) []ast.Decl {
	var declarations []ast.Decl

	// children: 'tipe' (IDENTIFIER '=' type ';')+
	for i := 1; i+2 < len(node.Children); i += 4 {
		nameTok := node.Children[i].Token
		dt, ref := a.resolveType(node.Children[i+2], nameTok.Literal)

		if _, found := a.Symbols.LookupCurrentScope(nameTok.Literal); found {
			a.report(redeclared(nameTok.Literal, nameTok))
			continue
		}

		tabIndex := a.Symbols.Insert(symtab.TabEntry{
			Name:   nameTok.Literal,
			Link:   symtab.NoLink,
			Obj:    types.ObjType,
			Type:   dt,
			Ref:    typeRef(dt, ref),
			Normal: true,
			Level:  a.Symbols.CurrentLevel(),
		})

		declarations = append(declarations, &ast.TypeDecl{
			Name:       nameTok.Literal,
			Definition: dt,
			TabIndex:   tabIndex,
		})
	}
	return declarations
}

func (a *Analyzer) visitSubprogramDeclaration(node *parser.ParseNode) ast.Decl {
	if len(node.Children) == 0 {
		return nil
	}
	child := node.Children[0]
	switch child.Kind {
	case parser.NodeProcedureDeclaration:
		return a.visitProcedureDeclaration(child)
	case parser.NodeFunctionDeclaration:
		return a.visitFunctionDeclaration(child)
	}
	return nil
}

// visitProcedureDeclaration registers a subprogram with the two-phase scope
// sequence: allocate the subprogram's block, close it again, intern the name
// in the enclosing scope with a reference to that block, then re-open the
// same block and materialize parameters, locals and body inside it. The name
// therefore resolves in the caller's scope instead of shadowing itself.
func (a *Analyzer) visitProcedureDeclaration(node *parser.ParseNode) ast.Decl {
	idx := 1
	nameTok := node.Children[idx].Token
	idx++

	if _, found := a.Symbols.LookupCurrentScope(nameTok.Literal); found {
		a.report(redeclared(nameTok.Literal, nameTok))
	}

	blockIndex := a.Symbols.EnterBlock()

	var paramNode *parser.ParseNode
	if node.Children[idx].Kind == parser.NodeFormalParameterList {
		paramNode = node.Children[idx]
		idx++
	}
	idx++ // ';'

	a.Symbols.ExitBlock()
	tabIndex := a.Symbols.Insert(symtab.TabEntry{
		Name:   nameTok.Literal,
		Link:   symtab.NoLink,
		Obj:    types.ObjProcedure,
		Type:   types.Void,
		Ref:    blockIndex,
		Normal: true,
		Level:  a.Symbols.CurrentLevel(),
	})
	a.Symbols.ReenterBlock(blockIndex)

	params := a.visitFormalParameterList(paramNode)
	declarations := a.visitDeclarationPart(node.Children[idx])
	idx++
	body := a.visitCompoundStatement(node.Children[idx])

	a.Symbols.ExitBlock()

	return &ast.ProcDecl{
		Name:         nameTok.Literal,
		Params:       params,
		Declarations: declarations,
		Body:         body,
		TabIndex:     tabIndex,
		BlockIndex:   blockIndex,
	}
}

func (a *Analyzer) visitFunctionDeclaration(node *parser.ParseNode) ast.Decl {
	idx := 1
	nameTok := node.Children[idx].Token
	idx++

	if _, found := a.Symbols.LookupCurrentScope(nameTok.Literal); found {
		a.report(redeclared(nameTok.Literal, nameTok))
	}

	blockIndex := a.Symbols.EnterBlock()

	var paramNode *parser.ParseNode
	if node.Children[idx].Kind == parser.NodeFormalParameterList {
		paramNode = node.Children[idx]
		idx++
	}
	idx++ // ':'

	returnType, _ := a.resolveType(node.Children[idx], "")
	idx++
	idx++ // ';'

	a.Symbols.ExitBlock()
	tabIndex := a.Symbols.Insert(symtab.TabEntry{
		Name:   nameTok.Literal,
		Link:   symtab.NoLink,
		Obj:    types.ObjFunction,
		Type:   returnType,
		Ref:    blockIndex,
		Normal: true,
		Level:  a.Symbols.CurrentLevel(),
	})
	a.Symbols.ReenterBlock(blockIndex)

	params := a.visitFormalParameterList(paramNode)
	declarations := a.visitDeclarationPart(node.Children[idx])
	idx++
	body := a.visitCompoundStatement(node.Children[idx])

	a.Symbols.ExitBlock()

	return &ast.FuncDecl{
		Name:         nameTok.Literal,
		Params:       params,
		ReturnType:   returnType,
		Declarations: declarations,
		Body:         body,
		TabIndex:     tabIndex,
		BlockIndex:   blockIndex,
	}
}

func (a *Analyzer) visitFormalParameterList(node *parser.ParseNode) []*ast.ParamDecl {
	if node == nil {
		return nil
	}
	var params []*ast.ParamDecl

	// children: '(' identifier-list ':' type (';' identifier-list ':' type)* ')'
	i := 1
	for i < len(node.Children)-1 {
		if node.Children[i].IsTerminal() {
			i++ // ';'
			continue
		}
		idents := identifierTokens(node.Children[i])
		dt, ref := a.resolveType(node.Children[i+2], "")
		i += 3

		var names []string
		var indices []int
		for _, tok := range idents {
			tabIndex := a.Symbols.Insert(symtab.TabEntry{
				Name:   tok.Literal,
				Link:   symtab.NoLink,
				Obj:    types.ObjParameter,
				Type:   dt,
				Ref:    typeRef(dt, ref),
				Normal: true,
				Level:  a.Symbols.CurrentLevel(),
			})
			a.Symbols.AddParamSize(1)
			names = append(names, tok.Literal)
			indices = append(indices, tabIndex)
		}

		params = append(params, &ast.ParamDecl{
			Names:      names,
			DataType:   dt,
			TabIndices: indices,
		})
	}
	return params
}

func (a *Analyzer) visitCompoundStatement(node *parser.ParseNode) *ast.Block {
	// children: 'mulai' statement-list 'selesai'
	statements := a.visitStatementList(node.Children[1])
	return &ast.Block{
		Statements: statements,
		BlockIndex: a.Symbols.CurrentBlock(),
		Level:      a.Symbols.CurrentLevel(),
	}
}

func (a *Analyzer) visitStatementList(node *parser.ParseNode) []ast.Stmt {
	var statements []ast.Stmt
	for _, child := range node.Children {
		if child.IsTerminal() {
			continue // separators
		}
		stmt := a.visitStatement(child)
		if _, empty := stmt.(*ast.Empty); empty {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}

func (a *Analyzer) visitStatement(node *parser.ParseNode) ast.Stmt {
	switch node.Kind {
	case parser.NodeAssignmentStatement:
		return a.visitAssignmentStatement(node)
	case parser.NodeIfStatement:
		return a.visitIfStatement(node)
	case parser.NodeWhileStatement:
		return a.visitWhileStatement(node)
	case parser.NodeRepeatStatement:
		return a.visitRepeatStatement(node)
	case parser.NodeForStatement:
		return a.visitForStatement(node)
	case parser.NodeProcedureOrFunctionCall:
		return a.visitCall(node)
	case parser.NodeCompoundStatement:
		return a.visitCompoundStatement(node)
	}
	return &ast.Empty{}
}

func (a *Analyzer) visitAssignmentStatement(node *parser.ParseNode) ast.Stmt {
	// children: (IDENTIFIER | field-access) ':=' expression
	targetNode := node.Children[0]

	var target ast.Expr
	var nameTok *token.Token
	if targetNode.Kind == parser.NodeFieldAccess {
		nameTok = targetNode.Children[0].Token
		target = a.visitFieldAccess(targetNode)
	} else {
		nameTok = targetNode.Token
		tabIndex, found := a.Symbols.Lookup(nameTok.Literal)
		if !found {
			a.report(undeclared(nameTok.Literal, nameTok))
			return &ast.Empty{}
		}
		entry := a.Symbols.Tab[tabIndex]
		target = &ast.VarRef{
			Name:     nameTok.Literal,
			DataType: entry.Type,
			TabIndex: tabIndex,
			Level:    entry.Level,
		}
	}

	value := a.visitExpression(node.Children[2])
	if target.Type().Kind != types.KindUnknown && value.Type().Kind != types.KindUnknown &&
		!types.CanAssign(target.Type(), value.Type()) {
		a.report(typeMismatch(target.Type().String(), value.Type().String(), nameTok))
	}

	// The assignment carries the target's declared type even when the value
	// does not fit; the node is produced regardless.
	return &ast.Assign{
		Target:   target,
		Value:    value,
		DataType: target.Type(),
	}
}

func (a *Analyzer) visitIfStatement(node *parser.ParseNode) ast.Stmt {
	// children: 'jika' expression 'maka' statement ('selain_itu' statement)?
	condition := a.visitExpression(node.Children[1])
	if notBoolean(condition) {
		a.report(conditionNotBoolean(node.Children[0].Token))
	}

	thenStmt := a.visitStatement(node.Children[3])
	var elseStmt ast.Stmt
	if len(node.Children) > 5 {
		elseStmt = a.visitStatement(node.Children[5])
	}

	return &ast.If{Condition: condition, Then: thenStmt, Else: elseStmt}
}

func (a *Analyzer) visitWhileStatement(node *parser.ParseNode) ast.Stmt {
	// children: 'selama' expression 'lakukan' statement
	condition := a.visitExpression(node.Children[1])
	if notBoolean(condition) {
		a.report(conditionNotBoolean(node.Children[0].Token))
	}
	body := a.visitStatement(node.Children[3])
	return &ast.While{Condition: condition, Body: body}
}

func (a *Analyzer) visitRepeatStatement(node *parser.ParseNode) ast.Stmt {
	// children: 'ulangi' statement-list 'sampai' expression
	body := a.visitStatementList(node.Children[1])
	condition := a.visitExpression(node.Children[3])
	if notBoolean(condition) {
		a.report(conditionNotBoolean(node.Children[0].Token))
	}
	return &ast.Repeat{Body: body, Condition: condition}
}

func (a *Analyzer) visitForStatement(node *parser.ParseNode) ast.Stmt {
	// children: 'untuk' IDENTIFIER ':=' expression (ke|turun_ke) expression
	// 'lakukan' statement
	nameTok := node.Children[1].Token

	tabIndex, found := a.Symbols.Lookup(nameTok.Literal)
	if !found {
		a.report(undeclared(nameTok.Literal, nameTok))
		return &ast.Empty{}
	}
	if a.Symbols.Tab[tabIndex].Type.Kind != types.KindInteger {
		a.report(invalidLoopVariable(nameTok))
	}

	start := a.visitExpression(node.Children[3])
	downto := node.Children[4].Token.Literal == "turun_ke"
	end := a.visitExpression(node.Children[5])
	body := a.visitStatement(node.Children[7])

	return &ast.For{
		VarName:  nameTok.Literal,
		Start:    start,
		End:      end,
		Downto:   downto,
		Body:     body,
		TabIndex: tabIndex,
	}
}

func (a *Analyzer) visitCall(node *parser.ParseNode) *ast.ProcCall {
	// children: IDENTIFIER ('(' (parameter-list)? ')')?
	nameTok := node.Children[0].Token

	tabIndex, found := a.Symbols.Lookup(nameTok.Literal)
	if !found {
		a.report(undeclared(nameTok.Literal, nameTok))
		return &ast.ProcCall{
			Name:     nameTok.Literal,
			TabIndex: symtab.NoLink,
			DataType: types.Unknown,
		}
	}

	var args []ast.Expr
	for _, child := range node.Children {
		if child.Kind == parser.NodeParameterList {
			args = a.visitParameterList(child)
		}
	}

	return &ast.ProcCall{
		Name:     nameTok.Literal,
		Args:     args,
		TabIndex: tabIndex,
		DataType: a.Symbols.Tab[tabIndex].Type,
	}
}

func (a *Analyzer) visitParameterList(node *parser.ParseNode) []ast.Expr {
	var args []ast.Expr
	for _, child := range node.Children {
		if child.Kind == parser.NodeExpression {
			args = append(args, a.visitExpression(child))
		}
	}
	return args
}

// visitExpression handles the relational tier. The result of a comparison is
// boolean even when the operands are incompatible; the mismatch is only
// diagnosed.
func (a *Analyzer) visitExpression(node *parser.ParseNode) ast.Expr {
	if len(node.Children) == 1 {
		return a.visitSimpleExpression(node.Children[0])
	}
	if len(node.Children) != 3 {
		return &ast.Empty{}
	}

	left := a.visitSimpleExpression(node.Children[0])
	opTok := node.Children[1].Token
	right := a.visitSimpleExpression(node.Children[2])

	result, ok := types.RelationalResult(left.Type(), right.Type())
	if !ok && !eitherUnknown(left, right) {
		a.report(invalidOperation(opTok.Literal, left.Type().String()+" and "+right.Type().String(), opTok))
	}

	return &ast.BinOp{Op: opTok.Literal, Left: left, Right: right, DataType: result}
}

// visitSimpleExpression handles the additive tier, including the optional
// leading sign.
func (a *Analyzer) visitSimpleExpression(node *parser.ParseNode) ast.Expr {
	i := 0
	var result ast.Expr

	if first := node.Children[0]; first.IsTerminal() &&
		(first.Token.Literal == "+" || first.Token.Literal == "-") {
		i++
		operand := a.visitTerm(node.Children[i])
		i++
		if first.Token.Literal == "-" {
			result = &ast.UnaryOp{Op: "-", Operand: operand, DataType: operand.Type()}
		} else {
			result = operand
		}
	}

	if result == nil {
		result = a.visitTerm(node.Children[i])
		i++
	}

	for i+1 < len(node.Children) {
		opTok := node.Children[i].Token
		i++
		right := a.visitTerm(node.Children[i])
		i++
		result = a.combine(opTok, result, right, opTok.Literal == "atau")
	}
	return result
}

// visitTerm handles the multiplicative tier.
func (a *Analyzer) visitTerm(node *parser.ParseNode) ast.Expr {
	result := a.visitFactor(node.Children[0])

	i := 1
	for i+1 < len(node.Children) {
		opTok := node.Children[i].Token
		i++
		right := a.visitFactor(node.Children[i])
		i++
		result = a.combine(opTok, result, right, opTok.Literal == "dan")
	}
	return result
}

// combine synthesizes a binary node. Logical combinations stay boolean even
// on bad operands; arithmetic ones collapse to Unknown.
func (a *Analyzer) combine(opTok *token.Token, left, right ast.Expr, logical bool) ast.Expr {
	var result types.DataType
	var ok bool
	if logical {
		result, ok = types.LogicalResult(left.Type(), right.Type())
	} else {
		result, ok = types.ArithmeticResult(left.Type(), right.Type())
	}
	if !ok && !eitherUnknown(left, right) {
		a.report(invalidOperation(opTok.Literal, left.Type().String()+" and "+right.Type().String(), opTok))
	}
	return &ast.BinOp{Op: opTok.Literal, Left: left, Right: right, DataType: result}
}

// eitherUnknown suppresses follow-on operator diagnostics for subtrees that
// already failed to resolve.
func eitherUnknown(left, right ast.Expr) bool {
	return left.Type().Kind == types.KindUnknown || right.Type().Kind == types.KindUnknown
}

// notBoolean reports a usable non-boolean type; unresolved subtrees are not
// diagnosed twice.
func notBoolean(e ast.Expr) bool {
	kind := e.Type().Kind
	return kind != types.KindBoolean && kind != types.KindUnknown
}

func (a *Analyzer) visitFactor(node *parser.ParseNode) ast.Expr {
	if len(node.Children) == 0 {
		return &ast.Empty{}
	}
	child := node.Children[0]

	if child.Kind == parser.NodeProcedureOrFunctionCall {
		return a.visitCall(child)
	}
	if child.Kind == parser.NodeFieldAccess {
		return a.visitFieldAccess(child)
	}
	if !child.IsTerminal() {
		return &ast.Empty{}
	}

	tok := child.Token
	switch tok.Type {
	case token.Number:
		return numberLiteral(tok.Literal)

	case token.CharLiteral:
		ch := ' '
		for _, r := range tok.Literal {
			ch = r
			break
		}
		return &ast.Literal{Value: ast.CharValue(ch), DataType: types.Char}

	case token.StringLiteral:
		return &ast.Literal{Value: ast.StringValue(tok.Literal), DataType: types.String}

	case token.Identifier:
		return a.resolveVarRef(tok)

	case token.Keyword:
		switch tok.Literal {
		case "true":
			return &ast.Literal{Value: ast.BoolValue(true), DataType: types.Boolean}
		case "false":
			return &ast.Literal{Value: ast.BoolValue(false), DataType: types.Boolean}
		}
		return &ast.Empty{}

	case token.LogicalOperator:
		if tok.Literal == "tidak" {
			operand := a.visitFactor(node.Children[1])
			if notBoolean(operand) {
				a.report(invalidOperation("tidak", operand.Type().String(), tok))
			}
			return &ast.UnaryOp{Op: "tidak", Operand: operand, DataType: types.Boolean}
		}
		return &ast.Empty{}

	case token.LParenthesis:
		return a.visitExpression(node.Children[1])
	}

	return &ast.Empty{}
}

// resolveVarRef decorates an identifier in expression position. Unresolved
// names get an Unknown-typed zero literal so type arithmetic stays total.
func (a *Analyzer) resolveVarRef(tok *token.Token) ast.Expr {
	tabIndex, found := a.Symbols.Lookup(tok.Literal)
	if !found {
		a.report(undeclared(tok.Literal, tok))
		return &ast.Literal{Value: ast.IntValue(0), DataType: types.Unknown}
	}
	entry := a.Symbols.Tab[tabIndex]
	return &ast.VarRef{
		Name:     tok.Literal,
		DataType: entry.Type,
		TabIndex: tabIndex,
		Level:    entry.Level,
	}
}

// visitFieldAccess resolves a dotted chain. Each step searches the record
// block referenced by the previous step's table entry.
func (a *Analyzer) visitFieldAccess(node *parser.ParseNode) ast.Expr {
	baseTok := node.Children[0].Token
	result := a.resolveVarRef(baseTok)

	blockRef := symtab.NoLink
	ref, isVar := result.(*ast.VarRef)
	if isVar {
		blockRef = a.Symbols.Tab[ref.TabIndex].Ref
	}
	// Once the base or an earlier field failed, later steps are not reported
	// again.
	suppress := !isVar

	// children: IDENTIFIER ('.' IDENTIFIER)+
	for i := 2; i < len(node.Children); i += 2 {
		fieldTok := node.Children[i].Token

		fieldIndex := symtab.NoLink
		fieldType := types.Unknown
		if blockRef != symtab.NoLink {
			if idx, found := a.Symbols.LookupInBlock(blockRef, fieldTok.Literal); found {
				fieldIndex = idx
				fieldType = a.Symbols.Tab[idx].Type
			}
		}
		if fieldIndex == symtab.NoLink {
			if !suppress {
				a.report(undeclared(fieldTok.Literal, fieldTok))
			}
			suppress = true
			blockRef = symtab.NoLink
		} else {
			blockRef = a.Symbols.Tab[fieldIndex].Ref
		}

		result = &ast.FieldAccess{
			Target:   result,
			Field:    fieldTok.Literal,
			DataType: fieldType,
			TabIndex: fieldIndex,
		}
	}
	return result
}

// resolveType maps a <type> node to a DataType plus, for composite types,
// the table reference their entries should carry. declName names the record
// being declared, when known.
func (a *Analyzer) resolveType(node *parser.ParseNode, declName string) (types.DataType, int) {
	if len(node.Children) == 0 {
		return types.Unknown, symtab.NoLink
	}
	child := node.Children[0]

	switch child.Kind {
	case parser.NodeTerminal:
		switch child.Token.Literal {
		case "integer":
			return types.Integer, symtab.NoLink
		case "real":
			return types.Real, symtab.NoLink
		case "boolean":
			return types.Boolean, symtab.NoLink
		case "char":
			return types.Char, symtab.NoLink
		case "string":
			return types.String, symtab.NoLink
		}
		// Named type: resolve through the table, keeping the entry's
		// reference so record-typed variables stay addressable.
		if idx, found := a.Symbols.Lookup(child.Token.Literal); found {
			return a.Symbols.Tab[idx].Type, a.Symbols.Tab[idx].Ref
		}
		return types.Named(child.Token.Literal), symtab.NoLink

	case parser.NodeArrayType:
		return a.resolveArrayType(child), symtab.NoLink

	case parser.NodeRecordType:
		return a.resolveRecordType(child, declName)
	}

	return types.Unknown, symtab.NoLink
}

// resolveArrayType registers one atab entry per bracketed range, folding
// multi-range declarations right to left into arrays of arrays.
func (a *Analyzer) resolveArrayType(node *parser.ParseNode) types.DataType {
	var ranges []*parser.ParseNode
	var elemNode *parser.ParseNode
	for _, child := range node.Children {
		switch child.Kind {
		case parser.NodeRange:
			ranges = append(ranges, child)
		case parser.NodeTypeSpec:
			elemNode = child
		}
	}

	elemType, elemRef := a.resolveType(elemNode, "")

	for i := len(ranges) - 1; i >= 0; i-- {
		low, high := a.resolveRange(ranges[i])

		elemSize := 1
		if elemType.Kind == types.KindArray {
			elemSize = a.Symbols.ATab[elemType.Ref].TotalSize
		}

		atabIndex := a.Symbols.InsertArray(symtab.ATabEntry{
			IndexType:   types.Integer,
			ElementType: elemType,
			ElementRef:  typeRef(elemType, elemRef),
			Low:         low,
			High:        high,
			ElementSize: elemSize,
			TotalSize:   (high - low + 1) * elemSize,
		})
		elemType = types.ArrayOf(atabIndex)
		elemRef = symtab.NoLink
	}
	return elemType
}

// resolveRecordType materializes the record's fields in a fresh block and
// returns a user-defined type referencing it.
func (a *Analyzer) resolveRecordType(node *parser.ParseNode, declName string) (types.DataType, int) {
	name := declName
	if name == "" {
		name = "rekaman"
	}

	blockIndex := a.Symbols.EnterBlock()
	level := a.Symbols.CurrentLevel()

	// children: 'rekaman' (identifier-list ':' type ';'?)+ 'selesai'
	i := 1
	for i < len(node.Children)-1 {
		if node.Children[i].IsTerminal() {
			i++ // ';'
			continue
		}
		idents := identifierTokens(node.Children[i])
		dt, ref := a.resolveType(node.Children[i+2], "")
		i += 3

		for _, tok := range idents {
			tok := tok
			if _, found := a.Symbols.LookupCurrentScope(tok.Literal); found {
				a.report(redeclared(tok.Literal, &tok))
				continue
			}
			address := a.Symbols.BTab[blockIndex].VarSize
			a.Symbols.Insert(symtab.TabEntry{
				Name:    tok.Literal,
				Link:    symtab.NoLink,
				Obj:     types.ObjVariable,
				Type:    dt,
				Ref:     typeRef(dt, ref),
				Normal:  true,
				Level:   level,
				Address: address,
			})
			a.Symbols.AddVarSize(1)
		}
	}

	a.Symbols.ExitBlock()
	return types.Named(name), blockIndex
}

// resolveRange evaluates a range's bound expressions, which must reduce to
// integer literals with optional signs; named constants are not folded.
func (a *Analyzer) resolveRange(node *parser.ParseNode) (int, int) {
	lowExpr := a.visitExpression(node.Children[0])
	highExpr := a.visitExpression(node.Children[2])

	low, _ := literalInt(lowExpr)
	high, _ := literalInt(highExpr)

	if low > high {
		a.report(invalidArrayBounds(node.Children[1].Token))
	}
	return low, high
}

func literalInt(node ast.Expr) (int, bool) {
	switch n := node.(type) {
	case *ast.Literal:
		if n.Value.Kind == ast.LitInteger {
			return int(n.Value.Int), true
		}
	case *ast.UnaryOp:
		if v, ok := literalInt(n.Operand); ok {
			switch n.Op {
			case "-":
				return -v, true
			case "+":
				return v, true
			}
		}
	}
	return 0, false
}

func numberLiteral(text string) ast.Expr {
	if strings.Contains(text, ".") {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return &ast.Literal{Value: ast.RealValue(v), DataType: types.Real}
		}
	} else if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &ast.Literal{Value: ast.IntValue(v), DataType: types.Integer}
	}
	return &ast.Empty{}
}

func identifierTokens(node *parser.ParseNode) []token.Token {
	var out []token.Token
	for _, child := range node.Children {
		if child.IsTerminal() && child.Token.Type == token.Identifier {
			out = append(out, *child.Token)
		}
	}
	return out
}

// typeRef picks the table reference an entry of type dt should carry: the
// atab index for arrays, otherwise whatever composite reference resolution
// produced (a record's block), or none.
func typeRef(dt types.DataType, ref int) int {
	if dt.Kind == types.KindArray {
		return dt.Ref
	}
	return ref
}
