package parser

import (
	"fmt"

	"github.com/nusapascal/nusapascal/internal/token"
)

// SyntaxError is the single fatal parse failure: the first grammar mismatch
// aborts the whole parse. Token is nil when the input ended too early.
type SyntaxError struct {
	Message string
	Token   *token.Token
}

func (e *SyntaxError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("syntax error: %s (found %s)", e.Message, e.Token)
	}
	return fmt.Sprintf("syntax error: %s (at end of input)", e.Message)
}

// Parser is a deterministic recursive descent parser over a finished token
// sequence. One instance parses one sequence.
type Parser struct {
	tokens  []token.Token
	current int
}

// New creates a parser over tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a complete program and fails if any input remains after the
// terminal dot.
func (p *Parser) Parse() (*ParseNode, error) {
	program, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorHere("Unexpected token after end of program.")
	}
	return program, nil
}

func (p *Parser) peek() *token.Token {
	if p.atEnd() {
		return nil
	}
	return &p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.current]
	p.current++
	return tok
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) atEnd() bool {
	return p.current >= len(p.tokens)
}

func (p *Parser) check(t token.Type) bool {
	return !p.atEnd() && p.tokens[p.current].Type == t
}

func (p *Parser) checkValue(t token.Type, value string) bool {
	return !p.atEnd() && p.tokens[p.current].Type == t && p.tokens[p.current].Literal == value
}

func (p *Parser) checkKeyword(value string) bool {
	return p.checkValue(token.Keyword, value)
}

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(value string) bool {
	if p.checkKeyword(value) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t token.Type, message string) (*ParseNode, error) {
	if p.check(t) {
		return NewTerminal(p.advance()), nil
	}
	return nil, p.errorHere(message)
}

func (p *Parser) consumeKeyword(value, message string) (*ParseNode, error) {
	if p.checkKeyword(value) {
		return NewTerminal(p.advance()), nil
	}
	return nil, p.errorHere(message)
}

func (p *Parser) errorHere(message string) *SyntaxError {
	return &SyntaxError{Message: message, Token: p.peek()}
}

// Grammar rule functions. Each returns the rule's parse node or propagates
// the first error immediately.

// <program> -> <program-header> <declaration-part> <compound-statement> DOT
func (p *Parser) parseProgram() (*ParseNode, error) {
	node := NewNode(NodeProgram)
	header, err := p.parseProgramHeader()
	if err != nil {
		return nil, err
	}
	decls, err := p.parseDeclarationPart()
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompoundStatement()
	if err != nil {
		return nil, err
	}
	dot, err := p.consume(token.Dot, "Expected '.' at the end of the program.")
	if err != nil {
		return nil, err
	}
	node.add(header, decls, body, dot)
	return node, nil
}

// <program-header> -> KEYWORD(program) IDENTIFIER SEMICOLON
func (p *Parser) parseProgramHeader() (*ParseNode, error) {
	node := NewNode(NodeProgramHeader)
	kw, err := p.consumeKeyword("program", "Expected 'program' keyword.")
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.Identifier, "Expected program name.")
	if err != nil {
		return nil, err
	}
	semi, err := p.consume(token.Semicolon, "Expected ';' after program name.")
	if err != nil {
		return nil, err
	}
	node.add(kw, name, semi)
	return node, nil
}

// <declaration-part> -> (const-declaration)* (type-declaration)*
// (var-declaration)* (subprogram-declaration)*
func (p *Parser) parseDeclarationPart() (*ParseNode, error) {
	node := NewNode(NodeDeclarationPart)

	for p.checkKeyword("konstanta") {
		decl, err := p.parseConstDeclaration()
		if err != nil {
			return nil, err
		}
		node.add(decl)
	}
	for p.checkKeyword("tipe") {
		decl, err := p.parseTypeDeclaration()
		if err != nil {
			return nil, err
		}
		node.add(decl)
	}
	for p.checkKeyword("variabel") {
		decl, err := p.parseVarDeclaration()
		if err != nil {
			return nil, err
		}
		node.add(decl)
	}
	for p.checkKeyword("prosedur") || p.checkKeyword("fungsi") {
		decl, err := p.parseSubprogramDeclaration()
		if err != nil {
			return nil, err
		}
		node.add(decl)
	}

	return node, nil
}

// <const-declaration> -> KEYWORD(konstanta) (IDENTIFIER = expression SEMICOLON)+
func (p *Parser) parseConstDeclaration() (*ParseNode, error) {
	node := NewNode(NodeConstDeclaration)
	kw, err := p.consumeKeyword("konstanta", "Expected 'konstanta' keyword.")
	if err != nil {
		return nil, err
	}
	node.add(kw)

	for {
		name, err := p.consume(token.Identifier, "Expected constant identifier.")
		if err != nil {
			return nil, err
		}
		eq, err := p.consume(token.RelationalOperator, "Expected '=' in constant declaration.")
		if err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		semi, err := p.consume(token.Semicolon, "Expected ';' after constant declaration.")
		if err != nil {
			return nil, err
		}
		node.add(name, eq, value, semi)

		if !p.check(token.Identifier) {
			break
		}
	}
	return node, nil
}

// <type-declaration> -> KEYWORD(tipe) (IDENTIFIER = type SEMICOLON)+
func (p *Parser) parseTypeDeclaration() (*ParseNode, error) {
	node := NewNode(NodeTypeDeclaration)
	kw, err := p.consumeKeyword("tipe", "Expected 'tipe' keyword.")
	if err != nil {
		return nil, err
	}
	node.add(kw)

	for {
		name, err := p.consume(token.Identifier, "Expected type identifier.")
		if err != nil {
			return nil, err
		}
		eq, err := p.consume(token.RelationalOperator, "Expected '=' in type declaration.")
		if err != nil {
			return nil, err
		}
		def, err := p.parseType()
		if err != nil {
			return nil, err
		}
		semi, err := p.consume(token.Semicolon, "Expected ';' after type declaration.")
		if err != nil {
			return nil, err
		}
		node.add(name, eq, def, semi)

		if !p.check(token.Identifier) {
			break
		}
	}
	return node, nil
}

// <var-declaration> -> KEYWORD(variabel) (identifier-list COLON type SEMICOLON)+
func (p *Parser) parseVarDeclaration() (*ParseNode, error) {
	node := NewNode(NodeVarDeclaration)
	kw, err := p.consumeKeyword("variabel", "Expected 'variabel' keyword.")
	if err != nil {
		return nil, err
	}
	node.add(kw)

	for {
		ids, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		colon, err := p.consume(token.Colon, "Expected ':' after identifier list.")
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		semi, err := p.consume(token.Semicolon, "Expected ';' after variable declaration.")
		if err != nil {
			return nil, err
		}
		node.add(ids, colon, typ, semi)

		if !p.check(token.Identifier) {
			break
		}
	}
	return node, nil
}

// <identifier-list> -> IDENTIFIER (COMMA IDENTIFIER)*
func (p *Parser) parseIdentifierList() (*ParseNode, error) {
	node := NewNode(NodeIdentifierList)
	id, err := p.consume(token.Identifier, "Expected identifier.")
	if err != nil {
		return nil, err
	}
	node.add(id)

	for p.match(token.Comma) {
		node.add(NewTerminal(p.previous()))
		id, err := p.consume(token.Identifier, "Expected identifier after ','.")
		if err != nil {
			return nil, err
		}
		node.add(id)
	}
	return node, nil
}

// <type> -> KEYWORD(integer|real|boolean|char|string) | IDENTIFIER
// | array-type | record-type
func (p *Parser) parseType() (*ParseNode, error) {
	node := NewNode(NodeTypeSpec)

	switch {
	case p.checkKeyword("larik"):
		arr, err := p.parseArrayType()
		if err != nil {
			return nil, err
		}
		node.add(arr)
	case p.checkKeyword("rekaman"):
		rec, err := p.parseRecordType()
		if err != nil {
			return nil, err
		}
		node.add(rec)
	case p.checkKeyword("integer") || p.checkKeyword("real") ||
		p.checkKeyword("boolean") || p.checkKeyword("char") || p.checkKeyword("string"):
		node.add(NewTerminal(p.advance()))
	case p.check(token.Identifier):
		node.add(NewTerminal(p.advance()))
	default:
		return nil, p.errorHere("Expected type name.")
	}
	return node, nil
}

// <array-type> -> KEYWORD(larik) LBRACKET range (COMMA range)* RBRACKET
// KEYWORD(dari) type
func (p *Parser) parseArrayType() (*ParseNode, error) {
	node := NewNode(NodeArrayType)
	kw, err := p.consumeKeyword("larik", "Expected 'larik' keyword.")
	if err != nil {
		return nil, err
	}
	lb, err := p.consume(token.LBracket, "Expected '[' after 'larik'.")
	if err != nil {
		return nil, err
	}
	node.add(kw, lb)

	rng, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	node.add(rng)
	for p.match(token.Comma) {
		node.add(NewTerminal(p.previous()))
		rng, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		node.add(rng)
	}

	rb, err := p.consume(token.RBracket, "Expected ']' after range.")
	if err != nil {
		return nil, err
	}
	of, err := p.consumeKeyword("dari", "Expected 'dari' keyword.")
	if err != nil {
		return nil, err
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	node.add(rb, of, elem)
	return node, nil
}

// <record-type> -> KEYWORD(rekaman) identifier-list COLON type
// (SEMICOLON identifier-list COLON type)* (SEMICOLON)? KEYWORD(selesai)
func (p *Parser) parseRecordType() (*ParseNode, error) {
	node := NewNode(NodeRecordType)
	kw, err := p.consumeKeyword("rekaman", "Expected 'rekaman' keyword.")
	if err != nil {
		return nil, err
	}
	node.add(kw)

	for {
		ids, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		colon, err := p.consume(token.Colon, "Expected ':' after field identifiers.")
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node.add(ids, colon, typ)

		if !p.match(token.Semicolon) {
			break
		}
		node.add(NewTerminal(p.previous()))
		if p.checkKeyword("selesai") {
			break
		}
	}

	end, err := p.consumeKeyword("selesai", "Expected 'selesai' after record fields.")
	if err != nil {
		return nil, err
	}
	node.add(end)
	return node, nil
}

// <range> -> expression RANGE_OPERATOR expression
func (p *Parser) parseRange() (*ParseNode, error) {
	node := NewNode(NodeRange)
	low, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	op, err := p.consume(token.RangeOperator, "Expected '..' in range.")
	if err != nil {
		return nil, err
	}
	high, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.add(low, op, high)
	return node, nil
}

// <subprogram-declaration> -> procedure-declaration | function-declaration
func (p *Parser) parseSubprogramDeclaration() (*ParseNode, error) {
	node := NewNode(NodeSubprogramDeclaration)
	switch {
	case p.checkKeyword("prosedur"):
		decl, err := p.parseProcedureDeclaration()
		if err != nil {
			return nil, err
		}
		node.add(decl)
	case p.checkKeyword("fungsi"):
		decl, err := p.parseFunctionDeclaration()
		if err != nil {
			return nil, err
		}
		node.add(decl)
	default:
		return nil, p.errorHere("Expected 'prosedur' or 'fungsi' keyword.")
	}
	return node, nil
}

// <procedure-declaration> -> KEYWORD(prosedur) IDENTIFIER
// (formal-parameter-list)? SEMICOLON declaration-part compound-statement
// SEMICOLON
func (p *Parser) parseProcedureDeclaration() (*ParseNode, error) {
	node := NewNode(NodeProcedureDeclaration)
	kw, err := p.consumeKeyword("prosedur", "Expected 'prosedur' keyword.")
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.Identifier, "Expected procedure name.")
	if err != nil {
		return nil, err
	}
	node.add(kw, name)

	if p.check(token.LParenthesis) {
		params, err := p.parseFormalParameterList()
		if err != nil {
			return nil, err
		}
		node.add(params)
	}

	semi, err := p.consume(token.Semicolon, "Expected ';' after procedure header.")
	if err != nil {
		return nil, err
	}
	decls, err := p.parseDeclarationPart()
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompoundStatement()
	if err != nil {
		return nil, err
	}
	end, err := p.consume(token.Semicolon, "Expected ';' after procedure body.")
	if err != nil {
		return nil, err
	}
	node.add(semi, decls, body, end)
	return node, nil
}

// <function-declaration> -> KEYWORD(fungsi) IDENTIFIER
// (formal-parameter-list)? COLON type SEMICOLON declaration-part
// compound-statement SEMICOLON
func (p *Parser) parseFunctionDeclaration() (*ParseNode, error) {
	node := NewNode(NodeFunctionDeclaration)
	kw, err := p.consumeKeyword("fungsi", "Expected 'fungsi' keyword.")
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.Identifier, "Expected function name.")
	if err != nil {
		return nil, err
	}
	node.add(kw, name)

	if p.check(token.LParenthesis) {
		params, err := p.parseFormalParameterList()
		if err != nil {
			return nil, err
		}
		node.add(params)
	}

	colon, err := p.consume(token.Colon, "Expected ':' after function parameters.")
	if err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	semi, err := p.consume(token.Semicolon, "Expected ';' after function header.")
	if err != nil {
		return nil, err
	}
	decls, err := p.parseDeclarationPart()
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompoundStatement()
	if err != nil {
		return nil, err
	}
	end, err := p.consume(token.Semicolon, "Expected ';' after function body.")
	if err != nil {
		return nil, err
	}
	node.add(colon, ret, semi, decls, body, end)
	return node, nil
}

// <formal-parameter-list> -> LPARENTHESIS identifier-list COLON type
// (SEMICOLON identifier-list COLON type)* RPARENTHESIS
func (p *Parser) parseFormalParameterList() (*ParseNode, error) {
	node := NewNode(NodeFormalParameterList)
	lp, err := p.consume(token.LParenthesis, "Expected '(' to start parameter list.")
	if err != nil {
		return nil, err
	}
	node.add(lp)

	for {
		ids, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		colon, err := p.consume(token.Colon, "Expected ':' after parameter identifiers.")
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node.add(ids, colon, typ)

		if !p.match(token.Semicolon) {
			break
		}
		node.add(NewTerminal(p.previous()))
	}

	rp, err := p.consume(token.RParenthesis, "Expected ')' to end parameter list.")
	if err != nil {
		return nil, err
	}
	node.add(rp)
	return node, nil
}

// <compound-statement> -> KEYWORD(mulai) statement-list KEYWORD(selesai)
func (p *Parser) parseCompoundStatement() (*ParseNode, error) {
	node := NewNode(NodeCompoundStatement)
	begin, err := p.consumeKeyword("mulai", "Expected 'mulai' keyword.")
	if err != nil {
		return nil, err
	}
	list, err := p.parseStatementList("selesai")
	if err != nil {
		return nil, err
	}
	end, err := p.consumeKeyword("selesai", "Expected 'selesai' keyword.")
	if err != nil {
		return nil, err
	}
	node.add(begin, list, end)
	return node, nil
}

// <statement-list> -> statement (SEMICOLON statement)*
// The list runs until the enclosing construct's closing keyword.
func (p *Parser) parseStatementList(stop string) (*ParseNode, error) {
	node := NewNode(NodeStatementList)

	if !p.checkKeyword(stop) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.add(stmt)

		for p.match(token.Semicolon) {
			node.add(NewTerminal(p.previous()))
			if p.checkKeyword(stop) {
				break
			}
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			node.add(stmt)
		}
	}
	return node, nil
}

// <statement> -> assignment | if | while | repeat | for | compound | call
// An identifier needs one token of lookahead to tell an assignment from a
// call; the position is restored before redispatching.
func (p *Parser) parseStatement() (*ParseNode, error) {
	switch {
	case p.checkKeyword("jika"):
		return p.parseIfStatement()
	case p.checkKeyword("selama"):
		return p.parseWhileStatement()
	case p.checkKeyword("ulangi"):
		return p.parseRepeatStatement()
	case p.checkKeyword("untuk"):
		return p.parseForStatement()
	case p.checkKeyword("mulai"):
		return p.parseCompoundStatement()
	case p.check(token.Identifier):
		saved := p.current
		p.advance()
		isAssign := p.check(token.AssignOperator) || p.check(token.Dot)
		p.current = saved
		if isAssign {
			return p.parseAssignmentStatement()
		}
		return p.parseCall()
	default:
		// Empty statement.
		return NewNode(NodeStatementList), nil
	}
}

// <assignment-statement> -> (IDENTIFIER | field-access) ASSIGN_OPERATOR
// expression
func (p *Parser) parseAssignmentStatement() (*ParseNode, error) {
	node := NewNode(NodeAssignmentStatement)
	target, err := p.consume(token.Identifier, "Expected identifier.")
	if err != nil {
		return nil, err
	}
	if p.check(token.Dot) {
		access := NewNode(NodeFieldAccess)
		access.add(target)
		for p.match(token.Dot) {
			access.add(NewTerminal(p.previous()))
			field, err := p.consume(token.Identifier, "Expected field name after '.'.")
			if err != nil {
				return nil, err
			}
			access.add(field)
		}
		target = access
	}
	op, err := p.consume(token.AssignOperator, "Expected ':=' operator.")
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.add(target, op, value)
	return node, nil
}

// <if-statement> -> KEYWORD(jika) expression KEYWORD(maka) statement
// (KEYWORD(selain_itu) statement)?
func (p *Parser) parseIfStatement() (*ParseNode, error) {
	node := NewNode(NodeIfStatement)
	kw, err := p.consumeKeyword("jika", "Expected 'jika' keyword.")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.consumeKeyword("maka", "Expected 'maka' keyword.")
	if err != nil {
		return nil, err
	}
	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.add(kw, cond, then, thenStmt)

	if p.matchKeyword("selain_itu") {
		node.add(NewTerminal(p.previous()))
		elseStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.add(elseStmt)
	}
	return node, nil
}

// <while-statement> -> KEYWORD(selama) expression KEYWORD(lakukan) statement
func (p *Parser) parseWhileStatement() (*ParseNode, error) {
	node := NewNode(NodeWhileStatement)
	kw, err := p.consumeKeyword("selama", "Expected 'selama' keyword.")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	do, err := p.consumeKeyword("lakukan", "Expected 'lakukan' keyword.")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.add(kw, cond, do, body)
	return node, nil
}

// <repeat-statement> -> KEYWORD(ulangi) statement-list KEYWORD(sampai)
// expression
func (p *Parser) parseRepeatStatement() (*ParseNode, error) {
	node := NewNode(NodeRepeatStatement)
	kw, err := p.consumeKeyword("ulangi", "Expected 'ulangi' keyword.")
	if err != nil {
		return nil, err
	}
	list, err := p.parseStatementList("sampai")
	if err != nil {
		return nil, err
	}
	until, err := p.consumeKeyword("sampai", "Expected 'sampai' keyword.")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.add(kw, list, until, cond)
	return node, nil
}

// <for-statement> -> KEYWORD(untuk) IDENTIFIER ASSIGN_OPERATOR expression
// (KEYWORD(ke)|KEYWORD(turun_ke)) expression KEYWORD(lakukan) statement
func (p *Parser) parseForStatement() (*ParseNode, error) {
	node := NewNode(NodeForStatement)
	kw, err := p.consumeKeyword("untuk", "Expected 'untuk' keyword.")
	if err != nil {
		return nil, err
	}
	loopVar, err := p.consume(token.Identifier, "Expected loop variable.")
	if err != nil {
		return nil, err
	}
	assign, err := p.consume(token.AssignOperator, "Expected ':=' operator.")
	if err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.add(kw, loopVar, assign, start)

	if p.matchKeyword("ke") || p.matchKeyword("turun_ke") {
		node.add(NewTerminal(p.previous()))
	} else {
		return nil, p.errorHere("Expected 'ke' or 'turun_ke' keyword.")
	}

	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	do, err := p.consumeKeyword("lakukan", "Expected 'lakukan' keyword.")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.add(end, do, body)
	return node, nil
}

// <procedure/function-call> -> IDENTIFIER
// (LPARENTHESIS (parameter-list)? RPARENTHESIS)?
func (p *Parser) parseCall() (*ParseNode, error) {
	node := NewNode(NodeProcedureOrFunctionCall)
	name, err := p.consume(token.Identifier, "Expected procedure or function name.")
	if err != nil {
		return nil, err
	}
	node.add(name)

	if p.match(token.LParenthesis) {
		node.add(NewTerminal(p.previous()))
		if !p.check(token.RParenthesis) {
			args, err := p.parseParameterList()
			if err != nil {
				return nil, err
			}
			node.add(args)
		}
		rp, err := p.consume(token.RParenthesis, "Expected ')' after parameter list.")
		if err != nil {
			return nil, err
		}
		node.add(rp)
	}
	return node, nil
}

// <parameter-list> -> expression (COMMA expression)*
func (p *Parser) parseParameterList() (*ParseNode, error) {
	node := NewNode(NodeParameterList)
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.add(arg)

	for p.match(token.Comma) {
		node.add(NewTerminal(p.previous()))
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.add(arg)
	}
	return node, nil
}

// <expression> -> simple-expression (relational-operator simple-expression)?
func (p *Parser) parseExpression() (*ParseNode, error) {
	node := NewNode(NodeExpression)
	left, err := p.parseSimpleExpression()
	if err != nil {
		return nil, err
	}
	node.add(left)

	if p.check(token.RelationalOperator) {
		op := NewTerminal(p.advance())
		right, err := p.parseSimpleExpression()
		if err != nil {
			return nil, err
		}
		node.add(op, right)
	}
	return node, nil
}

// <simple-expression> -> (+|-)? term (additive-operator term)*
func (p *Parser) parseSimpleExpression() (*ParseNode, error) {
	node := NewNode(NodeSimpleExpression)

	if p.checkValue(token.ArithmeticOperator, "+") || p.checkValue(token.ArithmeticOperator, "-") {
		node.add(NewTerminal(p.advance()))
	}

	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	node.add(term)

	for {
		op, ok := p.matchAdditiveOperator()
		if !ok {
			break
		}
		node.add(NewTerminal(op))
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node.add(term)
	}
	return node, nil
}

// <term> -> factor (multiplicative-operator factor)*
func (p *Parser) parseTerm() (*ParseNode, error) {
	node := NewNode(NodeTerm)
	factor, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	node.add(factor)

	for {
		op, ok := p.matchMultiplicativeOperator()
		if !ok {
			break
		}
		node.add(NewTerminal(op))
		factor, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node.add(factor)
	}
	return node, nil
}

// <factor> -> NUMBER | CHAR_LITERAL | STRING_LITERAL | KEYWORD(true|false)
// | LPARENTHESIS expression RPARENTHESIS | LOGICAL_OPERATOR(tidak) factor
// | IDENTIFIER (field-access | call)?
func (p *Parser) parseFactor() (*ParseNode, error) {
	node := NewNode(NodeFactor)

	switch {
	case p.match(token.Number), p.match(token.CharLiteral), p.match(token.StringLiteral):
		node.add(NewTerminal(p.previous()))

	case p.checkKeyword("true") || p.checkKeyword("false"):
		node.add(NewTerminal(p.advance()))

	case p.match(token.LParenthesis):
		node.add(NewTerminal(p.previous()))
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		rp, err := p.consume(token.RParenthesis, "Expected ')' after expression.")
		if err != nil {
			return nil, err
		}
		node.add(expr, rp)

	case p.checkValue(token.LogicalOperator, "tidak"):
		node.add(NewTerminal(p.advance()))
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node.add(operand)

	case p.check(token.Identifier):
		id := p.advance()
		switch {
		case p.check(token.LParenthesis):
			call := NewNode(NodeProcedureOrFunctionCall)
			call.add(NewTerminal(id))
			lp, err := p.consume(token.LParenthesis, "Expected '('.")
			if err != nil {
				return nil, err
			}
			call.add(lp)
			if !p.check(token.RParenthesis) {
				args, err := p.parseParameterList()
				if err != nil {
					return nil, err
				}
				call.add(args)
			}
			rp, err := p.consume(token.RParenthesis, "Expected ')' after parameters.")
			if err != nil {
				return nil, err
			}
			call.add(rp)
			node.add(call)
		case p.check(token.Dot):
			access := NewNode(NodeFieldAccess)
			access.add(NewTerminal(id))
			for p.match(token.Dot) {
				access.add(NewTerminal(p.previous()))
				field, err := p.consume(token.Identifier, "Expected field name after '.'.")
				if err != nil {
					return nil, err
				}
				access.add(field)
			}
			node.add(access)
		default:
			node.add(NewTerminal(id))
		}

	default:
		return nil, p.errorHere("Expected a factor (e.g., number, identifier, or '(expression)').")
	}
	return node, nil
}

// <additive-operator> -> + | - | atau
func (p *Parser) matchAdditiveOperator() (token.Token, bool) {
	if p.checkValue(token.ArithmeticOperator, "+") ||
		p.checkValue(token.ArithmeticOperator, "-") ||
		p.checkValue(token.LogicalOperator, "atau") {
		return p.advance(), true
	}
	return token.Token{}, false
}

// <multiplicative-operator> -> * | / | bagi | mod | dan
func (p *Parser) matchMultiplicativeOperator() (token.Token, bool) {
	if p.checkValue(token.ArithmeticOperator, "*") ||
		p.checkValue(token.ArithmeticOperator, "/") ||
		p.checkKeyword("bagi") || p.checkKeyword("mod") ||
		p.checkValue(token.LogicalOperator, "dan") {
		return p.advance(), true
	}
	return token.Token{}, false
}
