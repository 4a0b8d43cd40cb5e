package semantic

import (
	"fmt"

	"github.com/nusapascal/nusapascal/internal/token"
)

// ErrorKind is the closed set of semantic diagnostic kinds. Diagnostics are
// accumulated, never fatal: analysis always runs to completion.
type ErrorKind int

const (
	UndeclaredIdentifier ErrorKind = iota
	RedeclaredIdentifier
	TypeMismatch
	InvalidOperation
	WrongParameterCount // reserved, parameter signatures are not checked yet
	NotCallable         // reserved
	NotAssignable       // reserved
	InvalidArrayBounds
	InvalidLoopVariable
	ConditionNotBoolean
)

// Error is one accumulated semantic diagnostic. Token points at the
// offending source token when one was at hand.
type Error struct {
	Kind    ErrorKind
	Message string
	Token   *token.Token
}

func (e *Error) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("semantic error at %s: %s", e.Token, e.Message)
	}
	return fmt.Sprintf("semantic error: %s", e.Message)
}

func undeclared(name string, tok *token.Token) *Error {
	return &Error{
		Kind:    UndeclaredIdentifier,
		Message: fmt.Sprintf("Undeclared identifier '%s'", name),
		Token:   tok,
	}
}

func redeclared(name string, tok *token.Token) *Error {
	return &Error{
		Kind:    RedeclaredIdentifier,
		Message: fmt.Sprintf("Identifier '%s' is already declared in this scope", name),
		Token:   tok,
	}
}

func typeMismatch(expected, found string, tok *token.Token) *Error {
	return &Error{
		Kind:    TypeMismatch,
		Message: fmt.Sprintf("Type mismatch: expected %s, found %s", expected, found),
		Token:   tok,
	}
}

func invalidOperation(op, operandTypes string, tok *token.Token) *Error {
	return &Error{
		Kind:    InvalidOperation,
		Message: fmt.Sprintf("Invalid operation '%s' for types %s", op, operandTypes),
		Token:   tok,
	}
}

func invalidArrayBounds(tok *token.Token) *Error {
	return &Error{
		Kind:    InvalidArrayBounds,
		Message: "Invalid array bounds: lower bound must be less than or equal to upper bound",
		Token:   tok,
	}
}

func invalidLoopVariable(tok *token.Token) *Error {
	return &Error{
		Kind:    InvalidLoopVariable,
		Message: "Loop variable must be of integer type",
		Token:   tok,
	}
}

func conditionNotBoolean(tok *token.Token) *Error {
	return &Error{
		Kind:    ConditionNotBoolean,
		Message: "Condition must be of boolean type",
		Token:   tok,
	}
}
