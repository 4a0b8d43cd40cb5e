// Package types defines the NusaPascal data types and the identifier object
// kinds, together with the compatibility rules the semantic analyzer applies.
package types

import "fmt"

// Kind discriminates the closed set of data types.
type Kind int

const (
	KindUnknown Kind = iota // error sentinel, keeps type arithmetic total
	KindInteger
	KindReal
	KindBoolean
	KindChar
	KindString
	KindArray
	KindUserDefined
	KindVoid
)

// DataType is a resolved type. Array types carry their atab index in Ref;
// user-defined types carry their declared name. The zero value is Unknown.
type DataType struct {
	Kind Kind
	Ref  int    // atab index, valid only for KindArray
	Name string // declared name, valid only for KindUserDefined
}

// Predefined scalar types and the two sentinels.
var (
	Unknown = DataType{Kind: KindUnknown}
	Integer = DataType{Kind: KindInteger}
	Real    = DataType{Kind: KindReal}
	Boolean = DataType{Kind: KindBoolean}
	Char    = DataType{Kind: KindChar}
	String  = DataType{Kind: KindString}
	Void    = DataType{Kind: KindVoid}
)

// ArrayOf returns the array type referring to the given atab entry.
func ArrayOf(ref int) DataType { return DataType{Kind: KindArray, Ref: ref} }

// Named returns the user-defined type with the given declared name.
func Named(name string) DataType { return DataType{Kind: KindUserDefined, Name: name} }

func (t DataType) String() string {
	switch t.Kind {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBoolean:
		return "boolean"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindArray:
		return fmt.Sprintf("array[%d]", t.Ref)
	case KindUserDefined:
		return t.Name
	case KindVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Numeric returns the classic Pascal-S type code used by the table renderer:
// 0 void, 1 integer, 2 real, 3 boolean, 4 string, 5 char; arrays show their
// atab index, user-defined types 6, unknown "-".
func (t DataType) Numeric() string {
	switch t.Kind {
	case KindVoid:
		return "0"
	case KindInteger:
		return "1"
	case KindReal:
		return "2"
	case KindBoolean:
		return "3"
	case KindString:
		return "4"
	case KindChar:
		return "5"
	case KindArray:
		return fmt.Sprintf("%d", t.Ref)
	case KindUserDefined:
		return "6"
	default:
		return "-"
	}
}

// IsNumeric reports whether t is integer or real.
func (t DataType) IsNumeric() bool { return t.Kind == KindInteger || t.Kind == KindReal }

// IsOrdinal reports whether t can index arrays or drive a for loop.
func (t DataType) IsOrdinal() bool {
	return t.Kind == KindInteger || t.Kind == KindChar || t.Kind == KindBoolean
}

// Compatible reports whether two types may meet in a relational comparison:
// identical scalar kinds, or integer and real in either direction.
func (t DataType) Compatible(other DataType) bool {
	if t.Kind == other.Kind {
		switch t.Kind {
		case KindInteger, KindReal, KindBoolean, KindChar, KindString:
			return true
		}
	}
	return (t.Kind == KindInteger && other.Kind == KindReal) ||
		(t.Kind == KindReal && other.Kind == KindInteger)
}

// CanAssign reports whether a value of type from may be assigned to a target
// of type to. Deliberately narrower than Compatible: widening is allowed in
// exactly one direction, integer into a real target.
func CanAssign(to, from DataType) bool {
	switch {
	case to.Kind == KindUserDefined && from.Kind == KindUserDefined:
		return to.Name == from.Name
	case to.Kind == KindArray && from.Kind == KindArray:
		// Whole-array assignment needs the same descriptor.
		return to.Ref == from.Ref
	case to.Kind == KindReal && from.Kind == KindInteger:
		return true
	case to.Kind == from.Kind:
		switch to.Kind {
		case KindInteger, KindReal, KindBoolean, KindChar, KindString:
			return true
		}
	}
	return false
}

// ArithmeticResult returns the type of a binary arithmetic combination.
// Integer with integer stays integer, any real operand widens to real; every
// other pairing is invalid.
func ArithmeticResult(left, right DataType) (DataType, bool) {
	switch {
	case left.Kind == KindInteger && right.Kind == KindInteger:
		return Integer, true
	case left.Kind == KindReal && right.Kind == KindReal:
		return Real, true
	case left.Kind == KindInteger && right.Kind == KindReal,
		left.Kind == KindReal && right.Kind == KindInteger:
		return Real, true
	}
	return Unknown, false
}

// RelationalResult returns the boolean result type of a comparison; ok is
// false when the operands are incompatible.
func RelationalResult(left, right DataType) (DataType, bool) {
	return Boolean, left.Compatible(right)
}

// LogicalResult returns the result type of a logical combination; both
// operands must be boolean.
func LogicalResult(left, right DataType) (DataType, bool) {
	return Boolean, left.Kind == KindBoolean && right.Kind == KindBoolean
}

// ObjectKind classifies what an identifier names.
type ObjectKind int

const (
	ObjConstant ObjectKind = iota
	ObjVariable
	ObjType
	ObjProcedure
	ObjFunction
	ObjParameter
	ObjProgram
)

func (k ObjectKind) String() string {
	switch k {
	case ObjConstant:
		return "constant"
	case ObjVariable:
		return "variable"
	case ObjType:
		return "type"
	case ObjProcedure:
		return "procedure"
	case ObjFunction:
		return "function"
	case ObjParameter:
		return "parameter"
	case ObjProgram:
		return "program"
	default:
		return "unknown"
	}
}
