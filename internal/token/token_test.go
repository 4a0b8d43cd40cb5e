package token

import "testing"

func TestTokenString(t *testing.T) {
	tok := Token{Type: AssignOperator, Literal: ":="}
	if got := tok.String(); got != `ASSIGN_OPERATOR(":=")` {
		t.Errorf("String() = %q", got)
	}
}

func TestTypeNamesAreComplete(t *testing.T) {
	for typ := Keyword; typ <= RangeOperator; typ++ {
		if _, ok := typeNames[typ]; !ok {
			t.Errorf("token type %d has no name", int(typ))
		}
	}
	if got := Type(999).String(); got != "UNKNOWN(999)" {
		t.Errorf("out-of-range String() = %q", got)
	}
}
