package parser

import (
	"strings"
	"testing"

	"github.com/nusapascal/nusapascal/internal/dfa"
	"github.com/nusapascal/nusapascal/internal/lexer"
	"github.com/nusapascal/nusapascal/internal/token"
)

func lexSource(t *testing.T, source string) []token.Token {
	t.Helper()
	table, err := dfa.Load("../../dfa_rules.json")
	if err != nil {
		t.Fatalf("loading reference rules: %v", err)
	}
	tokens, err := lexer.New(source, table).Tokenize()
	if err != nil {
		t.Fatalf("tokenizing: %v", err)
	}
	return tokens
}

func parseSource(t *testing.T, source string) *ParseNode {
	t.Helper()
	tree, err := New(lexSource(t, source)).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return tree
}

const validProgram = `program contoh;
konstanta batas = 10;
tipe
    daftar = larik[1..10] dari integer;
    titik = rekaman
        x, y: integer
    selesai;
variabel
    i, jumlah: integer;
    p: titik;

fungsi dobel(n: integer): integer;
mulai
    dobel := n * 2
selesai;

prosedur cetak(n: integer);
mulai
    writeln(n)
selesai;

mulai
    jumlah := 0;
    untuk i := 1 ke batas lakukan
        jumlah := jumlah + dobel(i);
    selama jumlah > 0 lakukan
        jumlah := jumlah - 1;
    ulangi
        jumlah := jumlah + 1
    sampai jumlah >= batas;
    p.x := jumlah;
    jika jumlah = batas maka
        cetak(jumlah)
    selain_itu
        cetak(0)
selesai.`

// TestRoundTrip checks that the parse tree's terminals, read left to right,
// are exactly the input token sequence.
func TestRoundTrip(t *testing.T) {
	tokens := lexSource(t, validProgram)
	tree, err := New(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	leaves := tree.Terminals()
	if len(leaves) != len(tokens) {
		t.Fatalf("tree has %d terminals, input has %d tokens", len(leaves), len(tokens))
	}
	for i := range tokens {
		if leaves[i] != tokens[i] {
			t.Errorf("terminals[%d] = %s, want %s", i, leaves[i], tokens[i])
		}
	}
}

func TestProgramShape(t *testing.T) {
	tree := parseSource(t, "program kecil; mulai selesai.")

	if tree.Kind != NodeProgram {
		t.Fatalf("root kind = %v, want NodeProgram", tree.Kind)
	}
	if len(tree.Children) != 4 {
		t.Fatalf("root has %d children, want 4", len(tree.Children))
	}
	if tree.Children[0].Kind != NodeProgramHeader {
		t.Errorf("children[0] = %v, want NodeProgramHeader", tree.Children[0].Kind)
	}
	if tree.Children[1].Kind != NodeDeclarationPart {
		t.Errorf("children[1] = %v, want NodeDeclarationPart", tree.Children[1].Kind)
	}
	if tree.Children[2].Kind != NodeCompoundStatement {
		t.Errorf("children[2] = %v, want NodeCompoundStatement", tree.Children[2].Kind)
	}
	dot := tree.Children[3]
	if !dot.IsTerminal() || dot.Token.Type != token.Dot {
		t.Errorf("children[3] = %s, want the final dot", dot.Label())
	}
}

func TestMissingFinalDot(t *testing.T) {
	_, err := New(lexSource(t, "program kecil; mulai selesai")).Parse()
	if err == nil {
		t.Fatal("Parse accepted a program without the final dot")
	}
	synErr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if synErr.Message != "Expected '.' at the end of the program." {
		t.Errorf("message = %q", synErr.Message)
	}
	if synErr.Token != nil {
		t.Errorf("Token = %v, want nil at end of input", synErr.Token)
	}
}

func TestTrailingInputRejected(t *testing.T) {
	_, err := New(lexSource(t, "program kecil; mulai selesai. x")).Parse()
	if err == nil {
		t.Fatal("Parse accepted trailing input after the final dot")
	}
}

func TestSyntaxErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			"missing program keyword",
			"mulai selesai.",
			"Expected 'program' keyword.",
		},
		{
			"missing program name",
			"program ; mulai selesai.",
			"Expected program name.",
		},
		{
			"missing semicolon after header",
			"program kecil mulai selesai.",
			"Expected ';' after program name.",
		},
		{
			"missing type name",
			"program kecil; variabel x: ; mulai selesai.",
			"Expected type name.",
		},
		{
			"missing maka",
			"program kecil; mulai jika 1 = 1 x := 2 selesai.",
			"Expected 'maka' keyword.",
		},
		{
			"missing loop direction",
			"program kecil; mulai untuk i := 1 lakukan i := 2 selesai.",
			"Expected 'ke' or 'turun_ke' keyword.",
		},
		{
			"bad factor",
			"program kecil; mulai x := ; selesai.",
			"Expected a factor (e.g., number, identifier, or '(expression)').",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(lexSource(t, tt.source)).Parse()
			if err == nil {
				t.Fatal("Parse accepted invalid input")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("error = %q, want it to contain %q", err, tt.expected)
			}
		})
	}
}

// TestAssignmentVsCall pins the one-token lookahead: both start with an
// identifier and only the next token separates them.
func TestAssignmentVsCall(t *testing.T) {
	tree := parseSource(t, "program kecil; mulai x := 1; tulis(x); maju selesai.")
	list := tree.Children[2].Children[1]

	var kinds []NodeKind
	for _, child := range list.Children {
		if !child.IsTerminal() {
			kinds = append(kinds, child.Kind)
		}
	}
	expected := []NodeKind{NodeAssignmentStatement, NodeProcedureOrFunctionCall, NodeProcedureOrFunctionCall}
	if len(kinds) != len(expected) {
		t.Fatalf("got %d statements, want %d", len(kinds), len(expected))
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("statement[%d] kind = %v, want %v", i, kinds[i], expected[i])
		}
	}
}

func TestRecordTypeParses(t *testing.T) {
	tree := parseSource(t, `program kecil;
tipe titik = rekaman
    x, y: integer;
    label: string
selesai;
mulai selesai.`)

	decl := tree.Children[1].Children[0]
	if decl.Kind != NodeTypeDeclaration {
		t.Fatalf("declaration kind = %v, want NodeTypeDeclaration", decl.Kind)
	}
	spec := decl.Children[3]
	if spec.Kind != NodeTypeSpec || spec.Children[0].Kind != NodeRecordType {
		t.Fatalf("type spec does not wrap a record type")
	}
}

func TestMultiRangeArrayType(t *testing.T) {
	tree := parseSource(t, `program kecil;
variabel m: larik[1..3, 0..9] dari real;
mulai selesai.`)

	spec := tree.Children[1].Children[0].Children[3]
	arr := spec.Children[0]
	if arr.Kind != NodeArrayType {
		t.Fatalf("type spec wraps %v, want NodeArrayType", arr.Kind)
	}
	ranges := 0
	for _, child := range arr.Children {
		if child.Kind == NodeRange {
			ranges++
		}
	}
	if ranges != 2 {
		t.Errorf("array type has %d ranges, want 2", ranges)
	}
}

func TestFieldAccessChain(t *testing.T) {
	tree := parseSource(t, "program kecil; mulai x := a.b.c selesai.")

	leaves := tree.Terminals()
	dots := 0
	for _, tok := range leaves {
		if tok.Type == token.Dot {
			dots++
		}
	}
	// Two chain dots plus the program terminator.
	if dots != 3 {
		t.Errorf("terminal stream has %d dots, want 3", dots)
	}
}

func TestEmptyStatementBetweenSemicolons(t *testing.T) {
	// A trailing semicolon before 'selesai' is allowed.
	parseSource(t, "program kecil; mulai x := 1; selesai.")
}
