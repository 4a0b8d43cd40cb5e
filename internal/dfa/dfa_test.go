package dfa

import (
	"strings"
	"testing"

	"github.com/nusapascal/nusapascal/internal/token"
)

func minimalConfig() *Config {
	return &Config{
		StartState: "start",
		FinalStates: map[string]string{
			"ident": "IDENTIFIER",
		},
		Transitions: map[string]map[string]string{
			"start": {"a-z": "ident"},
			"ident": {"a-z": "ident", "0-9": "ident"},
		},
	}
}

func TestCompileMinimal(t *testing.T) {
	table, err := Compile(minimalConfig())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if table.StartState() != "start" {
		t.Errorf("StartState() = %q, want %q", table.StartState(), "start")
	}

	next, ok := table.Next("start", 'x')
	if !ok || next != "ident" {
		t.Errorf("Next(start, x) = (%q, %t), want (ident, true)", next, ok)
	}
	if _, ok := table.Next("start", '9'); ok {
		t.Error("Next(start, 9) matched, want no transition")
	}

	kind, ok := table.Final("ident")
	if !ok || kind != token.Identifier {
		t.Errorf("Final(ident) = (%v, %t), want (Identifier, true)", kind, ok)
	}
	if _, ok := table.Final("start"); ok {
		t.Error("Final(start) reported final, want non-final")
	}
}

func TestCompileMissingStartState(t *testing.T) {
	cfg := minimalConfig()
	cfg.StartState = ""
	if _, err := Compile(cfg); err == nil {
		t.Fatal("Compile accepted a config without start_state")
	}
}

func TestCompileUnknownKindIsFatal(t *testing.T) {
	cfg := minimalConfig()
	cfg.FinalStates["ident"] = "KEYWORD" // reclassification-only, not a table kind
	_, err := Compile(cfg)
	if err == nil {
		t.Fatal("Compile accepted a reclassification-only kind in final_states")
	}
	if !strings.Contains(err.Error(), "KEYWORD") {
		t.Errorf("error %q does not name the offending kind", err)
	}
}

func TestSchemaVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"empty version accepted", "", false},
		{"reference version", "1.0.0", false},
		{"later minor accepted", "1.4.2", false},
		{"next major rejected", "2.0.0", true},
		{"older major rejected", "0.9.0", true},
		{"garbage rejected", "not-a-version", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.SchemaVersion = tt.version
			_, err := Compile(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("schema_version %q: err = %v, wantErr %t", tt.version, err, tt.wantErr)
			}
		})
	}
}

// TestKeyClassOrder pins the lookup precedence: exact beats range beats set
// beats wildcard for the same character.
func TestKeyClassOrder(t *testing.T) {
	cfg := &Config{
		StartState: "start",
		FinalStates: map[string]string{
			"exact": "IDENTIFIER", "range": "IDENTIFIER",
			"set": "IDENTIFIER", "wild": "IDENTIFIER",
		},
		Transitions: map[string]map[string]string{
			"start": {
				"b":       "exact",
				"a-z":     "range",
				"xyz+":    "set",
				"default": "wild",
			},
		},
	}
	table, err := Compile(cfg)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	tests := []struct {
		ch       rune
		expected string
	}{
		{'b', "exact"}, // also in the range, exact wins
		{'x', "range"}, // also in the set, range wins
		{'+', "set"},
		{'?', "wild"},
	}
	for _, tt := range tests {
		next, ok := table.Next("start", tt.ch)
		if !ok || next != tt.expected {
			t.Errorf("Next(start, %q) = (%q, %t), want (%q, true)", tt.ch, next, ok, tt.expected)
		}
	}
}

func TestWordOperatorSets(t *testing.T) {
	cfg := minimalConfig()
	cfg.Keywords = []string{"jika"}
	cfg.WordLogicalOperators = []string{"dan"}
	cfg.WordArithmeticOperators = []string{"kali"}

	table, err := Compile(cfg)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !table.IsKeyword("jika") || table.IsKeyword("dan") {
		t.Error("keyword set does not match config")
	}
	if !table.IsWordLogicalOperator("dan") || table.IsWordLogicalOperator("jika") {
		t.Error("word logical operator set does not match config")
	}
	if !table.IsWordArithmeticOperator("kali") {
		t.Error("word arithmetic operator set does not match config")
	}
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"reference json", "../../dfa_rules.json"},
		{"yaml", "testdata/rules.yaml"},
		{"toml", "testdata/rules.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(tt.path)
			if err != nil {
				t.Fatalf("Load(%s) failed: %v", tt.path, err)
			}
			if table.StartState() == "" {
				t.Error("loaded table has no start state")
			}
		})
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("testdata/rules.ini"); err == nil {
		t.Fatal("Load accepted an unsupported extension")
	}
}
