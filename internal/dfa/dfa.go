// Package dfa loads and interprets the externally supplied transition table
// that drives the lexer. The table stays data: states, character-class keys
// and final-state kinds are rule-file edits, never Go code changes.
package dfa

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/nusapascal/nusapascal/internal/token"
)

// SchemaConstraint is the rule-file schema range this build understands.
const SchemaConstraint = ">= 1.0.0, < 2.0.0"

// WildcardKey matches any character not claimed by an exact, range or set key.
const WildcardKey = "default"

// Config is the decoded form of a DFA rule file.
type Config struct {
	SchemaVersion           string                       `json:"schema_version,omitempty" yaml:"schema_version,omitempty" toml:"schema_version,omitempty"`
	StartState              string                       `json:"start_state" yaml:"start_state" toml:"start_state"`
	Keywords                []string                     `json:"keywords" yaml:"keywords" toml:"keywords"`
	WordLogicalOperators    []string                     `json:"word_logical_operators" yaml:"word_logical_operators" toml:"word_logical_operators"`
	WordArithmeticOperators []string                     `json:"word_arithmetic_operators" yaml:"word_arithmetic_operators" toml:"word_arithmetic_operators"`
	FinalStates             map[string]string            `json:"final_states" yaml:"final_states" toml:"final_states"`
	Transitions             map[string]map[string]string `json:"transitions" yaml:"transitions" toml:"transitions"`
}

// kindNames maps the token-kind names a rule file may use in final_states.
// KEYWORD, LOGICAL_OPERATOR and CHAR_LITERAL are deliberately absent: those
// kinds only arise from post-scan reclassification, never from the automaton.
var kindNames = map[string]token.Type{
	"IDENTIFIER":          token.Identifier,
	"NUMBER":              token.Number,
	"STRING_LITERAL":      token.StringLiteral,
	"ASSIGN_OPERATOR":     token.AssignOperator,
	"RELATIONAL_OPERATOR": token.RelationalOperator,
	"ARITHMETIC_OPERATOR": token.ArithmeticOperator,
	"COLON":               token.Colon,
	"DOT":                 token.Dot,
	"RANGE_OPERATOR":      token.RangeOperator,
	"SEMICOLON":           token.Semicolon,
	"COMMA":               token.Comma,
	"LPARENTHESIS":        token.LParenthesis,
	"RPARENTHESIS":        token.RParenthesis,
	"LBRACKET":            token.LBracket,
	"RBRACKET":            token.RBracket,
}

// rangeRule covers an inclusive character range such as "a-z".
type rangeRule struct {
	lo, hi rune
	next   string
}

// setRule covers an any-of set such as "+-*/".
type setRule struct {
	key   string
	runes map[rune]bool
	next  string
}

// stateRules holds one state's outgoing transitions, pre-sorted into the
// lookup order mandated by the table contract: exact key first, then ranges,
// then sets, then the wildcard fallback.
type stateRules struct {
	exact    map[rune]string
	ranges   []rangeRule
	sets     []setRule
	wildcard string
	hasWild  bool
}

// Table is a compiled rule file, ready for the lexer to interpret.
type Table struct {
	start     string
	keywords  map[string]bool
	wordLogic map[string]bool
	wordArith map[string]bool
	finals    map[string]token.Type
	states    map[string]*stateRules
}

// Load reads and compiles a rule file. The encoding is chosen by extension:
// .json is the reference format, .yaml/.yml and .toml are accepted as well.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dfa: reading %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("dfa: unsupported rule file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("dfa: decoding %s: %w", path, err)
	}

	return Compile(&cfg)
}

// Compile validates a decoded configuration and builds the lookup structures.
// An unrecognized token-kind name in final_states is a configuration error,
// not a diagnostic: the table is unusable and nothing is returned.
func Compile(cfg *Config) (*Table, error) {
	if cfg.StartState == "" {
		return nil, fmt.Errorf("dfa: missing start_state")
	}
	if err := checkSchemaVersion(cfg.SchemaVersion); err != nil {
		return nil, err
	}

	t := &Table{
		start:     cfg.StartState,
		keywords:  stringSet(cfg.Keywords),
		wordLogic: stringSet(cfg.WordLogicalOperators),
		wordArith: stringSet(cfg.WordArithmeticOperators),
		finals:    make(map[string]token.Type, len(cfg.FinalStates)),
		states:    make(map[string]*stateRules, len(cfg.Transitions)),
	}

	for state, kindName := range cfg.FinalStates {
		kind, ok := kindNames[kindName]
		if !ok {
			return nil, fmt.Errorf("dfa: final state %q names unknown token kind %q", state, kindName)
		}
		t.finals[state] = kind
	}

	for state, moves := range cfg.Transitions {
		rules := &stateRules{exact: make(map[rune]string)}
		// Sorted key order keeps compilation (and any overlap resolution
		// inside one class) deterministic across runs.
		keys := make([]string, 0, len(moves))
		for key := range moves {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			next := moves[key]
			switch classifyKey(key) {
			case keyWildcard:
				rules.wildcard = next
				rules.hasWild = true
			case keyExact:
				r, _ := utf8.DecodeRuneInString(key)
				rules.exact[r] = next
			case keyRange:
				runes := []rune(key)
				rules.ranges = append(rules.ranges, rangeRule{lo: runes[0], hi: runes[2], next: next})
			case keySet:
				set := setRule{key: key, runes: make(map[rune]bool), next: next}
				for _, r := range key {
					set.runes[r] = true
				}
				rules.sets = append(rules.sets, set)
			}
		}
		t.states[state] = rules
	}

	return t, nil
}

type keyClass int

const (
	keyExact keyClass = iota
	keyRange
	keySet
	keyWildcard
)

func classifyKey(key string) keyClass {
	if key == WildcardKey {
		return keyWildcard
	}
	runes := []rune(key)
	switch {
	case len(runes) == 1:
		return keyExact
	case len(runes) == 3 && runes[1] == '-':
		return keyRange
	default:
		return keySet
	}
}

func checkSchemaVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("dfa: invalid schema_version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return fmt.Errorf("dfa: bad schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("dfa: schema_version %s outside supported range %q", v, SchemaConstraint)
	}
	return nil
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// StartState returns the automaton's initial state name.
func (t *Table) StartState() string { return t.start }

// Next resolves one transition. Lookup order for the given character: exact
// key, inclusive range key, any-of set key, wildcard; first match wins.
func (t *Table) Next(state string, ch rune) (string, bool) {
	rules, ok := t.states[state]
	if !ok {
		return "", false
	}
	if next, ok := rules.exact[ch]; ok {
		return next, true
	}
	for _, r := range rules.ranges {
		if ch >= r.lo && ch <= r.hi {
			return r.next, true
		}
	}
	for _, s := range rules.sets {
		if s.runes[ch] {
			return s.next, true
		}
	}
	if rules.hasWild {
		return rules.wildcard, true
	}
	return "", false
}

// Final reports whether state is declared final and, if so, the token kind
// it produces.
func (t *Table) Final(state string) (token.Type, bool) {
	kind, ok := t.finals[state]
	return kind, ok
}

// IsKeyword reports whether text is in the reserved-word set.
func (t *Table) IsKeyword(text string) bool { return t.keywords[text] }

// IsWordLogicalOperator reports whether text is a word-form logical operator.
func (t *Table) IsWordLogicalOperator(text string) bool { return t.wordLogic[text] }

// IsWordArithmeticOperator reports whether text is a word-form arithmetic
// operator.
func (t *Table) IsWordArithmeticOperator(text string) bool { return t.wordArith[text] }
