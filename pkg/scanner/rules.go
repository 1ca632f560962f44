package scanner

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// WhitespacePolicy selects how the whitespace rule treats a run that is not
// followed by continuation punctuation.
type WhitespacePolicy string

const (
	// PolicyPunctuation accepts a whitespace run only before one of the fixed
	// continuation characters.
	PolicyPunctuation WhitespacePolicy = "punctuation"

	// PolicyOpener additionally accepts a run immediately before the start of
	// the next construct, trimming whitespace at construct boundaries.
	PolicyOpener WhitespacePolicy = "opener"
)

// RulesFile represents the structure of a YAML rules file.
type RulesFile struct {
	Opener           []OpenerRule `yaml:"opener"`
	Continuation     string       `yaml:"continuation"`
	WhitespacePolicy string       `yaml:"whitespace_policy"`
	ShorthandBrace   *bool        `yaml:"shorthand_brace"`
}

// OpenerRule represents one row of the construct-opener table.
type OpenerRule struct {
	Prefix string `yaml:"prefix"`
	Class  string `yaml:"class,omitempty"` // Named rune class tested after the prefix
	Type   string `yaml:"type"`
}

// ScannerRules holds the live rule set for a scanner instance.
type ScannerRules struct {
	Openers          []openerPattern
	Continuation     string
	WhitespacePolicy WhitespacePolicy
	ShorthandBrace   bool
}

// Named rune classes available to opener rules.
var runeClasses = map[string]func(rune) bool{
	"balise_lead": isBaliseLead,
}

// Construct types an opener rule may name.
var constructTypes = map[string]ConstructType{
	string(ParenShorthand):  ParenShorthand,
	string(BaliseShorthand): BaliseShorthand,
	string(BoucleOpen):      BoucleOpen,
	string(BoucleClose):     BoucleClose,
	string(BoucleElseClose): BoucleElseClose,
	string(Include):         Include,
	string(MultiOpen):       MultiOpen,
	string(MultiClose):      MultiClose,
	string(Idiome):          Idiome,
	string(BracketOpen):     BracketOpen,
	string(BracketClose):    BracketClose,
}

// DefaultRulesFile returns the default rule set in its YAML file form.
func DefaultRulesFile() *RulesFile {
	enabled := true
	return &RulesFile{
		Opener: []OpenerRule{
			{Prefix: "(#", Type: string(ParenShorthand)},
			{Prefix: "#", Class: "balise_lead", Type: string(BaliseShorthand)},
			{Prefix: "<B", Type: string(BoucleOpen)},
			{Prefix: "</B", Type: string(BoucleClose)},
			{Prefix: "<//B", Type: string(BoucleElseClose)},
			{Prefix: "<IN", Type: string(Include)},
			{Prefix: "<mu", Type: string(MultiOpen)},
			{Prefix: "</mu", Type: string(MultiClose)},
			{Prefix: "<:", Type: string(Idiome)},
			{Prefix: "[", Type: string(BracketOpen)},
			{Prefix: "]", Type: string(BracketClose)},
		},
		Continuation:     "{|)*>/",
		WhitespacePolicy: string(PolicyOpener),
		ShorthandBrace:   &enabled,
	}
}

// DefaultRules returns the default scanner rules.
func DefaultRules() *ScannerRules {
	// Note: the defaults should always compile, so we panic if there's an error
	rules, err := ApplyRulesToDefaults(&RulesFile{})
	if err != nil {
		panic(fmt.Sprintf("Invalid default rules: %v", err))
	}
	return rules
}

// LoadRulesFile loads and parses a YAML rules file.
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in rules file '%s': %w", filename, err)
	}

	return &rules, nil
}

// ApplyRulesToDefaults applies the rules from a RulesFile on top of the
// defaults to create a new ScannerRules. Sections absent from the file keep
// their default values. Returns an error for conflicting or unknown rule
// definitions.
func ApplyRulesToDefaults(file *RulesFile) (*ScannerRules, error) {
	defaults := DefaultRulesFile()

	openerRules := defaults.Opener
	if len(file.Opener) > 0 {
		openerRules = file.Opener
	}

	openers, err := compileOpenerTable(openerRules)
	if err != nil {
		return nil, err
	}

	rules := &ScannerRules{
		Openers:          openers,
		Continuation:     defaults.Continuation,
		WhitespacePolicy: WhitespacePolicy(defaults.WhitespacePolicy),
		ShorthandBrace:   *defaults.ShorthandBrace,
	}

	if file.Continuation != "" {
		rules.Continuation = file.Continuation
	}

	if file.WhitespacePolicy != "" {
		switch WhitespacePolicy(file.WhitespacePolicy) {
		case PolicyPunctuation, PolicyOpener:
			rules.WhitespacePolicy = WhitespacePolicy(file.WhitespacePolicy)
		default:
			return nil, fmt.Errorf("unknown whitespace_policy '%s' (want 'punctuation' or 'opener')", file.WhitespacePolicy)
		}
	}

	if file.ShorthandBrace != nil {
		rules.ShorthandBrace = *file.ShorthandBrace
	}

	return rules, nil
}

// compileOpenerTable validates the opener rules and builds the recognizer
// table, sorted longest prefix first so that "<//B" is tried before "</B".
func compileOpenerTable(openerRules []OpenerRule) ([]openerPattern, error) {
	seen := make(map[string]bool)
	patterns := make([]openerPattern, 0, len(openerRules))

	for _, rule := range openerRules {
		if rule.Prefix == "" {
			return nil, fmt.Errorf("opener rule for type '%s' has an empty prefix", rule.Type)
		}
		if seen[rule.Prefix] {
			return nil, fmt.Errorf("opener prefix '%s' is defined more than once", rule.Prefix)
		}
		seen[rule.Prefix] = true

		typ, ok := constructTypes[rule.Type]
		if !ok {
			return nil, fmt.Errorf("unknown construct type '%s' for opener prefix '%s'", rule.Type, rule.Prefix)
		}

		pattern := openerPattern{prefix: rule.Prefix, typ: typ}
		if rule.Class != "" {
			class, ok := runeClasses[rule.Class]
			if !ok {
				return nil, fmt.Errorf("unknown rune class '%s' for opener prefix '%s'", rule.Class, rule.Prefix)
			}
			pattern.class = class
		}

		patterns = append(patterns, pattern)
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return len(patterns[i].prefix) > len(patterns[j].prefix)
	})

	return patterns, nil
}
