package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	require.Equal(t, PolicyOpener, rules.WhitespacePolicy)
	require.Equal(t, "{|)*>/", rules.Continuation)
	require.True(t, rules.ShorthandBrace)
	require.Len(t, rules.Openers, 11)

	// The table is sorted longest prefix first
	require.Equal(t, "<//B", rules.Openers[0].prefix)
	for i := 1; i < len(rules.Openers); i++ {
		require.GreaterOrEqual(t,
			len(rules.Openers[i-1].prefix), len(rules.Openers[i].prefix),
			"opener table not sorted at row %d", i)
	}
}

func TestApplyRulesToDefaults(t *testing.T) {
	yamlContent := `
opener:
  - prefix: "(#"
    type: paren_shorthand
  - prefix: "#"
    class: balise_lead
    type: balise_shorthand
continuation: "{|)"
whitespace_policy: punctuation
shorthand_brace: false
`
	var file RulesFile
	require.NoError(t, yaml.Unmarshal([]byte(yamlContent), &file))

	rules, err := ApplyRulesToDefaults(&file)
	require.NoError(t, err)

	require.Equal(t, "{|)", rules.Continuation)
	require.Equal(t, PolicyPunctuation, rules.WhitespacePolicy)
	require.False(t, rules.ShorthandBrace)
	require.Len(t, rules.Openers, 2)

	// With the shorter table, boucle tags are ordinary content
	s := NewScannerWithRules(rules)
	token, ok := s.Scan(NewCursor("<BOUCLE_a>"), Kinds(ContentTokenType))
	require.True(t, ok)
	require.Equal(t, "<", token.Text)

	// But the kept rows still block content
	_, ok = s.Scan(NewCursor("#TITRE"), Kinds(ContentTokenType))
	require.False(t, ok)
}

func TestApplyRulesPartialFileKeepsDefaults(t *testing.T) {
	rules, err := ApplyRulesToDefaults(&RulesFile{Continuation: "{|"})
	require.NoError(t, err)

	require.Equal(t, "{|", rules.Continuation)
	require.Equal(t, PolicyOpener, rules.WhitespacePolicy)
	require.True(t, rules.ShorthandBrace)
	require.Len(t, rules.Openers, 11)
}

func TestApplyRulesErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    RulesFile
		wantErr string
	}{
		{
			name: "duplicate prefix",
			file: RulesFile{Opener: []OpenerRule{
				{Prefix: "[", Type: string(BracketOpen)},
				{Prefix: "[", Type: string(BracketClose)},
			}},
			wantErr: "defined more than once",
		},
		{
			name:    "empty prefix",
			file:    RulesFile{Opener: []OpenerRule{{Prefix: "", Type: string(BracketOpen)}}},
			wantErr: "empty prefix",
		},
		{
			name:    "unknown construct type",
			file:    RulesFile{Opener: []OpenerRule{{Prefix: "[", Type: "mystery"}}},
			wantErr: "unknown construct type",
		},
		{
			name:    "unknown rune class",
			file:    RulesFile{Opener: []OpenerRule{{Prefix: "#", Class: "lowercase", Type: string(BaliseShorthand)}}},
			wantErr: "unknown rune class",
		},
		{
			name:    "unknown whitespace policy",
			file:    RulesFile{WhitespacePolicy: "sometimes"},
			wantErr: "unknown whitespace_policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyRulesToDefaults(&tt.file)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadRulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := []byte("continuation: \"{|\"\nwhitespace_policy: punctuation\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	file, err := LoadRulesFile(path)
	require.NoError(t, err)
	require.Equal(t, "{|", file.Continuation)
	require.Equal(t, string(PolicyPunctuation), file.WhitespacePolicy)

	_, err = LoadRulesFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "failed to read rules file")

	require.NoError(t, os.WriteFile(path, []byte("continuation: [unclosed"), 0o644))
	_, err = LoadRulesFile(path)
	require.ErrorContains(t, err, "failed to parse YAML")
}

func TestDefaultRulesFileRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(DefaultRulesFile())
	require.NoError(t, err)

	var file RulesFile
	require.NoError(t, yaml.Unmarshal(data, &file))

	rules, err := ApplyRulesToDefaults(&file)
	require.NoError(t, err)
	require.Len(t, rules.Openers, 11)
	require.Equal(t, DefaultRules().Continuation, rules.Continuation)
}
