package gfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/stretchr/testify/assert"
)

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func Test_ScanFileInfo(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    FileInfo
		expectErr bool
	}{
		{
			name:   "grammar header",
			input:  "format = \"CNFG\"\ntype = \"GRAMMAR\"\nrules = [\"S -> a\"]\n",
			expect: FileInfo{Format: "CNFG", Type: "GRAMMAR"},
		},
		{
			name:   "stops at first table",
			input:  "format = \"CNFG\"\ntype = \"MANIFEST\"\n\n[extra]\nthis is = not toml\n",
			expect: FileInfo{Format: "CNFG", Type: "MANIFEST"},
		},
		{
			name:      "not toml",
			input:     "S -> a A | b",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ScanFileInfo([]byte(tc.input))
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Load(t *testing.T) {
	testCases := []struct {
		name      string
		files     map[string]string
		load      string
		expect    []string
		expectNTs []string
		expectErr error
		anyErr    bool
	}{
		{
			name: "single grammar file",
			files: map[string]string{
				"g.cnfg": `format = "CNFG"
type = "GRAMMAR"

start = "S"
rules = [
	"S -> a A | b",
	"A -> a | b S",
]
`,
			},
			load:      "g.cnfg",
			expect:    []string{"S -> a A | b", "A -> a | b S"},
			expectNTs: []string{"S", "A"},
		},
		{
			name: "declared symbols",
			files: map[string]string{
				"g.cnfg": `format = "CNFG"
type = "GRAMMAR"

start = "S"
nonterminals = ["S", "A"]
terminals = ["a", "b"]
rules = ["S -> a S | b"]
`,
			},
			load:      "g.cnfg",
			expect:    []string{"S -> a S | b"},
			expectNTs: []string{"S", "A"},
		},
		{
			name: "manifest combines files",
			files: map[string]string{
				"manifest.cnfg": `format = "CNFG"
type = "MANIFEST"
files = ["s.cnfg", "sub/a.cnfg"]
`,
				"s.cnfg": `format = "CNFG"
type = "GRAMMAR"
start = "S"
rules = ["S -> a A | b"]
`,
				"sub/a.cnfg": `format = "CNFG"
type = "GRAMMAR"
rules = ["A -> a | b S", "S -> c"]
`,
			},
			load:      "manifest.cnfg",
			expect:    []string{"S -> a A | b | c", "A -> a | b S"},
			expectNTs: []string{"S", "A"},
		},
		{
			name: "circular manifest",
			files: map[string]string{
				"one.cnfg": `format = "CNFG"
type = "MANIFEST"
files = ["two.cnfg"]
`,
				"two.cnfg": `format = "CNFG"
type = "MANIFEST"
files = ["one.cnfg"]
`,
			},
			load:      "one.cnfg",
			expectErr: ErrManifestCircularRef,
		},
		{
			name: "empty manifest",
			files: map[string]string{
				"m.cnfg": `format = "CNFG"
type = "MANIFEST"
files = []
`,
			},
			load:      "m.cnfg",
			expectErr: ErrManifestEmpty,
		},
		{
			name: "two start symbols",
			files: map[string]string{
				"m.cnfg": `format = "CNFG"
type = "MANIFEST"
files = ["a.cnfg", "b.cnfg"]
`,
				"a.cnfg": `format = "CNFG"
type = "GRAMMAR"
start = "S"
rules = ["S -> a"]
`,
				"b.cnfg": `format = "CNFG"
type = "GRAMMAR"
start = "T"
rules = ["T -> b"]
`,
			},
			load:   "m.cnfg",
			anyErr: true,
		},
		{
			name: "wrong format",
			files: map[string]string{
				"g.cnfg": `format = "TUNA"
type = "GRAMMAR"
rules = ["S -> a"]
`,
			},
			load:   "g.cnfg",
			anyErr: true,
		},
		{
			name: "bad rule",
			files: map[string]string{
				"g.cnfg": `format = "CNFG"
type = "GRAMMAR"
rules = ["S a b"]
`,
			},
			load:   "g.cnfg",
			anyErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			dir := writeFiles(t, tc.files)
			g, err := Load(filepath.Join(dir, tc.load))

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if tc.anyErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectNTs, g.NonTerminals())
			rules := g.Rules()
			if !assert.Len(rules, len(tc.expect)) {
				return
			}
			for i := range tc.expect {
				assert.Equal(tc.expect[i], rules[i].String(), "rules[%d]", i)
			}
		})
	}
}

func Test_Save_roundTrip(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParseRules("S", "S -> a S b | ε", "B -> B b")
	g.Normalize(grammar.Options{})

	path := filepath.Join(t.TempDir(), "out.cnfg")
	if !assert.NoError(Save(path, g)) {
		return
	}

	loaded, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(g.Start(), loaded.Start())
	assert.ElementsMatch(g.NonTerminals(), loaded.NonTerminals())
	assert.ElementsMatch(g.Terminals(), loaded.Terminals())
	assert.Equal(g.String(), loaded.String())
}
