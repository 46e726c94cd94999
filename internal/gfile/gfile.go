// Package gfile has functions for loading grammars using the CNFG file
// format, a TOML-based format that is used to define context-free grammars for
// the normalizer to operate on.
//
// A grammar file looks like this:
//
//	format = "CNFG"
//	type = "GRAMMAR"
//
//	start = "S"
//	rules = [
//		"S -> a A | b",
//		"A -> a | b S",
//	]
//
// The optional keys nonterminals and terminals declare the kind of every
// symbol; without them, every left-hand side is a nonterminal and every other
// symbol is a terminal. A file with type "MANIFEST" instead has a files key
// listing other CNFG files, relative to the manifest, whose contents are
// combined.
package gfile

import (
	"errors"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/chomsky/grammar"
)

// FormatName is the value of the format key in every CNFG file.
const FormatName = "CNFG"

const (
	TypeGrammar  = "GRAMMAR"
	TypeManifest = "MANIFEST"
)

const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recusion level of
	// MaxManifestRecursionDepth is reached and an additional Manifest is then
	// specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies any
	// series of files that with their own manifests refer back to the original
	// manifest.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Manifest contains data loaded from a CNFG Manifest file.
type Manifest struct {
	Files []string
}

// GrammarData is the contents of one or more CNFG grammar files before it has
// been checked and built into a Grammar.
type GrammarData struct {
	Start        string
	NonTerminals []string
	Terminals    []string
	Rules        []string
}

// Declared returns whether symbol kinds are declared explicitly rather than
// inferred from the rules.
func (gd GrammarData) Declared() bool {
	return gd.NonTerminals != nil || gd.Terminals != nil
}

// Grammar builds a Grammar from the data.
func (gd GrammarData) Grammar() (*grammar.Grammar, error) {
	if gd.Declared() {
		return grammar.ParseDeclaredRules(gd.NonTerminals, gd.Terminals, gd.Start, gd.Rules...)
	}
	return grammar.ParseRules(gd.Start, gd.Rules...)
}

// DataOf returns the data that describes g, with every symbol kind declared.
// Rules with no productions are left out; their nonterminals are still
// declared.
func DataOf(g *grammar.Grammar) GrammarData {
	gd := GrammarData{
		Start:        g.Start(),
		NonTerminals: g.NonTerminals(),
		Terminals:    g.Terminals(),
		Rules:        []string{},
	}
	for _, r := range g.Rules() {
		if len(r.Productions) == 0 {
			continue
		}
		gd.Rules = append(gd.Rules, r.String())
	}
	return gd
}

// FileInfo contains the essential information all CNFG format files must
// contain. It can be obtained from a file by reading it into memory and calling
// ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// Load loads a grammar from the given CNFG file. The file's type is
// auto-detected and decoding is handled appropriately; the type can either be
// "GRAMMAR" type or "MANIFEST" type; if it's manifest type, the files listed
// in it relative to it will also be loaded. All files included are combined
// into one single set of rules before the grammar is built.
func Load(path string) (*grammar.Grammar, error) {
	data, err := LoadData(path)
	if err != nil {
		return nil, err
	}

	return data.Grammar()
}

// LoadData is like Load but returns the combined file contents without
// building a Grammar from them.
func LoadData(path string) (GrammarData, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return GrammarData{}, err
	}

	return unmarshaled.toData(), nil
}

// LoadManifestFile loads manifest data from a CNFG file.
func LoadManifestFile(path string) (Manifest, error) {
	manifestData, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	unmarshaled, err := unmarshalManifest(manifestData)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{Files: unmarshaled.Files}, nil
}

// Parse builds a Grammar from the bytes of a single CNFG grammar file.
// Manifests cannot be parsed this way as they refer to other files; use Load.
func Parse(data []byte) (*grammar.Grammar, error) {
	unmarshaled, err := unmarshalGrammar(data)
	if err != nil {
		return nil, err
	}
	return unmarshaled.toData().Grammar()
}

// Save writes g to the given path as a CNFG grammar file. Symbol kinds are
// always declared in the written file so that loading it gives back the same
// grammar.
func Save(path string, g *grammar.Grammar) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ScanFileInfo takes the given data bytes and attempts to read the CNFG format
// common header info from it. The bytes are read up to the first instance of a
// table definition header and those bytes are parsed for the info. If there is
// an error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-lev table
	var topLevelEnd int = -1
	var onNewLine = true
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}
