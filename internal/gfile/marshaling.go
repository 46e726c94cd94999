package gfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/chomsky/grammar"
)

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

type topLevelGrammar struct {
	Format       string   `toml:"format"`
	Type         string   `toml:"type"`
	Start        string   `toml:"start,omitempty"`
	NonTerminals []string `toml:"nonterminals,omitempty"`
	Terminals    []string `toml:"terminals,omitempty"`
	Rules        []string `toml:"rules"`
}

func (tlg topLevelGrammar) toData() GrammarData {
	return GrammarData{
		Start:        tlg.Start,
		NonTerminals: tlg.NonTerminals,
		Terminals:    tlg.Terminals,
		Rules:        tlg.Rules,
	}
}

// merge adds the contents of other to tlg. Declarations and rules are
// appended; only one of them may give a start symbol.
func (tlg *topLevelGrammar) merge(other topLevelGrammar, otherPath string) error {
	if other.Start != "" {
		if tlg.Start != "" && tlg.Start != other.Start {
			return fmt.Errorf("grammar file %q: duplicate start; start has already been defined as %q", otherPath, tlg.Start)
		}
		tlg.Start = other.Start
	}
	if other.NonTerminals != nil {
		tlg.NonTerminals = append(tlg.NonTerminals, other.NonTerminals...)
	}
	if other.Terminals != nil {
		tlg.Terminals = append(tlg.Terminals, other.Terminals...)
	}
	tlg.Rules = append(tlg.Rules, other.Rules...)
	return nil
}

// manifStack is for two reasons ->
// * detect circular references
// * avoid infinite recursion (allow up to MaxManifestRecursionDepth levels)
//
// Returns ErrManifestEmpty if the first manifest in the stack lists no files.
func recursiveUnmarshalResource(path string, manifStack []string) (topLevelGrammar, error) {
	path = filepath.Clean(path)

	fileData, err := os.ReadFile(path)
	if err != nil {
		return topLevelGrammar{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	fileInfo, err := ScanFileInfo(fileData)
	if err != nil {
		return topLevelGrammar{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if strings.ToUpper(fileInfo.Format) != FormatName {
		return topLevelGrammar{}, fmt.Errorf("%q: file does not have a 'format = \"%s\"' entry", path, FormatName)
	}

	switch strings.ToUpper(fileInfo.Type) {
	case TypeGrammar:
		unmarshaled, err := unmarshalGrammar(fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("grammar file %q: %w", path, err)
		}
		return unmarshaled, nil
	case TypeManifest:
		// check the stack to be sure we havent recursed too far and to be sure
		// we aren't about to re-scan a manifest file we've already brought in.
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelGrammar{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelGrammar{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		manif, err := unmarshalManifest(fileData)
		if err != nil {
			return topLevelGrammar{}, fmt.Errorf("manifest file %q: %w", path, err)
		}

		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelGrammar{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		// copy the manif stack into a new value and add self to it for recursive calls
		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)

		var combined topLevelGrammar
		for _, manifRelPath := range manif.Files {
			includedFilePath := filepath.Join(manifDir, manifRelPath)

			included, err := recursiveUnmarshalResource(includedFilePath, manifSubStack)
			if err != nil {
				if errors.Is(err, ErrManifestCircularRef) || errors.Is(err, ErrManifestStackOverflow) {
					return topLevelGrammar{}, err
				}
				return topLevelGrammar{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			if err := combined.merge(included, includedFilePath); err != nil {
				return topLevelGrammar{}, err
			}
		}

		return combined, nil
	default:
		return topLevelGrammar{}, fmt.Errorf("%q: file does not have 'type = ' entry set to either %q or %q", path, TypeGrammar, TypeManifest)
	}
}

// unmarshalGrammar unmarshals grammar data from the given bytes. It does not
// check the rules.
func unmarshalGrammar(tomlData []byte) (topLevelGrammar, error) {
	var tlg topLevelGrammar
	if tomlErr := toml.Unmarshal(tomlData, &tlg); tomlErr != nil {
		return tlg, tomlErr
	}

	if strings.ToUpper(tlg.Format) != FormatName {
		return tlg, fmt.Errorf("in header: 'format' key must exist and be set to %q", FormatName)
	}
	if strings.ToUpper(tlg.Type) != TypeGrammar {
		return tlg, fmt.Errorf("in header: 'type' must exist and be set to %q", TypeGrammar)
	}

	return tlg, nil
}

// unmarshalManifest unmarshals a CNFG manifest from the given bytes.
func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var manif topLevelManifest
	if tomlErr := toml.Unmarshal(tomlData, &manif); tomlErr != nil {
		return manif, tomlErr
	}

	if strings.ToUpper(manif.Format) != FormatName {
		return manif, fmt.Errorf("in header: 'format' key must exist and be set to %q", FormatName)
	}
	if strings.ToUpper(manif.Type) != TypeManifest {
		return manif, fmt.Errorf("in header: 'type' must exist and be set to %q", TypeManifest)
	}

	return manif, nil
}

// Marshal encodes g as the bytes of a CNFG grammar file. Rules with no
// productions are left out; their nonterminals are still declared.
func Marshal(g *grammar.Grammar) ([]byte, error) {
	gd := DataOf(g)
	tlg := topLevelGrammar{
		Format:       FormatName,
		Type:         TypeGrammar,
		Start:        gd.Start,
		NonTerminals: gd.NonTerminals,
		Terminals:    gd.Terminals,
		Rules:        gd.Rules,
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = "  "
	if err := enc.Encode(tlg); err != nil {
		return nil, fmt.Errorf("encode grammar: %w", err)
	}
	return buf.Bytes(), nil
}
