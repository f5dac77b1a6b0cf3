package lexicon

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultName is the name of the builtin lexicon used when none is requested.
const DefaultName = "default"

//go:embed configs/*.yaml
var configFS embed.FS

// builtinLexicons maps lexicon names to their compiled lists
var builtinLexicons = map[string]*Lexicon{}

func init() {
	entries, err := configFS.ReadDir("configs")
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := configFS.ReadFile(path.Join("configs", entry.Name()))
		if err != nil {
			continue
		}

		lex, err := parse(data)
		if err != nil {
			continue
		}

		builtinLexicons[lex.Name] = lex
	}
}

func parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	lex.compile()
	return &lex, nil
}

// Load returns a builtin lexicon by name
func Load(name string) (*Lexicon, error) {
	if lex, ok := builtinLexicons[name]; ok {
		return lex, nil
	}
	return nil, fmt.Errorf("unknown lexicon: %s", name)
}

// Default returns the builtin default lexicon. It panics if the embedded
// configuration failed to load, which only happens on a broken build.
func Default() *Lexicon {
	lex, err := Load(DefaultName)
	if err != nil {
		panic(err)
	}
	return lex
}

// Available returns the names of all builtin lexicons, sorted
func Available() []string {
	names := make([]string, 0, len(builtinLexicons))
	for name := range builtinLexicons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFromFile loads a custom lexicon from a YAML file. A file that omits
// name is named after its path.
func LoadFromFile(filename string) (*Lexicon, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", filename, err)
	}

	lex, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", filename, err)
	}
	if lex.Name == "" {
		lex.Name = filename
	}
	return lex, nil
}

// Resolve returns the builtin lexicon called nameOrPath, or loads it from
// disk when no builtin has that name. An empty argument selects the default.
func Resolve(nameOrPath string) (*Lexicon, error) {
	if nameOrPath == "" {
		return Load(DefaultName)
	}
	if lex, ok := builtinLexicons[nameOrPath]; ok {
		return lex, nil
	}
	return LoadFromFile(nameOrPath)
}

// Marshal renders the lexicon back to YAML.
func Marshal(lex *Lexicon) ([]byte, error) {
	return yaml.Marshal(lex)
}
