// Package ruletable holds the word, phrase, hyphenation, possessive and
// acronym tables consulted by the style and repeated-word checkers.
package ruletable

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// CategoryPhrase is the category of rules that only fire as part of a phrase.
const CategoryPhrase = "Phrase"

//go:embed default.yaml
var defaultTable []byte

//nolint:gochecknoglobals // Parsed once on first use.
var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// ErrInvalidTable is returned when a rule table cannot be parsed.
var ErrInvalidTable = errors.New("invalid rule table")

// Tables is the complete, read-only rule data.
type Tables struct {
	// Rules maps a normalized word to its rule.
	Rules map[string]Rule

	// Hyphenation maps a prefix to the message reported when a word is
	// hyphenated after it.
	Hyphenation map[string]string

	// HyphenExceptions lists hyphenated words that are accepted.
	HyphenExceptions []string

	// PossessiveExceptions lists possessive words that are accepted.
	PossessiveExceptions []string

	// Acronyms maps an acronym to its expansion.
	Acronyms map[string]string

	// Repeats lists words that may legitimately appear twice in a row.
	Repeats []string
}

// Rule flags a single word.
type Rule struct {
	Category  string
	Rationale string

	// Phrase is the preceding word that turns the rule into a phrase match.
	// Empty for plain word rules.
	Phrase string

	Exceptions *Exceptions
}

// Exceptions suppress a rule in context.
type Exceptions struct {
	// Before lists following words that make the rule word acceptable.
	Before []string

	// After lists preceding words that make the rule word acceptable.
	After []string

	// Pattern makes the rule word acceptable anywhere on a matching line.
	Pattern *regexp.Regexp
}

// Accepts reports whether the rule word is acceptable given its neighbours
// and the line it appears on.
func (r Rule) Accepts(prev, next, line string) bool {
	if r.Exceptions == nil {
		return false
	}
	ex := r.Exceptions
	if prev != "" && slices.Contains(ex.After, prev) {
		return true
	}
	if next != "" && slices.Contains(ex.Before, next) {
		return true
	}
	return ex.Pattern != nil && ex.Pattern.MatchString(line)
}

// IsPhrase reports whether the rule belongs to the Phrase category.
func (r Rule) IsPhrase() bool {
	return strings.HasPrefix(r.Category, CategoryPhrase)
}

// Lookup returns the rule for a normalized word.
func (t *Tables) Lookup(word string) (Rule, bool) {
	rule, ok := t.Rules[word]
	return rule, ok
}

// IsAcronym reports whether token is exactly a known acronym.
func (t *Tables) IsAcronym(token string) bool {
	_, ok := t.Acronyms[token]
	return ok
}

// HyphenMessage returns the message for a hyphenated word whose prefix is
// discouraged. The second result is false when the word is acceptable.
func (t *Tables) HyphenMessage(word string) (string, bool) {
	prefix, _, found := strings.Cut(word, "-")
	if !found {
		return "", false
	}
	msg, ok := t.Hyphenation[prefix]
	if !ok || slices.Contains(t.HyphenExceptions, word) {
		return "", false
	}
	return msg, true
}

// IsPossessiveException reports whether a possessive word is accepted.
func (t *Tables) IsPossessiveException(word string) bool {
	return slices.Contains(t.PossessiveExceptions, word)
}

// Words returns the rule words in sorted order.
func (t *Tables) Words() []string {
	words := make([]string, 0, len(t.Rules))
	for word := range t.Rules {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// AcronymList returns the acronyms in sorted order.
func (t *Tables) AcronymList() []string {
	list := make([]string, 0, len(t.Acronyms))
	for acronym := range t.Acronyms {
		list = append(list, acronym)
	}
	sort.Strings(list)
	return list
}

// Default returns the built-in tables. The result is shared and must not be
// modified.
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Load(bytes.NewReader(defaultTable))
	})
	return defaultTables, defaultErr
}

// LoadFile reads tables from a YAML file.
func LoadFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule table: %w", err)
	}
	defer f.Close()

	tables, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// file is the on-disk shape of a rule table.
type file struct {
	Rules       map[string]ruleEntry `yaml:"rules"`
	Hyphenation struct {
		Prefixes   map[string]string `yaml:"prefixes"`
		Exceptions []string          `yaml:"exceptions"`
	} `yaml:"hyphenation"`
	PossessiveExceptions []string          `yaml:"possessive_exceptions"`
	Acronyms             map[string]string `yaml:"acronyms"`
	Repeats              []string          `yaml:"repeats"`
}

type ruleEntry struct {
	Category   string `yaml:"category"`
	Rationale  string `yaml:"rationale"`
	Phrase     string `yaml:"phrase"`
	Exceptions *struct {
		Before  []string `yaml:"before"`
		After   []string `yaml:"after"`
		Pattern string   `yaml:"pattern"`
	} `yaml:"exceptions"`
}

// Load parses a YAML rule table. Unknown keys are rejected.
func Load(r io.Reader) (*Tables, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw file
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	tables := &Tables{
		Rules:                make(map[string]Rule, len(raw.Rules)),
		Hyphenation:          raw.Hyphenation.Prefixes,
		HyphenExceptions:     raw.Hyphenation.Exceptions,
		PossessiveExceptions: raw.PossessiveExceptions,
		Acronyms:             raw.Acronyms,
		Repeats:              raw.Repeats,
	}
	if tables.Hyphenation == nil {
		tables.Hyphenation = map[string]string{}
	}
	if tables.Acronyms == nil {
		tables.Acronyms = map[string]string{}
	}

	for word, entry := range raw.Rules {
		if entry.Category == "" {
			return nil, fmt.Errorf("%w: rule %q has no category", ErrInvalidTable, word)
		}
		rule := Rule{
			Category:  entry.Category,
			Rationale: entry.Rationale,
			// Neighbours are compared against normalized words.
			Phrase: strings.ToLower(entry.Phrase),
		}
		if entry.Exceptions != nil {
			ex := &Exceptions{
				Before: lowerAll(entry.Exceptions.Before),
				After:  lowerAll(entry.Exceptions.After),
			}
			if entry.Exceptions.Pattern != "" {
				re, err := regexp.Compile(entry.Exceptions.Pattern)
				if err != nil {
					return nil, fmt.Errorf("%w: rule %q: %w", ErrInvalidTable, word, err)
				}
				ex.Pattern = re
			}
			rule.Exceptions = ex
		}
		tables.Rules[strings.ToLower(word)] = rule
	}

	return tables, nil
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for idx, word := range words {
		out[idx] = strings.ToLower(word)
	}
	return out
}
