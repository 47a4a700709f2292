// Package i18n holds the translation table of the statement form and
// applies it to translatable UI elements.
package i18n

import (
	_ "embed"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/insightdelivered/statement-desk/internal/models"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Strings maps a translation key to its text in one language.
type Strings map[string]string

// Table maps a language to its strings. It is built once at startup and
// treated as read-only afterwards.
type Table map[models.Language]Strings

// Default returns the built-in English, Tamil and Hindi strings.
func Default() Table {
	t, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded defaults: %v", err))
	}
	return t
}

// Load reads a YAML translation file keyed by language then string key.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translations %q: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("translations %q: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML translation document.
func Parse(data []byte) (Table, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse translations: %w", err)
	}

	t := make(Table, len(raw))
	for code, strs := range raw {
		lang, err := models.ParseLanguage(code)
		if err != nil {
			return nil, err
		}
		s := t[lang]
		if s == nil {
			s = make(Strings, len(strs))
			t[lang] = s
		}
		for k, v := range strs {
			s[k] = v
		}
	}
	return t, nil
}

// Merge returns a new table with the entries of other laid over t.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t))
	for _, src := range []Table{t, other} {
		for lang, strs := range src {
			dst := out[lang]
			if dst == nil {
				dst = make(Strings, len(strs))
				out[lang] = dst
			}
			for k, v := range strs {
				dst[k] = v
			}
		}
	}
	return out
}

// Strings returns the strings for a language.
func (t Table) Strings(lang models.Language) (Strings, bool) {
	s, ok := t[lang]
	return s, ok && len(s) > 0
}

// Lookup returns the translation of key, or fallback when the language or
// key is missing or empty.
func (t Table) Lookup(lang models.Language, key, fallback string) string {
	if v := t[lang][key]; v != "" {
		return v
	}
	return fallback
}
