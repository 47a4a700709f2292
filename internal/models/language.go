package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnsupportedLanguage is returned for locale codes without a language tab.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is the base locale code of a language tab.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTamil   Language = "ta"
	LanguageHindi   Language = "hi"
)

// SupportedLanguages lists the language tabs in display order.
var SupportedLanguages = []Language{LanguageEnglish, LanguageTamil, LanguageHindi}

// ParseLanguage resolves a BCP 47 tag ("ta", "ta-IN", "EN") to a supported
// base language.
func ParseLanguage(code string) (Language, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLanguage, code, err)
	}

	base, _ := tag.Base()
	lang := Language(base.String())
	if !lang.Supported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return lang, nil
}

// Supported reports whether the language has a tab.
func (l Language) Supported() bool {
	for _, s := range SupportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

func (l Language) String() string {
	return string(l)
}
