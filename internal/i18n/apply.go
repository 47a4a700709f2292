package i18n

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/insightdelivered/statement-desk/internal/models"
)

// ErrNoTranslations is returned when the table has no strings for a language.
var ErrNoTranslations = errors.New("no translations found")

// Element is a UI element whose text comes from the translation table.
type Element interface {
	TranslationKey() string
	SetText(text string)
}

// PlaceholderElement is an input whose placeholder comes from the table.
type PlaceholderElement interface {
	PlaceholderKey() string
	SetPlaceholder(text string)
}

// Translator swaps UI text for the selected language.
type Translator struct {
	table  Table
	logger *zap.Logger
}

// NewTranslator returns a translator over table. A nil logger discards logs.
func NewTranslator(table Table, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{table: table, logger: logger}
}

// Apply sets the text of every element, and the placeholder of every
// input, whose key has a non-empty string for lang. Elements with an
// unknown key keep their text. It returns how many were updated.
func (t *Translator) Apply(lang models.Language, elements []Element, inputs []PlaceholderElement) (int, error) {
	strs, ok := t.table.Strings(lang)
	if !ok {
		t.logger.Error("no translations found for language", zap.String("language", lang.String()))
		return 0, fmt.Errorf("%w: %s", ErrNoTranslations, lang)
	}

	updated := 0
	for _, el := range elements {
		if text := strs[el.TranslationKey()]; text != "" {
			el.SetText(text)
			updated++
		}
	}
	for _, in := range inputs {
		key := in.PlaceholderKey()
		if key == "" {
			continue
		}
		if text := strs[key]; text != "" {
			in.SetPlaceholder(text)
			updated++
		}
	}

	t.logger.Debug("applied translations",
		zap.String("language", lang.String()),
		zap.Int("updated", updated))
	return updated, nil
}
