package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-desk/internal/i18n"
	"github.com/insightdelivered/statement-desk/internal/models"
)

func TestRegistryTabs(t *testing.T) {
	r := NewRegistry(i18n.Default())
	assert.Equal(t, models.SupportedLanguages, r.Languages())

	for _, lang := range models.SupportedLanguages {
		tab, err := r.Tab(lang)
		require.NoError(t, err)
		assert.Equal(t, lang, tab.Language)
		_, ok := tab.Field(FieldRewardPoints)
		assert.True(t, ok)
	}

	_, err := r.Tab("fr")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestTabLabelsFromTable(t *testing.T) {
	tab := NewTab(models.LanguageTamil, i18n.Default())

	f, ok := tab.Field(FieldCardNumber)
	require.True(t, ok)
	assert.Equal(t, "அட்டை எண்", f.Label.Text())
	assert.Equal(t, "16 இலக்க அட்டை எண்", f.Placeholder())
	assert.Equal(t, "அறிக்கையை உருவாக்கு", tab.Generate.Label())
}

func TestTranslateWholeRegistry(t *testing.T) {
	table := i18n.Default()
	r := NewRegistry(table)
	for _, lang := range r.Languages() {
		tab, _ := r.Tab(lang)
		tab.Rows.Add(fixedNow)
	}

	els, ins := r.Elements()
	// 13 labels + 4 row elements + 3 buttons per tab
	assert.Len(t, els, 3*20)
	assert.Len(t, ins, 3*3)

	tr := i18n.NewTranslator(table, nil)
	_, err := tr.Apply(models.LanguageHindi, els, ins)
	require.NoError(t, err)

	for _, el := range els {
		var text string
		switch e := el.(type) {
		case *Label:
			text = e.Text()
		case *Button:
			text = e.Label()
		}
		assert.Equal(t, table.Lookup(models.LanguageHindi, el.TranslationKey(), ""), text)
	}
	for _, in := range ins {
		f := in.(*Field)
		assert.Equal(t, table.Lookup(models.LanguageHindi, f.PlaceholderKey(), ""), f.Placeholder())
	}
}
