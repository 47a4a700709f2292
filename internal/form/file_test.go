package form

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-desk/internal/i18n"
	"github.com/insightdelivered/statement-desk/internal/models"
)

const sampleForm = `
language: ta
fields:
  name: Priya Raman
  card_number: "4532015112830366"
  email: priya@example.com
  phone: "9876543210"
  previous_balance: 13840.00
  reward_points: 175
transactions:
  - date: 2025-03-02
    description: Uber Ride - Chennai
    amount: 285.50
  - description: Mobile Recharge
    amount: 499
  - date: 2025-03-05
    description: Pending
`

func writeForm(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndFill(t *testing.T) {
	f, err := LoadFile(writeForm(t, sampleForm))
	require.NoError(t, err)
	assert.Equal(t, "ta", f.Language)
	assert.Equal(t, "13840.00", f.Fields[FieldPreviousBalance])

	tab := NewTab(models.LanguageTamil, i18n.Default())
	require.NoError(t, Fill(tab, f, fixedNow))
	require.Equal(t, 3, tab.Rows.Len())

	data, err := tab.Collect()
	require.NoError(t, err)
	assert.Equal(t, "Priya Raman", data.Name)
	assert.Equal(t, int64(175), data.RewardPoints.Value)

	require.Len(t, data.Transactions, 3)
	assert.Equal(t, "2025-03-02", data.Transactions[0].Date)
	assert.True(t, data.Transactions[0].Amount.Equal(models.ParseNumber("285.5")))
	assert.Equal(t, "2025-03-02", data.Transactions[1].Date, "rows without a date keep today's")
	assert.True(t, data.Transactions[2].Amount.Equal(models.ParseNumber("0")))
}

func TestFillRejectsUnknownField(t *testing.T) {
	f, err := LoadFile(writeForm(t, "fields:\n  cvv: \"123\"\n"))
	require.NoError(t, err)

	err = Fill(NewTab(models.LanguageEnglish, i18n.Default()), f, fixedNow)
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeForm(t, "fields: [not, a, map]\n"))
	assert.Error(t, err)
}
