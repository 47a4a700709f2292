package form

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/insightdelivered/statement-desk/internal/i18n"
	"github.com/insightdelivered/statement-desk/internal/models"
)

// ErrRowNotFound is returned when removing a row that is not in the container.
var ErrRowNotFound = errors.New("transaction row not found")

// DateLayout is the layout of a row's date input.
const DateLayout = "2006-01-02"

// Input names of a transaction row.
const (
	RowDate        = "transaction_date"
	RowDescription = "transaction_description"
	RowAmount      = "transaction_amount"
)

// Row is one transaction entry. A row built outside RowContainer.Add may
// lack inputs; such rows are skipped when the form is collected.
type Row struct {
	ID          uuid.UUID
	Date        *Field
	Description *Field
	Amount      *Field
	Remove      *Button
}

func (r *Row) complete() bool {
	return r.Date != nil && r.Description != nil && r.Amount != nil
}

func (r *Row) elements() []i18n.Element {
	var els []i18n.Element
	for _, f := range []*Field{r.Date, r.Description, r.Amount} {
		if f != nil && f.Label != nil {
			els = append(els, f.Label)
		}
	}
	if r.Remove != nil {
		els = append(els, r.Remove)
	}
	return els
}

// RowContainer holds the transaction rows of one tab in display order.
type RowContainer struct {
	language models.Language
	table    i18n.Table
	rows     []*Row
}

// NewRowContainer returns an empty container whose new rows are labeled
// in lang.
func NewRowContainer(lang models.Language, table i18n.Table) *RowContainer {
	return &RowContainer{language: lang, table: table}
}

// Add appends an empty row dated now (UTC) with amount 0 and returns it.
func (c *RowContainer) Add(now time.Time) *Row {
	label := func(key, fallback string) *Label {
		return NewLabel(key, c.table.Lookup(c.language, key, fallback))
	}

	row := &Row{
		ID:          uuid.New(),
		Date:        &Field{Name: RowDate, Label: label("date", "Date"), value: now.UTC().Format(DateLayout)},
		Description: &Field{Name: RowDescription, Label: label("description", "Description")},
		Amount:      &Field{Name: RowAmount, Label: label("amount", "Amount"), value: "0"},
		Remove:      NewButton("remove", c.table.Lookup(c.language, "remove", "Remove")),
	}
	c.rows = append(c.rows, row)
	return row
}

// Append adds a row built elsewhere.
func (c *RowContainer) Append(row *Row) {
	c.rows = append(c.rows, row)
}

// Remove deletes the row with id.
func (c *RowContainer) Remove(id uuid.UUID) error {
	for i, r := range c.rows {
		if r.ID == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRowNotFound, id)
}

// Len returns the number of rows.
func (c *RowContainer) Len() int {
	return len(c.rows)
}

// Rows returns the rows in display order.
func (c *RowContainer) Rows() []*Row {
	return append([]*Row(nil), c.rows...)
}

// Entries reads the complete rows as transaction entries, in order.
func (c *RowContainer) Entries() []models.TransactionEntry {
	entries := make([]models.TransactionEntry, 0, len(c.rows))
	for _, r := range c.rows {
		if !r.complete() {
			continue
		}
		entries = append(entries, models.TransactionEntry{
			Date:        r.Date.Value(),
			Description: r.Description.Value(),
			Amount:      models.ParseNumber(r.Amount.Value()),
		})
	}
	return entries
}

func (c *RowContainer) elements() []i18n.Element {
	var els []i18n.Element
	for _, r := range c.rows {
		els = append(els, r.elements()...)
	}
	return els
}
