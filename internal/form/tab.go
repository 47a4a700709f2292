package form

import (
	"errors"
	"fmt"

	"github.com/insightdelivered/statement-desk/internal/i18n"
	"github.com/insightdelivered/statement-desk/internal/models"
)

var (
	// ErrUnknownTab is returned for a language that has no tab.
	ErrUnknownTab = errors.New("no tab for language")
	// ErrMissingField is returned when a tab lacks one of the form fields.
	ErrMissingField = errors.New("form field missing")
	// ErrUnknownField is returned when setting a field the form does not have.
	ErrUnknownField = errors.New("unknown form field")
)

// Form field names; they double as translation keys and wire names.
const (
	FieldName             = "name"
	FieldCardNumber       = "card_number"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldBillingAddress   = "billing_address"
	FieldPreviousBalance  = "previous_balance"
	FieldPaymentsReceived = "payments_received"
	FieldPurchasesCharges = "purchases_charges"
	FieldFinanceCharges   = "finance_charges"
	FieldNewBalance       = "new_balance"
	FieldCreditLimit      = "credit_limit"
	FieldAvailableCredit  = "available_credit"
	FieldRewardPoints     = "reward_points"
)

type fieldSpec struct {
	name        string
	label       string
	placeholder string
}

// in display order
var fieldSpecs = []fieldSpec{
	{FieldName, "Name", ""},
	{FieldCardNumber, "Card Number", "card_number_placeholder"},
	{FieldEmail, "Email", "email_placeholder"},
	{FieldPhone, "Phone", "phone_placeholder"},
	{FieldBillingAddress, "Billing Address", ""},
	{FieldPreviousBalance, "Previous Balance", ""},
	{FieldPaymentsReceived, "Payments Received", ""},
	{FieldPurchasesCharges, "Purchases & Charges", ""},
	{FieldFinanceCharges, "Finance Charges", ""},
	{FieldNewBalance, "New Balance", ""},
	{FieldCreditLimit, "Credit Limit", ""},
	{FieldAvailableCredit, "Available Credit", ""},
	{FieldRewardPoints, "Reward Points", ""},
}

// Tab is the form panel of one language.
type Tab struct {
	Language models.Language

	fields map[string]*Field
	order  []string

	Rows           *RowContainer
	AddTransaction *Button
	Generate       *Button
	Preview        *Button
}

// NewTab builds the full form for lang, labeled from table.
func NewTab(lang models.Language, table i18n.Table) *Tab {
	t := &Tab{
		Language:       lang,
		fields:         make(map[string]*Field, len(fieldSpecs)),
		Rows:           NewRowContainer(lang, table),
		AddTransaction: NewButton("add_transaction", table.Lookup(lang, "add_transaction", "Add Transaction")),
		Generate:       NewButton("generate", table.Lookup(lang, "generate", "Generate Statement")),
		Preview:        NewButton("preview", table.Lookup(lang, "preview", "Preview")),
	}
	for _, s := range fieldSpecs {
		f := NewField(s.name, table.Lookup(lang, s.name, s.label))
		f.placeholderKey = s.placeholder
		if s.placeholder != "" {
			f.placeholder = table.Lookup(lang, s.placeholder, "")
		}
		t.fields[s.name] = f
		t.order = append(t.order, s.name)
	}
	return t
}

// Field returns the named field.
func (t *Tab) Field(name string) (*Field, bool) {
	f, ok := t.fields[name]
	return f, ok && f != nil
}

// SetField sets the value of the named field.
func (t *Tab) SetField(name, value string) error {
	f, ok := t.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.SetValue(value)
	return nil
}

// Elements lists the translatable elements of the tab.
func (t *Tab) Elements() []i18n.Element {
	var els []i18n.Element
	for _, name := range t.order {
		if f, ok := t.Field(name); ok && f.Label != nil {
			els = append(els, f.Label)
		}
	}
	els = append(els, t.Rows.elements()...)
	return append(els, t.AddTransaction, t.Generate, t.Preview)
}

// Inputs lists the fields that carry a placeholder key.
func (t *Tab) Inputs() []i18n.PlaceholderElement {
	var ins []i18n.PlaceholderElement
	for _, name := range t.order {
		if f, ok := t.Field(name); ok && f.placeholderKey != "" {
			ins = append(ins, f)
		}
	}
	return ins
}

// Registry maps each language to its tab.
type Registry struct {
	tabs  map[models.Language]*Tab
	order []models.Language
}

// NewRegistry builds a tab per language. With no languages it builds the
// supported set.
func NewRegistry(table i18n.Table, langs ...models.Language) *Registry {
	if len(langs) == 0 {
		langs = models.SupportedLanguages
	}
	r := &Registry{tabs: make(map[models.Language]*Tab, len(langs))}
	for _, lang := range langs {
		if _, ok := r.tabs[lang]; ok {
			continue
		}
		r.tabs[lang] = NewTab(lang, table)
		r.order = append(r.order, lang)
	}
	return r
}

// Tab returns the tab of lang.
func (r *Registry) Tab(lang models.Language) (*Tab, error) {
	t, ok := r.tabs[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTab, lang)
	}
	return t, nil
}

// Languages returns the languages in tab order.
func (r *Registry) Languages() []models.Language {
	return append([]models.Language(nil), r.order...)
}

// Elements lists every translatable element and placeholder input of
// every tab.
func (r *Registry) Elements() ([]i18n.Element, []i18n.PlaceholderElement) {
	var (
		els []i18n.Element
		ins []i18n.PlaceholderElement
	)
	for _, lang := range r.order {
		t := r.tabs[lang]
		els = append(els, t.Elements()...)
		ins = append(ins, t.Inputs()...)
	}
	return els, ins
}
