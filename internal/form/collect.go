package form

import (
	"fmt"

	"github.com/insightdelivered/statement-desk/internal/models"
)

// Collect reads the tab of lang into a new payload.
func Collect(r *Registry, lang models.Language) (*models.StatementFormData, error) {
	t, err := r.Tab(lang)
	if err != nil {
		return nil, err
	}
	return t.Collect()
}

// Collect reads the fields and rows of the tab into a new payload. Numbers
// that do not parse are kept as NaN; a missing field is an error.
func (t *Tab) Collect() (*models.StatementFormData, error) {
	values := make(map[string]string, len(fieldSpecs))
	for _, s := range fieldSpecs {
		f, ok := t.Field(s.name)
		if !ok {
			return nil, fmt.Errorf("%w: %s-%s", ErrMissingField, s.name, t.Language)
		}
		values[s.name] = f.Value()
	}
	if t.Rows == nil {
		return nil, fmt.Errorf("%w: transaction-container-%s", ErrMissingField, t.Language)
	}

	return &models.StatementFormData{
		Name:           values[FieldName],
		CardNumber:     values[FieldCardNumber],
		Email:          values[FieldEmail],
		Phone:          values[FieldPhone],
		BillingAddress: values[FieldBillingAddress],

		PreviousBalance:  models.ParseNumber(values[FieldPreviousBalance]),
		PaymentsReceived: models.ParseNumber(values[FieldPaymentsReceived]),
		PurchasesCharges: models.ParseNumber(values[FieldPurchasesCharges]),
		FinanceCharges:   models.ParseNumber(values[FieldFinanceCharges]),
		NewBalance:       models.ParseNumber(values[FieldNewBalance]),
		CreditLimit:      models.ParseNumber(values[FieldCreditLimit]),
		AvailableCredit:  models.ParseNumber(values[FieldAvailableCredit]),
		RewardPoints:     models.ParseInteger(values[FieldRewardPoints]),

		Language:     t.Language,
		Transactions: t.Rows.Entries(),
	}, nil
}
