package models

// TransactionEntry is one transaction row of a statement form.
type TransactionEntry struct {
	Date        string `json:"date"` // YYYY-MM-DD as entered
	Description string `json:"description"`
	Amount      Number `json:"amount"`
}

// StatementFormData is the payload posted to the statement backend.
// It is built fresh for every generate or preview action.
type StatementFormData struct {
	Name           string `json:"name"`
	CardNumber     string `json:"card_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BillingAddress string `json:"billing_address"`

	PreviousBalance  Number  `json:"previous_balance"`
	PaymentsReceived Number  `json:"payments_received"`
	PurchasesCharges Number  `json:"purchases_charges"`
	FinanceCharges   Number  `json:"finance_charges"`
	NewBalance       Number  `json:"new_balance"`
	CreditLimit      Number  `json:"credit_limit"`
	AvailableCredit  Number  `json:"available_credit"`
	RewardPoints     Integer `json:"reward_points"`

	Language     Language           `json:"language"`
	Transactions []TransactionEntry `json:"transactions"`
}

// MaskedCardNumber returns the card number with all but the last four
// digits hidden, the way the generated statement prints it.
func (d *StatementFormData) MaskedCardNumber() string {
	n := d.CardNumber
	if len(n) > 4 {
		n = n[len(n)-4:]
	}
	return "XXXX-XXXX-XXXX-" + n
}
