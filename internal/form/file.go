package form

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// File is a saved form: field values and transaction rows for one tab.
//
//	language: ta
//	fields:
//	  name: Priya Raman
//	  previous_balance: 13840.00
//	transactions:
//	  - date: 2025-03-02
//	    description: Uber Ride - Chennai
//	    amount: 285.50
type File struct {
	Language     string            `yaml:"language"`
	Fields       map[string]string `yaml:"fields"`
	Transactions []FileTransaction `yaml:"transactions"`
}

// FileTransaction is one row of a form file. Values are kept as typed.
type FileTransaction struct {
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
}

// LoadFile reads a YAML form file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file %q: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse form file %q: %w", path, err)
	}
	return &f, nil
}

// Fill types the file's values into tab and adds one row per transaction,
// in file order. Rows added here start out dated now like any new row.
func Fill(tab *Tab, f *File, now time.Time) error {
	for name, v := range f.Fields {
		if err := tab.SetField(name, v); err != nil {
			return err
		}
	}

	for _, tx := range f.Transactions {
		row := tab.Rows.Add(now)
		if tx.Date != "" {
			row.Date.SetValue(tx.Date)
		}
		row.Description.SetValue(tx.Description)
		if tx.Amount != "" {
			row.Amount.SetValue(tx.Amount)
		}
	}
	return nil
}
