package crm

import (
	"io"

	"github.com/gocarina/gocsv"
)

// ReadCustomerCSV decodes candidate customers from CSV with a header row.
// Recognised columns are name, email and phone; others are ignored.
func ReadCustomerCSV(r io.Reader) ([]CustomerInput, error) {
	var rows []*CustomerInput
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	inputs := make([]CustomerInput, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			inputs = append(inputs, *row)
		}
	}
	return inputs, nil
}
