package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Record is one data row of a sheet keyed by header name. Columns absent in a
// row resolve to "".
type Record map[string]string

// ParseCSV converts a published-sheet CSV export into records. The first row
// defines the field names; quoting is handled by the reader.
func ParseCSV(text string) ([]Record, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var records []Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		record := make(Record, len(headers))
		for i, header := range headers {
			if i < len(fields) {
				record[header] = strings.TrimSpace(fields[i])
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}
