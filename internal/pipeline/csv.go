package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV writes recipients as a CSV with the stable Header() ordering.
func WriteCSV(w io.Writer, rows []Recipient) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Name, r.Company, r.Email}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads recipients from a CSV using the stable Header() contract.
//
// Extra columns are ignored. Required columns from Header() must exist.
func ReadCSV(r io.Reader) ([]Recipient, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range Header() {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var rows []Recipient
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		get := func(col string) string {
			i := index[col]
			if i < 0 || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		rows = append(rows, Recipient{
			Name:    get("name"),
			Company: get("company"),
			Email:   get("email"),
		})
	}
}
