package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes metadata as "# key: value" lines followed by the table.
func WriteCSV(w io.Writer, t Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", t.Title); err != nil {
			return err
		}
	}
	for _, m := range t.Meta {
		if _, err := fmt.Fprintf(w, "# %s: %s\n", m.Key, m.Value); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, cellString(v))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
