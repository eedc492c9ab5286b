package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// WriteCSV writes a header row followed by the columns of rows
func WriteCSV(w io.Writer, columns []string, rows []Row) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Values(columns))
	}
	return WriteRecords(w, columns, records)
}

// WriteRecords writes a header row followed by records
func WriteRecords(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV yields the rows of a CSV document with a header row
func ReadCSV(r io.Reader) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		cr := csv.NewReader(r)
		header, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(nil, fmt.Errorf("failed to read header: %w", err))
			return
		}
		cr.FieldsPerRecord = len(header)

		for {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			row := make(Row, len(header))
			for i, col := range header {
				row[col] = record[i]
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// ReadContributions yields the rows of each contribution report file in
// turn
func ReadContributions(filenames ...string) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for _, filename := range filenames {
			f, err := os.Open(filename)
			if err != nil {
				yield(nil, fmt.Errorf("failed to open contribution report: %w", err))
				return
			}
			for row, err := range ReadCSV(f) {
				if err != nil {
					err = fmt.Errorf("%s: %w", filename, err)
				}
				if !yield(row, err) || err != nil {
					f.Close()
					return
				}
			}
			f.Close()
		}
	}
}
