package wacc

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Format is the tabular format of a source.
type Format string

const (
	CSV  Format = "CSV"
	XLSX Format = "XLSX"
)

// IngestError reports a source that could not be read as a whole.
// No record of such a source is ever used.
type IngestError struct {
	Source string // file name, if known
	Format Format
	Err    error
}

func (e *IngestError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s parsing error: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("%s parsing error in %q: %v", e.Format, e.Source, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// DecodeCSV reads a CSV source whose first line is the header.
//
// Blank lines are skipped, a leading byte order mark is ignored, short lines
// are padded with empty values and extra fields are dropped.
func DecodeCSV(r io.Reader) ([]Record, error) {
	records, err := decodeCSV(r, nil)
	if err != nil {
		return nil, &IngestError{Format: CSV, Err: err}
	}
	return records, nil
}

func decodeCSV(r io.Reader, log *zerolog.Logger) ([]Record, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(bom)); err == nil && string(b) == bom {
		br.Discard(len(bom))
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	lines, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return tabulate(lines, log), nil
}

// DecodeWorkbook reads the first sheet of an XLSX workbook whose first row
// is the header. Blank rows are skipped.
func DecodeWorkbook(r io.Reader) ([]Record, error) {
	records, err := decodeWorkbook(r)
	if err != nil {
		return nil, &IngestError{Format: XLSX, Err: err}
	}
	return records, nil
}

func decodeWorkbook(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheet")
	}
	lines, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	// GetRows trims trailing empty cells, short rows are the norm.
	return tabulate(lines, nil), nil
}

const bom = "\ufeff"

// tabulate turns raw lines into records keyed by the first line. Lines whose
// field count differs from the header are traced on log, which may be nil.
func tabulate(lines [][]string, log *zerolog.Logger) []Record {
	if len(lines) == 0 {
		return nil
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	header := lines[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	records := make([]Record, 0, len(lines)-1)
	for i, fields := range lines[1:] {
		rec := NewRecord(header, fields)
		if rec.IsBlank() {
			continue
		}
		switch {
		case len(fields) < len(header):
			log.Debug().Int("line", i+2).Int("fields", len(fields)).Int("columns", len(header)).Msg("padding short line")
		case len(fields) > len(header):
			log.Debug().Int("line", i+2).Int("fields", len(fields)).Int("columns", len(header)).Msg("dropping extra fields")
		}
		records = append(records, rec)
	}
	return records
}
