package payments

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format identifies an encoding of transaction records.
type Format string

const (
	FormatCSV   Format = "csv"   // FormatCSV is a header row followed by type,client,tx,amount rows.
	FormatJSONL Format = "jsonl" // FormatJSONL is one JSON object per line.
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, want %q or %q", s, FormatCSV, FormatJSONL)
	}
}

// Reader reads transaction records one at a time.
//
// Read returns io.EOF at the end of the input. Any other error is fatal: the
// input cannot be trusted past it.
type Reader interface {
	Read() (Transaction, error)
}

// NewReader returns a Reader decoding 'r' in the given format.
func NewReader(r io.Reader, format Format) (Reader, error) {
	switch format {
	case FormatCSV, "":
		return newCSVReader(r), nil
	case FormatJSONL:
		return newJSONLReader(r), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// ReadAll reads all the records from 'r'.
func ReadAll(r Reader) ([]Transaction, error) {
	var txs []Transaction
	for {
		tx, err := r.Read()
		if errors.Is(err, io.EOF) {
			return txs, nil
		}
		if err != nil {
			return txs, err
		}
		txs = append(txs, tx)
	}
}

// csvReader decodes the CSV format.
//
// The first row is a header naming the columns, in any order. Fields are
// trimmed, and the amount can be omitted for disputes, resolves and
// chargebacks.
type csvReader struct {
	r       *csv.Reader
	columns map[string]int
	err     error // sticky header error
}

var requiredColumns = []string{"type", "client", "tx"}

func newCSVReader(r io.Reader) *csvReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &csvReader{r: cr}
}

func (d *csvReader) readHeader() error {
	header, err := d.r.Read()
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("%w: cannot read header: %w", ErrParse, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("%w: header has no %q column", ErrParse, name)
		}
	}
	d.columns = columns
	return nil
}

// field returns the trimmed value of column 'name', or "" if the row is too
// short.
func (d *csvReader) field(record []string, name string) string {
	i, ok := d.columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (d *csvReader) Read() (Transaction, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.columns == nil {
		if err := d.readHeader(); err != nil {
			if !errors.Is(err, io.EOF) {
				d.err = err
			}
			return nil, err
		}
	}
	for {
		record, err := d.r.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if blank(record) {
			continue
		}
		line, _ := d.r.FieldPos(0)
		tx, err := newTransaction(d.field(record, "type"), d.field(record, "client"), d.field(record, "tx"), d.field(record, "amount"))
		if err != nil {
			return nil, atLine(err, line)
		}
		return tx, nil
	}
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// atLine sets the line number of a *ParseError.
func atLine(err error, line int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Line = line
	}
	return err
}

// jsonlReader decodes the JSONL format: one object per line with properties
// type, client, tx and amount. Amount can be a JSON number or a string.
type jsonlReader struct {
	scanner *bufio.Scanner
	line    int
}

func newJSONLReader(r io.Reader) *jsonlReader {
	return &jsonlReader{scanner: bufio.NewScanner(r)}
}

func (d *jsonlReader) Read() (Transaction, error) {
	for d.scanner.Scan() {
		d.line++
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var rec struct {
			Type   string          `json:"type"`
			Client json.Number     `json:"client"`
			Tx     json.Number     `json:"tx"`
			Amount json.RawMessage `json:"amount"`
		}
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, &ParseError{Line: d.line, Field: "record", Value: string(line), Err: err}
		}
		amount := string(rec.Amount)
		if amount == "null" {
			amount = ""
		}
		amount = strings.Trim(amount, `"`)

		tx, err := newTransaction(rec.Type, rec.Client.String(), rec.Tx.String(), amount)
		if err != nil {
			return nil, atLine(err, d.line)
		}
		return tx, nil
	}
	if err := d.scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return nil, io.EOF
}
