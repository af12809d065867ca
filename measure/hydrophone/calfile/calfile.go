package calfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names used by hydrophone calibration reports.
const (
	FieldFrequencyMHz         = "FREQ_MHz"
	FieldSensitivityDB        = "SENS_DB"
	FieldSensitivityVPerPa    = "SENS_VPERPA"
	FieldCapacitancePF        = "CAP_PF"
	FieldSensitivityV2cm2PerW = "SENS_V2CM2PERW"
)

const (
	headerEnd    = "HEADER_END"
	fieldTag     = "DATA_FIELD\t"
	maxLineBytes = 1 << 20
)

var (
	// ErrFormat is wrapped by every parse failure.
	ErrFormat = errors.New("calfile: malformed calibration file")
	// ErrNoFields reports a header without any DATA_FIELD declaration.
	ErrNoFields = fmt.Errorf("%w: no DATA_FIELD declared", ErrFormat)
)

// SyntaxError describes a malformed line. It unwraps to [ErrFormat] or
// [ErrNoFields].
type SyntaxError struct {
	Line int // 1-based
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("calfile: line %d: %s", e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Table is a parsed calibration file.
type Table struct {
	Metadata Metadata
	Fields   []string
	Rows     [][]float64 // file order, len(row) == len(Fields)
}

type parseState int

const (
	stateHeader parseState = iota
	stateData
)

// Load reads and parses the calibration file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("calfile: open calibration: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads a calibration file from r.
//
// A file without a HEADER_END line yields a table with metadata and fields
// but no rows. A table with zero rows is valid.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{}
	state := stateHeader

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch state {
		case stateHeader:
			if strings.HasPrefix(line, headerEnd) {
				if len(t.Fields) == 0 {
					return nil, &SyntaxError{Line: lineNo, Msg: "header ends without DATA_FIELD", Err: ErrNoFields}
				}
				state = stateData
				continue
			}
			if err := t.parseHeaderLine(line, lineNo); err != nil {
				return nil, err
			}
		case stateData:
			if strings.HasPrefix(line, headerEnd) {
				continue
			}
			row, err := parseRow(line, lineNo, len(t.Fields))
			if err != nil {
				return nil, err
			}
			t.Rows = append(t.Rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("calfile: read: %w", err)
	}

	if len(t.Fields) == 0 {
		return nil, ErrNoFields
	}
	return t, nil
}

func (t *Table) parseHeaderLine(line string, lineNo int) error {
	if strings.HasPrefix(line, fieldTag) {
		name := strings.TrimSpace(line[len(fieldTag):])
		if t.FieldIndex(name) >= 0 {
			return &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("field %q declared twice", name), Err: ErrFormat}
		}
		t.Fields = append(t.Fields, name)
		return nil
	}

	key, value, ok := strings.Cut(line, "\t")
	if !ok {
		return nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	t.Metadata.set(key, strings.TrimSpace(value))
	return nil
}

func parseRow(line string, lineNo, nFields int) ([]float64, error) {
	tokens := strings.Fields(line)
	if len(tokens) != nFields {
		return nil, &SyntaxError{
			Line: lineNo,
			Msg:  fmt.Sprintf("row has %d values, want %d", len(tokens), nFields),
			Err:  ErrFormat,
		}
	}

	row := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("value %q is not a number", tok), Err: ErrFormat}
		}
		row[i] = v
	}
	return row, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// FieldIndex returns the column index of name, or -1.
func (t *Table) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is a declared field.
func (t *Table) HasColumn(name string) bool { return t.FieldIndex(name) >= 0 }

// Column returns a copy of the values of the named column in file order.
func (t *Table) Column(name string) ([]float64, bool) {
	idx := t.FieldIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Range returns the smallest and largest value of the named column. ok is
// false when the column is missing or the table has no rows.
func (t *Table) Range(name string) (lo, hi float64, ok bool) {
	idx := t.FieldIndex(name)
	if idx < 0 || len(t.Rows) == 0 {
		return 0, 0, false
	}
	lo, hi = t.Rows[0][idx], t.Rows[0][idx]
	for _, row := range t.Rows[1:] {
		lo = min(lo, row[idx])
		hi = max(hi, row[idx])
	}
	return lo, hi, true
}
