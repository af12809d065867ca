// Package waveform reads and writes sampled traces as plain text.
//
// A trace file holds one sample per line, either a bare value or a
// time,value pair separated by a comma or whitespace. Blank lines, lines
// starting with '#' and a leading line of column names are skipped. When a
// time column is present the sampling interval is recovered from it.
package waveform

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Relative tolerance on the spacing of a time column.
const spacingTolerance = 1e-6

var (
	// ErrFormat is wrapped by every parse failure.
	ErrFormat = errors.New("waveform: malformed trace")
	// ErrNonUniform reports a time column whose spacing varies.
	ErrNonUniform = errors.New("waveform: non-uniform sampling")
)

// Trace is a uniformly sampled signal.
type Trace struct {
	Samples []float64
	// Interval is the sampling interval in seconds, or 0 when the file had
	// no time column.
	Interval float64
}

// Read parses a trace from r.
func Read(r io.Reader) (Trace, error) {
	var (
		times   []float64
		samples []float64
		columns int
		header  bool
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		values, err := parseValues(fields)
		if err != nil {
			// The first line may name the columns.
			if columns == 0 && !header {
				header = true
				continue
			}
			return Trace{}, fmt.Errorf("%w: line %d: %w", ErrFormat, lineNo, err)
		}
		if columns == 0 {
			columns = len(fields)
			if columns != 1 && columns != 2 {
				return Trace{}, fmt.Errorf("%w: line %d: %d columns, want 1 or 2", ErrFormat, lineNo, columns)
			}
		}
		if len(fields) != columns {
			return Trace{}, fmt.Errorf("%w: line %d: %d columns, want %d", ErrFormat, lineNo, len(fields), columns)
		}
		if columns == 2 {
			times = append(times, values[0])
		}
		samples = append(samples, values[columns-1])
	}
	if err := sc.Err(); err != nil {
		return Trace{}, fmt.Errorf("waveform: read: %w", err)
	}

	tr := Trace{Samples: samples}
	if len(times) >= 2 {
		dt, err := uniformInterval(times)
		if err != nil {
			return Trace{}, err
		}
		tr.Interval = dt
	}
	return tr, nil
}

func parseValues(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		values[i] = v
	}
	return values, nil
}

func uniformInterval(times []float64) (float64, error) {
	dt := (times[len(times)-1] - times[0]) / float64(len(times)-1)
	if !(dt > 0) {
		return 0, fmt.Errorf("%w: time column is not increasing", ErrNonUniform)
	}
	for i := 1; i < len(times); i++ {
		step := times[i] - times[i-1]
		if math.Abs(step-dt) > spacingTolerance*dt {
			return 0, fmt.Errorf("%w: step %g at sample %d, mean %g", ErrNonUniform, step, i, dt)
		}
	}
	return dt, nil
}

// ReadFile reads the trace stored at path.
func ReadFile(path string) (Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trace{}, fmt.Errorf("waveform: open trace: %w", err)
	}
	defer f.Close()

	tr, err := Read(f)
	if err != nil {
		return Trace{}, fmt.Errorf("%s: %w", path, err)
	}
	return tr, nil
}

// Write writes samples as time,value lines, the time of sample i being
// i*interval.
func Write(w io.Writer, samples []float64, interval float64) error {
	bw := bufio.NewWriter(w)
	for i, v := range samples {
		bw.WriteString(strconv.FormatFloat(float64(i)*interval, 'g', -1, 64))
		bw.WriteByte(',')
		bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("waveform: write: %w", err)
	}
	return nil
}

// WriteFile writes samples to path, replacing any existing file.
func WriteFile(path string, samples []float64, interval float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("waveform: create trace: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("waveform: close trace: %w", cerr)
		}
	}()
	return Write(f, samples, interval)
}
