package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"insulin_advisor/internal/engine"
)

// ErrNoDoseTable is returned by LoadDoseTable when path does not exist. The
// returned table is the built-in default in that case.
var ErrNoDoseTable = errors.New("dose table file not found")

var doseTableHeader = []string{"algorithm", "level", "grbs_range", "dose"}

// LoadDoseTable reads a dose table CSV with columns
// algorithm,level,grbs_range,dose[,action]. A header row is optional.
func LoadDoseTable(path string) (*engine.DoseTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return engine.DefaultDoseTable(), fmt.Errorf("%w: %s", ErrNoDoseTable, path)
		}
		return nil, fmt.Errorf("open dose table: %w", err)
	}
	defer f.Close()

	table, err := ParseDoseTable(f)
	if err != nil {
		return nil, fmt.Errorf("dose table %s: %w", path, err)
	}
	return table, nil
}

// ParseDoseTable reads the CSV form from r.
func ParseDoseTable(r io.Reader) (*engine.DoseTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows []engine.Entry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		entry, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, entry)
	}
	if len(rows) == 0 {
		return nil, errors.New("no rows")
	}
	return engine.NewDoseTable(rows)
}

func isHeader(rec []string) bool {
	if len(rec) < len(doseTableHeader) {
		return false
	}
	for i, h := range doseTableHeader {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), h) {
			return false
		}
	}
	return true
}

func parseRow(rec []string) (engine.Entry, error) {
	if len(rec) < 4 || len(rec) > 5 {
		return engine.Entry{}, fmt.Errorf("want 4 or 5 columns, got %d", len(rec))
	}
	alg, ok := engine.ParseAlgorithm(rec[0])
	if !ok {
		return engine.Entry{}, fmt.Errorf("unknown algorithm %q", rec[0])
	}
	level, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return engine.Entry{}, fmt.Errorf("level %q: %w", rec[1], err)
	}
	band, err := engine.ParseBand(rec[2])
	if err != nil {
		return engine.Entry{}, err
	}
	dose, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
	if err != nil {
		return engine.Entry{}, fmt.Errorf("dose %q: %w", rec[3], err)
	}
	entry := engine.Entry{Algorithm: alg, Level: level, Dose: dose, Band: band}
	if len(rec) == 5 {
		entry.Action = strings.TrimSpace(rec[4])
	}
	return entry, nil
}
