package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Table is a CSV-backed question set: a header row plus data rows addressed
// by column name.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load reads a CSV file into a Table. The first row is the header.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	t := &Table{Header: records[0]}
	for _, row := range records[1:] {
		// Pad ragged rows so every cell is addressable.
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Save writes the table back to a CSV file.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Column returns the index of a named column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// EnsureColumn returns the index of the named column, appending it (with
// empty cells) when missing.
func (t *Table) EnsureColumn(name string) int {
	if idx := t.Column(name); idx >= 0 {
		return idx
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Header) - 1
}

// Get returns a cell value, empty when out of range.
func (t *Table) Get(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Set writes a cell value.
func (t *Table) Set(row, col int, value string) {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return
	}
	t.Rows[row][col] = value
}

// ParseCorrectAnswers interprets a ground-truth cell as a JSON list, a
// pipe-separated string, or a single answer.
func ParseCorrectAnswers(cell string) []string {
	t := strings.TrimSpace(cell)
	if t == "" {
		return nil
	}

	var list []interface{}
	if err := json.Unmarshal([]byte(t), &list); err == nil {
		out := make([]string, 0, len(list))
		for _, x := range list {
			if s := strings.TrimSpace(fmt.Sprintf("%v", x)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	if strings.Contains(t, "|") {
		var out []string
		for _, part := range strings.Split(t, "|") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	return []string{t}
}
