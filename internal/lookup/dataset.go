package lookup

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Dataset is the static tabular lookup source, loaded from CSV once at
// startup and read-only afterwards. The header row names question ids;
// a row's position is its lookup index.
type Dataset struct {
	ids  []string
	rows [][]bool
}

func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s has no header row", path)
	}

	ids := make([]string, len(records[0]))
	for i, h := range records[0] {
		ids[i] = strings.TrimSpace(h)
	}

	rows := make([][]bool, 0, len(records)-1)
	for n, rec := range records[1:] {
		if len(rec) != len(ids) {
			return nil, fmt.Errorf("dataset row %d has %d cells, want %d", n+1, len(rec), len(ids))
		}
		row := make([]bool, len(rec))
		for i, cell := range rec {
			v, err := parseAnswer(cell)
			if err != nil {
				return nil, fmt.Errorf("dataset row %d column %q: %w", n+1, ids[i], err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	return &Dataset{ids: ids, rows: rows}, nil
}

func parseAnswer(cell string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse answer %q", cell)
	}
}

func (d *Dataset) Len() int {
	return len(d.rows)
}

func (d *Dataset) FindByIndex(_ context.Context, index int) (Record, error) {
	if index < 0 || index >= len(d.rows) {
		return Record{}, ErrNotFound
	}
	answers := make(map[string]bool, len(d.ids))
	for i, id := range d.ids {
		answers[id] = d.rows[index][i]
	}
	return Record{Answers: answers}, nil
}
