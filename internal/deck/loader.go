package deck

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Load reads CSV rows from r and builds a deck with the given columns.
func Load(r io.Reader, cols Columns) (Deck, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may vary; Build validates per row

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse CSV: %w", err)
	}

	return Build(rows, cols)
}

// LoadFile reads a CSV file from disk and builds a deck from it.
func LoadFile(path string, cols Columns) (Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	d, err := Load(f, cols)
	if err != nil {
		return nil, err
	}

	log.Debug("Loaded deck", "path", path, "cards", len(d))
	return d, nil
}
