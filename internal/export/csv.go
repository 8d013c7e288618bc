package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"docsearch/internal/domain"
)

// DefaultCreatorSeparator joins multiple creators in a single CSV cell.
const DefaultCreatorSeparator = ", "

var header = []string{"Title", "Creator", "Date", "Type", "Content"}

// WriteCSV writes docs to w, one row per document in the given order.
func WriteCSV(w io.Writer, docs []domain.Document, creatorSep string) error {
	if creatorSep == "" {
		creatorSep = DefaultCreatorSeparator
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, d := range docs {
		row := []string{d.Title(), d.CreatorsJoined(creatorSep), d.Timestamp(), d.Type(), d.Content()}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes docs to path, creating directories as needed.
func SaveCSV(path string, docs []domain.Document, creatorSep string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, docs, creatorSep); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
