package reader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/docsearch/internal/domain"
)

// Reader loads a batch of documents from a dataset file
type Reader interface {
	Read() ([]domain.Document, error)
}

// ForFile picks a reader by file extension: .csv, .ndjson/.jsonl or .json
func ForFile(path string, r io.Reader) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVReader(r), nil
	case ".ndjson", ".jsonl":
		return NewNDJSONReader(r), nil
	case ".json":
		return NewJSONReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", path)
	}
}
