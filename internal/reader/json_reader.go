package reader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/docsearch/internal/domain"
)

// JSONReader reads a single JSON array of documents
type JSONReader struct {
	reader io.Reader
}

func NewJSONReader(reader io.Reader) *JSONReader {
	return &JSONReader{reader: reader}
}

func (jr *JSONReader) Read() ([]domain.Document, error) {
	dec := json.NewDecoder(jr.reader)
	dec.UseNumber()

	var docs []domain.Document
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to decode document array: %w", err)
	}
	return docs, nil
}

// NDJSONReader reads one document per line, blank lines are skipped
type NDJSONReader struct {
	reader io.Reader
}

func NewNDJSONReader(reader io.Reader) *NDJSONReader {
	return &NDJSONReader{reader: reader}
}

func (nr *NDJSONReader) Read() ([]domain.Document, error) {
	scanner := bufio.NewScanner(nr.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var docs []domain.Document
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var doc domain.Document
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
