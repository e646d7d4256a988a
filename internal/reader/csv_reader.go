package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/DjordjeVuckovic/docsearch/internal/domain"
)

// CSVReader maps every row to a document keyed by the header line.
// Values stay strings except document_id, which is stored as an integer.
type CSVReader struct {
	reader io.Reader
}

func NewCSVReader(reader io.Reader) *CSVReader {
	return &CSVReader{
		reader: reader,
	}
}

func (cr *CSVReader) Read() ([]domain.Document, error) {
	csvReader := csv.NewReader(cr.reader)

	headers, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var docs []domain.Document
	for line := 2; ; line++ {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		doc := make(domain.Document, len(headers))
		for i, h := range headers {
			if row[i] == "" {
				continue
			}
			doc[h] = row[i]
		}

		if raw, ok := doc[domain.IDField].(string); ok {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s %q is not an integer", line, domain.IDField, raw)
			}
			doc[domain.IDField] = id
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
