package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// IDField is the document attribute used as the engine id when present
const IDField = "document_id"

// Document is a free-form JSON object stored in the search index
type Document map[string]any

// ID returns the document_id attribute as an engine id.
// ok is false when the attribute is missing or not an integer.
func (d Document) ID() (id string, ok bool) {
	raw, exists := d[IDField]
	if !exists || raw == nil {
		return "", false
	}

	switch v := raw.(type) {
	case float64:
		if v != float64(int64(v)) {
			return "", false
		}
		return strconv.FormatInt(int64(v), 10), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	default:
		return "", false
	}
}

// FormattedDocument is the public shape of a search hit
type FormattedDocument struct {
	ID       string          `json:"id"`
	Weight   float64         `json:"weight"`
	Document json.RawMessage `json:"document,omitempty"`
}

// ParseID converts a path parameter into a document id
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("document_id %q is not an integer: %w", raw, err)
	}
	return id, nil
}
