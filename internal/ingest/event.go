package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/docsearch/internal/domain"
)

type Op string

const (
	OpPush   Op = "push"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var ErrInvalidEvent = errors.New("invalid event")

// Event is a document mutation published to the ingest topic
type Event struct {
	Op         Op              `json:"op"`
	DocumentID *int64          `json:"document_id,omitempty"`
	Document   domain.Document `json:"document,omitempty"`
}

// DecodeEvent parses and validates a message payload
func DecodeEvent(payload []byte) (*Event, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var ev Event
	if err := dec.Decode(&ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := ev.validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (ev *Event) validate() error {
	switch ev.Op {
	case OpPush:
		if ev.Document == nil {
			return fmt.Errorf("%w: push requires document", ErrInvalidEvent)
		}
	case OpUpdate:
		if ev.DocumentID == nil || *ev.DocumentID <= 0 {
			return fmt.Errorf("%w: update requires a positive document_id", ErrInvalidEvent)
		}
		if ev.Document == nil {
			return fmt.Errorf("%w: update requires document", ErrInvalidEvent)
		}
	case OpDelete:
		if ev.DocumentID == nil || *ev.DocumentID <= 0 {
			return fmt.Errorf("%w: delete requires a positive document_id", ErrInvalidEvent)
		}
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidEvent, ev.Op)
	}
	return nil
}
