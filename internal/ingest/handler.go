package ingest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
)

// DocumentStore is the subset of documents.Service the worker writes through
type DocumentStore interface {
	Push(ctx context.Context, doc domain.Document) (string, error)
	Update(ctx context.Context, id int64, doc domain.Document) error
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	store     DocumentStore
	observers []apperr.UpstreamObserver
}

func NewHandler(store DocumentStore, observers ...apperr.UpstreamObserver) *Handler {
	return &Handler{
		store:     store,
		observers: observers,
	}
}

// Handle applies one message payload. Engine failures are reported to the observers and returned.
func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	ev, err := DecodeEvent(payload)
	if err != nil {
		return err
	}

	switch ev.Op {
	case OpPush:
		var id string
		id, err = h.store.Push(ctx, ev.Document)
		if err == nil {
			slog.Debug("Document pushed from event", "id", id)
		}
	case OpUpdate:
		err = h.store.Update(ctx, *ev.DocumentID, ev.Document)
	case OpDelete:
		err = h.store.Delete(ctx, *ev.DocumentID)
	}

	var ue *apperr.UpstreamError
	if errors.As(err, &ue) {
		for _, observe := range h.observers {
			observe(ue)
		}
	}
	return err
}
