package pg

import (
	"errors"
	"strings"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	queryCanceled       = "57014"
)

func classify(err error) apperr.Kind {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == foreignKeyViolation:
			return apperr.KindNotFound
		case pgErr.Code == queryCanceled:
			return apperr.KindTimeout
		case pgErr.Code == uniqueViolation:
			return apperr.KindMalformedQuery
		case strings.HasPrefix(pgErr.Code, "42"), strings.HasPrefix(pgErr.Code, "22"):
			return apperr.KindMalformedQuery
		case strings.HasPrefix(pgErr.Code, "08"):
			return apperr.KindConnection
		}
		return apperr.KindUnknown
	}

	if pgconn.Timeout(err) {
		return apperr.KindTimeout
	}
	return apperr.ClassifyTransport(err)
}

func upstream(op string, err error) error {
	return apperr.NewUpstream(op, classify(err), err)
}
