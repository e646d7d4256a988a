package es

import (
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// classify maps an Elasticsearch client error to an upstream error kind
func classify(err error) apperr.Kind {
	var esErr *types.ElasticsearchError
	if errors.As(err, &esErr) {
		switch {
		case esErr.Status == http.StatusNotFound:
			return apperr.KindNotFound
		case esErr.Status == http.StatusRequestTimeout || esErr.Status == http.StatusGatewayTimeout:
			return apperr.KindTimeout
		case esErr.Status == http.StatusServiceUnavailable:
			return apperr.KindConnection
		case esErr.Status >= 400 && esErr.Status < 500:
			return apperr.KindMalformedQuery
		}
		return apperr.KindUnknown
	}
	return apperr.ClassifyTransport(err)
}

func upstream(op string, err error) error {
	return apperr.NewUpstream(op, classify(err), err)
}

func isNotFound(err error) bool {
	var esErr *types.ElasticsearchError
	return errors.As(err, &esErr) && esErr.Status == http.StatusNotFound
}
