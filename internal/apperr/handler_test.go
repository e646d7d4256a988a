package apperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, handlerErr error, observers ...apperr.UpstreamObserver) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler(observers...)
	e.GET("/fail", func(c echo.Context) error {
		return handlerErr
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandler_Validation(t *testing.T) {
	err := apperr.NewValidation("query parameter 'text' not available").
		WithQuery(map[string]string{"limit": "5"})

	rec := serveError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "query parameter 'text' not available", body["message"])
	assert.Equal(t, map[string]any{"limit": "5"}, body["query"])
}

func TestGlobalErrorHandler_UpstreamIsGeneric(t *testing.T) {
	var observed []*apperr.UpstreamError
	err := apperr.NewUpstream("search", apperr.KindMalformedQuery, errors.New("parsing_exception: secret detail"))

	rec := serveError(t, err, func(ue *apperr.UpstreamError) {
		observed = append(observed, ue)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"message": "Internal server error"}, decodeBody(t, rec))
	assert.NotContains(t, rec.Body.String(), "secret")
	require.Len(t, observed, 1)
	assert.Equal(t, apperr.KindMalformedQuery, observed[0].Kind)
}

func TestGlobalErrorHandler_HTTPError(t *testing.T) {
	rec := serveError(t, echo.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported"))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "unsupported", decodeBody(t, rec)["message"])
}

func TestGlobalErrorHandler_Unknown(t *testing.T) {
	rec := serveError(t, errors.New("nil pointer somewhere"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["message"])
}
