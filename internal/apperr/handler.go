package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// InternalErrorMessage is the only detail a client ever sees for a 500
const InternalErrorMessage = "Internal server error"

// UpstreamObserver is notified about every engine failure that reaches the handler
type UpstreamObserver func(err *UpstreamError)

func GlobalErrorHandler(observers ...UpstreamObserver) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]any{"message": ve.Message, "query": ve.Query})
			return
		}

		var ue *UpstreamError
		if errors.As(err, &ue) {
			slog.Error("Engine call failed",
				"op", ue.Op,
				"kind", ue.Kind,
				"uri", c.Request().RequestURI,
				"error", ue.Err)
			for _, observe := range observers {
				observe(ue)
			}
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"message": InternalErrorMessage})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"message": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"message": InternalErrorMessage})
	}
}
