package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/documents"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/validate"
	"github.com/DjordjeVuckovic/docsearch/pkg/pagination"
	"github.com/labstack/echo/v4"
)

const (
	MsgTextMissing     = "query parameter 'text' not available"
	MsgDocumentMissing = "body parameter 'document' not available"
	MsgInvalidID       = "body parameter document_id not an integer"
	MsgInvalidBody     = "request body is not valid JSON"

	MsgPushed  = "document pushed to the index"
	MsgUpdated = "document updated to the index"
	MsgDeleted = "record deleted in the index"
)

const documentsPath = "/api/v1/documents"

type DocumentRouter struct {
	e       *echo.Echo
	svc     *documents.Service
	baseURL string
}

// NewDocumentRouter serves svc under /api/v1. Paging links are built from publicBaseURL.
func NewDocumentRouter(e *echo.Echo, svc *documents.Service, publicBaseURL string) *DocumentRouter {
	return &DocumentRouter{
		e:       e,
		svc:     svc,
		baseURL: strings.TrimRight(publicBaseURL, "/") + documentsPath,
	}
}

func (r *DocumentRouter) Bind() {
	g := r.e.Group("/api/v1")
	g.GET("/documents", r.search)
	g.POST("/documents", r.push)
	g.GET("/documents/:document_id", r.get)
	g.PATCH("/documents/:document_id", r.update)
	g.DELETE("/document/:document_id", r.delete)
}

type SearchResponse struct {
	Query     map[string]any             `json:"query"`
	Documents []domain.FormattedDocument `json:"documents"`
	Metadata  pagination.Metadata        `json:"metadata"`
}

type GetResponse struct {
	Params    map[string]any            `json:"params"`
	Documents *domain.FormattedDocument `json:"documents"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Query   any    `json:"query,omitempty"`
}

type DocumentRequest struct {
	Document domain.Document `json:"document" validate:"required"`
}

type documentIDParam struct {
	DocumentID int64 `param:"document_id" validate:"gt=0"`
}

// search godoc
// @Summary Search documents
// @Description Full text search over the index with page based navigation
// @Tags documents
// @Produce json
// @Param text query string true "Search text"
// @Param limit query int false "Page size, 1 to 99" default(20)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} MessageResponse
// @Router /api/v1/documents [get]
func (r *DocumentRouter) search(c echo.Context) error {
	params := c.QueryParams()
	text := strings.TrimSpace(params.Get("text"))
	if text == "" {
		return apperr.NewValidation(MsgTextMissing).WithQuery(echoQuery(params))
	}

	w := pagination.ResolveWindow(
		pagination.ParseOptionalInt(params.Get("limit")),
		pagination.ParseOptionalInt(params.Get(pagination.PageParam)),
	)

	res, err := r.svc.Search(c.Request().Context(), text, w)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Query:     echoQuery(params),
		Documents: documents.Format(res.Hits),
		Metadata:  pagination.BuildMetadata(res.Total, w, r.baseURL, params),
	})
}

// push godoc
// @Summary Add a document
// @Description Stores the document, using its document_id as the id when present
// @Tags documents
// @Accept json
// @Produce json
// @Param request body DocumentRequest true "Document to store"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} MessageResponse
// @Router /api/v1/documents [post]
func (r *DocumentRouter) push(c echo.Context) error {
	req, err := bindDocument(c)
	if err != nil {
		return err
	}

	if _, err := r.svc.Push(c.Request().Context(), req.Document); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: MsgPushed})
}

// get godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param document_id path int true "Document id"
// @Success 200 {object} GetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} MessageResponse
// @Router /api/v1/documents/{document_id} [get]
func (r *DocumentRouter) get(c echo.Context) error {
	id, err := documentID(c)
	if err != nil {
		return err
	}

	hit, err := r.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	resp := GetResponse{Params: map[string]any{domain.IDField: id}}
	if hit != nil {
		doc := documents.FormatHit(*hit)
		resp.Documents = &doc
	}
	return c.JSON(http.StatusOK, resp)
}

// update godoc
// @Summary Update a document
// @Description Merges the given attributes into the stored document
// @Tags documents
// @Accept json
// @Produce json
// @Param document_id path int true "Document id"
// @Param request body DocumentRequest true "Attributes to merge"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} MessageResponse
// @Router /api/v1/documents/{document_id} [patch]
func (r *DocumentRouter) update(c echo.Context) error {
	id, err := documentID(c)
	if err != nil {
		return err
	}
	req, err := bindDocument(c)
	if err != nil {
		return err
	}

	if err := r.svc.Update(c.Request().Context(), id, req.Document); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: MsgUpdated})
}

// delete godoc
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Param document_id path int true "Document id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} MessageResponse
// @Router /api/v1/document/{document_id} [delete]
func (r *DocumentRouter) delete(c echo.Context) error {
	id, err := documentID(c)
	if err != nil {
		return err
	}

	if err := r.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: MsgDeleted})
}

func documentID(c echo.Context) (int64, error) {
	raw := c.Param(domain.IDField)
	invalid := func(err error) error {
		return apperr.NewValidationWrap(MsgInvalidID, err).WithQuery(map[string]any{domain.IDField: raw})
	}

	id, err := domain.ParseID(raw)
	if err != nil {
		return 0, invalid(err)
	}
	if err := c.Validate(documentIDParam{DocumentID: id}); err != nil {
		return 0, invalid(err)
	}
	return id, nil
}

func bindDocument(c echo.Context) (*DocumentRequest, error) {
	var req DocumentRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return nil, apperr.NewValidationWrap(MsgInvalidBody, err)
	}
	if err := c.Validate(req); err != nil {
		return nil, apperr.NewValidationWrap(MsgDocumentMissing, err).WithQuery(validate.Message(err))
	}
	return &req, nil
}

// echoQuery returns the request query the way it is reported back to clients
func echoQuery(params url.Values) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if k == "text" && len(v) == 1 {
			out[k] = strings.TrimSpace(v[0])
			continue
		}
		if len(v) == 1 {
			out[k] = v[0]
			continue
		}
		out[k] = v
	}
	return out
}
