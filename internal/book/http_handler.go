package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"booksapi/internal/httpx"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"books": books})
}

// @Summary Get book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.GetByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"book": book})
}

// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeObject(w, r)
	if !ok {
		return
	}
	book, err := h.service.Create(r.Context(), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"book": book})
}

// @Summary Update a book
// @Description Partial update; isbn cannot be changed
// @Tags books
// @Accept json
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeObject(w, r)
	if !ok {
		return
	}
	book, err := h.service.Update(r.Context(), r.PathValue("isbn"), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"book": book})
}

// @Summary Delete a book
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]string
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("isbn")); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
}

// decodeObject reads the body as a single JSON object, keeping numbers as
// json.Number so the schema can tell integers apart.
func (h *HTTPHandler) decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var payload map[string]any
	err := dec.Decode(&payload)
	if err == nil && payload == nil {
		err = errors.New("null body")
	}
	if err == nil && dec.Decode(&struct{}{}) != io.EOF {
		err = errors.New("trailing data after JSON object")
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, httpx.CodePayloadTooLarge, "Request body too large")
			return nil, false
		}
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeInvalidJSON, "request body must be a JSON object")
		return nil, false
	}
	return payload, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeValidation, verr.Problems)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeNotFound,
			fmt.Sprintf("There is no book with isbn %q", r.PathValue("isbn")))
	case errors.Is(err, ErrConflict):
		httpx.JSONError(w, r, http.StatusConflict, httpx.CodeConflict, "A book with this isbn already exists")
	default:
		h.logger.Error("book request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
		httpx.JSONError(w, r, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error")
	}
}
