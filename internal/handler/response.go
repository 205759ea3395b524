package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carex-health/carex-api/internal/service/flow"
	"github.com/carex-health/carex-api/internal/validation"
	apperrors "github.com/carex-health/carex-api/pkg/errors"
)

// Response is the envelope every endpoint returns. Errors carries
// field-scoped validation messages; Next tells the client where to navigate.
type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Next    *flow.Destination `json:"next,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// WithNext attaches a navigation target to the response.
func (r *Response) WithNext(dest flow.Destination) *Response {
	r.Next = &dest
	return r
}

// RespondValidation blocks a submission with its field-scoped messages.
func RespondValidation(c *gin.Context, fieldErrs validation.FieldErrors) {
	c.JSON(http.StatusBadRequest, &Response{
		Status:  "error",
		Message: "validation failed",
		Errors:  fieldErrs,
	})
}

// RespondError maps an orchestration error to its HTTP status. Remote-store
// failures surface as errors rather than silently resolving to nothing.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrNotFound:
			status = http.StatusNotFound
		case apperrors.ErrBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.ErrForbidden:
			status = http.StatusForbidden
		case apperrors.ErrConflict:
			status = http.StatusConflict
		}
		message = appErr.Message
	}

	c.JSON(status, NewErrorResponse(message))
}
