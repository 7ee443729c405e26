package handlers

import (
	"errors"
	"log"
	"net/http"

	"railway/internal/domain"
	"railway/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// respondFields writes a 400 keyed by field name, the shape clients use to
// highlight form inputs.
func respondFields(c *gin.Context, fields map[string]any) {
	body := gin.H{}
	for k, v := range fields {
		body[k] = v
	}
	if rid := middleware.GetRequestID(c); rid != "" {
		body["request_id"] = rid
	}
	c.JSON(http.StatusBadRequest, body)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var (
		ticketErr   domain.TicketError
		fieldErrs   domain.FieldErrors
		validErr    domain.ValidationError
		internalErr domain.InternalError
	)
	switch {
	case errors.As(err, &ticketErr):
		respondTicketError(c, ticketErr, ticketErr.Index+1)
	case errors.As(err, &fieldErrs):
		fields := map[string]any{}
		for k, v := range fieldErrs {
			fields[k] = v
		}
		respondFields(c, fields)
	case errors.As(err, &validErr) && validErr.Field != "":
		respondFields(c, map[string]any{validErr.Field: validErr.Msg})
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.As(err, &internalErr):
		respondInternal(c, internalErr)
	default:
		respondInternal(c, domain.InternalError{Err: err})
	}
}

// respondInternal logs the cause and sends only the safe message.
func respondInternal(c *gin.Context, ie domain.InternalError) {
	log.Printf("[HTTP] request_id=%s path=%s internal error: %v", middleware.GetRequestID(c), c.Request.URL.Path, ie.Err)
	respondError(c, http.StatusInternalServerError, "internal_error", ie.Error(), nil)
}

// respondTicketError renders {"tickets": [{}, {"seat": "..."}]}: one entry
// per submitted ticket, only the failing one carries messages.
func respondTicketError(c *gin.Context, te domain.TicketError, count int) {
	if count <= te.Index {
		count = te.Index + 1
	}
	entries := make([]map[string]string, count)
	for i := range entries {
		entries[i] = map[string]string{}
	}
	entries[te.Index] = te.Fields()
	respondFields(c, map[string]any{"tickets": entries})
}
