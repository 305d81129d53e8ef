package handlers

import (
	"errors"
	"net/http"

	ar "acme_reviews"

	"github.com/gin-gonic/gin"
)

const (
	msgNotAuthorized = "not authorized"
	msgNotFound      = "not found"
	msgInternal      = "internal error"
	msgInvalidBody   = "invalid body: "
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error" example:"not found"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, errorResponse{Error: userMsg})
}

// respondError maps an error kind to its status code. Only unexpected errors
// are logged; their detail never reaches the client.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, ar.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: detailOr(err, "invalid input")})
	case errors.Is(err, ar.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: msgNotAuthorized})
	case errors.Is(err, ar.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: msgNotFound})
	case errors.Is(err, ar.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Error: detailOr(err, "conflict")})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, msgInternal, logKey, err, kv...)
	}
}

func detailOr(err error, fallback string) string {
	if d := ar.Detail(err); d != "" {
		return d
	}
	return fallback
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "route", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody + err.Error()})
		return false
	}
	return true
}
