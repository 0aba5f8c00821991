package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

var statusBySentinel = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidRequest, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	// Duplicate signups answer 400 to match the published contract.
	{domain.ErrConflict, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
}

// writeError maps service errors onto status codes. Anything unrecognised is
// reported as an opaque 500.
func writeError(c *gin.Context, err error) {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			c.JSON(s.status, errorResponse{Error: publicMessage(err, s.err)})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// publicMessage drops the trailing sentinel text from a wrapped error.
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	if msg == sentinel.Error() {
		return msg
	}
	return strings.TrimSuffix(msg, ": "+sentinel.Error())
}
