package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	nethttp "net/http"

	"roomserver/internal/shared"
)

// bindJSON caps the request body at maxBytes (matching the teacher's
// Gin-native validation style via http.MaxBytesReader) and decodes it into
// dst, translating a body-too-large condition and a malformed payload into
// the wire's stable error codes.
func bindJSON(c *gin.Context, dst any, maxBytes int64) error {
	c.Request.Body = nethttp.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	if err := c.ShouldBindJSON(dst); err != nil {
		var maxBytesErr *nethttp.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return shared.ErrBodyTooLarge
		}
		return shared.ErrInvalidJSON
	}
	return nil
}
