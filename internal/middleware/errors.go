package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/logger"
)

// ErrorHandler is a Gin middleware that converts errors attached to the
// context (via c.Error) into a standardized 500 JSON response, unless a
// handler already wrote one.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewCodedErrorResponse("INTERNAL_ERROR", "Internal server error", err))
}

// AbortWithError writes a coded JSON error response with the given status
// and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	code := "INTERNAL_ERROR"
	switch status {
	case http.StatusBadRequest:
		code = "BAD_REQUEST"
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusTooManyRequests:
		code = "TOO_MANY_REQUESTS"
	}
	c.AbortWithStatusJSON(status, dto.NewCodedErrorResponse(code, message, err))
}
