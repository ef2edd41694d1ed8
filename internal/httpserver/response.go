package httpserver

import (
	"errors"
	"log"
	"net/http"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

func succeed(c *gin.Context, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// writeError maps service errors to status codes. Unknown errors are
// logged and reported without detail.
func writeError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ordersvc.ErrEmptyCart):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrIllegalTransition):
		fail(c, http.StatusConflict, err.Error())
	default:
		logger.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		fail(c, http.StatusInternalServerError, "internal error")
	}
}
