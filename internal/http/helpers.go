package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ycyaw66/library-backoffice/internal/services"
)

// respond maps the uniform Result onto the HTTP contract: 200 on success,
// 400 for business-rule rejections, 500 for infrastructure failures.
func respond(c *gin.Context, res services.Result) {
	switch {
	case res.OK:
		c.JSON(http.StatusOK, res)
	case res.Rejected():
		c.JSON(http.StatusBadRequest, res)
	default:
		c.JSON(http.StatusInternalServerError, res)
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": message})
}

// orNow substitutes the current time for an omitted loan timestamp.
func orNow(millis int64) int64 {
	if millis != 0 {
		return millis
	}
	return time.Now().UnixMilli()
}
