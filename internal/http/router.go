// Package http adapts the library service to its REST-like surface. The
// controllers only translate wire payloads into service calls and serialize
// the uniform Result back; every business decision lives below them.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/services"
)

// RouterConfig carries the router's dependencies.
type RouterConfig struct {
	Library  *services.Library
	Database *database.Database
	Version  string
}

// CORSMiddleware allows cross-origin requests from the separately hosted
// front office and short-circuits preflight requests with 204.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())

	// Unknown methods on known routes answer 405 rather than 404.
	router.HandleMethodNotAllowed = true

	health := NewHealthController(cfg.Database, cfg.Version)
	books := NewBooksController(cfg.Library)
	cards := NewCardsController(cfg.Library)
	borrows := NewBorrowsController(cfg.Library)
	admin := NewAdminController(cfg.Library)

	router.GET("/health", health.Status)

	router.GET("/book", books.Query)
	router.POST("/book", books.Store)
	router.PUT("/book", books.Modify)
	router.DELETE("/book", books.Remove)
	router.POST("/book/set", books.StoreSet)

	router.GET("/card", cards.List)
	router.POST("/card", cards.Register)
	router.PUT("/card", cards.Modify)
	router.DELETE("/card", cards.Remove)

	router.GET("/borrow", borrows.History)
	router.PUT("/borrow", borrows.Borrow)
	router.PUT("/return", borrows.Return)

	router.POST("/admin/reset", admin.Reset)

	return router
}
