package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ycyaw66/library-backoffice/internal/services"
)

// AdminController exposes the schema reset used by test and bootstrap
// fixtures. It is not part of normal request traffic.
type AdminController struct {
	library *services.Library
}

func NewAdminController(library *services.Library) *AdminController {
	return &AdminController{library: library}
}

// Reset handles POST /admin/reset: drops and recreates all tables.
func (ctl *AdminController) Reset(c *gin.Context) {
	respond(c, ctl.library.ResetDatabase())
}
