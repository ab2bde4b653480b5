package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ycyaw66/library-backoffice/internal/entities"
	"github.com/ycyaw66/library-backoffice/internal/services"
)

type CardsController struct {
	library *services.Library
}

func NewCardsController(library *services.Library) *CardsController {
	return &CardsController{library: library}
}

type cardRequest struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Department string            `json:"department"`
	Type       entities.CardType `json:"type"`
}

// List handles GET /card.
func (ctl *CardsController) List(c *gin.Context) {
	respond(c, ctl.library.ShowCards())
}

// Register handles POST /card. A present-but-unknown type fails JSON
// binding; an omitted one is caught by the repository's validity check.
func (ctl *CardsController) Register(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid card body: "+err.Error())
		return
	}
	respond(c, ctl.library.RegisterCard(&entities.Card{
		Name:       req.Name,
		Department: req.Department,
		Type:       req.Type,
	}))
}

// Modify handles PUT /card.
func (ctl *CardsController) Modify(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid card body: "+err.Error())
		return
	}
	respond(c, ctl.library.ModifyCardInfo(&entities.Card{
		CardID:     req.ID,
		Name:       req.Name,
		Department: req.Department,
		Type:       req.Type,
	}))
}

// Remove handles DELETE /card.
func (ctl *CardsController) Remove(c *gin.Context) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	respond(c, ctl.library.RemoveCard(req.ID))
}
