package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ycyaw66/library-backoffice/internal/services"
)

type BorrowsController struct {
	library *services.Library
}

func NewBorrowsController(library *services.Library) *BorrowsController {
	return &BorrowsController{library: library}
}

type loanRequest struct {
	CardID     int64 `json:"cardId"`
	BookID     int64 `json:"bookId"`
	BorrowTime int64 `json:"borrowTime"`
	ReturnTime int64 `json:"returnTime"`
}

// History handles GET /borrow?cardId=N.
func (ctl *BorrowsController) History(c *gin.Context) {
	raw := c.Query("cardId")
	if raw == "" {
		badRequest(c, "cardId query parameter is required")
		return
	}
	cardID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badRequest(c, "cardId must be an integer")
		return
	}
	respond(c, ctl.library.ShowBorrowHistory(cardID))
}

// Borrow handles PUT /borrow. An omitted borrow time defaults to now.
func (ctl *BorrowsController) Borrow(c *gin.Context) {
	var req loanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	respond(c, ctl.library.BorrowBook(req.CardID, req.BookID, orNow(req.BorrowTime)))
}

// Return handles PUT /return. An omitted return time defaults to now.
func (ctl *BorrowsController) Return(c *gin.Context) {
	var req loanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	respond(c, ctl.library.ReturnBook(req.CardID, req.BookID, orNow(req.ReturnTime)))
}
