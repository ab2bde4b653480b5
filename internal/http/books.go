package http

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ycyaw66/library-backoffice/internal/entities"
	"github.com/ycyaw66/library-backoffice/internal/services"
)

// StockUnchanged is the sentinel a PUT /book body carries in its stock field
// to request a catalog-info update; any other value is a stock delta.
const StockUnchanged = math.MinInt32

type BooksController struct {
	library *services.Library
}

func NewBooksController(library *services.Library) *BooksController {
	return &BooksController{library: library}
}

type bookRequest struct {
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Press       string  `json:"press"`
	PublishYear int     `json:"publishYear"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (r bookRequest) toBook() *entities.Book {
	return &entities.Book{
		Category:    r.Category,
		Title:       r.Title,
		Press:       r.Press,
		PublishYear: r.PublishYear,
		Author:      r.Author,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

// Query handles GET /book: filter conditions come from the query string,
// all of them optional.
func (ctl *BooksController) Query(c *gin.Context) {
	var q entities.BookQuery

	if s, ok := c.GetQuery("category"); ok {
		q.Category = &s
	}
	if s, ok := c.GetQuery("title"); ok {
		q.Title = &s
	}
	if s, ok := c.GetQuery("press"); ok {
		q.Press = &s
	}
	if s, ok := c.GetQuery("author"); ok {
		q.Author = &s
	}

	intParams := map[string]**int{
		"minPublishYear": &q.MinPublishYear,
		"maxPublishYear": &q.MaxPublishYear,
	}
	for name, dst := range intParams {
		if s, ok := c.GetQuery(name); ok {
			n, err := strconv.Atoi(s)
			if err != nil {
				badRequest(c, name+" must be an integer")
				return
			}
			*dst = &n
		}
	}

	floatParams := map[string]**float64{
		"minPrice": &q.MinPrice,
		"maxPrice": &q.MaxPrice,
	}
	for name, dst := range floatParams {
		if s, ok := c.GetQuery(name); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				badRequest(c, name+" must be a number")
				return
			}
			*dst = &f
		}
	}

	q.SortBy = entities.BookSortColumn(c.DefaultQuery("sortBy", string(entities.SortByBookID)))
	q.Order = entities.SortOrder(strings.ToUpper(c.DefaultQuery("order", string(entities.SortAsc))))

	respond(c, ctl.library.QueryBooks(q))
}

// Store handles POST /book.
func (ctl *BooksController) Store(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid book body: "+err.Error())
		return
	}
	respond(c, ctl.library.StoreBook(req.toBook()))
}

type bookModifyRequest struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Press       string  `json:"press"`
	PublishYear int     `json:"publishYear"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// Modify handles PUT /book, which doubles as the stock-adjustment endpoint:
// a StockUnchanged sentinel selects modifyBookInfo, anything else is a
// delta for incBookStock.
func (ctl *BooksController) Modify(c *gin.Context) {
	var req bookModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid book body: "+err.Error())
		return
	}

	if req.Stock != StockUnchanged {
		respond(c, ctl.library.IncBookStock(req.ID, req.Stock))
		return
	}

	respond(c, ctl.library.ModifyBookInfo(&entities.Book{
		BookID:      req.ID,
		Category:    req.Category,
		Title:       req.Title,
		Press:       req.Press,
		PublishYear: req.PublishYear,
		Author:      req.Author,
		Price:       req.Price,
	}))
}

// Remove handles DELETE /book.
func (ctl *BooksController) Remove(c *gin.Context) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	respond(c, ctl.library.RemoveBook(req.ID))
}

// StoreSet handles POST /book/set: an all-or-nothing batch from either a
// JSON array or a CSV body, selected by Content-Type.
func (ctl *BooksController) StoreSet(c *gin.Context) {
	var candidates []*entities.Book

	if strings.Contains(c.ContentType(), "csv") {
		parsed, err := parseBookCSV(c.Request.Body)
		if err != nil {
			badRequest(c, "invalid CSV body: "+err.Error())
			return
		}
		candidates = parsed
	} else {
		var reqs []bookRequest
		if err := c.ShouldBindJSON(&reqs); err != nil {
			badRequest(c, "invalid book array: "+err.Error())
			return
		}
		for _, req := range reqs {
			candidates = append(candidates, req.toBook())
		}
	}

	if len(candidates) == 0 {
		badRequest(c, "empty batch")
		return
	}
	respond(c, ctl.library.StoreBooks(candidates))
}

// parseBookCSV reads rows of category,title,press,publish_year,author,price,stock.
// A leading header row is skipped when its publish_year column is not numeric.
func parseBookCSV(r io.Reader) ([]*entities.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 7
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var candidates []*entities.Book
	for i, rec := range records {
		year, err := strconv.Atoi(rec[3])
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: publish year %q is not an integer", i+1, rec[3])
		}
		price, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: price %q is not a number", i+1, rec[5])
		}
		stock, err := strconv.Atoi(rec[6])
		if err != nil {
			return nil, fmt.Errorf("row %d: stock %q is not an integer", i+1, rec[6])
		}
		candidates = append(candidates, &entities.Book{
			Category:    rec[0],
			Title:       rec[1],
			Press:       rec[2],
			PublishYear: year,
			Author:      rec[4],
			Price:       price,
			Stock:       stock,
		})
	}
	return candidates, nil
}
