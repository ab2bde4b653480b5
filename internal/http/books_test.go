package http

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookBody(title string, stock int) gin.H {
	return gin.H{
		"category":    "Fiction",
		"title":       title,
		"press":       "Knopf",
		"publishYear": 1956,
		"author":      "Yasunari Kawabata",
		"price":       10.0,
		"stock":       stock,
	}
}

func storeBook(t *testing.T, router *gin.Engine, title string, stock int) int64 {
	t.Helper()
	w := perform(t, router, http.MethodPost, "/book", bookBody(title, stock))
	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeResult(t, w)["payload"].(map[string]any)
	return int64(payload["bookId"].(float64))
}

func queryBooks(t *testing.T, router *gin.Engine, query string) []any {
	t.Helper()
	w := perform(t, router, http.MethodGet, "/book"+query, nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeResult(t, w)["payload"].(map[string]any)
	if payload["books"] == nil {
		return nil
	}
	return payload["books"].([]any)
}

func TestBooksController_Store(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := perform(t, router, http.MethodPost, "/book", bookBody("Snow Country", 3))
	require.Equal(t, http.StatusOK, w.Code)

	result := decodeResult(t, w)
	assert.Equal(t, true, result["ok"])
	payload := result["payload"].(map[string]any)
	assert.NotZero(t, payload["bookId"])
	assert.Equal(t, "Snow Country", payload["title"])
}

func TestBooksController_Store_Rejections(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	t.Run("duplicate natural key", func(t *testing.T) {
		w := perform(t, router, http.MethodPost, "/book", bookBody("Snow Country", 3))
		require.Equal(t, http.StatusOK, w.Code)

		w = perform(t, router, http.MethodPost, "/book", bookBody("Snow Country", 3))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, decodeResult(t, w)["ok"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/book", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_Query(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	storeBook(t, router, "Snow Country", 3)
	storeBook(t, router, "Thousand Cranes", 2)
	w := perform(t, router, http.MethodPost, "/book", gin.H{
		"category": "Poetry", "title": "Collected Haiku", "press": "Iwanami",
		"publishYear": 1989, "author": "Matsuo Basho", "price": 25.0, "stock": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, queryBooks(t, router, ""), 3)
	})

	t.Run("category filter is exact", func(t *testing.T) {
		found := queryBooks(t, router, "?category=Poetry")
		require.Len(t, found, 1)
		assert.Equal(t, "Collected Haiku", found[0].(map[string]any)["title"])
	})

	t.Run("title filter is a substring match", func(t *testing.T) {
		found := queryBooks(t, router, "?title=Cranes")
		require.Len(t, found, 1)
		assert.Equal(t, "Thousand Cranes", found[0].(map[string]any)["title"])
	})

	t.Run("sorting by price descending", func(t *testing.T) {
		found := queryBooks(t, router, "?sortBy=price&order=desc")
		require.Len(t, found, 3)
		assert.Equal(t, "Collected Haiku", found[0].(map[string]any)["title"])
	})

	t.Run("publish year range", func(t *testing.T) {
		found := queryBooks(t, router, "?minPublishYear=1980&maxPublishYear=2000")
		require.Len(t, found, 1)
	})

	t.Run("non-numeric range bound answers 400", func(t *testing.T) {
		w := perform(t, router, http.MethodGet, "/book?minPrice=cheap", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = perform(t, router, http.MethodGet, "/book?minPublishYear=recent", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_Modify(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	bookID := storeBook(t, router, "Snow Country", 3)

	t.Run("stock sentinel updates catalog fields only", func(t *testing.T) {
		w := perform(t, router, http.MethodPut, "/book", gin.H{
			"id": bookID, "category": "Classics", "title": "Snow Country",
			"press": "Vintage", "publishYear": 1956, "author": "Yasunari Kawabata",
			"price": 12.0, "stock": math.MinInt32,
		})
		require.Equal(t, http.StatusOK, w.Code)

		found := queryBooks(t, router, "")
		require.Len(t, found, 1)
		book := found[0].(map[string]any)
		assert.Equal(t, "Vintage", book["press"])
		assert.Equal(t, float64(3), book["stock"], "the sentinel leaves stock untouched")
	})

	t.Run("any other stock value is a delta", func(t *testing.T) {
		w := perform(t, router, http.MethodPut, "/book", gin.H{"id": bookID, "stock": 2})
		require.Equal(t, http.StatusOK, w.Code)

		book := queryBooks(t, router, "")[0].(map[string]any)
		assert.Equal(t, float64(5), book["stock"])
	})

	t.Run("a delta below zero stock answers 400", func(t *testing.T) {
		w := perform(t, router, http.MethodPut, "/book", gin.H{"id": bookID, "stock": -100})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		book := queryBooks(t, router, "")[0].(map[string]any)
		assert.Equal(t, float64(5), book["stock"])
	})

	t.Run("unknown book answers 400", func(t *testing.T) {
		w := perform(t, router, http.MethodPut, "/book", gin.H{"id": 12345, "stock": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_Remove(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	bookID := storeBook(t, router, "Snow Country", 3)

	w := perform(t, router, http.MethodDelete, "/book", gin.H{"id": bookID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, queryBooks(t, router, ""))

	w = perform(t, router, http.MethodDelete, "/book", gin.H{"id": bookID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooksController_StoreSet_JSON(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := perform(t, router, http.MethodPost, "/book/set", []gin.H{
		bookBody("Snow Country", 3),
		bookBody("Thousand Cranes", 2),
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeResult(t, w)["payload"].(map[string]any)
	assert.Equal(t, float64(2), payload["count"])
	assert.Len(t, queryBooks(t, router, ""), 2)
}

func TestBooksController_StoreSet_AllOrNothing(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	storeBook(t, router, "Snow Country", 3)

	w := perform(t, router, http.MethodPost, "/book/set", []gin.H{
		bookBody("Thousand Cranes", 2),
		bookBody("Snow Country", 1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, queryBooks(t, router, ""), 1, "no row of a rejected batch may land")
}

func TestBooksController_StoreSet_CSV(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	body := strings.Join([]string{
		"category,title,press,publish_year,author,price,stock",
		"Fiction,Snow Country,Knopf,1956,Yasunari Kawabata,10.00,3",
		"Fiction,Thousand Cranes,Knopf,1952,Yasunari Kawabata,9.50,2",
	}, "\n")

	req, _ := http.NewRequest(http.MethodPost, "/book/set", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, queryBooks(t, router, ""), 2)
}

func TestBooksController_StoreSet_RejectsBadInput(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	t.Run("empty JSON batch", func(t *testing.T) {
		w := perform(t, router, http.MethodPost, "/book/set", []gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed CSV row", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/book/set",
			strings.NewReader("Fiction,Snow Country,Knopf,1956,Yasunari Kawabata,not-a-price,3"))
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
