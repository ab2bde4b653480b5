// Package books provides the catalog side of the lending back office:
// storing, updating, deleting and querying book records, and adjusting
// stock under the no-negative-stock invariant.
//
// Every mutating operation runs inside its own transaction so duplicate
// checks and inserts cannot race with a concurrent identical call.
package books

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/entities"
)

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var sortColumns = map[entities.BookSortColumn]bool{
	entities.SortByBookID:      true,
	entities.SortByCategory:    true,
	entities.SortByTitle:       true,
	entities.SortByPress:       true,
	entities.SortByPublishYear: true,
	entities.SortByAuthor:      true,
	entities.SortByPrice:       true,
	entities.SortByStock:       true,
}

// Store inserts a new catalog entry and fills in its generated BookID.
// Rejects when another book with the same natural key exists; the check and
// the insert share one transaction.
func (r *Repository) Store(book *entities.Book) error {
	if book.Stock < 0 {
		return database.ErrNegativeStock
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		dup, err := sameBookExists(tx, book, 0)
		if err != nil {
			return err
		}
		if dup {
			return database.ErrDuplicateBook
		}
		return tx.Create(book).Error
	})
}

// StoreBatch inserts every candidate or none. The duplicate check runs per
// candidate inside the shared transaction, so a candidate colliding with an
// earlier one in the same batch is caught as well.
func (r *Repository) StoreBatch(candidates []*entities.Book) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, book := range candidates {
			if book.Stock < 0 {
				return database.ErrNegativeStock
			}
			dup, err := sameBookExists(tx, book, 0)
			if err != nil {
				return err
			}
			if dup {
				return fmt.Errorf("%q by %s: %w", book.Title, book.Author, database.ErrDuplicateBook)
			}
			if err := tx.Create(book).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AdjustStock applies a signed delta to a book's stock. A single conditional
// UPDATE guards the non-negative invariant, so concurrent adjustments cannot
// produce a lost update; the follow-up reads only disambiguate the rejection.
func (r *Repository) AdjustStock(bookID int64, delta int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Book{}).
			Where("book_id = ? AND stock + ? >= 0", bookID, delta).
			Update("stock", gorm.Expr("stock + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&entities.Book{}).Where("book_id = ?", bookID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return database.ErrBookNotFound
		}
		return database.ErrNegativeStock
	})
}

// Update overwrites a book's catalog fields. Stock is deliberately left
// untouched; stock changes go only through AdjustStock. Rejects when the
// edited natural key would collide with a different existing book.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		exists, err := bookExists(tx, book.BookID)
		if err != nil {
			return err
		}
		if !exists {
			return database.ErrBookNotFound
		}

		dup, err := sameBookExists(tx, book, book.BookID)
		if err != nil {
			return err
		}
		if dup {
			return database.ErrDuplicateBook
		}

		return tx.Model(&entities.Book{}).Where("book_id = ?", book.BookID).Updates(map[string]any{
			"category":     book.Category,
			"title":        book.Title,
			"press":        book.Press,
			"publish_year": book.PublishYear,
			"author":       book.Author,
			"price":        book.Price,
		}).Error
	})
}

// Delete removes a book. Rejects while any open loan still references it.
func (r *Repository) Delete(bookID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var open int64
		err := tx.Model(&entities.Borrow{}).
			Where("book_id = ? AND return_time = 0", bookID).
			Count(&open).Error
		if err != nil {
			return err
		}
		if open > 0 {
			return database.ErrBookOnLoan
		}

		exists, err := bookExists(tx, bookID)
		if err != nil {
			return err
		}
		if !exists {
			return database.ErrBookNotFound
		}

		return tx.Delete(&entities.Book{}, "book_id = ?", bookID).Error
	})
}

// Query returns catalog entries matching the filter, in the caller-selected
// order. Ties are always broken by book_id ascending so the result order is
// deterministic regardless of the sort column.
func (r *Repository) Query(q entities.BookQuery) ([]entities.Book, error) {
	tx := r.db.Model(&entities.Book{})

	if q.Category != nil {
		tx = tx.Where("category = ?", *q.Category)
	}
	// SQLite's LIKE is ASCII case-insensitive, so substring matches use
	// instr to stay case-sensitive.
	if q.Title != nil {
		tx = tx.Where("instr(title, ?) > 0", *q.Title)
	}
	if q.Press != nil {
		tx = tx.Where("instr(press, ?) > 0", *q.Press)
	}
	if q.Author != nil {
		tx = tx.Where("instr(author, ?) > 0", *q.Author)
	}
	if q.MinPublishYear != nil {
		tx = tx.Where("publish_year >= ?", *q.MinPublishYear)
	}
	if q.MaxPublishYear != nil {
		tx = tx.Where("publish_year <= ?", *q.MaxPublishYear)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	var results []entities.Book
	err := tx.Order(orderClause(q)).Find(&results).Error
	return results, err
}

func orderClause(q entities.BookQuery) string {
	col := q.SortBy
	if !sortColumns[col] {
		col = entities.SortByBookID
	}
	dir := "ASC"
	if q.Order == entities.SortDesc {
		dir = "DESC"
	}
	clause := string(col) + " " + dir
	if col != entities.SortByBookID {
		clause += ", book_id ASC"
	}
	return clause
}

func bookExists(tx *gorm.DB, bookID int64) (bool, error) {
	var count int64
	err := tx.Model(&entities.Book{}).Where("book_id = ?", bookID).Count(&count).Error
	return count > 0, err
}

// sameBookExists checks the natural key against the catalog, ignoring the
// row identified by excludeID (zero means exclude nothing).
func sameBookExists(tx *gorm.DB, book *entities.Book, excludeID int64) (bool, error) {
	var count int64
	err := tx.Model(&entities.Book{}).
		Where("category = ? AND title = ? AND press = ? AND publish_year = ? AND author = ? AND book_id <> ?",
			book.Category, book.Title, book.Press, book.PublishYear, book.Author, excludeID).
		Count(&count).Error
	return count > 0, err
}
