// Package borrows is the loan ledger. A loan moves NoLoan -> Open -> Closed
// per (card, book) pair; re-borrowing is allowed once the prior loan closes.
// Stock movement and record changes always commit in the same transaction.
package borrows

import (
	"gorm.io/gorm"

	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/entities"
)

// Repository handles all borrow ledger database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrows repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Borrow opens a loan: decrements the book's stock by one and inserts an
// open record, atomically. The decrement is a single conditional UPDATE
// guarded by stock > 0; zero affected rows means the copy went to a
// concurrent borrower (or the book does not exist) and the whole operation
// fails without partial state.
func (r *Repository) Borrow(cardID, bookID, borrowTime int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		open, err := openLoan(tx, cardID, bookID)
		if err != nil {
			return err
		}
		if open != nil {
			return database.ErrAlreadyBorrowed
		}

		res := tx.Model(&entities.Book{}).
			Where("book_id = ? AND stock > 0", bookID).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrOutOfStock
		}

		return tx.Create(&entities.Borrow{
			CardID:     cardID,
			BookID:     bookID,
			BorrowTime: borrowTime,
			ReturnTime: 0,
		}).Error
	})
}

// Return closes the pair's open loan: bumps the book's stock back up and
// stamps the return time. Rejects when no open loan exists or when the
// return time is not strictly after the borrow time.
func (r *Repository) Return(cardID, bookID, returnTime int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		open, err := openLoan(tx, cardID, bookID)
		if err != nil {
			return err
		}
		if open == nil {
			return database.ErrNoOpenLoan
		}
		if returnTime <= open.BorrowTime {
			return database.ErrReturnTooEarly
		}

		err = tx.Model(&entities.Book{}).
			Where("book_id = ?", bookID).
			Update("stock", gorm.Expr("stock + 1")).Error
		if err != nil {
			return err
		}

		// The return_time = 0 guard keeps a concurrent double return from
		// closing the same record twice.
		res := tx.Model(&entities.Borrow{}).
			Where("card_id = ? AND book_id = ? AND return_time = 0", cardID, bookID).
			Update("return_time", returnTime)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrNoOpenLoan
		}
		return nil
	})
}

// HistoryFor returns every loan of the card, open and closed, newest first
// (ties broken by book id), each joined with the referenced book's current
// catalog fields.
func (r *Repository) HistoryFor(cardID int64) ([]entities.BorrowHistoryItem, error) {
	var items []entities.BorrowHistoryItem
	err := r.db.Model(&entities.Borrow{}).
		Select("borrow.card_id, borrow.book_id, borrow.borrow_time, borrow.return_time, "+
			"book.category, book.title, book.press, book.publish_year, book.author, book.price, book.stock").
		Joins("JOIN book ON book.book_id = borrow.book_id").
		Where("borrow.card_id = ?", cardID).
		Order("borrow.borrow_time DESC, borrow.book_id ASC").
		Scan(&items).Error
	return items, err
}

func openLoan(tx *gorm.DB, cardID, bookID int64) (*entities.Borrow, error) {
	var loans []entities.Borrow
	err := tx.Where("card_id = ? AND book_id = ? AND return_time = 0", cardID, bookID).
		Limit(1).Find(&loans).Error
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, nil
	}
	return &loans[0], nil
}
