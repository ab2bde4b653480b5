package services

import "github.com/ycyaw66/library-backoffice/internal/entities"

// BookStore is the catalog contract implemented by database/books.Repository.
type BookStore interface {
	Store(book *entities.Book) error
	StoreBatch(candidates []*entities.Book) error
	AdjustStock(bookID int64, delta int) error
	Update(book *entities.Book) error
	Delete(bookID int64) error
	Query(q entities.BookQuery) ([]entities.Book, error)
}

// CardStore is the registry contract implemented by database/cards.Repository.
type CardStore interface {
	Register(card *entities.Card) error
	Update(card *entities.Card) error
	Delete(cardID int64) error
	List() ([]entities.Card, error)
}

// LoanStore is the ledger contract implemented by database/borrows.Repository.
type LoanStore interface {
	Borrow(cardID, bookID, borrowTime int64) error
	Return(cardID, bookID, returnTime int64) error
	HistoryFor(cardID int64) ([]entities.BorrowHistoryItem, error)
}

// SchemaResetter drops and recreates the schema for test/bootstrap fixtures.
type SchemaResetter interface {
	Reset() error
}
