// Package services exposes the lending back office as a set of operations
// that each return a uniform Result: a success flag, a human-readable
// message and an optional payload. HTTP controllers stay thin adapters over
// this contract.
package services

import (
	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/entities"
)

// Result is the uniform outcome of every library operation.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`

	rejected bool
}

// Rejected reports whether the failure was a business-rule rejection as
// opposed to an infrastructure failure. Always false when OK.
func (r Result) Rejected() bool { return r.rejected }

// BookList is the payload of a catalog query.
type BookList struct {
	Count int             `json:"count"`
	Books []entities.Book `json:"books"`
}

// CardList is the payload of a card listing.
type CardList struct {
	Count int             `json:"count"`
	Cards []entities.Card `json:"cards"`
}

// BorrowHistoryList is the payload of a borrow history lookup.
type BorrowHistoryList struct {
	Count int                          `json:"count"`
	Items []entities.BorrowHistoryItem `json:"items"`
}

// Library wires the three stores and the schema resetter into the public
// operation set.
type Library struct {
	books BookStore
	cards CardStore
	loans LoanStore
	admin SchemaResetter
}

func NewLibrary(books BookStore, cards CardStore, loans LoanStore, admin SchemaResetter) *Library {
	return &Library{books: books, cards: cards, loans: loans, admin: admin}
}

// StoreBook adds a single catalog entry. The payload carries the stored book
// with its generated identity.
func (l *Library) StoreBook(book *entities.Book) Result {
	if err := l.books.Store(book); err != nil {
		return failure(err)
	}
	return success("book stored", book)
}

// StoreBooks adds a batch of entries, all or nothing.
func (l *Library) StoreBooks(candidates []*entities.Book) Result {
	if err := l.books.StoreBatch(candidates); err != nil {
		return failure(err)
	}
	return success("books stored", BookList{Count: len(candidates), Books: deref(candidates)})
}

// IncBookStock applies a signed stock delta to a book.
func (l *Library) IncBookStock(bookID int64, delta int) Result {
	if err := l.books.AdjustStock(bookID, delta); err != nil {
		return failure(err)
	}
	return success("stock adjusted", nil)
}

// ModifyBookInfo updates a book's catalog fields, leaving stock untouched.
func (l *Library) ModifyBookInfo(book *entities.Book) Result {
	if err := l.books.Update(book); err != nil {
		return failure(err)
	}
	return success("book updated", nil)
}

// RemoveBook deletes a book with no open loans.
func (l *Library) RemoveBook(bookID int64) Result {
	if err := l.books.Delete(bookID); err != nil {
		return failure(err)
	}
	return success("book removed", nil)
}

// QueryBooks returns the catalog entries matching the filter conditions.
func (l *Library) QueryBooks(q entities.BookQuery) Result {
	found, err := l.books.Query(q)
	if err != nil {
		return failure(err)
	}
	return success("", BookList{Count: len(found), Books: found})
}

// RegisterCard issues a new card. The payload carries the stored card with
// its generated identity.
func (l *Library) RegisterCard(card *entities.Card) Result {
	if err := l.cards.Register(card); err != nil {
		return failure(err)
	}
	return success("card registered", card)
}

// ModifyCardInfo overwrites a card's holder fields.
func (l *Library) ModifyCardInfo(card *entities.Card) Result {
	if err := l.cards.Update(card); err != nil {
		return failure(err)
	}
	return success("card updated", nil)
}

// RemoveCard deletes a card with no open loans.
func (l *Library) RemoveCard(cardID int64) Result {
	if err := l.cards.Delete(cardID); err != nil {
		return failure(err)
	}
	return success("card removed", nil)
}

// ShowCards lists every card ordered by identity.
func (l *Library) ShowCards() Result {
	found, err := l.cards.List()
	if err != nil {
		return failure(err)
	}
	return success("", CardList{Count: len(found), Cards: found})
}

// BorrowBook opens a loan for the (card, book) pair.
func (l *Library) BorrowBook(cardID, bookID, borrowTime int64) Result {
	if err := l.loans.Borrow(cardID, bookID, borrowTime); err != nil {
		return failure(err)
	}
	return success("book borrowed", nil)
}

// ReturnBook closes the pair's open loan.
func (l *Library) ReturnBook(cardID, bookID, returnTime int64) Result {
	if err := l.loans.Return(cardID, bookID, returnTime); err != nil {
		return failure(err)
	}
	return success("book returned", nil)
}

// ShowBorrowHistory lists the card's loans, newest first, each enriched
// with the referenced book's current catalog fields.
func (l *Library) ShowBorrowHistory(cardID int64) Result {
	items, err := l.loans.HistoryFor(cardID)
	if err != nil {
		return failure(err)
	}
	return success("", BorrowHistoryList{Count: len(items), Items: items})
}

// ResetDatabase drops and recreates the schema. Fixture/bootstrap use only.
func (l *Library) ResetDatabase() Result {
	if err := l.admin.Reset(); err != nil {
		return failure(err)
	}
	return success("database reset", nil)
}

func success(message string, payload any) Result {
	return Result{OK: true, Message: message, Payload: payload}
}

func failure(err error) Result {
	return Result{Message: err.Error(), rejected: database.IsRejection(err)}
}

func deref(books []*entities.Book) []entities.Book {
	out := make([]entities.Book, len(books))
	for i, b := range books {
		out[i] = *b
	}
	return out
}
