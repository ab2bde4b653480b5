package database

import "errors"

// Rejection is a business-rule violation: an expected, non-fatal outcome
// detected by a check before any mutation. Everything else coming out of a
// repository is an infrastructure failure.
type Rejection string

func (r Rejection) Error() string { return string(r) }

const (
	ErrDuplicateBook   = Rejection("a book with the same category, title, press, publish year and author already exists")
	ErrBookNotFound    = Rejection("book does not exist")
	ErrNegativeStock   = Rejection("stock cannot go negative")
	ErrBookOnLoan      = Rejection("book has open loans and cannot be deleted")
	ErrDuplicateCard   = Rejection("a card with the same name, department and type already exists")
	ErrInvalidCardType = Rejection("card type must be Student or Teacher")
	ErrCardNotFound    = Rejection("card does not exist")
	ErrCardHasLoans    = Rejection("card has unreturned books and cannot be deleted")
	ErrAlreadyBorrowed = Rejection("this card has not returned the book yet")
	ErrOutOfStock      = Rejection("insufficient stock")
	ErrNoOpenLoan      = Rejection("no open loan exists for this card and book")
	ErrReturnTooEarly  = Rejection("return time must be after borrow time")
)

// IsRejection reports whether err (or anything it wraps) is a business-rule
// rejection rather than an infrastructure failure.
func IsRejection(err error) bool {
	var r Rejection
	return errors.As(err, &r)
}
