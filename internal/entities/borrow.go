package entities

// Borrow is one loan of a book to a card. Times are unix milliseconds;
// a zero ReturnTime marks the loan as still open. At most one open loan
// may exist per (card, book) pair at any time.
type Borrow struct {
	CardID     int64 `gorm:"column:card_id;primaryKey;autoIncrement:false" json:"cardId"`
	BookID     int64 `gorm:"column:book_id;primaryKey;autoIncrement:false" json:"bookId"`
	BorrowTime int64 `gorm:"column:borrow_time;primaryKey;autoIncrement:false" json:"borrowTime"`
	ReturnTime int64 `gorm:"column:return_time" json:"returnTime"`
}

func (Borrow) TableName() string { return "borrow" }

// Open reports whether the book has not been returned yet.
func (b Borrow) Open() bool { return b.ReturnTime == 0 }

// BorrowHistoryItem is one loan record enriched with a snapshot of the
// referenced book's current catalog fields.
type BorrowHistoryItem struct {
	CardID      int64   `gorm:"column:card_id" json:"cardId"`
	BookID      int64   `gorm:"column:book_id" json:"bookId"`
	BorrowTime  int64   `gorm:"column:borrow_time" json:"borrowTime"`
	ReturnTime  int64   `gorm:"column:return_time" json:"returnTime"`
	Category    string  `gorm:"column:category" json:"category"`
	Title       string  `gorm:"column:title" json:"title"`
	Press       string  `gorm:"column:press" json:"press"`
	PublishYear int     `gorm:"column:publish_year" json:"publishYear"`
	Author      string  `gorm:"column:author" json:"author"`
	Price       float64 `gorm:"column:price" json:"price"`
	Stock       int     `gorm:"column:stock" json:"stock"`
}
