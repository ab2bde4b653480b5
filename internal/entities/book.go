package entities

// Book is a single catalog entry. The tuple (category, title, press,
// publish year, author) is the natural key: no two entries may describe
// the same physical edition. Stock is never negative.
type Book struct {
	BookID      int64   `gorm:"column:book_id;primaryKey;autoIncrement" json:"bookId"`
	Category    string  `gorm:"column:category;size:63" json:"category"`
	Title       string  `gorm:"column:title;size:255" json:"title"`
	Press       string  `gorm:"column:press;size:255" json:"press"`
	PublishYear int     `gorm:"column:publish_year" json:"publishYear"`
	Author      string  `gorm:"column:author;size:255" json:"author"`
	Price       float64 `gorm:"column:price" json:"price"`
	Stock       int     `gorm:"column:stock" json:"stock"`
}

func (Book) TableName() string { return "book" }

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// BookSortColumn names a column catalog query results may be ordered by.
type BookSortColumn string

const (
	SortByBookID      BookSortColumn = "book_id"
	SortByCategory    BookSortColumn = "category"
	SortByTitle       BookSortColumn = "title"
	SortByPress       BookSortColumn = "press"
	SortByPublishYear BookSortColumn = "publish_year"
	SortByAuthor      BookSortColumn = "author"
	SortByPrice       BookSortColumn = "price"
	SortByStock       BookSortColumn = "stock"
)

// BookQuery is a partial-match filter over the catalog. Nil fields are
// unbounded. Category matches exactly; title, press and author match as
// case-sensitive substrings; year and price ranges are inclusive.
type BookQuery struct {
	Category       *string
	Title          *string
	Press          *string
	Author         *string
	MinPublishYear *int
	MaxPublishYear *int
	MinPrice       *float64
	MaxPrice       *float64

	SortBy BookSortColumn // defaults to book_id
	Order  SortOrder      // defaults to ASC
}
