package response

import (
	"time"

	"bookreview/internal/data/entity"
)

type BookResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Description     string     `json:"description"`
	CoverImageURL   *string    `json:"coverImageUrl,omitempty"`
	Genre           *string    `json:"genre,omitempty"`
	ISBN            *string    `json:"isbn,omitempty"`
	Publisher       *string    `json:"publisher,omitempty"`
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
	AverageRating   *float64   `json:"averageRating"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BookListResponse is the paginated envelope for the book listing endpoint
type BookListResponse struct {
	Books      []BookResponse `json:"books"`
	Page       int            `json:"page"`
	Pages      int            `json:"pages"`
	TotalBooks int64          `json:"totalBooks"`
}

func BookToResponse(book *entity.Book) BookResponse {
	return BookResponse{
		ID:              book.ID.String(),
		Title:           book.Title,
		Author:          book.Author,
		Description:     book.Description,
		CoverImageURL:   book.CoverImageURL,
		Genre:           book.Genre,
		ISBN:            book.ISBN,
		Publisher:       book.Publisher,
		PublicationDate: book.PublicationDate,
		AverageRating:   book.AverageRating,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
}

func NewBookListResponse(books []BookResponse, page, limit int, total int64) *BookListResponse {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}

	return &BookListResponse{
		Books:      books,
		Page:       page,
		Pages:      pages,
		TotalBooks: total,
	}
}
