package usecase

import (
	"context"
	"fmt"
	"time"

	"bookreview/internal/data/entity"
	"bookreview/internal/data/repository"
	"bookreview/internal/dto/request"
	"bookreview/internal/dto/response"
	"bookreview/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookService interface {
	GetBooks(ctx context.Context, req *request.ListBooksRequest) (*response.BookListResponse, error)
	GetBookByID(ctx context.Context, bookID string) (*response.BookResponse, error)
	GetGenres(ctx context.Context) ([]string, error)
	CreateBook(ctx context.Context, userID string, req *request.CreateBookRequest) (*response.BookResponse, error)
	UpdateBook(ctx context.Context, bookID string, req *request.UpdateBookRequest) (*response.BookResponse, error)
	DeleteBook(ctx context.Context, bookID string) error
}

type bookService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookService(repo *repository.Repository, log *zap.Logger) BookService {
	return &bookService{
		repo: repo,
		log:  log.With(zap.String("service", "book")),
	}
}

func (s *bookService) GetBooks(ctx context.Context, req *request.ListBooksRequest) (*response.BookListResponse, error) {
	limit := req.PageSize()
	offset := req.Offset()

	total, err := s.repo.Book.CountAll(ctx, req.Genre, req.Search)
	if err != nil {
		s.log.Error("Failed to count books", zap.Error(err))
		return nil, fmt.Errorf("count books: %w", err)
	}

	books, err := s.repo.Book.FindAll(ctx, offset, limit, req.Genre, req.Search)
	if err != nil {
		s.log.Error("Failed to get books",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("get books: %w", err)
	}

	bookResponses := make([]response.BookResponse, len(books))
	for i, book := range books {
		bookResponses[i] = response.BookToResponse(book)
	}

	return response.NewBookListResponse(bookResponses, req.Page, limit, total), nil
}

func (s *bookService) GetBookByID(ctx context.Context, bookID string) (*response.BookResponse, error) {
	bookUUID, err := uuid.Parse(bookID)
	if err != nil {
		return nil, invalidInputError("Invalid book ID format")
	}

	book, err := s.repo.Book.FindByID(ctx, bookUUID)
	if err != nil {
		s.log.Error("Failed to find book", zap.Error(err), zap.String("book_id", bookID))
		return nil, fmt.Errorf("find book: %w", err)
	}
	if book == nil {
		return nil, notFoundError("Book not found")
	}

	resp := response.BookToResponse(book)
	return &resp, nil
}

func (s *bookService) GetGenres(ctx context.Context) ([]string, error) {
	genres, err := s.repo.Book.DistinctGenres(ctx)
	if err != nil {
		s.log.Error("Failed to get genres", zap.Error(err))
		return nil, fmt.Errorf("get genres: %w", err)
	}

	if genres == nil {
		genres = []string{}
	}

	return genres, nil
}

func (s *bookService) CreateBook(ctx context.Context, userID string, req *request.CreateBookRequest) (*response.BookResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create book validation failed", zap.Any("errors", errs))
		return nil, invalidInputError("Validation failed: " + utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidInputError("Invalid user ID format")
	}

	publicationDate, err := parsePublicationDate(req.PublicationDate)
	if err != nil {
		return nil, invalidInputError("Invalid publication date format")
	}

	now := time.Now()
	book := &entity.Book{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		CoverImageURL:   req.CoverImageURL,
		Genre:           req.Genre,
		ISBN:            req.ISBN,
		Publisher:       req.Publisher,
		PublicationDate: publicationDate,
		AddedBy:         &userUUID,
		AverageRating:   nil, // unrated until the first review
	}

	if err := s.repo.Book.Create(ctx, book); err != nil {
		s.log.Error("Failed to create book",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.log.Info("Book created",
		zap.String("book_id", book.ID.String()),
		zap.String("title", book.Title),
		zap.String("added_by", userID),
	)

	resp := response.BookToResponse(book)
	return &resp, nil
}

func (s *bookService) UpdateBook(ctx context.Context, bookID string, req *request.UpdateBookRequest) (*response.BookResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update book validation failed", zap.Any("errors", errs))
		return nil, invalidInputError("Validation failed: " + utils.FormatValidationErrors(errs))
	}

	bookUUID, err := uuid.Parse(bookID)
	if err != nil {
		return nil, invalidInputError("Invalid book ID format")
	}

	book, err := s.repo.Book.FindByID(ctx, bookUUID)
	if err != nil {
		s.log.Error("Failed to find book", zap.Error(err), zap.String("book_id", bookID))
		return nil, fmt.Errorf("find book: %w", err)
	}
	if book == nil {
		return nil, notFoundError("Book not found")
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.CoverImageURL != nil {
		book.CoverImageURL = req.CoverImageURL
	}
	if req.Genre != nil {
		book.Genre = req.Genre
	}
	if req.ISBN != nil {
		book.ISBN = req.ISBN
	}
	if req.Publisher != nil {
		book.Publisher = req.Publisher
	}
	if req.PublicationDate != nil {
		publicationDate, err := parsePublicationDate(req.PublicationDate)
		if err != nil {
			return nil, invalidInputError("Invalid publication date format")
		}
		book.PublicationDate = publicationDate
	}

	book.UpdatedAt = time.Now()

	if err := s.repo.Book.Update(ctx, book); err != nil {
		s.log.Error("Failed to update book",
			zap.Error(err),
			zap.String("book_id", bookID),
		)
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.log.Info("Book updated", zap.String("book_id", bookID))

	resp := response.BookToResponse(book)
	return &resp, nil
}

func (s *bookService) DeleteBook(ctx context.Context, bookID string) error {
	bookUUID, err := uuid.Parse(bookID)
	if err != nil {
		return invalidInputError("Invalid book ID format")
	}

	book, err := s.repo.Book.FindByID(ctx, bookUUID)
	if err != nil {
		s.log.Error("Failed to find book", zap.Error(err), zap.String("book_id", bookID))
		return fmt.Errorf("find book: %w", err)
	}
	if book == nil {
		return notFoundError("Book not found")
	}

	// reviews cascade with the book row
	if err := s.repo.Book.Delete(ctx, bookUUID); err != nil {
		s.log.Error("Failed to delete book",
			zap.Error(err),
			zap.String("book_id", bookID),
		)
		return fmt.Errorf("delete book: %w", err)
	}

	s.log.Info("Book deleted",
		zap.String("book_id", bookID),
		zap.String("title", book.Title),
	)

	return nil
}

func parsePublicationDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
