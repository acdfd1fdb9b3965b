package repository

import (
	"context"
	"fmt"
	"strings"

	"bookreview/internal/data/entity"
	"bookreview/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	FindAll(ctx context.Context, offset, limit int, genre, search *string) ([]*entity.Book, error)
	CountAll(ctx context.Context, genre, search *string) (int64, error)
	DistinctGenres(ctx context.Context) ([]string, error)
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Sole write path for the derived average; nil clears it back to unrated
	UpdateAverageRating(ctx context.Context, bookID uuid.UUID, avg *float64) error
}

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

const bookColumns = `id, title, author, description, cover_image_url, genre, isbn,
	       publisher, publication_date, added_by, average_rating, created_at, updated_at`

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (id, title, author, description, cover_image_url, genre,
		                   isbn, publisher, publication_date, added_by, average_rating,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Description,
		book.CoverImageURL,
		book.Genre,
		book.ISBN,
		book.Publisher,
		book.PublicationDate,
		book.AddedBy,
		book.AverageRating,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create book",
			zap.Error(err),
			zap.String("title", book.Title),
		)
		return fmt.Errorf("create book %q: %w", book.Title, err)
	}

	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE id = $1
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.CoverImageURL,
		&book.Genre,
		&book.ISBN,
		&book.Publisher,
		&book.PublicationDate,
		&book.AddedBy,
		&book.AverageRating,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by ID",
			zap.Error(err),
			zap.String("book_id", id.String()),
		)
		return nil, fmt.Errorf("find book by ID %s: %w", id.String(), err)
	}

	return &book, nil
}

// buildBookFilter appends genre/search conditions shared by FindAll and CountAll
func buildBookFilter(query *strings.Builder, args []interface{}, genre, search *string) []interface{} {
	if genre != nil && *genre != "" {
		args = append(args, *genre)
		fmt.Fprintf(query, " AND genre = $%d", len(args))
	}

	if search != nil && *search != "" {
		args = append(args, "%"+*search+"%")
		fmt.Fprintf(query, " AND (title ILIKE $%d OR author ILIKE $%d)", len(args), len(args))
	}

	return args
}

func (r *bookRepository) FindAll(ctx context.Context, offset, limit int, genre, search *string) ([]*entity.Book, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + bookColumns + `
		FROM books
		WHERE TRUE
	`)

	args := buildBookFilter(&queryBuilder, nil, genre, search)

	args = append(args, limit)
	fmt.Fprintf(&queryBuilder, " ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&queryBuilder, " OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find books",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer rows.Close()

	var books []*entity.Book
	for rows.Next() {
		var book entity.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.CoverImageURL,
			&book.Genre,
			&book.ISBN,
			&book.Publisher,
			&book.PublicationDate,
			&book.AddedBy,
			&book.AverageRating,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan book row", zap.Error(err))
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, &book)
	}

	return books, nil
}

func (r *bookRepository) CountAll(ctx context.Context, genre, search *string) (int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COUNT(*) FROM books WHERE TRUE`)

	args := buildBookFilter(&queryBuilder, nil, genre, search)

	var count int64
	err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count books", zap.Error(err))
		return 0, fmt.Errorf("count books: %w", err)
	}

	return count, nil
}

func (r *bookRepository) DistinctGenres(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT genre
		FROM books
		WHERE genre IS NOT NULL AND genre <> ''
		ORDER BY genre
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to select distinct genres", zap.Error(err))
		return nil, fmt.Errorf("distinct genres: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	return genres, nil
}

func (r *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	// average_rating is deliberately excluded; only UpdateAverageRating touches it
	query := `
		UPDATE books
		SET title = $2, author = $3, description = $4, cover_image_url = $5,
		    genre = $6, isbn = $7, publisher = $8, publication_date = $9,
		    updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Description,
		book.CoverImageURL,
		book.Genre,
		book.ISBN,
		book.Publisher,
		book.PublicationDate,
		book.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update book",
			zap.Error(err),
			zap.String("book_id", book.ID.String()),
		)
		return fmt.Errorf("update book %s: %w", book.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s not found", book.ID.String())
	}

	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM books WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete book",
			zap.Error(err),
			zap.String("book_id", id.String()),
		)
		return fmt.Errorf("delete book %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s not found", id.String())
	}

	r.log.Info("Book deleted", zap.String("book_id", id.String()))
	return nil
}

func (r *bookRepository) UpdateAverageRating(ctx context.Context, bookID uuid.UUID, avg *float64) error {
	query := `UPDATE books SET average_rating = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookID, avg)
	if err != nil {
		r.log.Error("Failed to update book average rating",
			zap.Error(err),
			zap.String("book_id", bookID.String()),
		)
		return fmt.Errorf("update average rating for book %s: %w", bookID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s not found", bookID.String())
	}

	return nil
}
