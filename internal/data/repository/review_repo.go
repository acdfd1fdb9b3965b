package repository

import (
	"context"
	"fmt"

	"bookreview/internal/data/entity"
	"bookreview/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.Review, error)
	CountByBookID(ctx context.Context, bookID uuid.UUID) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AverageRatingByBookID returns nil when the book has no reviews
	AverageRatingByBookID(ctx context.Context, bookID uuid.UUID) (*float64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, book_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.BookID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if isUniqueViolation(err) {
		// the (book_id, user_id) constraint lost a concurrent race
		return ErrDuplicateReview
	}
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("book_id", review.BookID.String()),
		)
		return fmt.Errorf("create review for book %s by user %s: %w",
			review.BookID.String(), review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		r.log.Error("Failed to find reviews by book ID",
			zap.Error(err),
			zap.String("book_id", bookID.String()),
		)
		return nil, fmt.Errorf("find reviews by book ID %s: %w", bookID.String(), err)
	}
	defer rows.Close()

	return scanReviews(rows, r.log)
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reviews by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanReviews(rows, r.log)
}

func scanReviews(rows pgx.Rows, log *zap.Logger) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE user_id = $1 AND book_id = $2
		LIMIT 1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, bookID).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and book",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("book_id", bookID.String()),
		)
		return nil, fmt.Errorf("find review by user %s and book %s: %w",
			userID.String(), bookID.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) CountByBookID(ctx context.Context, bookID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE book_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, bookID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by book ID",
			zap.Error(err),
			zap.String("book_id", bookID.String()),
		)
		return 0, fmt.Errorf("count reviews by book ID %s: %w", bookID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) AverageRatingByBookID(ctx context.Context, bookID uuid.UUID) (*float64, error) {
	// AVG over an empty set is NULL, which maps onto the unrated sentinel
	query := `SELECT AVG(rating) FROM reviews WHERE book_id = $1`

	var avgRating *float64
	err := r.db.QueryRow(ctx, query, bookID).Scan(&avgRating)
	if err != nil {
		r.log.Error("Failed to get book average rating",
			zap.Error(err),
			zap.String("book_id", bookID.String()),
		)
		return nil, fmt.Errorf("get average rating for book %s: %w", bookID.String(), err)
	}

	return avgRating, nil
}
