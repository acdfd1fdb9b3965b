package usecase

import (
	"context"
	"fmt"

	"bookreview/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RatingAggregator is the single writer of a book's derived average rating.
// Recompute reads the full current review set, so running it twice in a row
// is a no-op and concurrent runs converge on the last write.
type RatingAggregator interface {
	Recompute(ctx context.Context, bookID uuid.UUID) error
}

type ratingAggregator struct {
	reviews repository.ReviewRepository
	books   repository.BookRepository
	log     *zap.Logger
}

func NewRatingAggregator(
	reviews repository.ReviewRepository,
	books repository.BookRepository,
	log *zap.Logger,
) RatingAggregator {
	return &ratingAggregator{
		reviews: reviews,
		books:   books,
		log:     log.With(zap.String("service", "aggregator")),
	}
}

func (a *ratingAggregator) Recompute(ctx context.Context, bookID uuid.UUID) error {
	// nil average means no reviews remain; the book goes back to unrated
	avg, err := a.reviews.AverageRatingByBookID(ctx, bookID)
	if err != nil {
		return fmt.Errorf("recompute rating for book %s: %w", bookID.String(), err)
	}

	if err := a.books.UpdateAverageRating(ctx, bookID, avg); err != nil {
		return fmt.Errorf("recompute rating for book %s: %w", bookID.String(), err)
	}

	if avg != nil {
		a.log.Debug("Book rating recomputed",
			zap.String("book_id", bookID.String()),
			zap.Float64("average_rating", *avg),
		)
	} else {
		a.log.Debug("Book rating cleared, no reviews left",
			zap.String("book_id", bookID.String()),
		)
	}

	return nil
}
