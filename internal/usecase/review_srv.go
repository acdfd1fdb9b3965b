package usecase

import (
	"context"
	"errors"
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

type ReviewService interface {
	CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetBookReviews(ctx context.Context, bookID string) ([]response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID, userID, role string) error
}

type reviewService struct {
	repo       *repository.Repository
	aggregator RatingAggregator
	log        *zap.Logger
}

func NewReviewService(repo *repository.Repository, aggregator RatingAggregator, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:       repo,
		aggregator: aggregator,
		log:        log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// Validate request shape before touching storage
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, invalidInputError("Validation failed: " + utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidInputError("Invalid user ID format")
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, invalidInputError("Invalid book ID format")
	}

	// Check the book exists
	book, err := s.repo.Book.FindByID(ctx, bookID)
	if err != nil {
		s.log.Error("Failed to check book", zap.Error(err), zap.String("book_id", req.BookID))
		return nil, fmt.Errorf("check book: %w", err)
	}
	if book == nil {
		return nil, notFoundError("Book not found")
	}

	// Pre-check for an existing review; the unique constraint is the real guard
	existingReview, err := s.repo.Review.FindByUserAndBook(ctx, userUUID, bookID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existingReview != nil {
		return nil, conflictError("You have already reviewed this book")
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookID:  bookID,
		UserID:  userUUID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		// a concurrent submit for the same (book, user) may have won the race
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, conflictError("You have already reviewed this book")
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("book_id", req.BookID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	// The review is durable; a failed recompute leaves the aggregate stale
	// until the next trigger rather than rolling the review back
	if err := s.aggregator.Recompute(ctx, bookID); err != nil {
		s.log.Warn("Failed to recompute book rating",
			zap.Error(err),
			zap.String("book_id", req.BookID),
		)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID),
		zap.String("book_id", req.BookID),
		zap.Int("rating", req.Rating),
	)

	return s.buildReviewResponse(ctx, review), nil
}

func (s *reviewService) GetBookReviews(ctx context.Context, bookID string) ([]response.ReviewResponse, error) {
	bookUUID, err := uuid.Parse(bookID)
	if err != nil {
		return nil, invalidInputError("Invalid book ID format")
	}

	reviews, err := s.repo.Review.FindByBookID(ctx, bookUUID)
	if err != nil {
		s.log.Error("Failed to get book reviews",
			zap.Error(err),
			zap.String("book_id", bookID),
		)
		return nil, fmt.Errorf("get book reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, s.lookupUserName(ctx, review.UserID))
	}

	return reviewResponses, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidInputError("Invalid user ID format")
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to check user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return nil, notFoundError("User not found")
	}

	reviews, err := s.repo.Review.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to get user reviews",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp := response.ReviewToResponse(review, user.Name)

		// enrich with book title and cover for profile pages
		book, _ := s.repo.Book.FindByID(ctx, review.BookID)
		if book != nil {
			resp.BookTitle = book.Title
			resp.BookCoverURL = book.CoverImageURL
		}

		reviewResponses[i] = resp
	}

	return reviewResponses, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, invalidInputError("Validation failed: " + utils.FormatValidationErrors(errs))
	}

	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, invalidInputError("Invalid review ID format")
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidInputError("Invalid user ID format")
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, notFoundError("Review not found")
	}

	// Only the author may update
	if review.UserID != userUUID {
		return nil, forbiddenError("Not authorized to update this review")
	}

	updated := false
	ratingChanged := false

	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		updated = true
		ratingChanged = true
	}

	if req.Comment != nil && *req.Comment != review.Comment {
		review.Comment = *req.Comment
		updated = true
	}

	if !updated {
		return s.buildReviewResponse(ctx, review), nil
	}

	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	if ratingChanged {
		if err := s.aggregator.Recompute(ctx, review.BookID); err != nil {
			s.log.Warn("Failed to recompute book rating",
				zap.Error(err),
				zap.String("book_id", review.BookID.String()),
			)
		}
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.Bool("rating_changed", ratingChanged),
	)

	return s.buildReviewResponse(ctx, review), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID, role string) error {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return invalidInputError("Invalid review ID format")
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return invalidInputError("Invalid user ID format")
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return notFoundError("Review not found")
	}

	// Author or moderation override
	if review.UserID != userUUID && role != string(entity.RoleAdmin) {
		return forbiddenError("Not authorized to delete this review")
	}

	// capture the book reference before the row disappears
	bookID := review.BookID

	if err := s.repo.Review.Delete(ctx, reviewUUID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("delete review: %w", err)
	}

	if err := s.aggregator.Recompute(ctx, bookID); err != nil {
		s.log.Warn("Failed to recompute book rating",
			zap.Error(err),
			zap.String("book_id", bookID.String()),
		)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.String("book_id", bookID.String()),
	)

	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) lookupUserName(ctx context.Context, userID uuid.UUID) string {
	user, _ := s.repo.User.FindByID(ctx, userID)
	if user == nil {
		return ""
	}
	return user.Name
}

func (s *reviewService) buildReviewResponse(ctx context.Context, review *entity.Review) *response.ReviewResponse {
	resp := response.ReviewToResponse(review, s.lookupUserName(ctx, review.UserID))

	book, _ := s.repo.Book.FindByID(ctx, review.BookID)
	if book != nil {
		resp.BookTitle = book.Title
		resp.BookCoverURL = book.CoverImageURL
	}

	return &resp
}
