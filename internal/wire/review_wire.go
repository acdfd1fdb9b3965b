package wire

import (
	"bookreview/internal/adaptor"
	"bookreview/internal/data/repository"
	"bookreview/pkg/middleware"
	"bookreview/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews?bookId=<id> - reviews for a book, newest first
	r.Get("/api/reviews", reviewHandler.GetReviews)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))

		// POST /api/reviews - submit a review (one per book per user)
		r.Post("/api/reviews", reviewHandler.CreateReview)

		// PUT /api/reviews/{id} - update own review
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id} - delete own review, admins may override
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}
