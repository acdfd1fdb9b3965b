package wire

import (
	"bookreview/internal/adaptor"
	"bookreview/internal/data/repository"
	"bookreview/pkg/middleware"
	"bookreview/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/users/{userId}/reviews - reviews written by a user
	r.Get("/api/users/{userId}/reviews", userHandler.GetUserReviews)

	// GET /api/users/{id} - public profile
	r.Get("/api/users/{id}", userHandler.GetUserProfile)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))

		// PUT /api/users/{id} - update own profile
		r.Put("/api/users/{id}", userHandler.UpdateUserProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		// GET /api/users - list all accounts
		r.Get("/api/users", userHandler.GetUsers)

		// DELETE /api/users/{id} - remove a non-admin account
		r.Delete("/api/users/{id}", userHandler.DeleteUser)
	})
}
