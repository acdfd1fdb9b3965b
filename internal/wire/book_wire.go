package wire

import (
	"bookreview/internal/adaptor"
	"bookreview/internal/data/repository"
	"bookreview/pkg/middleware"
	"bookreview/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBook(
	r chi.Router,
	bookHandler *adaptor.BookHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/books - paginated catalog with genre filter and search
	r.Get("/api/books", bookHandler.GetBooks)

	// GET /api/books/genres - distinct genres for the filter dropdown
	// registered before /api/books/{id} so "genres" is not read as an ID
	r.Get("/api/books/genres", bookHandler.GetGenres)

	// GET /api/books/{id} - book detail including averageRating
	r.Get("/api/books/{id}", bookHandler.GetBookByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		// POST /api/books - add a book to the catalog
		r.Post("/api/books", bookHandler.CreateBook)

		// PUT /api/books/{id} - edit catalog fields
		r.Put("/api/books/{id}", bookHandler.UpdateBook)

		// DELETE /api/books/{id} - remove book and its reviews
		r.Delete("/api/books/{id}", bookHandler.DeleteBook)
	})
}
