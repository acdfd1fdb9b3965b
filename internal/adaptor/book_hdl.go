package adaptor

import (
	"encoding/json"
	"net/http"

	"bookreview/internal/dto/request"
	"bookreview/internal/dto/response"
	"bookreview/internal/usecase"
	"bookreview/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookHandler struct {
	service usecase.BookService
	log     *zap.Logger
}

func NewBookHandler(service usecase.BookService, log *zap.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		log:     log.With(zap.String("handler", "book")),
	}
}

// GetBooks handles GET /api/books (public)
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ListBooksRequest{
		Page:  utils.ParseInt(query.Get("page"), 1),
		Limit: utils.ParseInt(query.Get("limit"), 10),
	}

	if genre := query.Get("genre"); genre != "" {
		req.Genre = &genre
	}
	if search := query.Get("search"); search != "" {
		req.Search = &search
	}

	books, err := h.service.GetBooks(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "get books")
		return
	}

	utils.ResponseOK(w, books)
}

// GetGenres handles GET /api/books/genres (public)
func (h *BookHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetGenres(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "get genres")
		return
	}

	utils.ResponseOK(w, genres)
}

// GetBookByID handles GET /api/books/{id} (public)
func (h *BookHandler) GetBookByID(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if bookID == "" {
		utils.ResponseBadRequest(w, "Book ID is required")
		return
	}

	book, err := h.service.GetBookByID(r.Context(), bookID)
	if err != nil {
		respondServiceError(w, h.log, err, "get book")
		return
	}

	utils.ResponseOK(w, book)
}

// CreateBook handles POST /api/books (admin)
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	book, err := h.service.CreateBook(r.Context(), userID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create book")
		return
	}

	utils.ResponseCreated(w, book)
}

// UpdateBook handles PUT /api/books/{id} (admin)
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if bookID == "" {
		utils.ResponseBadRequest(w, "Book ID is required")
		return
	}

	var req request.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	book, err := h.service.UpdateBook(r.Context(), bookID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update book")
		return
	}

	utils.ResponseOK(w, book)
}

// DeleteBook handles DELETE /api/books/{id} (admin)
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if bookID == "" {
		utils.ResponseBadRequest(w, "Book ID is required")
		return
	}

	if err := h.service.DeleteBook(r.Context(), bookID); err != nil {
		respondServiceError(w, h.log, err, "delete book")
		return
	}

	utils.ResponseOK(w, response.DeleteConfirmation{Message: "Book removed successfully"})
}
