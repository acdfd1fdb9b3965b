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

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetReviews handles GET /api/reviews?bookId=<id> (public)
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		utils.ResponseBadRequest(w, "Book ID query parameter is required")
		return
	}

	reviews, err := h.service.GetBookReviews(r.Context(), bookID)
	if err != nil {
		respondServiceError(w, h.log, err, "get book reviews")
		return
	}

	utils.ResponseOK(w, reviews)
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, review)
}

// UpdateReview handles PUT /api/reviews/{id} (protected, owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "Review ID is required")
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	review, err := h.service.UpdateReview(r.Context(), reviewID, userID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseOK(w, review)
}

// DeleteReview handles DELETE /api/reviews/{id} (protected, owner or admin)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "Review ID is required")
		return
	}

	if err := h.service.DeleteReview(r.Context(), reviewID, userID.String(), role); err != nil {
		respondServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseOK(w, response.DeleteConfirmation{Message: "Review removed successfully"})
}
