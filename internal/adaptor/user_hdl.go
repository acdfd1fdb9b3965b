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

type UserHandler struct {
	service usecase.UserService
	reviews usecase.ReviewService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, reviews usecase.ReviewService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		reviews: reviews,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetUsers handles GET /api/users (admin)
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetUsers(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "get users")
		return
	}

	utils.ResponseOK(w, users)
}

// GetUserProfile handles GET /api/users/{id} (public)
func (h *UserHandler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required")
		return
	}

	user, err := h.service.GetUserProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.log, err, "get user profile")
		return
	}

	utils.ResponseOK(w, user)
}

// UpdateUserProfile handles PUT /api/users/{id} (protected, self only)
func (h *UserHandler) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required")
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.UpdateUserProfile(r.Context(), userID, requesterID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update user profile")
		return
	}

	utils.ResponseOK(w, user)
}

// DeleteUser handles DELETE /api/users/{id} (admin)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required")
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		respondServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseOK(w, response.DeleteConfirmation{Message: "User removed"})
}

// GetUserReviews handles GET /api/users/{userId}/reviews (public)
func (h *UserHandler) GetUserReviews(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required")
		return
	}

	reviews, err := h.reviews.GetUserReviews(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.log, err, "get user reviews")
		return
	}

	utils.ResponseOK(w, reviews)
}
