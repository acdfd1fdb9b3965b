package response

import (
	"time"

	"bookreview/internal/data/entity"
)

type ReviewResponse struct {
	ID            string    `json:"id"`
	BookID        string    `json:"bookId"`
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName,omitempty"`
	BookTitle     string    `json:"bookTitle,omitempty"`
	BookCoverURL  *string   `json:"bookCoverUrl,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type DeleteConfirmation struct {
	Message string `json:"message"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, userName string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		BookID:    review.BookID.String(),
		UserID:    review.UserID.String(),
		UserName:  userName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
