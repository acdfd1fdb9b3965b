package entity

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	Base
	Title           string     `db:"title"`
	Author          string     `db:"author"`
	Description     string     `db:"description"`
	CoverImageURL   *string    `db:"cover_image_url"`
	Genre           *string    `db:"genre"`
	ISBN            *string    `db:"isbn"`
	Publisher       *string    `db:"publisher"`
	PublicationDate *time.Time `db:"publication_date"`
	AddedBy         *uuid.UUID `db:"added_by"`

	// nil until the first review exists; written only by the rating aggregator
	AverageRating *float64 `db:"average_rating"`
}
