package request

type CreateBookRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=300"`
	Author          string  `json:"author" validate:"required,min=1,max=200"`
	Description     string  `json:"description" validate:"required,min=1"`
	CoverImageURL   *string `json:"coverImageUrl,omitempty" validate:"omitempty,url"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	ISBN            *string `json:"isbn,omitempty" validate:"omitempty,max=20"`
	Publisher       *string `json:"publisher,omitempty" validate:"omitempty,max=200"`
	PublicationDate *string `json:"publicationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateBookRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Author          *string `json:"author,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,min=1"`
	CoverImageURL   *string `json:"coverImageUrl,omitempty" validate:"omitempty,url"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	ISBN            *string `json:"isbn,omitempty" validate:"omitempty,max=20"`
	Publisher       *string `json:"publisher,omitempty" validate:"omitempty,max=200"`
	PublicationDate *string `json:"publicationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListBooksRequest struct {
	Page   int     `json:"page" validate:"min=1"`
	Limit  int     `json:"limit" validate:"min=1,max=100"`
	Genre  *string `json:"genre,omitempty"`
	Search *string `json:"search,omitempty"`
}

func (r ListBooksRequest) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.PageSize()
}

func (r ListBooksRequest) PageSize() int {
	if r.Limit < 1 {
		return 10
	}
	if r.Limit > 100 {
		return 100
	}
	return r.Limit
}
