package request

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Bio   *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
}
