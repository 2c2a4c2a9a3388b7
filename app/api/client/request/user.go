package request

type CreateUserRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type ListUsersRequest struct {
	PaginationRequest
}
