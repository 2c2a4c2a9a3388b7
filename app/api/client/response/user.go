package response

import (
	"time"

	"backend/insurance-platform/app/database/entity"
)

type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Address:     u.Address,
		DateOfBirth: formatDatePtr(u.DateOfBirth),
		CreatedAt:   u.CreatedAt,
	}
}
