package dto

// CreateUserRequest: payload POST /users (admin only).
type CreateUserRequest struct {
	Username        string `json:"username" form:"username" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	FullName        string `json:"full_name" form:"full_name" validate:"required"`
	Role            string `json:"role" form:"role" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

// ResetPasswordRequest: payload POST /users/:id/reset-password.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required,min=6"`
}
