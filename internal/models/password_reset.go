package models

// ForgotPasswordRequest asks for a reset link to be emailed.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// ResetPasswordRequest sets a new password. The token travels in the URL path.
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,strong_password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}
