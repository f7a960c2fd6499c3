package request

type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=2,max=50"`
	LastName        string `json:"last_name" validate:"required,min=2,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	UserType        string `json:"user_type" validate:"required,oneof=user speaker"`

	// Speaker-only fields, ignored for user_type=user.
	Expertise       []string `json:"expertise,omitempty" validate:"omitempty,min=1,dive,min=2"`
	PricePerSession float64  `json:"price_per_session,omitempty" validate:"omitempty,min=0"`
	Bio             string   `json:"bio,omitempty"`
	ProfileImage    *string  `json:"profile_image,omitempty" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Type  string `json:"type" validate:"required,oneof=email_verification password_reset"`
}
