package authv1

type SignupRequest struct {
	UserID    string `json:"user_id" validate:"required,max=255"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email_shape"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
}

type SignupResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email_shape"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyTokenResponse carries the claims of a valid token. Times are Unix
// seconds.
type VerifyTokenResponse struct {
	UserID    string `json:"user_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type ProfileRequest struct{}

type ProfileResponse struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}
