package validator

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	// Optional shared secret; a correct value grants the admin role.
	SecretKey string `json:"secretKey" validate:"omitempty,max=255"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CourseCreateRequest requires every course field except the roster.
type CourseCreateRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Instructor  string   `json:"instructor" validate:"required,max=100"`
	Category    string   `json:"category" validate:"required,max=100"`
	Thumbnail   string   `json:"thumbnail" validate:"required,url,max=500"`
	Duration    string   `json:"duration" validate:"required,max=50"`
}

// CourseUpdateRequest is a partial merge: only supplied fields are applied.
type CourseUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Instructor  *string  `json:"instructor" validate:"omitempty,max=100"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Thumbnail   *string  `json:"thumbnail" validate:"omitempty,url,max=500"`
	Duration    *string  `json:"duration" validate:"omitempty,max=50"`
}

// ProfileUpdateRequest applies only the supplied fields; a password change
// triggers a re-hash and a fresh token.
type ProfileUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Avatar   *string `json:"avatar" validate:"omitempty,url,max=500"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}
