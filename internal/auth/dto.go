// AngelaMos | 2026
// dto.go

package auth

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Name         string `json:"name"                   validate:"required,min=1,max=100"`
	Email        string `json:"email"                  validate:"required,email,max=255"`
	Phone        string `json:"phone"                  validate:"required,max=32"`
	Organization string `json:"organization,omitempty" validate:"max=200"`
	Password     string `json:"password"               validate:"required,min=6,max=128"`
	Category     string `json:"category"               validate:"required"`
}
