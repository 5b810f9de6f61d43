// AngelaMos | 2026
// forms.go

package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Admin    bool
}

type RegistrationForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"required"`
	Organization    string
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type ProfileForm struct {
	Address        string `validate:"required"`
	Bio            string `validate:"required"`
	ProfilePicture string
}

// ValidationError is raised before any request leaves the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (f *LoginForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

func (f *RegistrationForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Organization = strings.TrimSpace(f.Organization)
}

func (f *ProfileForm) normalize() {
	f.Address = strings.TrimSpace(f.Address)
	f.Bio = strings.TrimSpace(f.Bio)
	f.ProfilePicture = strings.TrimSpace(f.ProfilePicture)
}

func validateForm(v *validator.Validate, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: "Please check the form and try again."}
	}

	for _, fe := range verrs {
		if fe.Tag() == "eqfield" {
			return &ValidationError{Field: fe.Field(), Message: "Passwords do not match."}
		}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is required.", label(fe.Field())),
		}
	case "email":
		return &ValidationError{Field: fe.Field(), Message: "Please enter a valid email address."}
	default:
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is invalid.", label(fe.Field())),
		}
	}
}

func label(field string) string {
	switch field {
	case "ConfirmPassword":
		return "Password confirmation"
	default:
		return field
	}
}
