// AngelaMos | 2026
// dto.go

package user

type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"           validate:"omitempty,min=1,max=100"`
	Phone          *string `json:"phone,omitempty"          validate:"omitempty,max=32"`
	Organization   *string `json:"organization,omitempty"   validate:"omitempty,max=200"`
	Address        string  `json:"address"                  validate:"required,max=500"`
	Bio            string  `json:"bio"                      validate:"required,max=2000"`
	ProfilePicture *string `json:"profilePicture,omitempty" validate:"omitempty,max=2048"`
}

type ListUsersParams struct {
	Page     int
	PageSize int
	Search   string
	Category string
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
