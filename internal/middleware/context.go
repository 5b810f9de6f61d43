// AngelaMos | 2026
// context.go

package middleware

import "context"

type contextKey struct{ name string }

var claimsKey = &contextKey{"claims"}

// AccessTokenClaims is what a verified bearer token says about its holder.
// Category is the registration category, empty for admin accounts.
type AccessTokenClaims struct {
	UserID   string
	Role     string
	Category string
}

// WithClaims stores verified claims on ctx the way Authenticator does.
func WithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Claims returns the caller's claims, or nil for anonymous requests.
func Claims(ctx context.Context) *AccessTokenClaims {
	c, _ := ctx.Value(claimsKey).(*AccessTokenClaims)
	return c
}

func GetUserID(ctx context.Context) string {
	if c := Claims(ctx); c != nil {
		return c.UserID
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if c := Claims(ctx); c != nil {
		return c.Role
	}
	return ""
}

func GetUserCategory(ctx context.Context) string {
	if c := Claims(ctx); c != nil {
		return c.Category
	}
	return ""
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == RoleAdmin
}
