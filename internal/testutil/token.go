// AngelaMos | 2026
// token.go

package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"sync"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

var (
	keyOnce sync.Once
	key     *ecdsa.PrivateKey
)

func signingKey(t testing.TB) *ecdsa.PrivateKey {
	keyOnce.Do(func() {
		var err error
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			t.Fatalf("generate signing key: %v", err)
		}
	})
	return key
}

type TokenClaims struct {
	Subject   string
	Role      string
	Category  string
	ExpiresAt time.Time
}

// Token signs a bearer token the way the api server shapes them. A zero
// ExpiresAt leaves the exp claim out.
func Token(t testing.TB, c TokenClaims) string {
	t.Helper()

	b := jwt.NewBuilder().
		Subject(c.Subject).
		IssuedAt(time.Now()).
		Claim("type", "access")
	if c.Role != "" {
		b = b.Claim("role", c.Role)
	}
	if c.Category != "" {
		b = b.Claim("category", c.Category)
	}
	if !c.ExpiresAt.IsZero() {
		b = b.Expiration(c.ExpiresAt)
	}

	tok, err := b.Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.ES256(), signingKey(t)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return string(signed)
}

func UserToken(t testing.TB, subject string) string {
	return Token(t, TokenClaims{
		Subject:   subject,
		Role:      "user",
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func AdminToken(t testing.TB, subject string) string {
	return Token(t, TokenClaims{
		Subject:   subject,
		Role:      "admin",
		ExpiresAt: time.Now().Add(time.Hour),
	})
}
