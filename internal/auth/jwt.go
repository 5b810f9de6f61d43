// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/rgrams-coder/aicmmlr/internal/config"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/middleware"
)

// AccessTokenClaims are the claims the client decodes from its bearer token.
type AccessTokenClaims = middleware.AccessTokenClaims

const tokenTypeAccess = "access"

type JWTManager struct {
	signing jwk.Key
	verify  jwk.Key
	jwks    jwk.Set
	kid     string
	config  config.JWTConfig
	now     func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	pemBytes, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	return NewJWTManagerFromPEM(cfg, pemBytes)
}

// NewJWTManagerFromPEM builds a manager from an in-memory ES256 private key.
// The key id is the RFC 7638 thumbprint, so it is stable across restarts.
func NewJWTManagerFromPEM(cfg config.JWTConfig, pemBytes []byte) (*JWTManager, error) {
	signing, err := jwk.ParseKey(pemBytes, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	kid, err := thumbprintID(signing)
	if err != nil {
		return nil, err
	}
	if err := setAll(signing, map[string]any{
		jwk.AlgorithmKey: jwa.ES256(),
		jwk.KeyIDKey:     kid,
	}); err != nil {
		return nil, err
	}

	verify, err := signing.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	if err := verify.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("set key usage: %w", err)
	}

	jwks := jwk.NewSet()
	if err := jwks.AddKey(verify); err != nil {
		return nil, fmt.Errorf("add key to set: %w", err)
	}

	return &JWTManager{
		signing: signing,
		verify:  verify,
		jwks:    jwks,
		kid:     kid,
		config:  cfg,
		now:     time.Now,
	}, nil
}

// GenerateKeyPair writes a fresh P-256 key pair as PEM files.
func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	raw, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	private, err := jwk.Import(raw)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}
	public, err := private.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	if err := writePEM(privateKeyPath, private, 0o600); err != nil {
		return err
	}
	return writePEM(publicKeyPath, public, 0o644)
}

func writePEM(path string, key jwk.Key, perm os.FileMode) error {
	encoded, err := jwk.Pem(key)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, encoded, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func thumbprintID(key jwk.Key) (string, error) {
	sum, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("key thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sum)[:16], nil
}

func setAll(key jwk.Key, fields map[string]any) error {
	for name, value := range fields {
		if err := key.Set(name, value); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

// CreateAccessToken signs the bearer token handed to the client. The client
// reads sub, role, category and exp without verifying the signature. Admin
// tokens carry no category.
func (m *JWTManager) CreateAccessToken(claims AccessTokenClaims) (string, error) {
	issued := m.now()

	b := jwt.NewBuilder().
		JwtID(uuid.NewString()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(issued).
		NotBefore(issued).
		Expiration(issued.Add(m.config.AccessTokenExpire)).
		Claim("type", tokenTypeAccess).
		Claim("role", claims.Role)
	if claims.Category != "" {
		b = b.Claim("category", claims.Category)
	}

	token, err := b.Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.signing))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return string(signed), nil
}

// VerifyAccessToken checks the signature first and the time window second,
// so an expired token is only reported as expired when it was genuinely ours.
func (m *JWTManager) VerifyAccessToken(
	_ context.Context,
	raw string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.ES256(), m.verify),
		jwt.WithValidate(false),
	)
	if err != nil {
		return nil, invalidToken("signature")
	}

	if exp, ok := token.Expiration(); !ok || !m.now().Before(exp) {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
	}

	if err := jwt.Validate(token,
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	); err != nil {
		return nil, invalidToken("claims")
	}

	if kind, _ := stringClaim(token, "type"); kind != tokenTypeAccess {
		return nil, invalidToken("token type")
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, invalidToken("subject")
	}

	role, ok := stringClaim(token, "role")
	if !ok {
		return nil, invalidToken("role")
	}

	var cat string
	if token.Has("category") {
		if cat, ok = stringClaim(token, "category"); !ok {
			return nil, invalidToken("category")
		}
	}

	return &middleware.AccessTokenClaims{UserID: subject, Role: role, Category: cat}, nil
}

func stringClaim(token jwt.Token, name string) (string, bool) {
	var v string
	if err := token.Get(name, &v); err != nil {
		return "", false
	}
	return v, true
}

func invalidToken(what string) error {
	return fmt.Errorf("verify token: bad %s: %w", what, core.ErrTokenInvalid)
}

func (m *JWTManager) GetJWKSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		body, err := json.Marshal(m.jwks)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(body) //nolint:errcheck // best-effort response
	}
}

func (m *JWTManager) GetKeyID() string {
	return m.kid
}
