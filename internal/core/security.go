// AngelaMos | 2026
// security.go

package core

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var errBadHash = errors.New("malformed password hash")

// argonParams is the cost carried inside every PHC-style hash string, so
// hashes made with older settings keep verifying after a change.
type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

var currentParams = argonParams{memory: 64 * 1024, time: 1, threads: 4, keyLen: 32}

const saltLength = 16

var b64 = base64.RawStdEncoding

func (p argonParams) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
}

func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	p := currentParams
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.time, p.threads,
		b64.EncodeToString(salt), b64.EncodeToString(p.derive(password, salt)),
	), nil
}

func VerifyPassword(password, encoded string) (bool, error) {
	p, salt, want, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(want, p.derive(password, salt)) == 1, nil
}

func parseHash(encoded string) (argonParams, []byte, []byte, error) {
	var (
		p       argonParams
		version int
		tail    string
	)
	_, err := fmt.Sscanf(encoded, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		&version, &p.memory, &p.time, &p.threads, &tail)
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: %w", errBadHash, err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: argon2 version %d", errBadHash, version)
	}

	saltPart, keyPart, ok := strings.Cut(tail, "$")
	if !ok {
		return p, nil, nil, errBadHash
	}
	salt, err := b64.DecodeString(saltPart)
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %w", errBadHash, err)
	}
	key, err := b64.DecodeString(keyPart)
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: key: %w", errBadHash, err)
	}

	p.keyLen = uint32(len(key)) //nolint:gosec // G115: argon2 keys are tiny
	return p, salt, key, nil
}

var dummyHash = sync.OnceValue(func() string {
	h, err := HashPassword("mmle-login-timing-equaliser")
	if err != nil {
		panic(fmt.Sprintf("security: dummy hash: %v", err))
	}
	return h
})

// VerifyPasswordTimingSafe burns the same argon2 work for unknown accounts so
// login latency does not reveal which emails are registered.
func VerifyPasswordTimingSafe(password, encoded string) bool {
	if encoded == "" {
		_, _ = VerifyPassword(password, dummyHash()) //nolint:errcheck // timing only
		return false
	}
	ok, err := VerifyPassword(password, encoded)
	return err == nil && ok
}

// PaymentSignature is the Razorpay checkout signature:
// hex(HMAC-SHA256(order_id + "|" + payment_id, key_secret)).
func PaymentSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	expected := PaymentSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
