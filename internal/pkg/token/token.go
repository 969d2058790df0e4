package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// The token is three base64url segments (no padding) joined by dots:
// header.payload.signature. The signature is HMAC-SHA256 over the ASCII
// string "<header>.<payload>" with a shared secret. Field order inside each
// segment is fixed by the struct definitions below; verifiers must not rely
// on any other order.

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

const (
	alg = "HS256"
	typ = "JWT"
)

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Claims is the signed payload of an access token.
type Claims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Signer mints and verifies access tokens with a fixed secret and expiry.
type Signer struct {
	secret []byte
	expiry time.Duration
}

func NewSigner(secret string, expiry time.Duration) *Signer {
	return &Signer{secret: []byte(secret), expiry: expiry}
}

// Sign mints a token for the given user. IssuedAt is now, ExpiresAt is
// now + the configured expiry.
func (s *Signer) Sign(userID, email string) (string, error) {
	now := time.Now()
	c := Claims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.expiry).Unix(),
	}
	return Encode(c, s.secret)
}

// Verify checks a token against the signer's secret and the current time.
func (s *Signer) Verify(tok string) (*Claims, error) {
	return Decode(tok, s.secret, time.Now())
}

// Encode serializes and signs the claims with the given secret.
func Encode(c Claims, secret []byte) (string, error) {
	headerJSON, err := json.Marshal(header{Alg: alg, Typ: typ})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}
	payloadJSON, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}
	signingInput := segment(headerJSON) + "." + segment(payloadJSON)
	return signingInput + "." + segment(sign(signingInput, secret)), nil
}

// Decode verifies the signature and expiry, returning the claims.
// The signature comparison is constant-time.
func Decode(tok string, secret []byte, now time.Time) (*Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected 3 segments, got %d: %w", len(parts), ErrInvalidToken)
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("decode header: %w", ErrInvalidToken)
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return nil, fmt.Errorf("parse header: %w", ErrInvalidToken)
	}
	if h.Alg != alg || h.Typ != typ {
		return nil, fmt.Errorf("unexpected algorithm %q: %w", h.Alg, ErrInvalidToken)
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", ErrInvalidToken)
	}
	expected := sign(parts[0]+"."+parts[1], secret)
	if !hmac.Equal(sig, expected) {
		return nil, fmt.Errorf("signature mismatch: %w", ErrInvalidToken)
	}

	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", ErrInvalidToken)
	}
	var c Claims
	if err := json.Unmarshal(payloadJSON, &c); err != nil {
		return nil, fmt.Errorf("parse payload: %w", ErrInvalidToken)
	}
	if c.ExpiresAt <= now.Unix() {
		return nil, ErrTokenExpired
	}
	return &c, nil
}

func sign(input string, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(input))
	return mac.Sum(nil)
}

func segment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
