package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func testClaims(expiresIn time.Duration) Claims {
	now := time.Now()
	return Claims{
		UserID:    "USER001",
		Email:     "a@x.com",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(expiresIn).Unix(),
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := testClaims(time.Hour)
	tok, err := Encode(c, testSecret)
	require.NoError(t, err)

	got, err := Decode(tok, testSecret, time.Now())
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}

func TestEncode_ThreeBase64URLSegments(t *testing.T) {
	tok, err := Encode(testClaims(time.Hour), testSecret)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	for _, p := range parts {
		assert.NotContains(t, p, "=")
		_, err := base64.RawURLEncoding.DecodeString(p)
		assert.NoError(t, err)
	}

	headerJSON, _ := base64.RawURLEncoding.DecodeString(parts[0])
	assert.JSONEq(t, `{"alg":"HS256","typ":"JWT"}`, string(headerJSON))
}

func TestDecode_WrongSecret_Rejected(t *testing.T) {
	tok, err := Encode(testClaims(time.Hour), testSecret)
	require.NoError(t, err)

	_, err = Decode(tok, []byte("other-secret"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_TamperedSegments_Rejected(t *testing.T) {
	tok, err := Encode(testClaims(time.Hour), testSecret)
	require.NoError(t, err)
	parts := strings.Split(tok, ".")

	otherPayload := base64.RawURLEncoding.EncodeToString([]byte(`{"userId":"USER999","email":"a@x.com","iat":1,"exp":9999999999}`))
	otherHeader := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	for name, tampered := range map[string]string{
		"header":    otherHeader + "." + parts[1] + "." + parts[2],
		"payload":   parts[0] + "." + otherPayload + "." + parts[2],
		"signature": parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString([]byte("bogus")),
	} {
		_, err := Decode(tampered, testSecret, time.Now())
		assert.ErrorIs(t, err, ErrInvalidToken, "tampered %s", name)
	}
}

func TestDecode_Expired_RejectedEvenWithValidSignature(t *testing.T) {
	tok, err := Encode(testClaims(-time.Minute), testSecret)
	require.NoError(t, err)

	_, err = Decode(tok, testSecret, time.Now())
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecode_WrongSegmentCount_Rejected(t *testing.T) {
	for _, tok := range []string{"", "one", "one.two", "one.two.three.four"} {
		_, err := Decode(tok, testSecret, time.Now())
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestSigner_SignVerify(t *testing.T) {
	s := NewSigner("app-secret", 24*time.Hour)
	tok, err := s.Sign("USER007", "bond@x.com")
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "USER007", claims.UserID)
	assert.Equal(t, "bond@x.com", claims.Email)
	assert.Equal(t, claims.IssuedAt+86400, claims.ExpiresAt)
}

func TestSigner_Verify_DifferentSecret(t *testing.T) {
	tok, err := NewSigner("secret-a", time.Hour).Sign("USER001", "a@x.com")
	require.NoError(t, err)

	_, err = NewSigner("secret-b", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
