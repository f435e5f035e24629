package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"net/http/httptest"
	"testing"
	"time"

	"gutly/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func signES256(t *testing.T, key *ecdsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "user_abc",
		Audience:  jwt.ClaimStrings{"app_123"},
		Issuer:    "urn:whopcom:exp-proxy",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestVerifyES256Token(t *testing.T) {
	key, pub := newKey(t)
	v, err := NewWhopVerifier(config.WhopConfig{AppID: "app_123", TokenPublicKey: pub}, "production", nil)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/meals", nil)
	req.Header.Set(UserTokenHeader, signES256(t, key, validClaims()))

	userID, err := v.Verify(req)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", userID)
}

func TestVerifyBearerFallback(t *testing.T) {
	v, err := NewWhopVerifier(config.WhopConfig{TokenSecret: "s3cret"}, "production", nil)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user_hmac"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/meals", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	userID, err := v.Verify(req)
	require.NoError(t, err)
	assert.Equal(t, "user_hmac", userID)
}

func TestVerifyRejects(t *testing.T) {
	key, pub := newKey(t)
	other, _ := newKey(t)
	v, err := NewWhopVerifier(config.WhopConfig{AppID: "app_123", TokenPublicKey: pub}, "production", nil)
	require.NoError(t, err)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	wrongAud := validClaims()
	wrongAud.Audience = jwt.ClaimStrings{"app_other"}
	noSub := validClaims()
	noSub.Subject = ""

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"missing", "", ErrMissingToken},
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"wrong key", signES256(t, other, validClaims()), ErrInvalidToken},
		{"expired", signES256(t, key, expired), ErrInvalidToken},
		{"wrong audience", signES256(t, key, wrongAud), ErrInvalidToken},
		{"no subject", signES256(t, key, noSub), ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/meals", nil)
			if tt.token != "" {
				req.Header.Set(UserTokenHeader, tt.token)
			}
			_, err := v.Verify(req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifyRejectsHS256WhenOnlyPublicKeyConfigured(t *testing.T) {
	_, pub := newKey(t)
	v, err := NewWhopVerifier(config.WhopConfig{TokenPublicKey: pub}, "production", nil)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user_x"}).SignedString([]byte(pub))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/meals", nil)
	req.Header.Set(UserTokenHeader, token)
	_, err = v.Verify(req)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWithoutKeys(t *testing.T) {
	v, err := NewWhopVerifier(config.WhopConfig{}, "production", nil)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/meals", nil)
	req.Header.Set(UserTokenHeader, "anything")
	_, err = v.Verify(req)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDevBypass(t *testing.T) {
	v, err := NewWhopVerifier(config.WhopConfig{DevBypassAuth: true}, "development", nil)
	require.NoError(t, err)

	userID, err := v.Verify(httptest.NewRequest("GET", "/meals", nil))
	require.NoError(t, err)
	assert.Equal(t, DevUserID, userID)

	v, err = NewWhopVerifier(config.WhopConfig{DevBypassAuth: true}, "production", nil)
	require.NoError(t, err)
	_, err = v.Verify(httptest.NewRequest("GET", "/meals", nil))
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewWhopVerifierBadKey(t *testing.T) {
	_, err := NewWhopVerifier(config.WhopConfig{TokenPublicKey: "not a pem"}, "production", nil)
	assert.Error(t, err)
}
