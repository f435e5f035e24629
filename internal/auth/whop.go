// Package auth verifies the signed user tokens the Whop platform attaches to
// requests made from inside a Whop app.
package auth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gutly/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	UserTokenHeader = "x-whop-user-token"
	// DevUserID is the identity every request gets while the bypass is on.
	DevUserID = "dev-user-123"
)

var (
	ErrMissingToken  = errors.New("missing user token")
	ErrInvalidToken  = errors.New("invalid user token")
	ErrNotConfigured = errors.New("no token verification key configured")
)

// Verifier resolves the caller's identity from a request.
type Verifier interface {
	Verify(r *http.Request) (string, error)
}

type WhopVerifier struct {
	appID     string
	publicKey *ecdsa.PublicKey
	secret    []byte
	bypass    bool
	logger    *zap.Logger
}

// NewWhopVerifier builds a verifier from config. The development bypass only
// takes effect when the environment is "development".
func NewWhopVerifier(cfg config.WhopConfig, environment string, logger *zap.Logger) (*WhopVerifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &WhopVerifier{
		appID:  cfg.AppID,
		secret: []byte(cfg.TokenSecret),
		bypass: cfg.DevBypassAuth && environment == "development",
		logger: logger,
	}

	if cfg.TokenPublicKey != "" {
		pem := strings.ReplaceAll(cfg.TokenPublicKey, `\n`, "\n")
		key, err := jwt.ParseECPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("parse whop token public key: %w", err)
		}
		v.publicKey = key
	}

	if v.bypass {
		logger.Warn("DEV MODE: authentication bypassed for testing", zap.String("user_id", DevUserID))
	} else if v.publicKey == nil && len(v.secret) == 0 {
		logger.Warn("no whop token key configured, all requests will be rejected")
	}
	return v, nil
}

func (v *WhopVerifier) Verify(r *http.Request) (string, error) {
	if v.bypass {
		return DevUserID, nil
	}

	raw := tokenFromRequest(r)
	if raw == "" {
		return "", ErrMissingToken
	}
	if v.publicKey == nil && len(v.secret) == 0 {
		return "", ErrNotConfigured
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"ES256", "HS256"})}
	if v.appID != "" {
		opts = append(opts, jwt.WithAudience(v.appID))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.keyFunc, opts...)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

func (v *WhopVerifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodECDSA:
		if v.publicKey != nil {
			return v.publicKey, nil
		}
	case *jwt.SigningMethodHMAC:
		if len(v.secret) > 0 {
			return v.secret, nil
		}
	}
	return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
}

func tokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(UserTokenHeader)); t != "" {
		return t
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
