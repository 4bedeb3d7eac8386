package identity

import (
	"errors"
	"fmt"

	apperrors "runway-tickets/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier 驗證身分提供者簽發的 access token
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, *Claims, error)
}

type JWTVerifier struct {
	key     interface{}
	methods []string
}

// NewJWTVerifier publicKeyPEM（RSA 或 EC）優先，否則使用 HS256 共享密鑰
func NewJWTVerifier(publicKeyPEM, secret string) (*JWTVerifier, error) {
	if publicKeyPEM != "" {
		if key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM)); err == nil {
			return &JWTVerifier{key: key, methods: []string{"RS256", "RS384", "RS512"}}, nil
		}
		if key, err := jwt.ParseECPublicKeyFromPEM([]byte(publicKeyPEM)); err == nil {
			return &JWTVerifier{key: key, methods: []string{"ES256", "ES384", "ES512"}}, nil
		}
		return nil, errors.New("identity public key is neither RSA nor EC PEM")
	}
	if secret == "" {
		return nil, apperrors.ErrIdentityNotConfigured
	}
	return &JWTVerifier{key: []byte(secret), methods: []string{"HS256"}}, nil
}

func (v *JWTVerifier) Verify(token string) (uuid.UUID, *Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, jwt.WithValidMethods(v.methods), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return uuid.Nil, nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: subject is not a user id", apperrors.ErrUnauthorized)
	}
	return userID, &claims, nil
}
