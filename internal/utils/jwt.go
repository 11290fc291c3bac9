package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StudentClaims custom claims for JWT
type StudentClaims struct {
	Name string `json:"nome"`
	jwt.RegisteredClaims
}

// TokenStatus classifies the outcome of decoding a token.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenBadSignature
	TokenMalformed
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	case TokenBadSignature:
		return "bad_signature"
	default:
		return "malformed"
	}
}

// TokenResult is the decoded token. Subject and Name are only set when Status is TokenValid.
type TokenResult struct {
	Status  TokenStatus
	Subject string
	Name    string
	Err     error
}

// Valid reports whether the token authenticates its subject.
func (r TokenResult) Valid() bool {
	return r.Status == TokenValid
}

// JWTUtil provides JWT generation and validation
type JWTUtil struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWTUtil creates a new JWTUtil
func NewJWTUtil(secretKey string, ttl time.Duration) *JWTUtil {
	return &JWTUtil{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (ju *JWTUtil) TTL() time.Duration {
	return ju.ttl
}

// Issue generates a token bound to a canonical phone and display name
func (ju *JWTUtil) Issue(subject, name string) (string, error) {
	now := ju.now()
	claims := &StudentClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ju.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Decode verifies the token. It never fails; callers inspect Status.
func (ju *JWTUtil) Decode(tokenString string) TokenResult {
	token, err := jwt.ParseWithClaims(tokenString, &StudentClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(ju.now), jwt.WithExpirationRequired())

	if err != nil {
		return TokenResult{Status: classifyTokenError(err), Err: err}
	}

	claims, ok := token.Claims.(*StudentClaims)
	if !ok || !token.Valid {
		return TokenResult{Status: TokenMalformed, Err: errors.New("invalid token")}
	}
	if claims.Subject == "" {
		return TokenResult{Status: TokenMalformed, Err: errors.New("token subject missing")}
	}

	return TokenResult{Status: TokenValid, Subject: claims.Subject, Name: claims.Name}
}

func classifyTokenError(err error) TokenStatus {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return TokenBadSignature
	default:
		return TokenMalformed
	}
}
