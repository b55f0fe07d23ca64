package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTokenTTL is the lifetime of an access token when none is configured.
const DefaultAccessTokenTTL = 30 * time.Minute

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrInvalidSubject = errors.New("token subject must not be empty")
	ErrMissingSecret  = errors.New("token secret must not be empty")
)

// TokenConfig holds the immutable parameters shared by the issuer and the verifier.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (c TokenConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c TokenConfig) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultAccessTokenTTL
}

// TokenIssuer creates signed access tokens.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// TokenVerifier validates access tokens and extracts their subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTAuthenticator issues and verifies HS256 signed JWT access tokens.
type JWTAuthenticator struct {
	cfg TokenConfig
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(cfg TokenConfig) (*JWTAuthenticator, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	return &JWTAuthenticator{cfg: cfg}, nil
}

// TTL returns the lifetime of issued tokens.
func (a *JWTAuthenticator) TTL() time.Duration {
	return a.cfg.ttl()
}

// Issue generates a token for subject that expires after the configured TTL.
func (a *JWTAuthenticator) Issue(subject string) (string, error) {
	if subject == "" {
		return "", ErrInvalidSubject
	}

	now := a.cfg.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    a.cfg.Issuer,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.ttl())),
	}

	return a.GenerateToken(claims)
}

// Verify checks the signature and expiry of token and returns its subject.
func (a *JWTAuthenticator) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, err := a.ValidateTokenWithClaims(tokenString, claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}

		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// GenerateToken signs the given claims with the configured secret.
func (a *JWTAuthenticator) GenerateToken(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString([]byte(a.cfg.Secret))
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// ValidateTokenWithClaims validates a JWT token and parses it into the provided claims type.
// The claims parameter should be a pointer to a struct that implements jwt.Claims.
func (a *JWTAuthenticator) ValidateTokenWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.cfg.now),
	}
	if a.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(a.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return token, nil
}
