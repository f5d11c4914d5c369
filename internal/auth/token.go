package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is stamped into every token this service signs.
const Issuer = "blogpost-api"

// Claims is the signed token payload: identity fields plus the registered
// issuer/issued-at/expires-at set.
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies stateless signed access tokens. Tokens are
// self-contained: validity is decided entirely by the signature and the
// embedded expiry, with no server-side token state.
type TokenCodec struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
}

// NewTokenCodec builds a codec for the given shared secret and symmetric
// signing algorithm name (HS256, HS384 or HS512).
func NewTokenCodec(secret, algorithm string, lifetime time.Duration) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %s", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %s is not symmetric", algorithm)
	}

	return &TokenCodec{
		secret:   []byte(secret),
		method:   method,
		lifetime: lifetime,
	}, nil
}

// Issue signs a token for the given user. A nil user produces no token and no
// error: issuance after a failed authentication is a no-op, not a failure.
// The validity window is fixed at signing time; there is no renewal path.
func (c *TokenCodec) Issue(user *User) (string, error) {
	if user == nil {
		return "", nil
	}

	now := time.Now().UTC()
	claims := Claims{
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// DecodeUsername verifies a token string and returns the embedded username.
// Every failure mode (bad signature, malformed encoding, missing claims,
// expiry) comes back as ErrInvalidToken.
func (c *TokenCodec) DecodeUsername(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Username == "" || claims.Email == "" {
		return "", ErrInvalidToken
	}

	return claims.Username, nil
}
