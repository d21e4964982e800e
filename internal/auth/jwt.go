package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by a pokedex bearer token.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const issuer = "pokedex-api"

// DefaultTokenTTL is the default token lifetime for minted tokens.
const DefaultTokenTTL = 24 * time.Hour

// JWTVerifier verifies HMAC-signed bearer tokens.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with the given secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates a token and resolves the caller identity.
// Expired, malformed, and badly-signed tokens all fail; the caller is
// responsible for collapsing causes into a generic unauthorized response.
func (v *JWTVerifier) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
	)
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return Identity{}, errors.New("token carries no user identifier")
	}

	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// Sign mints a token for the given identity. Used by the token command and
// by tests.
func (v *JWTVerifier) Sign(ident Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: ident.UserID,
		Role:   ident.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   ident.UserID,
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
