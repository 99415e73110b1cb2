package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"conferencecentral/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type jwtIssuer struct {
	secret []byte
}

// NewJWTIssuer returns a TokenIssuer that signs JWTs with HS256 using the given secret.
func NewJWTIssuer(secret string) domain.TokenIssuer {
	return &jwtIssuer{secret: []byte(secret)}
}

func (i *jwtIssuer) Issue(id domain.Identity, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email:    id.Email,
		Nickname: id.Nickname,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a TokenVerifier for HS256 tokens signed with the given secret.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(tokenString string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return domain.Identity{}, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("token has no subject")
	}
	return domain.Identity{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Nickname: claims.Nickname,
	}, nil
}
