package user

import (
	"errors"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents the claims carried by an access token.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
}

// UserID returns the id of the User the token was issued for.
func (c Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// GenerateToken signs an HS256 access token for usr valid for ttl.
func GenerateToken(usr User, issuer string, secret []byte, ttl time.Duration) (string, error) {
	now := NowFunc()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: usr.Username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies the signature and expiry of an access token and returns its claims.
func ParseToken(tokenStr string, secret []byte) (Claims, error) {
	var claims Claims
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}, SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(NowFunc().Unix(), true) {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}
