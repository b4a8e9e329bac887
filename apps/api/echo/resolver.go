package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/hustle/core/user"
)

// UserResolver finds out which user a request acts as.
type UserResolver interface {
	ResolveUserID(r *http.Request) (int, error)
}

// FixedUserResolver acts as the same user for every request.
type FixedUserResolver struct {
	UserID int
}

var _ UserResolver = FixedUserResolver{}

func (res FixedUserResolver) ResolveUserID(*http.Request) (int, error) {
	return res.UserID, nil
}

// TokenUserResolver reads the user from an "Authorization: Bearer <token>" header.
type TokenUserResolver struct {
	Secret []byte
}

var _ UserResolver = TokenUserResolver{}

func (res TokenUserResolver) ResolveUserID(r *http.Request) (int, error) {
	auth := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return 0, errUnauthorized
	}

	claims, err := user.ParseToken(auth[len(prefix):], res.Secret)
	switch err {
	case nil:
	case user.ErrTokenExpired:
		return 0, errTokenExpired
	default:
		return 0, errUnauthorized
	}

	id, err := claims.UserID()
	if err != nil {
		return 0, errUnauthorized
	}
	return id, nil
}
