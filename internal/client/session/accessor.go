package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSession = errors.New("not logged in")

// CurrentUser is the identity embedded in the bearer token's payload.
type CurrentUser struct {
	ID       string
	Username string
	Name     string
	Email    string
}

// DecodeClaims reads the token payload without checking the signature. The
// result is only good for display and for hiding the user from their own
// mention picker; the server remains the authority. A token must name the
// user by id or by username.
func DecodeClaims(token string) (CurrentUser, error) {
	if token == "" {
		return CurrentUser{}, ErrNoSession
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return CurrentUser{}, fmt.Errorf("decode token: %w", err)
	}

	u := CurrentUser{
		ID:       firstString(claims, "id", "_id", "userId", "sub"),
		Username: firstString(claims, "username"),
		Name:     firstString(claims, "name"),
		Email:    firstString(claims, "email"),
	}
	if u.ID == "" && u.Username == "" {
		return CurrentUser{}, fmt.Errorf("decode token: %w", jwt.ErrTokenInvalidClaims)
	}
	return u, nil
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := claims[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
