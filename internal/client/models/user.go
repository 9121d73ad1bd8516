package models

import (
	"bytes"
	"encoding/json"
)

// UserRef is a user as referenced from items (mentions, note authors) and as
// listed by the user directory.
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
}

// UnmarshalJSON accepts either a populated object or a bare id string; the
// server does not always populate note authors.
func (u *UserRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*u = UserRef{ID: id}
		return nil
	}

	type plain UserRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*u = UserRef(p)
	return nil
}

// DisplayName prefers the full name and falls back to the username, then the id.
func (u UserRef) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.ID
	}
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by login and register. Token may be empty when the
// server does not sign the user in on registration.
type AuthResult struct {
	Token string  `json:"token"`
	User  UserRef `json:"user"`
}
