package models

import (
	"errors"
	"fmt"
)

// User represents an account created through the fixture API
type User struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Domain errors
var (
	ErrEmptyName     = errors.New("user name cannot be empty")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrEmptyTitle    = errors.New("blog title cannot be empty")
	ErrEmptyURL      = errors.New("blog url cannot be empty")
)

// NewUser creates a new user with validation
func NewUser(name, username, password string) (*User, error) {
	u := &User{Name: name, Username: username, Password: password}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks that every field the backend requires is present
func (u User) Validate() error {
	if u.Name == "" {
		return ErrEmptyName
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// LoggedInBanner returns the text the application shows once the user is authenticated
func (u User) LoggedInBanner() string {
	return fmt.Sprintf("%s logged-in", u.Username)
}

// String never includes the password
func (u User) String() string {
	return fmt.Sprintf("%s (%s)", u.Username, u.Name)
}
