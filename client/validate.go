package client

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrPasswordMismatch = errors.New("client: password confirmation does not match")
	ErrWeakPassword     = errors.New("client: password needs at least 8 characters including a letter, a digit and a symbol")
	ErrMissingField     = errors.New("client: email, name and requested role are required")
)

// SignupForm is the admin signup form as filled in by the user, including
// the confirmation field that never leaves the client.
type SignupForm struct {
	Email           string
	Password        string
	PasswordConfirm string
	Name            string
	RequestedRole   string
	Reason          string
}

// Validate runs the client-side checks that must fail before any network
// call is made.
func (f SignupForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Name) == "" || f.RequestedRole == "" {
		return ErrMissingField
	}
	if f.Password != f.PasswordConfirm {
		return ErrPasswordMismatch
	}
	if !passwordStrongEnough(f.Password) {
		return ErrWeakPassword
	}
	return nil
}

func passwordStrongEnough(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var letter, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return letter && digit && symbol
}
