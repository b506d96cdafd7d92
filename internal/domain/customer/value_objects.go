package customer

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyName    = errors.New("customer name cannot be empty")
	ErrNameTooLong  = errors.New("customer name exceeds maximum length")
	ErrInvalidEmail = errors.New("invalid email format")
)

const MaxNameLength = 100

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func newName(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", ErrEmptyName
	}
	if len(t) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return t, nil
}
