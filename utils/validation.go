package utils

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxUsernameLength    = 50
	MaxPasswordBytes     = 72
	MaxTitleLength       = 255
	MaxDescriptionLength = 2000
)

func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return errors.New("username must be at most 50 characters")
	}
	if strings.IndexFunc(username, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return errors.New("username cannot contain whitespace")
	}
	return nil
}

// ValidatePassword only enforces what bcrypt can actually hash.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) > MaxPasswordBytes {
		return errors.New("password must be at most 72 bytes")
	}
	return nil
}

func ValidateTaskInput(title string, description *string) error {
	if strings.TrimSpace(title) == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.New("title must be between 1 and 255 characters")
	}
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return errors.New("description must be at most 2000 characters")
	}
	return nil
}
