package utils_test

import (
	"donow/utils"
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "Simple username should pass validation",
			username: "alice",
			wantErr:  false,
		},
		{
			name:     "Username with punctuation should pass validation",
			username: "alice.b-c_d@example.com",
			wantErr:  false,
		},
		{
			name:     "Empty username should fail validation",
			username: "",
			wantErr:  true,
			errMsg:   "username is required",
		},
		{
			name:     "Username with space should fail validation",
			username: "alice smith",
			wantErr:  true,
			errMsg:   "username cannot contain whitespace",
		},
		{
			name:     "Username with newline should fail validation",
			username: "alice\n",
			wantErr:  true,
			errMsg:   "username cannot contain whitespace",
		},
		{
			name:     "Very long username should fail validation",
			username: strings.Repeat("a", 51),
			wantErr:  true,
			errMsg:   "username must be at most 50 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidateUsername() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "Short password should pass validation",
			password: "pw1",
			wantErr:  false,
		},
		{
			name:     "Password at bcrypt limit should pass validation",
			password: strings.Repeat("p", 72),
			wantErr:  false,
		},
		{
			name:     "Empty password should fail validation",
			password: "",
			wantErr:  true,
			errMsg:   "password is required",
		},
		{
			name:     "Password over bcrypt limit should fail validation",
			password: strings.Repeat("p", 73),
			wantErr:  true,
			errMsg:   "password must be at most 72 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidatePassword() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateTaskInput(t *testing.T) {
	longDescription := strings.Repeat("d", 2001)
	description := "two litres"

	tests := []struct {
		name        string
		title       string
		description *string
		wantErr     bool
		errMsg      string
	}{
		{
			name:    "Valid title should pass validation",
			title:   "Complete project documentation",
			wantErr: false,
		},
		{
			name:        "Valid title with description should pass validation",
			title:       "buy milk",
			description: &description,
			wantErr:     false,
		},
		{
			name:    "Title with quotes should pass validation",
			title:   `Read "Go in Action"`,
			wantErr: false,
		},
		{
			name:    "Empty title should fail validation",
			title:   "",
			wantErr: true,
			errMsg:  "title must be between 1 and 255 characters",
		},
		{
			name:    "Whitespace title should fail validation",
			title:   "   ",
			wantErr: true,
			errMsg:  "title must be between 1 and 255 characters",
		},
		{
			name:    "Very long title should fail validation",
			title:   strings.Repeat("t", 256),
			wantErr: true,
			errMsg:  "title must be between 1 and 255 characters",
		},
		{
			name:    "Multibyte title at limit should pass validation",
			title:   strings.Repeat("é", 255),
			wantErr: false,
		},
		{
			name:        "Very long description should fail validation",
			title:       "buy milk",
			description: &longDescription,
			wantErr:     true,
			errMsg:      "description must be at most 2000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTaskInput(tt.title, tt.description)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTaskInput() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidateTaskInput() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
