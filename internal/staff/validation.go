package staff

import (
	"context"
	"strings"
)

const minPasswordLength = 8

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

func ValidateRegister(ctx context.Context, req RegisterRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Username) == "" {
		errors = append(errors, "username is required")
	}

	if req.Password == "" {
		errors = append(errors, "password is required")
	} else if len(req.Password) < minPasswordLength {
		errors = append(errors, "password must be at least 8 characters")
	}

	return errors
}
