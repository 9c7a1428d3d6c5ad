package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrProblemNotFound    = errors.New("problem not found")
)

// Validation flags rendered back into the originating form
const (
	FlagInvalidUser      = "invalid_user"
	FlagInvalidUsername  = "invalid_username"
	FlagInvalidEmail     = "invalid_email"
	FlagInvalidPassword  = "invalid_password"
	FlagPasswordNotMatch = "password_not_match"
	FlagWrongPassword    = "wrong_password"
)

// FieldErrors lists the validation rules a form submission violated.
// Only true entries are ever stored.
type FieldErrors map[string]bool

func (e FieldErrors) Error() string {
	flags := make([]string, 0, len(e))
	for flag := range e {
		flags = append(flags, flag)
	}
	sort.Strings(flags)
	return "validation failed: " + strings.Join(flags, ", ")
}

// set records flag when violated holds
func (e FieldErrors) set(flag string, violated bool) {
	if violated {
		e[flag] = true
	}
}

// orNil keeps callers from returning a non-nil empty error
func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
