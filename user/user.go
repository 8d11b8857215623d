package user

import (
	"moviecatalog/errs"
	"net/mail"
	"strings"
	"time"
)

const minPasswordLength = 8

var (
	ErrInvalidUserID      = errs.Errorf(errs.EINVALID, "user: invalid user id")
	ErrInvalidUsername    = errs.Errorf(errs.EINVALID, "user: invalid username")
	ErrInvalidEmail       = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidPassword    = errs.Errorf(errs.EINVALID, "user: password must be at least 8 characters")
	ErrUserNotFound       = errs.Errorf(errs.ENOTFOUND, "user not found")
	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "user: email already exists")
)

// User is an account of the catalog. Password carries the plain text only
// on the way in; repositories persist PasswordHash.
type User struct {
	ID           int64
	Username     string
	Email        string
	Password     string
	PasswordHash string
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrInvalidUsername
	}
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	return validatePassword(u.Password)
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(strings.TrimSpace(password)) < minPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}
