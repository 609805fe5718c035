package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyRegistered  = errors.New("credentials already registered for this email and role")
	ErrCodeMismatch       = errors.New("passcode does not match")
	ErrCodeExpired        = errors.New("passcode expired or never sent")
)

// Credentials ties a login identity to a marketplace user. The password is
// stored only as a bcrypt hash.
type Credentials struct {
	Email   string
	Role    string
	UserUid string
}
