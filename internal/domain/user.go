package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Password length bounds in bytes. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 12
	MaxPasswordLength = 72
)

var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User is an account that owns birth profiles and readings.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	// Password is only set between registration and hashing.
	Password       string    `json:"-"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a validated User with a fresh ID. Password stays in
// plaintext until the user store hashes it on Create.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks identity and credentials. A user read back from the
// store has no plaintext password and must carry a hash instead.
func (u *User) Validate() error {
	switch {
	case u.ID == uuid.Nil:
		return ErrEmptyUserID
	case u.Email == "":
		return ErrEmptyEmail
	case !validEmail(u.Email):
		return ErrInvalidEmail
	}

	switch n := len(u.Password); {
	case n == 0 && u.HashedPassword == "":
		return ErrEmptyPassword
	case n == 0:
		return nil
	case n < MinPasswordLength:
		return ErrPasswordTooShort
	case n > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// validEmail accepts a bare address whose domain has at least one inner
// dot, e.g. lin@example.com.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false
	}
	_, domain, ok := strings.Cut(addr.Address, "@")
	if !ok {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
