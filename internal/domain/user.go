package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooShort    = errors.New("username must be at least 6 characters long")
	ErrUsernameTooLong     = errors.New("username must be at most 32 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrNameTooShort        = errors.New("name must be at least 2 characters long")
	ErrNameTooLong         = errors.New("name must be at most 32 characters long")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 128 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the application.
// It contains essential profile information and authentication details.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given profile fields and plaintext password.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, name, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Name:      name,
		Email:     email,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	switch {
	case u.Username == "":
		return ErrEmptyUsername
	case len(u.Username) < 6:
		return ErrUsernameTooShort
	case len(u.Username) > 32:
		return ErrUsernameTooLong
	}

	if u.Name != "" {
		if len(u.Name) < 2 {
			return ErrNameTooShort
		}
		if len(u.Name) > 32 {
			return ErrNameTooLong
		}
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// During user creation/update we need to validate the provided password.
	// Existing users loaded from the database carry only the hash.
	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 128 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// AuxiliaryFields returns the profile values a candidate password is compared
// against during similarity validation, keyed by field name. Insertion order
// of the returned pairs is fixed: username, name, email.
func (u *User) AuxiliaryFields() []AuxiliaryField {
	return []AuxiliaryField{
		{Name: "username", Value: u.Username},
		{Name: "name", Value: u.Name},
		{Name: "email", Value: u.Email},
	}
}

// AuxiliaryField is a named profile value used for password similarity checks.
type AuxiliaryField struct {
	Name  string
	Value string
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false
	}

	// Check for domain part after @
	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	// Check for dot in domain, but not immediately after @ and not at the end
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	if dotIndex == -1 || dotIndex == 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}
