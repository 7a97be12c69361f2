package domain

import "time"

// Identity is the stable, opaque identifier of a user record. It is the
// subject of every token we issue and never carries secrets.
type Identity string

func (id Identity) String() string { return string(id) }

// IsZero reports whether id is empty.
func (id Identity) IsZero() bool { return id == "" }

type User struct {
	ID           Identity
	Name         string
	Email        string
	PasswordHash string // argon2id PHC string, or bcrypt for legacy records
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials are what a client presents at login. They live for the
// duration of one request and are never stored.
type Credentials struct {
	Email    string `json:"email"    jsonschema:"required,minLength=1,maxLength=254"`
	Password string `json:"password" jsonschema:"required,minLength=1,maxLength=1024"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name     string `json:"name"     jsonschema:"required,minLength=2,maxLength=100"`
	Email    string `json:"email"    jsonschema:"required,format=email,maxLength=254"`
	Password string `json:"password" jsonschema:"required,minLength=6,maxLength=1024"`
}
