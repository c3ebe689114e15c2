package models

// Account is the root entity: a credential record plus role and active flag.
// PasswordHash is a one-way bcrypt hash; the plaintext is never stored.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Active       bool
}
