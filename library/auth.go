package library

import "golang.org/x/crypto/bcrypt"

// Staff roles. Admins get full access; librarians cannot add or edit books.
const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
)

// Authenticator verifies staff credentials and yields the role the rest of
// the system gates on. It is injected so deployments can swap the backing
// store without touching the ledger.
type Authenticator interface {
	Authenticate(username, password string) (role string, err error)
}

var _ Authenticator = (*StaticAuthenticator)(nil)

// StaticAuthenticator keeps a fixed in-memory credential table with bcrypt
// password hashes. It is not safe for concurrent Register calls; register
// everything up front.
type StaticAuthenticator struct {
	users map[string]credential
}

type credential struct {
	hash []byte
	role string
}

// NewStaticAuthenticator returns an empty credential table.
func NewStaticAuthenticator() *StaticAuthenticator {
	return &StaticAuthenticator{users: make(map[string]credential)}
}

// Register hashes the password and stores the credential, replacing any
// existing entry for the username.
func (a *StaticAuthenticator) Register(username, password, role string) error {
	if role != RoleAdmin && role != RoleLibrarian {
		return validationErr("role", "must be admin or librarian")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.users[username] = credential{hash: hash, role: role}
	return nil
}

// Authenticate checks the username and password and returns the role.
func (a *StaticAuthenticator) Authenticate(username, password string) (string, error) {
	c, ok := a.users[username]
	if !ok {
		return "", ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword(c.hash, []byte(password)) != nil {
		return "", ErrBadCredentials
	}
	return c.role, nil
}

// DefaultAuthenticator returns the stock credential table: one admin and
// one librarian account.
func DefaultAuthenticator() (*StaticAuthenticator, error) {
	a := NewStaticAuthenticator()
	if err := a.Register("admin", "admin123", RoleAdmin); err != nil {
		return nil, err
	}
	if err := a.Register("librarian", "lib123", RoleLibrarian); err != nil {
		return nil, err
	}
	return a, nil
}

// canManageCatalog reports whether the role may add or edit books.
func canManageCatalog(role string) bool {
	return role == RoleAdmin
}
