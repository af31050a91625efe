package accounts

import (
	"errors"
	"net"
	"strings"
	"time"
)

// Domain errors surfaced to the HTTP layer.
var (
	ErrUserNotFound   = errors.New("accounts: user not found")
	ErrUsernameTaken  = errors.New("accounts: username already exists")
	ErrEmailTaken     = errors.New("accounts: email already registered")
	ErrBadCredentials = errors.New("accounts: invalid username or password")
	ErrInvalidInput   = errors.New("accounts: invalid input")
)

// User is an account row. PublicKey is opaque key material owned by the user
// and immutable after creation; the backend never interprets it. Endpoint is
// an optional (ip, port) hint for direct peer connections.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	PublicKey    string
	IsOnline     bool
	LastSeen     time.Time
	Endpoint     *Endpoint
	CreatedAt    time.Time
}

// Endpoint is the advertised address for peer-to-peer delivery.
type Endpoint struct {
	IP   string
	Port int
}

// Validate checks an endpoint hint before it is stored.
func (e Endpoint) Validate() error {
	if net.ParseIP(e.IP) == nil {
		return ErrInvalidInput
	}
	if e.Port <= 0 || e.Port > 65535 {
		return ErrInvalidInput
	}
	return nil
}

// NewUser validates registration input and shapes a user ready to persist.
// The password hash is computed by the caller; the domain never sees the
// plaintext.
func NewUser(username, email, passwordHash, publicKey string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if username == "" || len(username) > 64 {
		return nil, ErrInvalidInput
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	if passwordHash == "" {
		return nil, ErrInvalidInput
	}

	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		PublicKey:    publicKey,
	}, nil
}
