package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidCredential is returned for a wrong password and for an unknown
// account alike, matching what the hosted provider reports.
var ErrInvalidCredential = errors.New("invalid email or password")

type account struct {
	uid      string
	password string
}

// Credentials is an in-memory stand-in for the hosted auth provider.
type Credentials struct {
	mu       sync.Mutex
	accounts map[string]account // keyed by email
}

// NewCredentials returns an empty credential store.
func NewCredentials() *Credentials {
	return &Credentials{accounts: make(map[string]account)}
}

func (c *Credentials) CreateAccount(_ context.Context, email, password string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.accounts[email]; ok {
		return "", errors.New("account already exists")
	}

	uid := uuid.NewString()
	c.accounts[email] = account{uid: uid, password: password}
	return uid, nil
}

func (c *Credentials) VerifyPassword(_ context.Context, email, password string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	acc, ok := c.accounts[email]
	if !ok || acc.password != password {
		return "", ErrInvalidCredential
	}
	return acc.uid, nil
}

func (c *Credentials) DeleteAccount(_ context.Context, uid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for email, acc := range c.accounts {
		if acc.uid == uid {
			delete(c.accounts, email)
			return nil
		}
	}
	return errors.New("account not found")
}
