// Package service holds the business rules between the HTTP handlers and
// the storage backends.
package service

import "errors"

var (
	// ErrAccountNotFound means no profile matched the identifier and role.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredentials covers wrong passwords without revealing
	// whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountPending and ErrAccountRejected gate login before the
	// password is even checked.
	ErrAccountPending  = errors.New("account pending approval")
	ErrAccountRejected = errors.New("account rejected")

	// ErrCodeAlreadyIssued means the book code is held by another active
	// ledger entry.
	ErrCodeAlreadyIssued = errors.New("book code already issued and not yet returned")

	// ErrAlreadyReturned means the ledger entry is not in the borrowed
	// state; a second return is rejected, not absorbed.
	ErrAlreadyReturned = errors.New("borrow already returned")

	// ErrLibrarianExists means bootstrap found an existing librarian
	// profile; provisioning is a safe no-op then.
	ErrLibrarianExists = errors.New("librarian account already exists")
)
