package domain

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map these to HTTP status codes; specific errors
// below wrap one of them.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrBusinessRule   = errors.New("business rule violation")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrDeactivated    = errors.New("resource is deactivated")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)

// Not-found errors
var (
	ErrUsuarioNotFound       = fmt.Errorf("%w: usuario", ErrNotFound)
	ErrLectorNotFound        = fmt.Errorf("%w: lector", ErrNotFound)
	ErrAutorNotFound         = fmt.Errorf("%w: autor", ErrNotFound)
	ErrCategoriaNotFound     = fmt.Errorf("%w: categoria", ErrNotFound)
	ErrMaterialNotFound      = fmt.Errorf("%w: material bibliografico", ErrNotFound)
	ErrFisicoNotFound        = fmt.Errorf("%w: material fisico", ErrNotFound)
	ErrVirtualNotFound       = fmt.Errorf("%w: material virtual", ErrNotFound)
	ErrAutorMaterialNotFound = fmt.Errorf("%w: autor material", ErrNotFound)
	ErrPrestamoNotFound      = fmt.Errorf("%w: prestamo", ErrNotFound)
	ErrDetalleNotFound       = fmt.Errorf("%w: detalle de prestamo", ErrNotFound)
)

// Loan workflow errors
var (
	ErrReaderDelinquent      = fmt.Errorf("%w: reader has overdue unreturned loans", ErrBusinessRule)
	ErrCopyNotAvailable      = fmt.Errorf("%w: physical copy is not available", ErrBusinessRule)
	ErrDetailAlreadyReturned = fmt.Errorf("%w: loan detail already returned", ErrBusinessRule)
	ErrDetailTargetMismatch  = fmt.Errorf("%w: detail kind does not match its material reference", ErrInvalidInput)
	ErrCopyWrongMaterial     = fmt.Errorf("%w: copy does not belong to the bibliographic material", ErrBusinessRule)
	ErrEmptyLoan             = fmt.Errorf("%w: a loan needs at least one detail", ErrInvalidInput)
	ErrInvalidFinalState     = fmt.Errorf("%w: final physical state must be disponible, dañado or perdido", ErrInvalidInput)
)

// Catalog errors
var (
	ErrCopyOnLoan           = fmt.Errorf("%w: physical copy is on loan", ErrBusinessRule)
	ErrCopyStateReserved    = fmt.Errorf("%w: state prestado is only set by a loan", ErrInvalidInput)
	ErrAnonymousMaterial    = fmt.Errorf("%w: anonymous material cannot have authors", ErrBusinessRule)
	ErrVirtualAlreadyExists = fmt.Errorf("%w: material already has a virtual record", ErrDuplicateEntry)
)

// Account errors
var (
	ErrCannotDeactivateSelf = fmt.Errorf("%w: cannot deactivate your own account", ErrBusinessRule)
	ErrCannotChangeOwnRole  = fmt.Errorf("%w: cannot change your own role", ErrBusinessRule)
	ErrOldPasswordWrong     = fmt.Errorf("%w: old password is incorrect", ErrInvalidInput)
	ErrWeakPassword         = fmt.Errorf("%w: password needs 8 characters with letters and digits", ErrInvalidInput)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrTokenInvalid         = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrTokenExpired         = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrAccountInactive      = fmt.Errorf("%w: account is deactivated", ErrForbidden)
)

// Duplicate returns a duplicate-entry error naming the offending field
func Duplicate(entity, field string) error {
	return fmt.Errorf("%w: %s with this %s already exists", ErrDuplicateEntry, entity, field)
}

// Invalid returns an invalid-input error with a message
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
