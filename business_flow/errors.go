// Package businessflow contains the core business logic and use cases for the certificate catalog
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Certificate errors
	ErrCertificateNotFound        = errors.New("certificate not found")
	ErrCertificateNameRequired    = errors.New("certificate name is required")
	ErrCertificatePriceInvalid    = errors.New("certificate price must be positive")
	ErrCertificateDurationInvalid = errors.New("certificate duration must be positive")

	// Tag errors
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameRequired = errors.New("tag name is required")
	ErrTagNameExists   = errors.New("tag name already exists")

	// User and order errors
	ErrUserNotFound      = errors.New("user not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Filter errors
	ErrInvalidPage      = errors.New("page must be at least 1")
	ErrInvalidPageSize  = errors.New("page size must be between 1 and 100")
	ErrInvalidSortField = errors.New("unknown sort field")

	// Storage errors
	ErrStorageFailure = errors.New("storage operation failed")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// newStorageError classifies a repository failure, keeping the causal message.
func newStorageError(message string, cause error) *BusinessError {
	return NewBusinessError("STORAGE_FAILURE", message, fmt.Errorf("%w: %v", ErrStorageFailure, cause))
}

func IsCertificateNotFound(err error) bool {
	return errors.Is(err, ErrCertificateNotFound)
}

func IsCertificateNameRequired(err error) bool {
	return errors.Is(err, ErrCertificateNameRequired)
}

func IsCertificatePriceInvalid(err error) bool {
	return errors.Is(err, ErrCertificatePriceInvalid)
}

func IsCertificateDurationInvalid(err error) bool {
	return errors.Is(err, ErrCertificateDurationInvalid)
}

func IsTagNotFound(err error) bool {
	return errors.Is(err, ErrTagNotFound)
}

func IsTagNameRequired(err error) bool {
	return errors.Is(err, ErrTagNameRequired)
}

func IsTagNameExists(err error) bool {
	return errors.Is(err, ErrTagNameExists)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsOrderNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsInvalidSortField(err error) bool {
	return errors.Is(err, ErrInvalidSortField)
}

func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}

// IsValidationError groups the error kinds the boundary maps to 400.
func IsValidationError(err error) bool {
	return IsCertificateNameRequired(err) ||
		IsCertificatePriceInvalid(err) ||
		IsCertificateDurationInvalid(err) ||
		IsTagNameRequired(err) ||
		IsInvalidPage(err) ||
		IsInvalidPageSize(err) ||
		IsInvalidSortField(err)
}

// IsNotFound groups the error kinds the boundary maps to 404.
func IsNotFound(err error) bool {
	return IsCertificateNotFound(err) || IsTagNotFound(err) ||
		IsUserNotFound(err) || IsOrderNotFound(err)
}
