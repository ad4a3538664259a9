package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind groups error codes by how the caller should react.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindForbidden  ErrorKind = "forbidden"
	KindStore      ErrorKind = "store"
	KindInternal   ErrorKind = "internal"
)

// Validation codes.
const (
	CodeMissingField      = "MISSING_FIELD"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeInvalidPhone      = "INVALID_PHONE"
	CodePastDate          = "PAST_DATE"
	CodeInvalidDate       = "INVALID_DATE"
	CodeInvalidSlot       = "INVALID_SLOT"
	CodeInvalidPassword   = "INVALID_PASSWORD"
	CodeIllegalTransition = "ILLEGAL_TRANSITION"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInvalidPayload    = "INVALID_PAYLOAD"
	CodeInvalidPrice      = "INVALID_PRICE_RANGE"
)

// Other codes.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeSlotTaken          = "SLOT_TAKEN"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeStoreError         = "STORE_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Kind       ErrorKind
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind ErrorKind, code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(code, message string, details map[string]any) error {
	return NewDomainError(KindValidation, code, message, http.StatusBadRequest, details)
}

func NewInvalidCredentials() error {
	return NewDomainError(KindAuth, CodeInvalidCredentials, "invalid email or password", http.StatusUnauthorized, nil)
}

func NewEmailExists() error {
	return NewDomainError(KindAuth, CodeEmailExists, "an account with this email already exists", http.StatusConflict, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Kind:       KindNotFound,
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(code, message string, details map[string]any) error {
	return NewDomainError(KindConflict, code, message, http.StatusConflict, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError(KindAuth, CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(KindForbidden, CodeForbidden, message, http.StatusForbidden, nil)
}

// NewStoreError hides the backend failure behind a generic message.
func NewStoreError(err error) error {
	return &DomainError{
		Kind:       KindStore,
		Code:       CodeStoreError,
		Message:    "storage operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:       KindInternal,
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

// HasCode reports whether err is a DomainError carrying code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}
