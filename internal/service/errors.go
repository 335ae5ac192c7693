package service

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a user touches a recipe they do not own
	// or may not read.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned for any login failure so the caller
	// cannot distinguish unknown emails from wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrUnsupportedLanguage is returned before any provider call when the
	// configured translator cannot produce the target language.
	ErrUnsupportedLanguage = errors.New("unsupported target language")
)

// ValidationError carries a user-facing message for rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}

// ProviderError marks a failure of an external provider (AI generation,
// translation, OCR) so handlers can answer with a gateway status instead of
// blaming the client.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func providerErr(op string, err error) error {
	return &ProviderError{Op: op, Err: err}
}
