// Package apperr defines the closed set of failure kinds the service can
// report. Every pipeline stage and handler raises one of these; the HTTP
// status mapping lives in a single place (internal/api/respond).
package apperr

import "fmt"

// Kind discriminates the failure taxonomy.
type Kind int

const (
	// KindValidation covers malformed or missing required fields.
	KindValidation Kind = iota
	// KindMalformedID covers identifiers that are not syntactically valid.
	KindMalformedID
	// KindDuplicate covers uniqueness constraint violations.
	KindDuplicate
	// KindAuthentication covers missing, invalid, or expired credentials,
	// including credentials for users that no longer exist.
	KindAuthentication
	// KindAuthorization covers valid credentials with insufficient rights
	// over the specific resource.
	KindAuthorization
	// KindNotFound covers syntactically valid identifiers with no match.
	KindNotFound
	// KindUnknownRoute covers requests matching no registered route.
	KindUnknownRoute
)

// Error is a failure with a kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // optional cause, never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a schema validation failure.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// MalformedID reports a syntactically invalid identifier.
func MalformedID(msg string) *Error {
	return &Error{Kind: KindMalformedID, Message: msg}
}

// Duplicate reports a uniqueness constraint violation.
func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

// Authentication reports a missing, invalid, or expired credential.
func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

// Authorization reports an ownership violation.
func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

// NotFound reports a resource that does not exist.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// UnknownRoute reports a request that matched no route.
func UnknownRoute() *Error {
	return &Error{Kind: KindUnknownRoute, Message: "unknown endpoint"}
}
