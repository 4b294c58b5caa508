package models

import "errors"

// Kind classifies a domain failure so the transport layer can pick a
// response code without matching on message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindInvalidInput
)

// Error is a typed domain failure. Entity names what the failure is
// about ("room", "user", "reservation") and Message is human-readable.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports that a referenced entity does not resolve.
func NotFound(entity, message string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: message}
}

// Conflict reports a duplicate unique key or an overlapping reservation.
func Conflict(entity, message string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Message: message}
}

// InvalidInput reports a business-rule rejection of otherwise
// well-formed input.
func InvalidInput(entity, message string) *Error {
	return &Error{Kind: KindInvalidInput, Entity: entity, Message: message}
}

// KindOf extracts the failure kind, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
