// Package errs defines the error kinds the API boundary maps to status codes.
// Business-rule and authentication failures carry messages meant for display
// by the front-end, so the message text is part of the contract.
package errs

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindBusinessRule
	KindNotFound
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

// Authentication reports a credential lookup or verification failure.
func Authentication(msg string) error {
	return &Error{kind: KindAuthentication, msg: msg}
}

// BusinessRule reports a domain-rule violation.
func BusinessRule(msg string) error {
	return &Error{kind: KindBusinessRule, msg: msg}
}

// NotFound reports a lookup miss.
func NotFound(msg string) error {
	return &Error{kind: KindNotFound, msg: msg}
}

// KindOf returns the kind carried by err, or KindUnknown for plain errors
// (programmer errors such as precondition violations stay unknown and surface
// as a generic server failure).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}

	return KindUnknown
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
