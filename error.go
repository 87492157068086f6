// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"errors"
	"fmt"
)

// Errors returned synchronously by the XMLHttpRequest methods. Returned
// errors wrap one of these and should be tested with errors.Is.
var (
	// ErrSecurity is returned by Open for a forbidden request method.
	ErrSecurity = errors.New("xhr: SecurityError")
	// ErrInvalidState is returned when a method is called in a state
	// that does not permit it.
	ErrInvalidState = errors.New("xhr: InvalidStateError")
	// ErrProtocolNotSupported is returned by Send for a URL scheme
	// other than http, https or file.
	ErrProtocolNotSupported = errors.New("xhr: protocol not supported")
	// ErrUnsupportedMethod is returned by Send for a file URL opened
	// with a method other than GET.
	ErrUnsupportedMethod = errors.New("xhr: unsupported method")
	// ErrSyntax is returned for a method or URL that cannot be parsed.
	ErrSyntax = errors.New("xhr: SyntaxError")
)

// A TransportError reports a failure to send a request or to receive
// its response. TransportErrors are never returned. They reach the
// caller through the error event and the Err method.
type TransportError struct {
	// Op is the failed operation: "send", "read" or "redirect".
	Op string
	// URL is the request URL at the time of failure.
	URL string
	// Err is the underlying error.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("xhr: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
