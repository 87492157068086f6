// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize.
//
// The category Not means a repeat of the same request is very unlikely
// to succeed. All other categories indicate some prospect of success on
// a later attempt.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a timeout. Categorize returns Timeout if the
	// error or any of its wrapped causes has a Timeout method that
	// reports true, or is context.DeadlineExceeded.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED). The service may still be starting up.
	ConnRefused
	// ConnReset indicates the remote host sent an RST on a previously
	// active TCP connection (syscall.ECONNRESET).
	ConnReset
	// Canceled indicates the operation was canceled through its
	// context before it completed.
	Canceled
)

var categoryNames = [...]string{
	Not:         "not",
	Timeout:     "timeout",
	ConnRefused: "conn-refused",
	ConnReset:   "conn-reset",
	Canceled:    "canceled",
}

// String returns the short name of the category, used as a log field
// value.
func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Categorize returns the transience category of the given error. A nil
// error, and an error that is not transient, both produce Not.
//
// Categorize looks at wrapped cause errors contained within err, not
// just err itself. It never consults a Temporary method.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
