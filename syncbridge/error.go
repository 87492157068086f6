// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package syncbridge

import (
	"fmt"
	"io"
)

// A ProcessError reports that the sync helper failed: it could not be
// started, it exited non-zero, or its output could not be understood.
type ProcessError struct {
	// ExitCode is the helper's exit status, or -1 if it never ran to
	// completion.
	ExitCode int

	// Message, Code and Stack come from the helper's error document.
	Message string
	Code    string
	Stack   string

	// Err is the underlying cause when the failure happened on the
	// caller side, for example when the helper could not be started.
	Err error
}

func (e *ProcessError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "no diagnostic"
	}
	return fmt.Sprintf("xhr/syncbridge: helper exited with status %d: %s", e.ExitCode, msg)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Format implements fmt.Formatter. The %+v verb appends the helper's
// stack detail, when there is one, to the message.
func (e *ProcessError) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(f, e.Error())
		if f.Flag('+') && e.Stack != "" {
			_, _ = io.WriteString(f, "\n"+e.Stack)
		}
	case 's':
		_, _ = io.WriteString(f, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(f, "%q", e.Error())
	}
}
