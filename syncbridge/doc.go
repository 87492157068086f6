// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package syncbridge runs a synchronous XMLHttpRequest in an isolated
helper process, so the caller blocks on a process exit rather than on
network I/O.

The caller side is Bridge. It encodes the request as three positional
arguments,

	[tlsFlag, jsonTransportOptions, bodyOrNull]

where tlsFlag is "true" or "false", jsonTransportOptions is the JSON
form of a transport.Options, and bodyOrNull is the request body or the
literal string "null" when there is none. The arguments are handed to a
Spawner, which starts the helper and waits for it to exit.

The helper side is Main. It performs exactly one request and response
cycle, following no redirects, and then either writes a Result as JSON
to its standard output and exits zero, or writes an error document

	{"message": "...", "code": "...", "stack": "..."}

to its standard error and exits non-zero. The Bridge turns a non-zero
exit into a *ProcessError.

The helper's standard streams belong to this contract, so Main logs only
through the zerolog.Logger carried by its context. The xhrsync command
attaches a file logger when the XHR_SYNC_LOG_FILE environment variable
is set.
*/
package syncbridge
