// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package xhr provides a browser-style XMLHttpRequest for Go programs.

An XMLHttpRequest moves through the ready states UNSENT, OPENED,
HEADERS_RECEIVED, LOADING and DONE, and reports its progress by firing
the events readystatechange, loadstart, load, abort, error and loadend.

	x := xhr.New()
	x.OnLoad(func(evt string, x *xhr.XMLHttpRequest) {
		fmt.Println(x.Status(), x.ResponseText())
	})
	if err := x.Open("GET", "https://www.example.com"); err != nil {
		...
	}
	if err := x.Send(nil); err != nil {
		...
	}
	err := x.Loop().Run(ctx)

Event handlers never run on the caller's goroutine while an operation
is in progress. Network I/O happens on background goroutines, and its
results are delivered as tasks posted to the request's Loop. Every
handler runs on the goroutine that runs the Loop, so handlers never run
concurrently with each other or with the loop's other tasks. Several
requests may share one loop:

	loop := xhr.NewLoop()
	a := xhr.New(xhr.WithLoop(loop))
	b := xhr.New(xhr.WithLoop(loop))
	...
	err := loop.Run(ctx)

Run returns once no tasks are queued and no operation is pending.

Synchronous requests, opened with Async(false), block in Send until the
response is complete. Except for file URLs, which are read inline, a
synchronous request is carried out by a helper process (see package
syncbridge) so that the calling goroutine's loop is not re-entered. The
DONE notifications of a synchronous request are still queued on the
Loop and run the next time it runs.

Request headers are validated as a browser would. Forbidden headers
such as Host and Cookie are refused with a warning unless the
header check is disabled. Response bodies are decoded according to
their Content-Encoding (gzip, deflate, br and compress).

Errors that prevent an operation from starting, such as calling Send
before Open, are returned directly and wrap one of the sentinel errors
ErrInvalidState, ErrSecurity, ErrSyntax, ErrProtocolNotSupported and
ErrUnsupportedMethod. Failures after the request has started are
reported through the error event and the Err method.
*/
package xhr
