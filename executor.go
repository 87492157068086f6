// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"fmt"
	"io"

	"github.com/gogama/xhr/decode"
	"github.com/gogama/xhr/redirect"
	"github.com/gogama/xhr/transient"
	"github.com/gogama/xhr/transport"
)

const chunkSize = 32 * 1024

// start runs one round trip on a new goroutine. The goroutine reports
// back only by posting tasks to the loop, each bound to the current
// operation.
func (x *XMLHttpRequest) start(o *transport.Options, data []byte) {
	parent := x.ctx
	if parent == nil {
		parent = context.Background()
	}
	if x.cancel != nil {
		x.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	x.cancel = cancel

	x.loop.acquire()
	go x.roundTrip(ctx, x.gen, o, data)
}

// bind returns a task which runs fn only if the operation gen is still
// current when the task runs.
func (x *XMLHttpRequest) bind(gen uint64, fn func()) func() {
	return func() {
		if gen == x.gen {
			fn()
		}
	}
}

func (x *XMLHttpRequest) roundTrip(ctx context.Context, gen uint64, o *transport.Options, data []byte) {
	resp, err := x.transport.RoundTrip(ctx, o, data)
	if err != nil {
		terr := &TransportError{Op: "send", URL: o.URL(), Err: err}
		x.loop.release(x.bind(gen, func() { x.handleError(terr, 0) }))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if redirect.Handled(resp.StatusCode) {
		x.loop.release(x.bind(gen, func() { x.redirect(o, data, resp) }))
		return
	}

	x.loop.Post(x.bind(gen, func() { x.receive(resp) }))

	buf := make([]byte, chunkSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			x.loop.Post(x.bind(gen, func() { x.receiveChunk(chunk) }))
		}
		if err == io.EOF {
			x.loop.release(x.bind(gen, x.end))
			return
		}
		if err != nil {
			terr := &TransportError{Op: "read", URL: o.URL(), Err: err}
			x.loop.release(x.bind(gen, func() { x.handleError(terr, 0) }))
			return
		}
	}
}

// redirect re-issues the request to the target of a redirect response
// without any state change.
func (x *XMLHttpRequest) redirect(o *transport.Options, data []byte, resp *transport.Response) {
	hop, err := redirect.Next(resp.StatusCode, o.Method, resp.Header.Get("Location"), x.desc.URL)
	if err != nil {
		x.handleError(&TransportError{Op: "redirect", URL: o.URL(), Err: err}, 0)
		return
	}

	x.logger.Debug().
		Int("status", resp.StatusCode).
		Str("method", hop.Method).
		Stringer("location", hop.URL).
		Msg("following redirect")

	var host string
	next, err := transport.ForURL(hop.URL, hop.Method, nil)
	if err == nil {
		host, err = next.HostHeader()
	}
	if err != nil {
		x.handleError(&TransportError{Op: "redirect", URL: hop.URL.String(), Err: err}, 0)
		return
	}

	x.desc.URL = hop.URL
	x.headers["host"] = host
	if hop.DropBody {
		data = nil
		delete(x.headers, "content-length")
		delete(x.headers, "content-type")
	}
	next.Headers = copyHeaders(x.headers)
	if next.Secure {
		next.TLS = x.tls
	}
	x.start(next, data)
}

func (x *XMLHttpRequest) receive(resp *transport.Response) {
	x.status = resp.StatusCode
	x.statusText = resp.StatusText
	x.responseHeaders = transport.LowerHeader(resp.Header)
	x.setState(HeadersReceived)
}

func (x *XMLHttpRequest) receiveChunk(chunk []byte) {
	x.chunks = append(x.chunks, chunk)
	if x.sendFlag {
		x.setState(Loading)
	}
}

func (x *XMLHttpRequest) end() {
	if !x.sendFlag {
		return
	}

	res, err := decode.Decode(x.chunks, x.responseHeaders["content-encoding"])
	x.chunks = nil
	x.responseBuffer = res.Raw
	if err != nil {
		x.handleError(err, 0)
		return
	}
	x.responseText = res.Text

	// Clear the flag first so a handler chaining a new request from
	// within the DONE transition sees a request that is no longer
	// being sent.
	x.sendFlag = false
	x.setState(Done)
}

// handleError records a failure and moves the request to DONE, firing
// the error event.
func (x *XMLHttpRequest) handleError(err error, status int) {
	x.status = status
	x.statusText = err.Error()
	x.responseText = fmt.Sprintf("%+v", err)
	x.err = err
	x.errorFlag = true
	x.sendFlag = false

	x.logger.Warn().
		Err(err).
		Int("status", status).
		Stringer("transient", transient.Categorize(err)).
		Msg("request failed")
	x.setState(Done)
}
