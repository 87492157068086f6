// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transport"
)

const defaultContentType = "text/plain;charset=UTF-8"

// Send sends the request. It is SendContext with a background context.
func (x *XMLHttpRequest) Send(body interface{}) error {
	return x.SendContext(context.Background(), body)
}

// SendContext sends the request with an optional body, which may be
// nil, a string, a []byte, an io.Reader or an io.ReadCloser. The body
// is ignored for GET and HEAD.
//
// An asynchronous request returns as soon as it has been handed to the
// transport, and its progress is reported by tasks run on the Loop. A
// synchronous request blocks until the helper process exits.
//
// Cancelling ctx abandons the operation in flight, which then fails
// like any other transport or helper failure.
//
// An error wrapping ErrInvalidState is returned unless the request is
// OPENED and not yet sent. ErrProtocolNotSupported and
// ErrUnsupportedMethod are returned for URLs the request cannot serve.
// Failures after the request has been started are never returned; they
// are reported by the error event.
func (x *XMLHttpRequest) SendContext(ctx context.Context, body interface{}) error {
	if x.readyState != Opened {
		return fmt.Errorf("%w: connection must be opened before send is called", ErrInvalidState)
	}
	if x.sendFlag {
		return fmt.Errorf("%w: send has already been called", ErrInvalidState)
	}

	d := x.desc
	switch d.URL.Scheme {
	case "file":
		return x.sendFile(d)
	case "http", "https":
	default:
		return fmt.Errorf("%w: %q", ErrProtocolNotSupported, d.URL.Scheme)
	}

	data, err := request.BodyBytes(body)
	if err != nil {
		return err
	}

	o, err := x.prepare(d, data)
	if err != nil {
		return err
	}

	x.errorFlag = false

	if !d.Async {
		x.sendSync(ctx, o, d.Body)
		return nil
	}

	x.sendFlag = true
	x.DispatchEvent(EventReadyStateChange.Name())
	if !x.sendFlag {
		// A readystatechange handler aborted the request.
		return nil
	}
	x.ctx = ctx
	x.start(o, d.Body)
	x.DispatchEvent(EventLoadStart.Name())
	return nil
}

// prepare adds the automatic request headers and builds the transport
// options for d.
func (x *XMLHttpRequest) prepare(d *request.Descriptor, data []byte) (*transport.Options, error) {
	o, err := transport.ForURL(d.URL, d.Method, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	host, err := o.HostHeader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	x.headers["host"] = host
	if auth := d.Authorization(); auth != "" {
		x.headers["authorization"] = auth
	}

	switch {
	case d.Bodyless():
		data = nil
	case len(data) > 0:
		x.headers["content-length"] = strconv.Itoa(len(data))
		if _, ok := x.headers["content-type"]; !ok {
			x.headers["content-type"] = defaultContentType
		}
	case d.Method == "POST":
		x.headers["content-length"] = "0"
		data = nil
	default:
		data = nil
	}

	d.Header = copyHeaders(x.headers)
	d.Body = data
	o.Headers = d.Header
	if o.Secure {
		o.TLS = x.tls
	}
	return o, nil
}
