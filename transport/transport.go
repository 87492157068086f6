// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// A Transport sends a single HTTP request and returns the response as
// soon as its status line and headers are available. The response body
// is streamed through Response.Body, which the caller must close.
//
// Implementations must be safe for concurrent use by multiple
// goroutines, and must abandon the request when ctx is cancelled.
type Transport interface {
	RoundTrip(ctx context.Context, o *Options, body []byte) (*Response, error)
}

// A Response is the result of a Transport round trip.
type Response struct {
	// StatusCode is the numeric HTTP status, e.g. 200.
	StatusCode int

	// StatusText is the reason phrase, e.g. "OK".
	StatusText string

	// Header holds the response headers.
	Header http.Header

	// Body streams the response body. It is never nil.
	Body io.ReadCloser
}

// HTTPTransport is a Transport backed by a net/http Transport. Its zero
// value is ready to use.
//
// Automatic decompression is always disabled so callers see the body
// and Content-Encoding header exactly as the server sent them.
type HTTPTransport struct {
	// Base is cloned to make the underlying net/http Transports. If
	// nil, http.DefaultTransport is used.
	Base *http.Transport

	mu     sync.Mutex
	plain  *http.Transport
	secure map[*TLSOptions]*http.Transport
}

// DefaultTransport is the Transport used when none is configured.
var DefaultTransport Transport = &HTTPTransport{}

// RoundTrip implements Transport.
func (t *HTTPTransport) RoundTrip(ctx context.Context, o *Options, body []byte) (*Response, error) {
	rt, err := t.transport(o)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	if len(body) > 0 {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, o.Method, o.URL(), r)
	if err != nil {
		return nil, err
	}
	for name, value := range o.Headers {
		switch name {
		case "host":
			req.Host = value
		case "content-length":
			// net/http derives Content-Length from the body.
		default:
			req.Header.Set(name, value)
		}
	}

	resp, err := rt.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

func (t *HTTPTransport) transport(o *Options) (*http.Transport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !o.Secure || o.TLS == nil {
		if t.plain == nil {
			t.plain = t.clone()
		}
		return t.plain, nil
	}

	if rt, ok := t.secure[o.TLS]; ok {
		return rt, nil
	}
	cfg, err := o.TLS.Config()
	if err != nil {
		return nil, err
	}
	rt := t.clone()
	rt.TLSClientConfig = cfg
	if t.secure == nil {
		t.secure = make(map[*TLSOptions]*http.Transport)
	}
	t.secure[o.TLS] = rt
	return rt, nil
}

func (t *HTTPTransport) clone() *http.Transport {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport.(*http.Transport)
	}
	rt := base.Clone()
	rt.DisableCompression = true
	return rt
}

func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimPrefix(resp.Status, code+" "); text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// LowerHeader flattens h into a map keyed by lower-case header name.
// Multiple values of one header are joined with ", ".
func LowerHeader(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for name, values := range h {
		m[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return m
}
