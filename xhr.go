// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gogama/xhr/guard"
	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/syncbridge"
	"github.com/gogama/xhr/transport"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultHeaders are the request headers a request starts with, and
// returns to after Abort, unless New is given WithDefaultHeaders.
var DefaultHeaders = map[string]string{
	"user-agent": "gogama-xhr",
	"accept":     "*/*",
}

// An XMLHttpRequest issues one HTTP request at a time and reports its
// progress through ready state changes and events, in the manner of the
// browser object of the same name.
//
// An XMLHttpRequest is not safe for concurrent use. Call its methods
// from the goroutine that runs its Loop, or post them to the Loop.
type XMLHttpRequest struct {
	id     uuid.UUID
	logger zerolog.Logger
	loop   *Loop

	transport          transport.Transport
	fs                 Filesystem
	spawner            syncbridge.Spawner
	bridge             *syncbridge.Bridge
	tls                *transport.TLSOptions
	defaultHeaders     map[string]string
	disableHeaderCheck bool

	readyState  ReadyState
	desc        *request.Descriptor
	headers     map[string]string
	sendFlag    bool
	errorFlag   bool
	abortedFlag bool

	status          int
	statusText      string
	responseHeaders map[string]string
	responseText    string
	responseBuffer  []byte
	chunks          [][]byte
	err             error

	slots     [numEvents]HandlerFunc
	listeners map[string][]*Listener

	// gen identifies the current operation. Tasks posted by an older
	// operation are discarded.
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a new XMLHttpRequest in the UNSENT state.
func New(opts ...Option) *XMLHttpRequest {
	x := &XMLHttpRequest{
		id:             uuid.New(),
		logger:         log.Logger,
		transport:      transport.DefaultTransport,
		fs:             OSFilesystem{},
		defaultHeaders: DefaultHeaders,
	}
	for _, opt := range opts {
		opt(x)
	}
	if x.loop == nil {
		x.loop = NewLoop()
	}
	x.logger = x.logger.With().Str("xhr", x.id.String()).Logger()
	x.bridge = &syncbridge.Bridge{Spawner: x.spawner, Logger: x.logger}
	x.headers = copyHeaders(x.defaultHeaders)
	return x
}

// ID returns the identifier the request adds to its log records.
func (x *XMLHttpRequest) ID() uuid.UUID {
	return x.id
}

// Loop returns the Loop the request runs its deferred tasks on.
func (x *XMLHttpRequest) Loop() *Loop {
	return x.loop
}

// Open initializes the request with a method and URL, aborting any
// request in progress first.
//
// Open returns an error wrapping ErrSecurity if method is TRACE, TRACK
// or CONNECT, and one wrapping ErrSyntax if method is not a valid token
// or url cannot be parsed. The abort has happened in either case.
//
// A URL without a scheme is relative to http://localhost.
func (x *XMLHttpRequest) Open(method, url string, opts ...OpenOption) error {
	x.Abort()

	x.errorFlag = false
	x.abortedFlag = false

	if guard.IsForbiddenMethod(method) {
		return fmt.Errorf("%w: request method %q not allowed", ErrSecurity, method)
	}

	args := openArgs{async: true}
	for _, opt := range opts {
		opt(&args)
	}

	d, err := request.NewDescriptor(method, url, args.async)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if args.user != "" {
		d.SetBasicAuth(args.user, args.password)
	}

	x.desc = d
	x.resetResponse()
	x.setState(Opened)
	return nil
}

// SetDisableHeaderCheck turns checking of request header names against
// the forbidden list off (true) or back on (false).
func (x *XMLHttpRequest) SetDisableHeaderCheck(disable bool) {
	x.disableHeaderCheck = disable
}

// SetRequestHeader sets a request header. The name is case-insensitive.
//
// An error wrapping ErrInvalidState is returned unless the request is
// OPENED and not yet sent. A forbidden header name, while header
// checking is enabled, and a syntactically invalid name or value are
// refused with a logged warning and a false return value.
func (x *XMLHttpRequest) SetRequestHeader(name, value string) (bool, error) {
	if x.readyState != Opened {
		return false, fmt.Errorf("%w: setRequestHeader can only be called when state is OPENED", ErrInvalidState)
	}
	if x.sendFlag {
		return false, fmt.Errorf("%w: send flag is set", ErrInvalidState)
	}

	lower := strings.ToLower(name)
	if !x.disableHeaderCheck && guard.IsForbiddenHeader(lower) {
		x.logger.Warn().Str("header", lower).Msg("refused to set unsafe header")
		return false, nil
	}
	if !guard.ValidHeader(name, value) {
		x.logger.Warn().Str("header", lower).Msg("refused to set invalid header")
		return false, nil
	}

	x.headers[lower] = value
	return true, nil
}

// GetRequestHeader returns the value of a request header, or the empty
// string if it is not set. The name is case-insensitive.
func (x *XMLHttpRequest) GetRequestHeader(name string) string {
	return x.headers[strings.ToLower(name)]
}

// GetResponseHeader returns the value of a response header, or the
// empty string if it was not received. The name is case-insensitive.
//
// Response headers are unavailable before HEADERS_RECEIVED and after an
// error.
func (x *XMLHttpRequest) GetResponseHeader(name string) string {
	if x.readyState <= Opened || x.errorFlag {
		return ""
	}
	return x.responseHeaders[strings.ToLower(name)]
}

// GetAllResponseHeaders returns all response headers except Set-Cookie
// and Set-Cookie2 as "name: value" lines sorted by name and separated
// by CRLF, with no trailing line break.
//
// The result is the empty string before HEADERS_RECEIVED and after an
// error.
func (x *XMLHttpRequest) GetAllResponseHeaders() string {
	if x.readyState < HeadersReceived || x.errorFlag {
		return ""
	}

	names := make([]string, 0, len(x.responseHeaders))
	for name := range x.responseHeaders {
		if name != "set-cookie" && name != "set-cookie2" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(x.responseHeaders[name])
	}
	return b.String()
}

// Abort cancels any operation in progress. If a request had been sent
// and had not completed, the request moves to DONE, firing
// readystatechange, abort and loadend. Finally the state is reset to
// UNSENT without firing anything. Because events fired in the DONE
// state are deferred, their handlers observe UNSENT.
//
// Abort may be called in any state.
func (x *XMLHttpRequest) Abort() {
	x.gen++
	if x.cancel != nil {
		x.cancel()
		x.cancel = nil
	}

	x.headers = copyHeaders(x.defaultHeaders)
	x.responseText = ""
	x.chunks = nil

	x.errorFlag = true
	x.abortedFlag = true

	if x.readyState != Unsent &&
		(x.readyState != Opened || x.sendFlag) &&
		x.readyState != Done {
		x.sendFlag = false
		x.logger.Debug().Msg("aborting")
		x.setState(Done)
	}

	x.sendFlag = false
	x.readyState = Unsent
}

// ReadyState returns the current state.
func (x *XMLHttpRequest) ReadyState() ReadyState {
	return x.readyState
}

// Status returns the HTTP status of the response. It is 0 before a
// response arrives and after most errors, and 503 after a synchronous
// request's helper process failed.
func (x *XMLHttpRequest) Status() int {
	return x.status
}

// StatusText returns the reason phrase of the response, or the error
// message after an error.
func (x *XMLHttpRequest) StatusText() string {
	return x.statusText
}

// ResponseText returns the decoded response body, or the detailed
// error description after an error.
func (x *XMLHttpRequest) ResponseText() string {
	return x.responseText
}

// ResponseXML always returns the empty string. Responses are never
// parsed as XML.
func (x *XMLHttpRequest) ResponseXML() string {
	return ""
}

// ResponseBuffer returns the raw response body, before content
// decoding.
func (x *XMLHttpRequest) ResponseBuffer() []byte {
	return x.responseBuffer
}

// Err returns the error which caused the last error event, or nil.
func (x *XMLHttpRequest) Err() error {
	return x.err
}

func (x *XMLHttpRequest) resetResponse() {
	x.status = 0
	x.statusText = ""
	x.responseHeaders = nil
	x.responseText = ""
	x.responseBuffer = nil
	x.chunks = nil
	x.err = nil
}

func copyHeaders(h map[string]string) map[string]string {
	c := make(map[string]string, len(h))
	for name, value := range h {
		c[name] = value
	}
	return c
}
