// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"strings"

	"github.com/gogama/xhr/syncbridge"
	"github.com/gogama/xhr/transport"
	"github.com/rs/zerolog"
)

// An Option configures an XMLHttpRequest created by New.
type Option func(*XMLHttpRequest)

// WithLoop makes the request run its deferred tasks on l. Use it to
// let several requests share one loop.
func WithLoop(l *Loop) Option {
	if l == nil {
		panic("xhr: nil loop")
	}

	return func(x *XMLHttpRequest) {
		x.loop = l
	}
}

// WithLogger sets the logger. Each request adds its own id to the
// logger's context.
func WithLogger(logger zerolog.Logger) Option {
	return func(x *XMLHttpRequest) {
		x.logger = logger
	}
}

// WithTransport sets the Transport used by asynchronous requests. The
// default is transport.DefaultTransport.
func WithTransport(t transport.Transport) Option {
	return func(x *XMLHttpRequest) {
		x.transport = t
	}
}

// WithFilesystem sets the Filesystem used for file URLs. The default
// is OSFilesystem.
func WithFilesystem(fs Filesystem) Option {
	return func(x *XMLHttpRequest) {
		x.fs = fs
	}
}

// WithSpawner sets the Spawner used to run the helper process of
// synchronous requests. The default runs syncbridge.DefaultHelper.
func WithSpawner(s syncbridge.Spawner) Option {
	return func(x *XMLHttpRequest) {
		x.spawner = s
	}
}

// WithTLS sets the TLS options applied to https requests.
func WithTLS(tls *transport.TLSOptions) Option {
	return func(x *XMLHttpRequest) {
		x.tls = tls
	}
}

// WithDefaultHeaders replaces the request headers every request starts
// with, and returns to after Abort. Header names are matched
// case-insensitively.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(x *XMLHttpRequest) {
		x.defaultHeaders = make(map[string]string, len(headers))
		for name, value := range headers {
			x.defaultHeaders[strings.ToLower(name)] = value
		}
	}
}

// WithDisableHeaderCheck sets the initial value of the header check
// switch. See SetDisableHeaderCheck.
func WithDisableHeaderCheck(disable bool) Option {
	return func(x *XMLHttpRequest) {
		x.disableHeaderCheck = disable
	}
}

// An OpenOption supplies one of the optional arguments to Open.
type OpenOption func(*openArgs)

type openArgs struct {
	async    bool
	user     string
	password string
}

// Async sets whether the request is asynchronous. Requests are
// asynchronous unless Async(false) is given.
func Async(async bool) OpenOption {
	return func(a *openArgs) {
		a.async = async
	}
}

// BasicAuth supplies credentials sent in an Authorization header. An
// empty user means no credentials.
func BasicAuth(user, password string) OpenOption {
	return func(a *openArgs) {
		a.user = user
		a.password = password
	}
}
