// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/base64"
	"fmt"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// A Descriptor describes the request an XMLHttpRequest was opened
// with.
type Descriptor struct {
	// Method is the request method exactly as passed to open. Method
	// names are case-sensitive and are not normalized.
	Method string

	// URL is the parsed request URL. A URL with no scheme is treated as
	// relative to http://localhost.
	URL *urlpkg.URL

	// Async is false for a synchronous request.
	Async bool

	// User and Password are the optional basic authentication
	// credentials given to open. HasCredentials distinguishes an empty
	// user name from no credentials at all.
	User           string
	Password       string
	HasCredentials bool

	// Header holds the outgoing request headers, keyed by lower-case
	// name. It is populated when the request is sent.
	Header map[string]string

	// Body is the request body attached at send time. It is nil for
	// bodyless requests.
	Body []byte
}

// NewDescriptor returns a new Descriptor given a method, URL and the
// async flag.
//
// An error is returned if method is not a valid HTTP token or if url
// cannot be parsed. The method is not otherwise validated here; the
// forbidden-method check belongs to the caller.
func NewDescriptor(method, url string, async bool) (*Descriptor, error) {
	if !validMethod(method) {
		return nil, fmt.Errorf("xhr/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" && u.Host == "" {
		u.Scheme = "http"
		u.Host = "localhost"
		if u.Path != "" && !strings.HasPrefix(u.Path, "/") {
			u.Path = "/" + u.Path
		}
	}
	return &Descriptor{
		Method: method,
		URL:    u,
		Async:  async,
	}, nil
}

// SetBasicAuth records basic authentication credentials on d.
func (d *Descriptor) SetBasicAuth(user, password string) {
	d.User = user
	d.Password = password
	d.HasCredentials = true
}

// Authorization returns the Authorization header value for the basic
// authentication credentials on d, or the empty string if there are
// none.
func (d *Descriptor) Authorization() string {
	if !d.HasCredentials {
		return ""
	}
	return "Basic " + basicAuth(d.User, d.Password)
}

// Bodyless reports whether the method never carries a request body.
func (d *Descriptor) Bodyless() bool {
	return d.Method == "GET" || d.Method == "HEAD"
}

// basicAuth is lifted verbatim from net/http/client.go.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

func validMethod(method string) bool {
	return len(method) > 0 && strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
