// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redirect

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNoLocation is returned by Next when a redirect response carries no
// Location header.
var ErrNoLocation = errors.New("xhr/redirect: missing Location header")

// A Hop describes the request to issue in place of a redirected one.
type Hop struct {
	// Method is the request method for the next request.
	Method string

	// URL is the absolute target of the next request.
	URL *url.URL

	// DropBody is true if the next request must be sent without the
	// original request body (and without its Content-Length and
	// Content-Type headers).
	DropBody bool
}

// Handled reports whether status is a redirect status code that is
// followed automatically.
func Handled(status int) bool {
	switch status {
	case http.StatusFound, http.StatusSeeOther, http.StatusTemporaryRedirect:
		return true
	default:
		return false
	}
}

// Next computes the request to issue after a response with the given
// status and Location header value was received for a request sent
// with method to base.
//
// A relative location is resolved against base. An error is returned
// if status is not handled, if location is empty, or if it cannot be
// parsed.
func Next(status int, method, location string, base *url.URL) (*Hop, error) {
	if !Handled(status) {
		return nil, fmt.Errorf("xhr/redirect: status %d is not followed", status)
	}
	if location == "" {
		return nil, ErrNoLocation
	}
	target, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("xhr/redirect: bad Location %q: %w", location, err)
	}
	if base != nil {
		target = base.ResolveReference(target)
	}

	hop := &Hop{
		Method: method,
		URL:    target,
	}
	if status == http.StatusSeeOther {
		hop.Method = http.MethodGet
		hop.DropBody = true
	}
	return hop, nil
}
