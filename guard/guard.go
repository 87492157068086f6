// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package guard

import (
	"strings"

	"golang.org/x/net/http/httpguts"
)

// ForbiddenHeaders lists the request header names, in lower case, which
// a caller may not set while header checking is enabled.
//
// User-Agent is banned by the browser specifications but is allowed
// here, since a program running outside a browser has no other way to
// identify itself.
var ForbiddenHeaders = []string{
	"accept-charset",
	"accept-encoding",
	"access-control-request-headers",
	"access-control-request-method",
	"connection",
	"content-length",
	"content-transfer-encoding",
	"cookie",
	"cookie2",
	"date",
	"expect",
	"host",
	"keep-alive",
	"origin",
	"referer",
	"te",
	"trailer",
	"transfer-encoding",
	"upgrade",
	"via",
}

// ForbiddenMethods lists the request methods which may never be used.
// There is no way to turn method checking off.
var ForbiddenMethods = []string{
	"TRACE",
	"TRACK",
	"CONNECT",
}

var (
	forbiddenHeaderSet = toSet(ForbiddenHeaders)
	forbiddenMethodSet = toSet(ForbiddenMethods)
)

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		set[s] = struct{}{}
	}
	return set
}

// IsForbiddenHeader reports whether name, compared case-insensitively,
// is on the forbidden request header list.
func IsForbiddenHeader(name string) bool {
	_, ok := forbiddenHeaderSet[strings.ToLower(name)]
	return ok
}

// IsForbiddenMethod reports whether method exactly matches an entry on
// the forbidden request method list.
func IsForbiddenMethod(method string) bool {
	_, ok := forbiddenMethodSet[method]
	return ok
}

// ValidHeader reports whether name is a syntactically valid HTTP header
// field name and value is a valid field value, as defined in RFC 7230.
func ValidHeader(name, value string) bool {
	return httpguts.ValidHeaderFieldName(name) && httpguts.ValidHeaderFieldValue(value)
}
