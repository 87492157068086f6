// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package guard holds the fixed denylists an XMLHttpRequest consults
before it lets a caller choose a request method or set a request header.

The lists are package-level and never modified, so they may be shared
by any number of requests running on any number of goroutines.

Header checks are case-insensitive:

	guard.IsForbiddenHeader("Content-Length") // true

Method checks are case-sensitive exact matches, mirroring the browser
behavior where only the canonical upper-case spellings are rejected:

	guard.IsForbiddenMethod("TRACE") // true
	guard.IsForbiddenMethod("trace") // false
*/
package guard
