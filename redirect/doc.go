// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package redirect decides how an XMLHttpRequest re-issues a request after
receiving a redirect response.

Only the status codes 302, 303 and 307 are followed. A 303 re-issues the
request as a GET without a body. A 302 or 307 keeps the original method
and body. Note that browsers also downgrade non-GET/HEAD requests to GET
on a 302; this package deliberately does not.

There is no limit on the number of hops, so a redirect loop never
terminates on its own. Callers needing bounded latency must abort the
request themselves.
*/
package redirect
