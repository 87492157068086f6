// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport defines the collaborator an XMLHttpRequest uses to put
a single HTTP request on the wire, and provides an implementation built
on the net/http Transport.

A request is described by Options, a small JSON-encodable structure
holding host, port, path, method, headers and TLS settings. Because it
is JSON-encodable, the same description can be handed across a process
boundary to the synchronous request helper.

A Transport never follows redirects, never stores cookies, and never
decodes content codings: those concerns belong to its caller.
*/
package transport
