// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package decode turns the raw body bytes of an HTTP response into
response text, undoing whatever content codings the server applied.

	res, err := decode.Decode(chunks, resp.Header.Get("Content-Encoding"))
	...
	fmt.Println(res.Text)

Supported codings are gzip (and its alias x-gzip), deflate, compress
(and x-compress), and br. A missing or unrecognized coding is treated as
the identity coding. The decoded bytes are always interpreted as UTF-8
text, with ill-formed sequences replaced by U+FFFD.
*/
package decode
