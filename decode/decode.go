// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"golang.org/x/text/encoding/unicode"
)

// A Result holds the outcome of decoding a response body.
type Result struct {
	// Text is the response body after removing all content codings
	// and decoding the result as UTF-8.
	Text string

	// Raw is the body exactly as it was received, with all chunks
	// concatenated in order.
	Raw []byte
}

// Decode concatenates chunks and removes the content codings named in
// contentEncoding, a Content-Encoding header value, before converting
// the result to text.
//
// Codings listed in the header are removed in the reverse order of
// their appearance. Unknown codings and "identity" are passed through
// untouched. An error is returned only if a recognized coding fails to
// decode, in which case the returned Result still carries Raw.
func Decode(chunks [][]byte, contentEncoding string) (Result, error) {
	raw := bytes.Join(chunks, nil)
	res := Result{Raw: raw}

	b := raw
	codings := strings.Split(contentEncoding, ",")
	for i := len(codings) - 1; i >= 0; i-- {
		coding := strings.ToLower(strings.TrimSpace(codings[i]))
		var err error
		b, err = undo(coding, b)
		if err != nil {
			return res, fmt.Errorf("xhr/decode: %s: %w", coding, err)
		}
	}

	res.Text = Text(b)
	return res, nil
}

// Text decodes b as UTF-8, replacing ill-formed byte sequences with the
// Unicode replacement character.
func Text(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}

func undo(coding string, b []byte) ([]byte, error) {
	switch coding {
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case "deflate":
		return inflate(b)
	case "compress", "x-compress":
		return uncompress(b)
	case "br":
		return io.ReadAll(brotli.NewReader(bytes.NewReader(b)))
	default:
		return b, nil
	}
}

// inflate handles the "deflate" coding, which RFC 9110 defines as a
// zlib stream but which many servers send as a raw DEFLATE stream.
func inflate(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err == nil {
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err == nil {
			return out, nil
		}
	}

	fr := flate.NewReader(bytes.NewReader(b))
	defer fr.Close()
	return io.ReadAll(fr)
}
