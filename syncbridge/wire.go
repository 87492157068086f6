// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package syncbridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gogama/xhr/transient"
	"github.com/gogama/xhr/transport"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// NullBody is the argument passed in place of the body when a request
// has none. A body consisting of exactly these four bytes is therefore
// indistinguishable from no body.
const NullBody = "null"

// LogFileEnv names the environment variable which, if set, gives the
// path of the helper's rotating log file.
const LogFileEnv = "XHR_SYNC_LOG_FILE"

// A Result is the document the helper writes to its standard output
// after a successful request.
type Result struct {
	// StatusCode is the HTTP response status.
	StatusCode int `json:"statusCode"`

	// ResponseHeaders holds the response headers keyed by lower-case
	// name.
	ResponseHeaders map[string]string `json:"responseHeaders"`

	// ResponseBuffer is the raw response body, before any content
	// decoding. It travels base64 encoded.
	ResponseBuffer []byte `json:"responseBuffer"`

	// ResponseText is the decoded response body.
	ResponseText string `json:"responseText"`
}

var errArgCount = errors.New("xhr/syncbridge: expected 3 arguments")

// EncodeArgs builds the helper's positional arguments for a request.
//
// An error is returned if the options cannot be encoded or if the body
// contains a NUL byte, which cannot be carried in a process argument.
func EncodeArgs(o *transport.Options, body []byte) ([]string, error) {
	if bytes.IndexByte(body, 0) >= 0 {
		return nil, errors.New("xhr/syncbridge: body contains a NUL byte")
	}
	j, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("xhr/syncbridge: encoding options: %w", err)
	}
	tlsFlag := "false"
	if o.Secure {
		tlsFlag = "true"
	}
	b := NullBody
	if body != nil {
		b = string(body)
	}
	return []string{tlsFlag, string(j), b}, nil
}

// DecodeArgs is the inverse of EncodeArgs.
func DecodeArgs(args []string) (*transport.Options, []byte, error) {
	if len(args) != 3 {
		return nil, nil, errArgCount
	}
	var o transport.Options
	switch args[0] {
	case "true":
		o.Secure = true
	case "false":
	default:
		return nil, nil, fmt.Errorf("xhr/syncbridge: invalid TLS flag %q", args[0])
	}
	if err := json.Unmarshal([]byte(args[1]), &o); err != nil {
		return nil, nil, fmt.Errorf("xhr/syncbridge: decoding options: %w", err)
	}
	// Unmarshal must not clobber the flag, as Secure has no JSON form.
	o.Secure = args[0] == "true"
	var body []byte
	if args[2] != NullBody {
		body = []byte(args[2])
	}
	return &o, body, nil
}

// errorDocument renders err as the helper's standard error document.
func errorDocument(err error) []byte {
	doc := []byte(`{}`)
	doc, _ = sjson.SetBytes(doc, "message", err.Error())
	doc, _ = sjson.SetBytes(doc, "code", transient.Categorize(err).String())
	doc, _ = sjson.SetBytes(doc, "stack", fmt.Sprintf("%+v", err))
	return doc
}

// parseErrorDocument builds a ProcessError from the exit of a failed
// helper. Standard error that is not a JSON document is kept verbatim
// as the message.
func parseErrorDocument(exit *Exit) *ProcessError {
	pe := &ProcessError{ExitCode: exit.Code}
	stderr := bytes.TrimSpace(exit.Stderr)
	if gjson.ValidBytes(stderr) {
		doc := gjson.ParseBytes(stderr)
		pe.Message = doc.Get("message").String()
		pe.Code = doc.Get("code").String()
		pe.Stack = doc.Get("stack").String()
	} else {
		pe.Message = string(stderr)
	}
	return pe
}
