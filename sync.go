// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"net/http"
	"strings"

	"github.com/gogama/xhr/transport"
)

// statusHelperFailed is the status reported when the sync helper
// process fails.
const statusHelperFailed = http.StatusServiceUnavailable

// sendSync runs the request in the helper process and blocks until it
// exits.
func (x *XMLHttpRequest) sendSync(ctx context.Context, o *transport.Options, data []byte) {
	r, err := x.bridge.Do(ctx, o, data)
	if err != nil {
		x.handleError(err, statusHelperFailed)
		return
	}

	x.status = r.StatusCode
	x.statusText = http.StatusText(r.StatusCode)
	x.responseHeaders = make(map[string]string, len(r.ResponseHeaders))
	for name, value := range r.ResponseHeaders {
		x.responseHeaders[strings.ToLower(name)] = value
	}
	x.responseBuffer = r.ResponseBuffer
	x.responseText = r.ResponseText
	x.setState(Done)
}
