// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package syncbridge

import (
	"context"
	"encoding/json"
	"io"

	"github.com/gogama/xhr/decode"
	"github.com/gogama/xhr/transport"
	"github.com/rs/zerolog"
)

// Exit statuses returned by Main.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Main is the helper side of the contract. It decodes args, performs
// one round trip through t, and writes the outcome to stdout or stderr.
// The return value is the process exit status.
//
// Main never follows redirects: a 3xx response is reported like any
// other.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer, t transport.Transport) int {
	logger := zerolog.Ctx(ctx)

	o, body, err := DecodeArgs(args)
	if err != nil {
		logger.Error().Err(err).Msg("bad arguments")
		_, _ = stderr.Write(errorDocument(err))
		return ExitUsage
	}

	logger.Debug().
		Str("method", o.Method).
		Str("url", o.URL()).
		Int("body", len(body)).
		Msg("sending")
	r, err := roundTrip(ctx, t, o, body)
	if err != nil {
		logger.Warn().Err(err).Msg("request failed")
		_, _ = stderr.Write(errorDocument(err))
		return ExitFailure
	}

	if err = json.NewEncoder(stdout).Encode(r); err != nil {
		logger.Error().Err(err).Msg("writing result")
		return ExitFailure
	}
	logger.Debug().Int("status", r.StatusCode).Msg("done")
	return ExitOK
}

func roundTrip(ctx context.Context, t transport.Transport, o *transport.Options, body []byte) (*Result, error) {
	resp, err := t.RoundTrip(ctx, o, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	headers := transport.LowerHeader(resp.Header)
	res, err := decode.Decode([][]byte{raw}, headers["content-encoding"])
	if err != nil {
		return nil, err
	}

	return &Result{
		StatusCode:      resp.StatusCode,
		ResponseHeaders: headers,
		ResponseBuffer:  res.Raw,
		ResponseText:    res.Text,
	}, nil
}
