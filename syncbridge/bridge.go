// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package syncbridge

import (
	"context"
	"encoding/json"

	"github.com/gogama/xhr/transport"
	"github.com/rs/zerolog"
)

// A Bridge is the caller side of the sync helper contract.
type Bridge struct {
	// Spawner runs the helper. If nil, an ExecSpawner with default
	// settings is used.
	Spawner Spawner

	// Logger receives debug records about helper runs.
	Logger zerolog.Logger
}

// Do runs one request through the helper and blocks until it exits.
//
// Every failure, including a helper that cannot be started, is
// reported as a *ProcessError.
func (b *Bridge) Do(ctx context.Context, o *transport.Options, body []byte) (*Result, error) {
	args, err := EncodeArgs(o, body)
	if err != nil {
		return nil, &ProcessError{ExitCode: -1, Err: err}
	}

	spawner := b.Spawner
	if spawner == nil {
		spawner = &ExecSpawner{}
	}

	b.Logger.Debug().
		Str("method", o.Method).
		Str("url", o.URL()).
		Msg("spawning sync helper")
	exit, err := spawner.Spawn(ctx, args)
	if err != nil {
		return nil, &ProcessError{ExitCode: -1, Err: err}
	}
	b.Logger.Debug().
		Int("exit", exit.Code).
		Int("stdout", len(exit.Stdout)).
		Msg("sync helper exited")

	if exit.Code != 0 {
		return nil, parseErrorDocument(exit)
	}

	var r Result
	if err = json.Unmarshal(exit.Stdout, &r); err != nil {
		return nil, &ProcessError{Err: err}
	}
	return &r, nil
}
