// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package syncbridge

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// DefaultHelper is the name of the helper executable ExecSpawner runs
// when its Path is empty. It is looked up in PATH.
const DefaultHelper = "xhrsync"

// An Exit is the outcome of one helper process run to completion.
type Exit struct {
	Code   int
	Stdout []byte
	Stderr []byte
}

// A Spawner starts the helper with the given arguments and blocks until
// it exits.
//
// Spawn returns an error only if the helper could not be run to
// completion. A helper that runs and exits non-zero is reported through
// Exit.Code. Cancelling ctx must kill the helper.
type Spawner interface {
	Spawn(ctx context.Context, args []string) (*Exit, error)
}

// ExecSpawner is a Spawner backed by os/exec.
type ExecSpawner struct {
	// Path is the helper executable. If empty, DefaultHelper is used.
	Path string

	// Args are placed before the wire arguments.
	Args []string

	// Env holds extra environment variables, in "key=value" form,
	// appended to the environment of the current process.
	Env []string
}

// Spawn implements Spawner.
func (s *ExecSpawner) Spawn(ctx context.Context, args []string) (*Exit, error) {
	path := s.Path
	if path == "" {
		path = DefaultHelper
	}
	argv := make([]string, 0, len(s.Args)+len(args))
	argv = append(argv, s.Args...)
	argv = append(argv, args...)

	cmd := exec.CommandContext(ctx, path, argv...)
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, err
	}
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return &Exit{
		Code:   cmd.ProcessState.ExitCode(),
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}, nil
}
