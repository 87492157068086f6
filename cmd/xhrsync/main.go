// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command xhrsync is the helper process that carries out synchronous
// requests on behalf of package xhr. It is not meant to be run by hand.
//
//	xhrsync <tls> <options> <body>
//
// See package syncbridge for the contract.
package main

import (
	"context"
	"os"

	"github.com/gogama/xhr/config"
	"github.com/gogama/xhr/syncbridge"
	"github.com/gogama/xhr/transport"
	"github.com/spf13/cobra"
)

func newRootCmd(code *int) *cobra.Command {
	return &cobra.Command{
		Use:           "xhrsync <tls> <options> <body>",
		Short:         "Helper process for synchronous XMLHttpRequests",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		// Flags would collide with wire arguments that begin with '-'.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := config.HelperLogger()
			ctx := logger.WithContext(cmd.Context())
			*code = syncbridge.Main(ctx, args, cmd.OutOrStdout(), cmd.ErrOrStderr(), transport.DefaultTransport)
			return nil
		},
	}
}

func main() {
	code := syncbridge.ExitOK
	if err := newRootCmd(&code).ExecuteContext(context.Background()); err != nil {
		os.Exit(syncbridge.ExitUsage)
	}
	os.Exit(code)
}
