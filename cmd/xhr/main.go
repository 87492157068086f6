// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command xhr sends one request through an XMLHttpRequest and prints
// the events it fires, followed by the response.
//
//	xhr [flags] <url>
//
// Examples:
//
//	xhr https://www.example.com
//	xhr -X POST -H 'Content-Type: application/json' -d '{"a":1}' http://localhost:8080/api
//	xhr --sync file:///etc/hostname
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
