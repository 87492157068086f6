// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gogama/xhr"
	"github.com/gogama/xhr/config"
	"github.com/gogama/xhr/transport"
	"github.com/spf13/cobra"
)

type flags struct {
	method   string
	headers  []string
	data     string
	sync     bool
	user     string
	config   string
	noColor  bool
	include  bool
	trace    bool
	insecure bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "xhr [flags] <url>",
		Short: "Send a request the way a browser XMLHttpRequest would",
		Long: `xhr opens an XMLHttpRequest, sends it, runs its event loop to
completion, and prints each event fired along the way followed by the
response body.

Supported URL schemes are http, https and file. A URL with no scheme
is resolved against http://localhost.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, args[0])
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.method, "method", "X", "GET", "request method")
	fl.StringArrayVarP(&f.headers, "header", "H", nil, "request header as 'Name: value' (repeatable)")
	fl.StringVarP(&f.data, "data", "d", "", "request body")
	fl.BoolVar(&f.sync, "sync", false, "send synchronously through the helper process")
	fl.StringVarP(&f.user, "user", "u", "", "basic auth credentials as 'user:password'")
	fl.StringVarP(&f.config, "config", "c", "", "configuration file (default: search the working directory)")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	fl.BoolVarP(&f.include, "include", "i", false, "print the response status line and headers")
	fl.BoolVar(&f.trace, "trace", true, "print the event trace")
	fl.BoolVarP(&f.insecure, "insecure", "k", false, "accept untrusted TLS certificates")
	return cmd
}

func (f *flags) run(cmd *cobra.Command, url string) error {
	if f.noColor {
		color.NoColor = true
	}

	c, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if f.insecure {
		reject := false
		if c.TLS == nil {
			c.TLS = &transport.TLSOptions{}
		}
		c.TLS.RejectUnauthorized = &reject
	}

	logger := c.Logger(cmd.ErrOrStderr())
	x := xhr.New(c.Options(logger)...)
	out := cmd.OutOrStdout()
	if f.trace {
		traceEvents(x, cmd.ErrOrStderr())
	}

	var opts []xhr.OpenOption
	opts = append(opts, xhr.Async(!f.sync))
	if f.user != "" {
		user, password, _ := strings.Cut(f.user, ":")
		opts = append(opts, xhr.BasicAuth(user, password))
	}
	if err = x.Open(f.method, url, opts...); err != nil {
		return err
	}

	for _, h := range f.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("xhr: bad header %q: want 'Name: value'", h)
		}
		if _, err = x.SetRequestHeader(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return err
		}
	}

	var body interface{}
	if f.data != "" {
		body = f.data
	}
	if err = x.SendContext(cmd.Context(), body); err != nil {
		return err
	}
	if err = x.Loop().Run(cmd.Context()); err != nil {
		return err
	}

	if x.Err() != nil {
		return x.Err()
	}
	if x.ReadyState() != xhr.Done {
		return errors.New("xhr: request did not complete")
	}
	if f.include {
		printHead(out, x)
	}
	_, err = io.WriteString(out, x.ResponseText())
	return err
}

// traceEvents prints one line per event fired by x.
func traceEvents(x *xhr.XMLHttpRequest, w io.Writer) {
	name := color.New(color.FgCyan).SprintFunc()
	state := color.New(color.Bold).SprintFunc()
	good := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	l := xhr.NewListener(func(evt string, x *xhr.XMLHttpRequest) {
		label := name(evt)
		switch evt {
		case xhr.EventLoad.Name():
			label = good(evt)
		case xhr.EventError.Name(), xhr.EventAbort.Name():
			label = bad(evt)
		}
		fmt.Fprintf(w, "* %-18s %s\n", label, state(x.ReadyState()))
	})
	for _, evt := range xhr.Events() {
		x.AddEventListener(evt.Name(), l)
	}
}

func printHead(w io.Writer, x *xhr.XMLHttpRequest) {
	status := color.New(color.FgGreen, color.Bold).SprintFunc()
	if x.Status() >= 400 {
		status = color.New(color.FgRed, color.Bold).SprintFunc()
	}
	fmt.Fprintln(w, status(fmt.Sprintf("%d %s", x.Status(), x.StatusText())))

	lines := strings.Split(x.GetAllResponseHeaders(), "\r\n")
	key := color.New(color.FgYellow).SprintFunc()
	for _, line := range lines {
		if line == "" {
			continue
		}
		name, value, _ := strings.Cut(line, ": ")
		fmt.Fprintf(w, "%s: %s\n", key(name), value)
	}
	fmt.Fprintln(w)
}
