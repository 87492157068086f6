// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gogama/xhr/syncbridge"
	"github.com/gogama/xhr/transport"
	"github.com/stretchr/testify/require"
)

// helperEnv, when set, turns the test binary into the sync helper.
const helperEnv = "XHR_TEST_SYNC_HELPER"

const fixedDate = "Thu, 30 Aug 2012 18:17:53 GMT"

var httpServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var httpsServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))

func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		os.Exit(syncbridge.Main(context.Background(), os.Args[1:], os.Stdout, os.Stderr, transport.DefaultTransport))
	}

	httpServer.Start()
	httpsServer.StartTLS()
	code := m.Run()
	httpServer.Close()
	httpsServer.Close()
	os.Exit(code)
}

func serverHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, fmt.Sprintf("failed to read request: %s", err.Error()))
		return
	}

	header := w.Header()
	header.Set("Date", fixedDate)

	switch req.URL.Path {
	case "/hello":
		header.Set("Content-Type", "text/plain")
		header.Set("Set-Cookie", "session=1")
		header.Set("X-Method", req.Method)
		_, _ = io.WriteString(w, "Hello World")
	case "/echo":
		header.Set("X-Method", req.Method)
		header.Set("X-Host", req.Host)
		header.Set("X-Content-Length", strconv.FormatInt(req.ContentLength, 10))
		header.Set("X-Content-Type", req.Header.Get("Content-Type"))
		header.Set("X-Authorization", req.Header.Get("Authorization"))
		header.Set("X-User-Agent", req.Header.Get("User-Agent"))
		header.Set("X-Custom", req.Header.Get("X-Custom"))
		_, _ = w.Write(body)
	case "/redirect/302":
		http.Redirect(w, req, "/echo", http.StatusFound)
	case "/redirect/303":
		http.Redirect(w, req, "/echo", http.StatusSeeOther)
	case "/redirect/307":
		http.Redirect(w, req, "/echo", http.StatusTemporaryRedirect)
	case "/redirect/chain":
		http.Redirect(w, req, "/redirect/302", http.StatusFound)
	case "/redirect/nolocation":
		w.WriteHeader(http.StatusFound)
	case "/chunks":
		f := w.(http.Flusher)
		_, _ = io.WriteString(w, "Hello")
		f.Flush()
		time.Sleep(10 * time.Millisecond)
		_, _ = io.WriteString(w, " World")
	case "/stall":
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-req.Context().Done()
	case "/gzip":
		header.Set("Content-Encoding", "gzip")
		_, _ = w.Write(compressed(gzip.NewWriter))
	case "/deflate":
		header.Set("Content-Encoding", "deflate")
		_, _ = w.Write(compressed(func(w io.Writer) io.WriteCloser { return zlib.NewWriter(w) }))
	case "/br":
		header.Set("Content-Encoding", "br")
		_, _ = w.Write(compressed(func(w io.Writer) io.WriteCloser { return brotli.NewWriter(w) }))
	case "/compress":
		b, err := os.ReadFile("decode/testdata/words.txt.Z")
		if err != nil {
			w.WriteHeader(500)
			return
		}
		header.Set("Content-Encoding", "compress")
		_, _ = w.Write(b)
	case "/bad-gzip":
		header.Set("Content-Encoding", "gzip")
		_, _ = io.WriteString(w, "not gzip at all")
	default:
		http.NotFound(w, req)
	}
}

func compressed[W io.WriteCloser](newWriter func(io.Writer) W) []byte {
	var buf bytes.Buffer
	zw := newWriter(&buf)
	_, _ = io.WriteString(zw, "Hello World")
	_ = zw.Close()
	return buf.Bytes()
}

// run runs the request's loop to completion.
func run(t *testing.T, x *XMLHttpRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, x.Loop().Run(ctx))
}

// recorder records every built-in event a request fires as
// "name@readyState", with the state observed when the listener ran.
type recorder struct {
	events []string
}

func record(x *XMLHttpRequest) *recorder {
	r := &recorder{}
	l := NewListener(func(evt string, x *XMLHttpRequest) {
		r.events = append(r.events, fmt.Sprintf("%s@%d", evt, x.ReadyState()))
	})
	for _, evt := range Events() {
		x.AddEventListener(evt.Name(), l)
	}
	return r
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func helperSpawner() *syncbridge.ExecSpawner {
	return &syncbridge.ExecSpawner{
		Path: os.Args[0],
		Env:  []string{helperEnv + "=1"},
	}
}

func insecureTLS() *transport.TLSOptions {
	reject := false
	return &transport.TLSOptions{RejectUnauthorized: &reject}
}
