// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLHttpRequest_File(t *testing.T) {
	t.Run("sync", func(t *testing.T) {
		fs := &mockFilesystem{}
		fs.Test(t)
		fs.On("ReadFile", "/srv/hello-world.txt").Return([]byte("Hello World"), nil).Once()
		tr := &mockTransport{}
		tr.Test(t)
		sp := &mockSpawner{}
		sp.Test(t)

		x := New(WithFilesystem(fs), WithTransport(tr), WithSpawner(sp))
		r := record(x)
		require.NoError(t, x.Open("GET", "file:///srv/hello-world.txt", Async(false)))
		require.NoError(t, x.Send(nil))

		assert.Equal(t, Done, x.ReadyState())
		assert.Equal(t, 200, x.Status())
		assert.Equal(t, "Hello World", x.ResponseText())
		run(t, x)
		assert.Equal(t, []string{"readystatechange@4", "load@4", "loadend@4"}, r.events)
		fs.AssertExpectations(t)
		tr.AssertNumberOfCalls(t, "RoundTrip", 0)
		sp.AssertNumberOfCalls(t, "Spawn", 0)
	})
	t.Run("async", func(t *testing.T) {
		fs := &mockFilesystem{}
		fs.Test(t)
		fs.On("ReadFile", "/srv/hello-world.txt").Return([]byte("Hello World"), nil).Once()
		tr := &mockTransport{}
		tr.Test(t)

		x := New(WithFilesystem(fs), WithTransport(tr))
		r := record(x)
		require.NoError(t, x.Open("GET", "file:///srv/hello-world.txt"))
		require.NoError(t, x.Send(nil))
		assert.Equal(t, Opened, x.ReadyState())
		run(t, x)

		assert.Equal(t, 200, x.Status())
		assert.Equal(t, "Hello World", x.ResponseText())
		assert.Equal(t, []byte("Hello World"), x.ResponseBuffer())
		assert.Equal(t, []string{"readystatechange@1", "readystatechange@4", "load@4", "loadend@4"}, r.events)
		fs.AssertExpectations(t)
		tr.AssertNumberOfCalls(t, "RoundTrip", 0)
	})
	t.Run("real file", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "hello-world.txt")
		require.NoError(t, os.WriteFile(name, []byte("Hello World"), 0o644))

		x := New()
		require.NoError(t, x.Open("GET", "file://"+filepath.ToSlash(name), Async(false)))
		require.NoError(t, x.Send(nil))
		assert.Equal(t, "Hello World", x.ResponseText())
	})
	t.Run("missing file", func(t *testing.T) {
		x := New(WithLogger(zerolog.Nop()))
		r := record(x)
		require.NoError(t, x.Open("GET", "file:///nonexistent/hello-world.txt"))
		require.NoError(t, x.Send(nil))
		run(t, x)
		assert.Equal(t, 0, x.Status())
		assert.ErrorIs(t, x.Err(), os.ErrNotExist)
		assert.Equal(t, 1, r.count("error@4"))
	})
	t.Run("only GET", func(t *testing.T) {
		fs := &mockFilesystem{}
		fs.Test(t)
		x := New(WithFilesystem(fs))
		require.NoError(t, x.Open("POST", "file:///srv/hello-world.txt"))
		assert.ErrorIs(t, x.Send("data"), ErrUnsupportedMethod)
		assert.Equal(t, Opened, x.ReadyState())
		fs.AssertNumberOfCalls(t, "ReadFile", 0)
	})
	t.Run("abort while reading", func(t *testing.T) {
		fs := &mockFilesystem{}
		fs.Test(t)
		fs.On("ReadFile", "/srv/hello-world.txt").Return([]byte("Hello World"), nil).Once()
		x := New(WithFilesystem(fs))
		r := record(x)
		require.NoError(t, x.Open("GET", "file:///srv/hello-world.txt"))
		require.NoError(t, x.Send(nil))
		x.Abort()
		run(t, x)
		assert.Equal(t, Unsent, x.ReadyState())
		assert.Equal(t, "", x.ResponseText())
		assert.Equal(t, 1, r.count("abort@0"))
		assert.Zero(t, r.count("load@0"))
	})
}
