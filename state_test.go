// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadyState(t *testing.T) {
	assert.Equal(t, ReadyState(0), Unsent)
	assert.Equal(t, ReadyState(1), Opened)
	assert.Equal(t, ReadyState(2), HeadersReceived)
	assert.Equal(t, ReadyState(3), Loading)
	assert.Equal(t, ReadyState(4), Done)
	assert.Equal(t, "UNSENT", Unsent.String())
	assert.Equal(t, "HEADERS_RECEIVED", HeadersReceived.String())
	assert.Equal(t, "DONE", Done.String())
	assert.Equal(t, "ReadyState(?)", ReadyState(5).String())
}

func TestSetState(t *testing.T) {
	t.Run("same state is a no-op", func(t *testing.T) {
		x := New()
		r := record(x)
		x.setState(Unsent)
		assert.Empty(t, r.events)
	})
	t.Run("aborted UNSENT is sticky", func(t *testing.T) {
		x := New()
		r := record(x)
		x.Abort()
		x.setState(Opened)
		assert.Equal(t, Unsent, x.ReadyState())
		assert.Empty(t, r.events)
	})
	t.Run("sync request only announces DONE", func(t *testing.T) {
		x := New()
		r := record(x)
		assert.NoError(t, x.Open("GET", "http://localhost/", Async(false)))
		x.setState(HeadersReceived)
		x.setState(Loading)
		assert.Empty(t, r.events)
		x.setState(Done)
		assert.Empty(t, r.events, "DONE events are deferred")
		run(t, x)
		assert.Equal(t, []string{"readystatechange@4", "load@4", "loadend@4"}, r.events)
	})
	t.Run("error beats load", func(t *testing.T) {
		x := New()
		r := record(x)
		assert.NoError(t, x.Open("GET", "http://localhost/"))
		x.errorFlag = true
		x.setState(Done)
		run(t, x)
		assert.Equal(t, []string{"readystatechange@1", "readystatechange@4", "error@4", "loadend@4"}, r.events)
	})
	t.Run("abort beats error", func(t *testing.T) {
		x := New()
		r := record(x)
		assert.NoError(t, x.Open("GET", "http://localhost/"))
		x.errorFlag = true
		x.abortedFlag = true
		x.setState(Done)
		run(t, x)
		assert.Equal(t, []string{"readystatechange@1", "readystatechange@4", "abort@4", "loadend@4"}, r.events)
	})
}
