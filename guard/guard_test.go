// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package guard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsForbiddenHeader(t *testing.T) {
	t.Run("listed", func(t *testing.T) {
		for _, h := range ForbiddenHeaders {
			assert.True(t, IsForbiddenHeader(h), h)
			assert.True(t, IsForbiddenHeader(strings.ToUpper(h)), h)
		}
	})
	t.Run("mixed case", func(t *testing.T) {
		assert.True(t, IsForbiddenHeader("Content-Length"))
		assert.True(t, IsForbiddenHeader("Transfer-Encoding"))
	})
	t.Run("allowed", func(t *testing.T) {
		assert.False(t, IsForbiddenHeader("user-agent"))
		assert.False(t, IsForbiddenHeader("X-Custom"))
		assert.False(t, IsForbiddenHeader(""))
	})
}

func TestIsForbiddenMethod(t *testing.T) {
	for _, m := range ForbiddenMethods {
		assert.True(t, IsForbiddenMethod(m), m)
		assert.False(t, IsForbiddenMethod(strings.ToLower(m)), m)
	}
	assert.False(t, IsForbiddenMethod("GET"))
	assert.False(t, IsForbiddenMethod("POST"))
	assert.False(t, IsForbiddenMethod(""))
}

func TestValidHeader(t *testing.T) {
	assert.True(t, ValidHeader("X-Foo", "bar baz"))
	assert.False(t, ValidHeader("X Foo", "bar"))
	assert.False(t, ValidHeader("", "bar"))
	assert.False(t, ValidHeader("X-Foo", "bar\r\nInjected: yes"))
}
