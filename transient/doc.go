// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the failures an XMLHttpRequest reports
// through its error handler. The category is attached to the warning
// logged for each failure, which makes it easy to tell a flaky network
// apart from a request that can never succeed.
//
// Package transient depends only on the standard library.
package transient
