// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains Descriptor, the description of the request an
XMLHttpRequest was opened with, and BodyBytes, which converts the
loosely typed body handed to send into bytes.

A Descriptor is created by open and replaced by the next open:

	d, err := request.NewDescriptor("POST", "http://localhost:8000/upload", true)
	...
	d.SetBasicAuth("user", "secret")

The descriptor's Header is filled in when the request is sent, from the
XMLHttpRequest's request headers plus the headers added automatically
(Host, Authorization, Content-Length and Content-Type).
*/
package request
