// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"fmt"
	"os"

	"github.com/gogama/xhr/decode"
	"github.com/gogama/xhr/request"
)

// A Filesystem reads the files addressed by file URLs.
type Filesystem interface {
	ReadFile(name string) ([]byte, error)
}

// OSFilesystem is the Filesystem of the host operating system.
type OSFilesystem struct{}

// ReadFile calls os.ReadFile.
func (OSFilesystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (x *XMLHttpRequest) sendFile(d *request.Descriptor) error {
	if d.Method != "GET" {
		return fmt.Errorf("%w: only GET is supported for file URLs", ErrUnsupportedMethod)
	}

	name := d.URL.Path
	x.errorFlag = false

	if !d.Async {
		b, err := x.fs.ReadFile(name)
		x.fileDone(b, err)
		return nil
	}

	x.sendFlag = true
	gen := x.gen
	x.loop.acquire()
	go func() {
		b, err := x.fs.ReadFile(name)
		x.loop.release(x.bind(gen, func() { x.fileDone(b, err) }))
	}()
	return nil
}

func (x *XMLHttpRequest) fileDone(b []byte, err error) {
	if err != nil {
		x.handleError(err, 0)
		return
	}

	x.status = 200
	x.responseBuffer = b
	x.responseText = decode.Text(b)
	x.sendFlag = false
	x.setState(Done)
}
