// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"sync"
)

// A Loop is a first-in first-out queue of tasks run one at a time by
// the goroutine that calls Run.
//
// Every XMLHttpRequest belongs to a Loop. The request's state changes
// and event handlers always run either inline, on the goroutine calling
// the XMLHttpRequest's methods, or as tasks on its Loop. As long as the
// same goroutine makes the calls and runs the loop, handlers never run
// concurrently with each other or with the caller.
//
// Several XMLHttpRequests may share one Loop.
type Loop struct {
	mu      sync.Mutex
	tasks   []func()
	pending int
	wake    chan struct{}
}

// NewLoop returns a new, empty Loop.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post appends a task to the queue. It is safe to call Post from any
// goroutine, which makes it the way to abort a request from outside
// the loop:
//
//	loop.Post(x.Abort)
func (l *Loop) Post(task func()) {
	if task == nil {
		panic("xhr: nil task")
	}

	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()
	l.signal()
}

// Run runs queued tasks, in order, until the queue is empty and no
// operation started by a request on the loop is still outstanding, or
// until ctx is done. It returns ctx.Err() in the latter case and nil
// otherwise.
//
// Tasks posted by a running task are run by the same call to Run.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.mu.Lock()
		if len(l.tasks) > 0 {
			task := l.tasks[0]
			l.tasks[0] = nil
			l.tasks = l.tasks[1:]
			l.mu.Unlock()
			task()
			continue
		}
		idle := l.pending == 0
		l.mu.Unlock()

		if idle {
			return nil
		}

		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// acquire records the start of an outstanding operation. Run does not
// return while any operation is outstanding.
func (l *Loop) acquire() {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
}

// release records the end of an outstanding operation, atomically
// queueing its final task.
func (l *Loop) release(task func()) {
	l.mu.Lock()
	if task != nil {
		l.tasks = append(l.tasks, task)
	}
	l.pending--
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
