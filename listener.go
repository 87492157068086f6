// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

// The HandlerFunc type is the signature of event handlers and listener
// callbacks. The first argument is the name of the event being
// dispatched and the second is the request dispatching it.
type HandlerFunc func(evt string, x *XMLHttpRequest)

// A Listener is a callback registered with AddEventListener. Listeners
// are compared by identity: RemoveEventListener removes exactly the
// registrations made with the same *Listener.
type Listener struct {
	fn HandlerFunc
}

// NewListener returns a new Listener wrapping fn.
func NewListener(fn HandlerFunc) *Listener {
	if fn == nil {
		panic("xhr: nil listener")
	}

	return &Listener{fn: fn}
}

// Handle calls the wrapped function.
func (l *Listener) Handle(evt string, x *XMLHttpRequest) {
	l.fn(evt, x)
}

// SetHandler installs fn in the single handler slot for evt, replacing
// any previous handler. A nil fn clears the slot.
func (x *XMLHttpRequest) SetHandler(evt Event, fn HandlerFunc) {
	x.slots[evt] = fn
}

// OnReadyStateChange sets the readystatechange handler.
func (x *XMLHttpRequest) OnReadyStateChange(fn HandlerFunc) {
	x.SetHandler(EventReadyStateChange, fn)
}

// OnLoadStart sets the loadstart handler.
func (x *XMLHttpRequest) OnLoadStart(fn HandlerFunc) {
	x.SetHandler(EventLoadStart, fn)
}

// OnLoad sets the load handler.
func (x *XMLHttpRequest) OnLoad(fn HandlerFunc) {
	x.SetHandler(EventLoad, fn)
}

// OnAbort sets the abort handler.
func (x *XMLHttpRequest) OnAbort(fn HandlerFunc) {
	x.SetHandler(EventAbort, fn)
}

// OnError sets the error handler.
func (x *XMLHttpRequest) OnError(fn HandlerFunc) {
	x.SetHandler(EventError, fn)
}

// OnLoadEnd sets the loadend handler.
func (x *XMLHttpRequest) OnLoadEnd(fn HandlerFunc) {
	x.SetHandler(EventLoadEnd, fn)
}

// AddEventListener appends l to the listeners for the named event. The
// same Listener may be added more than once, in which case it is called
// once per registration.
func (x *XMLHttpRequest) AddEventListener(name string, l *Listener) {
	if l == nil {
		panic("xhr: nil listener")
	}

	if x.listeners == nil {
		x.listeners = make(map[string][]*Listener)
	}

	x.listeners[name] = append(x.listeners[name], l)
}

// RemoveEventListener removes every registration of l for the named
// event.
func (x *XMLHttpRequest) RemoveEventListener(name string, l *Listener) {
	old, ok := x.listeners[name]
	if !ok {
		return
	}

	// Build a new slice so a dispatch ranging over the old one is not
	// disturbed.
	kept := make([]*Listener, 0, len(old))
	for _, m := range old {
		if m != l {
			kept = append(kept, m)
		}
	}
	x.listeners[name] = kept
}

// DispatchEvent invokes the handler slot for the named event, if the
// name is a built-in event and the slot is set, and then every listener
// registered for the name, in registration order.
//
// When the request is in the DONE state, every invocation is posted to
// the request's Loop instead of being made inline.
func (x *XMLHttpRequest) DispatchEvent(name string) {
	deferred := x.readyState == Done

	if evt, ok := eventsByName[name]; ok {
		if fn := x.slots[evt]; fn != nil {
			x.invoke(deferred, name, fn)
		}
	}

	for _, l := range x.listeners[name] {
		x.invoke(deferred, name, l.fn)
	}
}

func (x *XMLHttpRequest) invoke(deferred bool, name string, fn HandlerFunc) {
	if deferred {
		x.loop.Post(func() { fn(name, x) })
		return
	}

	fn(name, x)
}
