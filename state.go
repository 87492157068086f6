// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

// ReadyState is the lifecycle state of an XMLHttpRequest.
type ReadyState int

// The ready states, in lifecycle order.
const (
	Unsent ReadyState = iota
	Opened
	HeadersReceived
	Loading
	Done
)

var readyStateNames = [...]string{
	Unsent:          "UNSENT",
	Opened:          "OPENED",
	HeadersReceived: "HEADERS_RECEIVED",
	Loading:         "LOADING",
	Done:            "DONE",
}

// String returns the conventional upper-case name of the state, for
// example "HEADERS_RECEIVED".
func (s ReadyState) String() string {
	if s >= Unsent && s <= Done {
		return readyStateNames[s]
	}
	return "ReadyState(?)"
}

// setState moves the request to a new state and fires the events the
// transition calls for.
//
// Moving to the current state does nothing, and so does any transition
// out of UNSENT reached by Abort. readystatechange fires for every
// transition of an asynchronous request, and for the transitions of a
// synchronous request to UNSENT or DONE. Reaching DONE also fires
// exactly one of abort, error or load, in that order of precedence,
// followed by loadend.
func (x *XMLHttpRequest) setState(state ReadyState) {
	if x.readyState == state || (x.readyState == Unsent && x.abortedFlag) {
		return
	}

	x.logger.Debug().
		Stringer("from", x.readyState).
		Stringer("to", state).
		Msg("ready state change")
	x.readyState = state

	async := x.desc != nil && x.desc.Async
	if async || state < Opened || state == Done {
		x.DispatchEvent(EventReadyStateChange.Name())
	}

	if state == Done {
		fire := EventLoad
		if x.abortedFlag {
			fire = EventAbort
		} else if x.errorFlag {
			fire = EventError
		}
		x.DispatchEvent(fire.Name())
		x.DispatchEvent(EventLoadEnd.Name())
	}
}
