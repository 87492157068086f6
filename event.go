// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

// An Event identifies one of the events an XMLHttpRequest fires on its
// own. Each Event has a single-slot handler, installed with SetHandler
// or one of the On setters, in addition to any listeners registered
// under its name with AddEventListener.
type Event int

const (
	// EventReadyStateChange fires when the ready state changes. For a
	// synchronous request it only fires on the transitions to UNSENT
	// and DONE.
	//
	// It also fires once more, with the state still OPENED, when an
	// asynchronous request is sent.
	EventReadyStateChange Event = iota
	// EventLoadStart fires after an asynchronous request has been
	// handed to the transport.
	EventLoadStart
	// EventLoad fires after the transition to DONE when the request
	// completed without error and was not aborted.
	EventLoad
	// EventAbort fires after the transition to DONE caused by Abort.
	// Listeners observe the state UNSENT, because Abort resets the
	// state before deferred listeners run.
	EventAbort
	// EventError fires after the transition to DONE caused by a
	// transport, filesystem or helper process failure. Err returns the
	// failure.
	EventError
	// EventLoadEnd fires last, after EventLoad, EventAbort or
	// EventError.
	EventLoadEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"readystatechange",
	"loadstart",
	"load",
	"abort",
	"error",
	"loadend",
}

var eventsByName = func() map[string]Event {
	m := make(map[string]Event, numEvents)
	for i, name := range eventNames {
		m[name] = Event(i)
	}
	return m
}()

// Events returns a slice containing all events an XMLHttpRequest
// fires.
func Events() []Event {
	return []Event{
		EventReadyStateChange,
		EventLoadStart,
		EventLoad,
		EventAbort,
		EventError,
		EventLoadEnd,
	}
}

// EventByName returns the Event with the given name, for example
// "loadend". The second return value is false if no built-in event has
// that name.
func EventByName(name string) (Event, bool) {
	evt, ok := eventsByName[name]
	return evt, ok
}

// Name returns the name of the event, as used with AddEventListener and
// DispatchEvent.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
