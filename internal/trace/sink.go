// Package trace defines a purely observational event sink for
// combinator invocations. A sink never influences a result: it is
// notified after the fact, mirroring how sentra's network/websocket
// server modules broadcast events to observers without affecting the
// computation that produced them. The default is NoopSink; Machine
// never requires one.
package trace

// Event describes one dispatch decision made by a combinator.
type Event struct {
	Combinator string
	FastPath   bool
	Broke      bool
}

// Sink receives combinator dispatch events.
type Sink interface {
	Notify(Event)
}

// NoopSink discards every event; it is the default when a Machine is
// built without an explicit sink.
type NoopSink struct{}

func (NoopSink) Notify(Event) {}
