// Package events decouples services from background work. A service emits a
// TaskRequestEvent (for example a request to generate a chart reading) and
// whichever handlers are subscribed to that event type act on it.
package events
