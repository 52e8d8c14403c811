// Package task runs background work. Tasks are persisted before they are
// queued so a restart can recover them; the runner restores stored records
// into executable tasks through per-type restore functions.
package task
