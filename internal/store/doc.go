// Package store keeps the local view of the student collection consistent
// with the server.
//
// A Store holds the records last fetched from the server, the form's edit
// buffer, the edit target (create vs update), a busy flag and the last
// user-facing error. It is owned by a single goroutine, the Bubble Tea update
// loop in the TUI or the command goroutine in the CLI, and is not safe for
// concurrent use.
//
// Every operation that talks to the server is split in two:
//
//	eff := s.Refresh()         // state transition, owner goroutine
//	res := eff(ctx)            // network call, any goroutine
//	next := s.Apply(res)       // completion, owner goroutine
//
// Effects capture their inputs when created and never read Store fields, so
// running one off the owner goroutine is safe. Apply may return a follow-up
// effect: every successful create, update or delete is followed by a full
// refresh, and the records slice is only ever replaced by a fetched
// snapshot. Run drives an effect and its follow-ups synchronously.
//
// While busy, Refresh, Submit and Remove return nil and leave the state
// untouched, so at most one request is in flight.
package store
