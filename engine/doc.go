// Package engine turns raw input events (key up/down, pointer up/down,
// per-frame ticks) into composable, resumable, mutually exclusive user
// commands.
//
// Each command is written as ordinary sequential logic against a Context: it
// runs until it needs input, suspends at Context.Listen, and is resumed by the
// dispatcher when one of its handlers takes interest. Handlers report one of
// four statuses (Repeat, Cancel, Proceed, Consume); Consume is first-wins
// exclusive per dispatch. Continuous mutations (dragging) go through the
// per-frame action slot, which is priority-arbitrated so that discrete and
// continuous commands can coexist in the same frame.
//
// Everything runs on the single host event-loop thread. Suspension is a
// channel rendezvous with the procedure's goroutine, never a native block of
// the host.
package engine
