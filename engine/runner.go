package engine

import (
	"fmt"

	"notefield/debug"
)

// Runner owns the command registry and drives dispatch. It is session-scoped:
// create one at editor setup and pass it to everything that registers
// commands. All methods must be called from the host event-loop thread.
type Runner struct {
	commands    []*Command
	seq         uint64 // dispatch sequence, for same-dispatch contention gating
	dispatching bool
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register creates a perpetual command and runs its procedure to its first
// suspension before returning. Uniqueness of description+category is the
// caller's responsibility.
func (r *Runner) Register(description, category string, proc Proc) *Command {
	c := &Command{
		Description: description,
		Category:    category,
		proc:        proc,
	}
	c.start(r.seq)
	r.commands = append(r.commands, c)
	debug.Log("engine", "registered %q (%s)", description, category)
	return c
}

// CommandInfo is one entry of the help listing.
type CommandInfo struct {
	Description string
	Category    string
}

// Listing returns registered commands in registration order, excluding hidden
// ones.
func (r *Runner) Listing() []CommandInfo {
	var out []CommandInfo
	for _, c := range r.commands {
		if c.Category == HiddenCategory {
			continue
		}
		out = append(out, CommandInfo{Description: c.Description, Category: c.Category})
	}
	return out
}

// Dispatch delivers one raw input event: a registration-order pass over the
// ordinary hooks, then a single action-resolution pass. At most one command
// consumes the event.
func (r *Runner) Dispatch(ev Event) {
	if ev.Hook == Action {
		panic("engine: action is resolved automatically, never dispatched directly")
	}
	if r.dispatching {
		panic("engine: re-entrant Dispatch from a handler")
	}
	r.dispatching = true
	defer func() { r.dispatching = false }()
	r.seq++

	for _, c := range r.commands {
		l := c.listener
		if l == nil {
			continue
		}
		h := l.handler(ev.Hook)
		if h == nil {
			continue
		}
		st := h(ev)
		r.checkActive(c, l, st)

		switch st.kind {
		case statusRepeat:
		case statusCancel:
			c.restart(r.seq)
		case statusProceed:
			c.resumeWith(st.val, r.seq)
		case statusConsume:
			c.resumeWith(st.val, r.seq)
			r.resolveActions(ev)
			return
		}
	}
	r.resolveActions(ev)
}

// resolveActions arbitrates the per-dispatch action slot: the highest declared
// priority wins, losers are restarted, and exactly one handler runs. Commands
// that armed their listener during this same dispatch do not contend.
func (r *Runner) resolveActions(ev Event) {
	var contenders []*Command
	best := 0
	for _, c := range r.commands {
		if c.listener == nil || c.listener.Action == nil || c.armedSeq == r.seq {
			continue
		}
		if len(contenders) == 0 || c.listener.Priority > best {
			best = c.listener.Priority
		}
		contenders = append(contenders, c)
	}
	if len(contenders) == 0 {
		return
	}

	var winner *Command
	ties := 0
	for _, c := range contenders {
		if c.listener.Priority == best {
			ties++
			if winner == nil {
				winner = c
			}
		}
	}
	if ties > 1 {
		debug.Warn("engine", "action priority tie at %d between %d commands, keeping %q",
			best, ties, winner.Description)
	}

	// Losers are out of contention for this frame and re-enter from the top.
	for _, c := range contenders {
		if c != winner {
			c.restart(r.seq)
		}
	}

	aev := ev
	aev.Hook = Action
	l := winner.listener
	st := l.Action(aev)
	r.checkActive(winner, l, st)

	switch st.kind {
	case statusRepeat, statusProceed:
		// Still armed for the next frame's slot. A Proceed handler applied
		// its effect internally.
	case statusCancel:
		winner.restart(r.seq)
	case statusConsume:
		winner.resumeWith(st.val, r.seq)
	}
}

// checkActive fails fast when a handler's status does not reflect the listener
// that was actually active: the shared-state invariant is gone and continuing
// would corrupt dispatch.
func (r *Runner) checkActive(c *Command, l *Listener, st Status) {
	if c.listener != l {
		panic(fmt.Sprintf("engine: command %q replaced its listener during dispatch (handler returned %s)",
			c.Description, st.kind))
	}
}
