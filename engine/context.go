package engine

// Context is the capability handed to a command procedure. All of its methods
// must be called from inside the procedure itself, never from a handler.
type Context struct {
	cmd *Command
}

// Listen is the primitive suspension point. The procedure pauses here with l
// as its waiting state; it resumes exactly once, when one of l's handlers
// returns a carried-value status, and Listen returns that carried value.
//
// The suspension is cooperative: control returns to the host loop, and the
// goroutine blocks only on the engine's own rendezvous channel.
func (ctx *Context) Listen(l *Listener) any {
	c := ctx.cmd
	c.yield <- l
	v := <-c.resume
	if _, ok := v.(cancelSignal); ok {
		panic(procCanceled{})
	}
	return v
}

// Action suspends until the command wins the per-frame action contention,
// then runs effect and resumes with its result.
func (ctx *Context) Action(effect func(Event) any, priority int) any {
	return ctx.Listen(&Listener{
		Priority: priority,
		Action: func(ev Event) Status {
			return Consume(effect(ev))
		},
	})
}

// Key waits for a key-down of the given code, consuming it.
func (ctx *Context) Key(code int) Event {
	return ctx.Listen(KeyListener(code)).(Event)
}

// PointerDown waits for any pointer press, consuming it.
func (ctx *Context) PointerDown() Event {
	return ctx.Listen(PointerDownListener()).(Event)
}
