package engine

// Proc is a command procedure: straight-line logic that suspends at
// Context.Listen and resumes when a handler takes interest. Procedures are
// perpetual - on natural completion they are re-run from the top.
type Proc func(*Context)

// HiddenCategory marks a command as excluded from the help listing.
const HiddenCategory = "hidden"

// Command is one registered, independently-lifetime-managed interaction. It is
// created once at setup and lives for the session; restarting replaces its
// current listener but never the record itself.
type Command struct {
	Description string
	Category    string

	proc Proc

	// listener is the current suspended waiting state. nil only while the
	// procedure is running between suspensions.
	listener *Listener

	// armedSeq is the dispatch sequence number during which the current
	// listener was installed. A command resumed or restarted mid-dispatch
	// must not contend for the same dispatch's action slot.
	armedSeq uint64

	yield  chan *Listener // proc goroutine -> dispatcher: reached a suspension
	resume chan any       // dispatcher -> proc goroutine: carried value or cancelSignal
}

// cancelSignal delivered on resume tells the suspended procedure to unwind.
type cancelSignal struct{}

// procCanceled is the panic sentinel used to unwind a canceled procedure.
type procCanceled struct{}

// start launches the procedure goroutine and runs it to its first suspension.
func (c *Command) start(seq uint64) {
	c.yield = make(chan *Listener)
	c.resume = make(chan any)
	ctx := &Context{cmd: c}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(procCanceled); ok {
					return
				}
				// Command-body panics are fatal to the session.
				panic(r)
			}
		}()
		for {
			c.proc(ctx)
		}
	}()

	c.listener = <-c.yield
	c.armedSeq = seq
}

// resumeWith hands the carried value to the suspended procedure and runs it to
// its next suspension.
func (c *Command) resumeWith(v any, seq uint64) {
	c.listener = nil
	c.resume <- v
	c.listener = <-c.yield
	c.armedSeq = seq
}

// restart discards the current activation and re-runs the procedure from the
// top. The suspended goroutine unwinds via the cancel sentinel, so nothing
// leaks.
func (c *Command) restart(seq uint64) {
	c.listener = nil
	c.resume <- cancelSignal{}
	c.start(seq)
}
