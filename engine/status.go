package engine

type statusKind int

const (
	statusRepeat statusKind = iota
	statusCancel
	statusProceed
	statusConsume
)

func (k statusKind) String() string {
	switch k {
	case statusRepeat:
		return "repeat"
	case statusCancel:
		return "cancel"
	case statusProceed:
		return "proceed"
	case statusConsume:
		return "consume"
	}
	return "unknown"
}

// Status is the outcome of invoking a handler.
//
//   - Repeat: no interest taken, state unchanged.
//   - Cancel: abandon the command's current suspension and restart its
//     procedure from the top.
//   - Proceed: input was taken and a value produced, but other commands still
//     see this dispatch.
//   - Consume: as Proceed, but no further command sees this dispatch.
type Status struct {
	kind statusKind
	val  any
}

func Repeat() Status       { return Status{kind: statusRepeat} }
func Cancel() Status       { return Status{kind: statusCancel} }
func Proceed(v any) Status { return Status{kind: statusProceed, val: v} }
func Consume(v any) Status { return Status{kind: statusConsume, val: v} }

func (s Status) carriesValue() bool {
	return s.kind == statusProceed || s.kind == statusConsume
}
