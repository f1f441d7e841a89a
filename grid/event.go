package grid

/*

Change notification

Cells announce their mutations so that observers (a view, a
logger, a test) can react without the model knowing about them.
Delivery is synchronous and in registration order; there is no
queueing and no isolation, so a listener that panics propagates
the panic to whoever caused the mutation.  A listener must not
mutate the cell it is being notified about from inside its own
callback.

*/

// An EventKind says what happened to a cell.
type EventKind int

// The two kinds of cell event: a value change (assignment,
// clearing, or candidate elimination) and a solver guess.
const (
	ValueChanged EventKind = iota
	ValueGuessed
)

// String implements Stringer for event kinds.
func (k EventKind) String() string {
	switch k {
	case ValueChanged:
		return "value changed"
	case ValueGuessed:
		return "value guessed"
	}
	return "unknown event"
}

// A CellEvent reports a mutation of one cell.  The event value
// is immutable but the referenced cell is live: by the time a
// listener stores the event the cell may have changed again.
type CellEvent struct {
	Cell *Cell
	Kind EventKind
}

// A Listener is anything that wants to hear about cell events.
// Any type with the one method qualifies; there is no base type
// to inherit from.
type Listener interface {
	Notify(CellEvent)
}

// ListenerFunc adapts an ordinary function to the Listener
// interface, in the manner of http.HandlerFunc.
type ListenerFunc func(CellEvent)

// Notify calls the function.
func (f ListenerFunc) Notify(e CellEvent) { f(e) }

// listenable is the embeddable registration half of the
// mechanism.
type listenable struct {
	listeners []Listener
}

// AddListener registers a listener.  There is no removal:
// listeners live as long as the cell does.
func (l *listenable) AddListener(n Listener) {
	l.listeners = append(l.listeners, n)
}

// notifyAll delivers an event to every registered listener, in
// registration order.
func (l *listenable) notifyAll(e CellEvent) {
	for _, n := range l.listeners {
		n.Notify(e)
	}
}
