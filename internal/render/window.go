package render

// Window is a Viewport and EventTarget with a settable size, for headless hosts
// and tests.
type Window struct {
	width, height int
	next          ListenerID
	listeners     map[ListenerID]func()
}

// NewWindow returns a window of the given size.
func NewWindow(width, height int) *Window {
	return &Window{width: width, height: height, listeners: make(map[ListenerID]func())}
}

func (w *Window) Size() (int, int) { return w.width, w.height }

func (w *Window) AddResizeListener(fn func()) ListenerID {
	w.next++
	w.listeners[w.next] = fn
	return w.next
}

func (w *Window) RemoveResizeListener(id ListenerID) {
	delete(w.listeners, id)
}

// ListenerCount reports registered resize listeners.
func (w *Window) ListenerCount() int { return len(w.listeners) }

// Resize changes the size and notifies listeners.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
	for _, fn := range w.listeners {
		fn()
	}
}
