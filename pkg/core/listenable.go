package core

import "sync"

// Disposable is implemented by controllers that hold resources.
type Disposable interface {
	Dispose()
}

// Listenable notifies registered listeners of changes.
type Listenable interface {
	// AddListener registers fn and returns a function that removes it.
	AddListener(fn func()) func()
}

// Notifier is a thread-safe Listenable.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
	order     []int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]func())}
}

// AddListener registers fn.
func (n *Notifier) AddListener(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.order = append(n.order, id)
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// Notify calls every listener in registration order.
func (n *Notifier) Notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.listeners))
	live := n.order[:0]
	for _, id := range n.order {
		if fn, ok := n.listeners[id]; ok {
			fns = append(fns, fn)
			live = append(live, id)
		}
	}
	n.order = live
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Dispose removes every listener.
func (n *Notifier) Dispose() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = make(map[int]func())
	n.order = nil
}
