package workflow

import (
	"sync"

	"github.com/google/uuid"
)

// Observable is a publish/subscribe value container, the state holder the
// screens observe. A subscriber registered while a value is present receives
// it immediately. Close is the teardown hook: it drops every subscriber and
// turns further Sets into no-ops, so results landing after teardown go
// nowhere.
//
// deliver serializes callback invocation with Close: Close waits for an
// in-flight delivery to finish, and a delivery started after Close begins
// sees the closed flag. Subscriber callbacks must not call Set, Subscribe,
// or Close on the same observable.
type Observable[T any] struct {
	mu      sync.Mutex
	deliver sync.Mutex
	value   T
	set     bool
	subs    map[string]func(T)
	closed  bool
}

func NewObservable[T any]() *Observable[T] {
	return &Observable[T]{subs: make(map[string]func(T))}
}

// Set publishes a new value to all current subscribers.
func (o *Observable[T]) Set(v T) {
	o.deliver.Lock()
	defer o.deliver.Unlock()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.value = v
	o.set = true
	fns := make([]func(T), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Get returns the current value and whether one has been published.
func (o *Observable[T]) Get() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value, o.set
}

// Subscribe registers fn and returns its cancel func. The current value, if
// any, is replayed to fn before Subscribe returns.
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	o.deliver.Lock()
	defer o.deliver.Unlock()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return func() {}
	}
	token := uuid.NewString()
	o.subs[token] = fn
	value, set := o.value, o.set
	o.mu.Unlock()

	if set {
		fn(value)
	}
	return func() {
		o.mu.Lock()
		delete(o.subs, token)
		o.mu.Unlock()
	}
}

// Close tears the container down. No callback fires once Close has returned.
func (o *Observable[T]) Close() {
	o.deliver.Lock()
	defer o.deliver.Unlock()

	o.mu.Lock()
	o.closed = true
	o.subs = make(map[string]func(T))
	o.mu.Unlock()
}
