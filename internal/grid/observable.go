package grid

// listeners keeps subscriber callbacks in subscription order.
type listeners[T any] struct {
	next    int
	entries []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	id := l.next
	l.next++
	l.entries = append(l.entries, listener[T]{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners[T]) notify(v T) {
	// Snapshot so a callback may unsubscribe itself.
	snapshot := make([]listener[T], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		e.fn(v)
	}
}

// Value is an observable value. Set notifies subscribers synchronously,
// and only when the value actually changes.
type Value[T comparable] struct {
	v    T
	subs listeners[T]
}

// NewValue creates an observable holding v.
func NewValue[T comparable](v T) *Value[T] {
	return &Value[T]{v: v}
}

func (o *Value[T]) Get() T {
	return o.v
}

// Set replaces the value and notifies subscribers if it changed.
func (o *Value[T]) Set(v T) {
	if o.v == v {
		return
	}
	o.v = v
	o.subs.notify(v)
}

// Subscribe registers fn for future changes. The returned func unsubscribes.
func (o *Value[T]) Subscribe(fn func(T)) func() {
	return o.subs.add(fn)
}
