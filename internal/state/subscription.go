package state

import "sync"

// Subscription delivers change notifications for a declared set of fields.
// Notifications coalesce: however many mutations land between reads, Ready
// fires once and Take drains every dirty field. This is the broadcast side
// of the store; version comparison (Store.Versions) is the polling side, and
// both share the same per-field counters.
type Subscription struct {
	store  *Store
	fields map[Field]struct{}

	mu    sync.Mutex
	dirty map[Field]struct{}
	ready chan struct{}
}

// Subscribe registers interest in a set of fields. An empty set subscribes
// to every field. Close the subscription when done.
func (s *Store) Subscribe(fields ...Field) *Subscription {
	sub := &Subscription{
		store: s,
		dirty: make(map[Field]struct{}),
		ready: make(chan struct{}, 1),
	}
	if len(fields) > 0 {
		sub.fields = make(map[Field]struct{}, len(fields))
		for _, f := range fields {
			sub.fields[f] = struct{}{}
		}
	}
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

// notify marks matching fields dirty and signals readiness. Called with the
// store lock held.
func (sub *Subscription) notify(fields []Field) {
	sub.mu.Lock()
	matched := false
	for _, f := range fields {
		if sub.fields != nil {
			if _, ok := sub.fields[f]; !ok {
				continue
			}
		}
		sub.dirty[f] = struct{}{}
		matched = true
	}
	sub.mu.Unlock()
	if !matched {
		return
	}
	select {
	case sub.ready <- struct{}{}:
	default:
	}
}

// Ready returns a channel that receives after one or more watched fields
// changed.
func (sub *Subscription) Ready() <-chan struct{} {
	return sub.ready
}

// Take drains and returns the dirty field set accumulated since the last
// call.
func (sub *Subscription) Take() []Field {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	out := make([]Field, 0, len(sub.dirty))
	for f := range sub.dirty {
		out = append(out, f)
	}
	clear(sub.dirty)
	return out
}

// Close detaches the subscription from the store.
func (sub *Subscription) Close() {
	sub.store.mu.Lock()
	delete(sub.store.subs, sub)
	sub.store.mu.Unlock()
}
