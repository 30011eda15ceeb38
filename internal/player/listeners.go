package player

import "sync"

// listeners is a registry of event listeners keyed by registration id.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]Listener
}

// add registers fn and returns an idempotent cancel function.
func (l *listeners) add(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]Listener)
	}
	id := l.next
	l.next++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

// emit calls every registered listener. Listeners run without the
// registry lock held, so they may register or cancel freely.
func (l *listeners) emit(src Source, e Event) {
	l.mu.Lock()
	fns := make([]Listener, 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(src, e)
	}
}

func (l *listeners) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
