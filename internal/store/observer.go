package store

import (
	"fmt"
	"sync"
)

type observerList struct {
	mu  sync.RWMutex
	fns map[Resource][]func(Resource)
}

func newObserverList() *observerList {
	return &observerList{fns: make(map[Resource][]func(Resource))}
}

// Subscribe registers fn to run after any write that changed at least one
// row of the given resource. Callbacks run synchronously on the writing
// goroutine. Subscribing to an unknown resource is a programmer error.
func (db *DB) Subscribe(r Resource, fn func(Resource)) {
	switch r {
	case ResourceLocation, ResourceWeather:
	default:
		panic(fmt.Sprintf("store: unknown resource %q", r))
	}
	db.observers.mu.Lock()
	defer db.observers.mu.Unlock()
	db.observers.fns[r] = append(db.observers.fns[r], fn)
}

// notify fires observers for r. Writes that affected zero rows must not
// notify; callers pass the affected row count.
func (db *DB) notify(r Resource, rows int64) {
	if rows <= 0 {
		return
	}
	db.observers.mu.RLock()
	fns := db.observers.fns[r]
	db.observers.mu.RUnlock()
	for _, fn := range fns {
		fn(r)
	}
}
