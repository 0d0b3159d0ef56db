package pool

// Resettable is implemented by values that can be cleared for reuse.
type Resettable interface {
	Reset()
}

// Poolable values are resettable and comparable so a zero value can be detected.
type Poolable interface {
	Resettable
	comparable
}

// Pool is a bounded free list of reusable values.
type Pool[T Poolable] struct {
	items chan T
	newFn func() T
}

// New creates a Pool holding at most capacity idle values. newFn builds a
// value when the pool is empty.
func New[T Poolable](capacity int, newFn func() T) *Pool[T] {
	return &Pool[T]{
		items: make(chan T, capacity),
		newFn: newFn,
	}
}

// Get takes an idle value from the pool or builds a new one.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		return item
	default:
		return p.newFn()
	}
}

// Put resets item and keeps it for reuse. Zero values are dropped, as is
// anything over capacity.
func (p *Pool[T]) Put(item T) {
	var zero T
	if item == zero {
		return
	}
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Len reports the number of idle values.
func (p *Pool[T]) Len() int {
	return len(p.items)
}
