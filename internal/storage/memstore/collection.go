package memstore

import (
	"sync"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/codegen"
	"github.com/pkg/errors"
)

const insertCodedAttempts = 3

// Collection is an append-only, insertion-ordered set of records keyed by
// their code. One lock per collection.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int
	key   func(T) string
}

func NewCollection[T any](key func(T) string) *Collection[T] {
	return &Collection[T]{index: make(map[string]int), key: key}
}

// Insert appends v unless its key is already present.
func (c *Collection[T]) Insert(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.key(v)
	if _, ok := c.index[k]; ok {
		return apperr.ErrDuplicateCode
	}
	c.index[k] = len(c.items)
	c.items = append(c.items, v)
	return nil
}

// InsertUnless appends v if no existing item satisfies conflict, checked
// and inserted under one lock.
func (c *Collection[T]) InsertUnless(v T, conflict func(T) bool, onConflict error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if conflict(it) {
			return onConflict
		}
	}
	k := c.key(v)
	if _, ok := c.index[k]; ok {
		return apperr.ErrDuplicateCode
	}
	c.index[k] = len(c.items)
	c.items = append(c.items, v)
	return nil
}

// InsertCoded issues a code of format f, builds the record with it and
// inserts it. A code taken between issue and insert is reissued.
func (c *Collection[T]) InsertCoded(gen *codegen.Generator, f codegen.Format, build func(code string) T) (T, error) {
	var zero T
	for i := 0; i < insertCodedAttempts; i++ {
		code, err := gen.Next(f, c.Has)
		if err != nil {
			return zero, err
		}
		v := build(code)
		err = c.Insert(v)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, apperr.ErrDuplicateCode) {
			return zero, err
		}
	}
	return zero, apperr.ErrDuplicateCode
}

func (c *Collection[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

func (c *Collection[T]) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[key]
	return ok
}

// Where returns matching items in insertion order.
func (c *Collection[T]) Where(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0)
	for _, it := range c.items {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
