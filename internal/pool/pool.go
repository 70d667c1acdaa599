// Package pool provides type-safe object reuse. The client recycles
// response body buffers across lookups through the Buffers pool.
package pool

import (
	"bytes"
	"sync"
)

// Pool is a generic wrapper around sync.Pool.
type Pool[T any] struct {
	internal sync.Pool
}

// New creates a new Pool with the given constructor.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		internal: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

// Get retrieves an item from the pool.
func (p *Pool[T]) Get() T {
	return p.internal.Get().(T)
}

// Put returns an item to the pool.
func (p *Pool[T]) Put(item T) {
	p.internal.Put(item)
}

// maxRetainedBuffer caps the capacity of buffers returned to the pool.
// A rare multi-megabyte response body should not pin memory forever.
const maxRetainedBuffer = 1 << 20

// Buffers pools byte buffers sized for JSON response bodies.
type Buffers struct {
	inner *Pool[*bytes.Buffer]
}

// NewBuffers creates a buffer pool.
func NewBuffers() *Buffers {
	return &Buffers{
		inner: New(func() *bytes.Buffer {
			return new(bytes.Buffer)
		}),
	}
}

// Get returns an empty buffer.
func (b *Buffers) Get() *bytes.Buffer {
	buf := b.inner.Get()
	buf.Reset()
	return buf
}

// Put returns a buffer to the pool unless it grew past the retention
// cap.
func (b *Buffers) Put(buf *bytes.Buffer) {
	if buf.Cap() > maxRetainedBuffer {
		return
	}
	b.inner.Put(buf)
}
