// Package bufpool provides a sync.Pool of reusable *bytes.Buffer values for
// the backend package's gob encode path, avoiding a fresh allocation on
// every Redis write.
package bufpool

import (
	"bytes"
	"sync"
)

var pool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Get returns an empty buffer ready for use. Callers must return it via Put.
func Get() *bytes.Buffer {
	return pool.Get().(*bytes.Buffer)
}

// Put resets buf and returns it to the pool. Buffers that have grown
// unreasonably large are dropped rather than pooled, so one oversized
// payload doesn't permanently inflate the pool's steady-state footprint.
func Put(buf *bytes.Buffer) {
	const maxPooled = 1 << 20 // 1 MiB
	if buf.Cap() > maxPooled {
		return
	}
	buf.Reset()
	pool.Put(buf)
}
