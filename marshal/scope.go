package marshal

import "sync"

// Scope is the append-only registry of buffers and owned results created
// during one logical call. Created at call entry, populated while
// marshalling, torn down at call exit. Never retained past its call.
type Scope struct {
	free    func(uintptr)
	buffers []*Buffer
	arrays  []*BufferArray
	owned   []*Owned
}

var scopePool = sync.Pool{
	New: func() any {
		return &Scope{
			buffers: make([]*Buffer, 0, 8),
			owned:   make([]*Owned, 0, 4),
		}
	},
}

const maxPooledScopeCapacity = 128

func newScope(free func(uintptr)) *Scope {
	s := scopePool.Get().(*Scope)
	s.free = free
	return s
}

// release frees every unconsumed owned result, drops all registrations, and
// returns the scope to the pool. The scope is invalid afterwards.
func (s *Scope) release() {
	for _, o := range s.owned {
		if !o.taken && o.ptr != 0 {
			o.free(o.ptr)
			o.ptr = 0
			o.taken = true
		}
	}
	// Only pool modest scopes to prevent memory bloat.
	pool := cap(s.buffers) <= maxPooledScopeCapacity &&
		cap(s.arrays) <= maxPooledScopeCapacity &&
		cap(s.owned) <= maxPooledScopeCapacity
	s.reset()
	if pool {
		scopePool.Put(s)
	}
}

func (s *Scope) reset() {
	clear(s.buffers)
	clear(s.arrays)
	clear(s.owned)
	s.buffers = s.buffers[:0]
	s.arrays = s.arrays[:0]
	s.owned = s.owned[:0]
	s.free = nil
}

// Text encodes a UTF-8 value as a NUL-terminated buffer sized len+1 and
// registers it with the scope.
func (s *Scope) Text(v string) *Buffer {
	return s.TextSized(v, len(v)+1)
}

// TextSized encodes into a fixed-size buffer. Sizes too small for the value
// and its terminator are grown to fit.
func (s *Scope) TextSized(v string, size int) *Buffer {
	if size < len(v)+1 {
		size = len(v) + 1
	}
	b := &Buffer{data: make([]byte, size)}
	copy(b.data, v)
	s.buffers = append(s.buffers, b)
	return b
}

// Data encodes a raw byte value as a NUL-terminated buffer.
func (s *Scope) Data(v []byte) *Buffer {
	b := &Buffer{data: make([]byte, len(v)+1)}
	copy(b.data, v)
	s.buffers = append(s.buffers, b)
	return b
}

// TextList encodes values as a native array of NUL-terminated strings. The
// array and every element are scope-registered.
func (s *Scope) TextList(values []string) *BufferArray {
	a := &BufferArray{n: len(values)}
	if len(values) == 0 {
		a.ptrs = make([]*byte, 1)
	} else {
		a.ptrs = make([]*byte, len(values))
		for i, v := range values {
			a.ptrs[i] = s.Text(v).Ptr()
		}
	}
	s.arrays = append(s.arrays, a)
	return a
}

// Own registers a foreign-owned result with the scope and returns its
// handle. Register before decoding so a failure between the native call and
// the copy still releases the allocation at scope exit.
func (s *Scope) Own(p uintptr) *Owned {
	o := &Owned{ptr: p, free: s.free}
	s.owned = append(s.owned, o)
	return o
}

// Outstanding counts registrations not yet released: live buffers, arrays,
// and owned results still holding their allocation.
func (s *Scope) Outstanding() int {
	n := len(s.buffers) + len(s.arrays)
	for _, o := range s.owned {
		if !o.taken {
			n++
		}
	}
	return n
}
