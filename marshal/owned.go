package marshal

// Owned is a foreign-allocated result this layer must release exactly once.
// Take performs the copy-then-free atomically; a handle left untaken is
// released when its scope exits. Owned values never cross a scope boundary.
type Owned struct {
	ptr   uintptr
	free  func(uintptr)
	taken bool
}

// Take copies the NUL-terminated value out of native memory, releases the
// allocation through the engine's deallocator, and marks the handle
// consumed. A zero pointer yields nil with nothing to release. Taking the
// same handle twice is a programming error and panics.
func (o *Owned) Take() []byte {
	if o.taken {
		panic("marshal: owned result already taken")
	}
	o.taken = true
	if o.ptr == 0 {
		return nil
	}
	b := GoBytes(o.ptr)
	o.free(o.ptr)
	o.ptr = 0
	return b
}

// TakeString is Take returning a string.
func (o *Owned) TakeString() string {
	return string(o.Take())
}

// Taken reports whether the handle has been consumed.
func (o *Owned) Taken() bool {
	return o.taken
}
