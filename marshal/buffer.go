package marshal

// Buffer is a host-owned, NUL-terminated byte region encoded for a native
// call. It stays alive until its scope exits; the engine never retains it.
type Buffer struct {
	data []byte
}

// Ptr returns the address of the first byte, valid for the lifetime of the
// owning scope. Never nil: the boundary requires a valid pointer even for
// empty values.
func (b *Buffer) Ptr() *byte {
	return &b.data[0]
}

// Size returns the allocated size in bytes, terminator included.
func (b *Buffer) Size() int {
	return len(b.data)
}

// BufferArray is a native-callable array of string pointers plus the buffers
// backing each element.
type BufferArray struct {
	ptrs []*byte
	n    int
}

// Ptr returns the address of the first pointer slot. Never nil: empty lists
// keep one zero slot so the array pointer stays valid.
func (a *BufferArray) Ptr() **byte {
	return &a.ptrs[0]
}

// Len returns the element count.
func (a *BufferArray) Len() uint64 {
	return uint64(a.n)
}
