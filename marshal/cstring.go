package marshal

import "unsafe"

// Addresses handled here are native-heap pointers produced by the engine,
// never Go pointers; converting them through unsafe.Pointer is the only way
// to read them without cgo.

// GoBytes copies the NUL-terminated byte sequence at p into host memory.
// Returns nil when p is zero. The native allocation is left untouched.
func GoBytes(p uintptr) []byte {
	if p == 0 {
		return nil
	}
	n := 0
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return []byte{}
	}
	return append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(p)), n)...)
}

// GoString copies the NUL-terminated string at p. Empty when p is zero.
func GoString(p uintptr) string {
	return string(GoBytes(p))
}

// PointerSlots reads n consecutive pointer-sized slots starting at p.
func PointerSlots(p uintptr, n int) []uintptr {
	if p == 0 || n <= 0 {
		return nil
	}
	out := make([]uintptr, n)
	copy(out, unsafe.Slice((*uintptr)(unsafe.Pointer(p)), n))
	return out
}

// Strings reads a borrowed char** of n elements into host strings. The
// array and its elements stay engine-owned; nothing is freed.
func Strings(p uintptr, n int) []string {
	slots := PointerSlots(p, n)
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = GoString(s)
	}
	return out
}
