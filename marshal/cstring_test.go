package marshal

import (
	"testing"
	"unsafe"
)

func TestGoBytes(t *testing.T) {
	t.Run("non_empty", func(t *testing.T) {
		buf := []byte("hello\x00trailing")
		p := uintptr(unsafe.Pointer(&buf[0]))

		got := GoBytes(p)
		if string(got) != "hello" {
			t.Errorf("got %q, want hello", got)
		}
	})

	t.Run("copies", func(t *testing.T) {
		buf := []byte("abc\x00")
		p := uintptr(unsafe.Pointer(&buf[0]))

		got := GoBytes(p)
		buf[0] = 'x'
		if string(got) != "abc" {
			t.Errorf("copy mutated with source: got %q, want abc", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		buf := []byte{0}
		p := uintptr(unsafe.Pointer(&buf[0]))

		got := GoBytes(p)
		if got == nil || len(got) != 0 {
			t.Errorf("got %v, want empty non-nil", got)
		}
	})

	t.Run("zero_pointer", func(t *testing.T) {
		if got := GoBytes(0); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestGoString(t *testing.T) {
	buf := []byte("1.2.3\x00")
	p := uintptr(unsafe.Pointer(&buf[0]))

	if got := GoString(p); got != "1.2.3" {
		t.Errorf("got %q, want 1.2.3", got)
	}
	if got := GoString(0); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestPointerSlots(t *testing.T) {
	a := []byte("a\x00")
	b := []byte("b\x00")
	slots := []uintptr{
		uintptr(unsafe.Pointer(&a[0])),
		uintptr(unsafe.Pointer(&b[0])),
	}
	p := uintptr(unsafe.Pointer(&slots[0]))

	got := PointerSlots(p, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for i, want := range slots {
		if got[i] != want {
			t.Errorf("slot[%d] = %#x, want %#x", i, got[i], want)
		}
	}

	if got := PointerSlots(0, 2); got != nil {
		t.Errorf("zero pointer: got %v, want nil", got)
	}
	if got := PointerSlots(p, 0); got != nil {
		t.Errorf("zero length: got %v, want nil", got)
	}
}

func TestStrings(t *testing.T) {
	a := []byte("one\x00")
	b := []byte("\x00")
	c := []byte("three\x00")
	slots := []uintptr{
		uintptr(unsafe.Pointer(&a[0])),
		uintptr(unsafe.Pointer(&b[0])),
		uintptr(unsafe.Pointer(&c[0])),
	}
	p := uintptr(unsafe.Pointer(&slots[0]))

	got := Strings(p, 3)
	want := []string{"one", "", "three"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
