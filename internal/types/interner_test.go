package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Void == NoTypeID || b.Bool == NoTypeID || b.Int32 == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	i32, _ := in.Lookup(b.Int32)
	if i32.Kind != KindInt || i32.Width != Width32 {
		t.Fatalf("expected 32-bit int, got %+v", i32)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	ptr1 := in.Intern(MakePointer(in.Builtins().Int32))
	ptr2 := in.Intern(MakePointer(in.Builtins().Int32))
	if ptr1 != ptr2 {
		t.Fatalf("pointer types should be deduplicated")
	}
	other := in.Intern(MakePointer(in.Builtins().Int64))
	if other == ptr1 {
		t.Fatalf("pointers to different elements must differ")
	}
}

func TestPointee(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().Float64
	ptr := in.Intern(MakePointer(elem))
	if got := in.Pointee(ptr); got != elem {
		t.Fatalf("pointee mismatch: got %d, want %d", got, elem)
	}
	if got := in.Pointee(elem); got != NoTypeID {
		t.Fatalf("pointee of a non-pointer should be NoTypeID, got %d", got)
	}
}

func TestFromTablePreservesIDs(t *testing.T) {
	in := NewInterner()
	ptr := in.Intern(MakePointer(in.Builtins().Int32))
	arr := in.Intern(MakeArray(in.Builtins().Int8, 16))

	rebuilt := FromTable(in.Table())
	if rebuilt.Builtins() != in.Builtins() {
		t.Fatalf("builtins diverged after rebuild")
	}
	if got := rebuilt.Intern(MakePointer(rebuilt.Builtins().Int32)); got != ptr {
		t.Fatalf("pointer TypeID diverged: got %d, want %d", got, ptr)
	}
	if got := rebuilt.Intern(MakeArray(rebuilt.Builtins().Int8, 16)); got != arr {
		t.Fatalf("array TypeID diverged: got %d, want %d", got, arr)
	}
}
