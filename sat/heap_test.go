package sat

import "testing"

func TestVarHeapPopTopReturnsHighestActivity(t *testing.T) {
	h := newVarHeap(4)
	h.insert(0, 1.0)
	h.insert(1, 5.0)
	h.insert(2, 3.0)

	v, ok := h.popTop()
	if !ok || v != 1 {
		t.Fatalf("popTop() = (%v, %v), want (1, true)", v, ok)
	}
	v, ok = h.popTop()
	if !ok || v != 2 {
		t.Fatalf("popTop() = (%v, %v), want (2, true)", v, ok)
	}
	v, ok = h.popTop()
	if !ok || v != 0 {
		t.Fatalf("popTop() = (%v, %v), want (0, true)", v, ok)
	}
	if _, ok := h.popTop(); ok {
		t.Error("popTop() on an empty heap returned ok=true")
	}
}

func TestVarHeapDecreaseKeyReordersTop(t *testing.T) {
	h := newVarHeap(2)
	h.insert(0, 1.0)
	h.insert(1, 2.0)

	h.decreaseKey(0, 10.0)

	v, ok := h.popTop()
	if !ok || v != 0 {
		t.Fatalf("popTop() after decreaseKey raised var 0's activity = (%v, %v), want (0, true)", v, ok)
	}
}

func TestVarHeapDecreaseKeyNoopWhenAbsent(t *testing.T) {
	h := newVarHeap(1)
	h.insert(0, 1.0)
	h.popTop()

	// v0 is no longer in the heap; decreaseKey must not panic or resurrect it.
	h.decreaseKey(0, 100.0)

	if h.contains(0) {
		t.Error("decreaseKey on an absent variable re-inserted it")
	}
}

func TestVarHeapContains(t *testing.T) {
	h := newVarHeap(1)
	if h.contains(0) {
		t.Error("contains(0) = true before insert")
	}
	h.insert(0, 1.0)
	if !h.contains(0) {
		t.Error("contains(0) = false after insert")
	}
	h.popTop()
	if h.contains(0) {
		t.Error("contains(0) = true after popTop")
	}
}
