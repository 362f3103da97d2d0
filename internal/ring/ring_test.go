package ring

import "testing"

func TestPushSaturatesAtCapacity(t *testing.T) {
	b := New[int](8)
	for n := 1; n <= 20; n++ {
		b.Push(n)
		want := n
		if want > 8 {
			want = 8
		}
		if b.Len() != want {
			t.Fatalf("after %d pushes: Len = %d, want %d", n, b.Len(), want)
		}
	}
}

func TestWindowOrdering(t *testing.T) {
	b := New[int](4)
	for n := 1; n <= 6; n++ {
		b.Push(n)
	}
	// Buffer holds 3..6; window must be most-recent-first.
	got := b.Window(4)
	want := []int{6, 5, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("window length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestWindowClampsToCount(t *testing.T) {
	b := New[int](16)
	b.Push(1)
	b.Push(2)
	got := b.Window(5)
	if len(got) != 2 {
		t.Fatalf("window length = %d, want 2", len(got))
	}
	if got[0] != 2 || got[1] != 1 {
		t.Fatalf("window = %v, want [2 1]", got)
	}
	if b.Window(0) != nil {
		t.Fatal("Window(0) should be nil")
	}
}

func TestWraparoundKeepsMostRecent(t *testing.T) {
	// 40 pushes into 32 slots must leave exactly 9..40 in push order.
	b := New[int](32)
	for n := 1; n <= 40; n++ {
		b.Push(n)
	}
	if b.Len() != 32 {
		t.Fatalf("Len = %d, want 32", b.Len())
	}
	chrono := b.Chronological()
	for i, v := range chrono {
		if v != 9+i {
			t.Fatalf("chronological[%d] = %d, want %d", i, v, 9+i)
		}
	}
}

func TestLatest(t *testing.T) {
	b := New[string](2)
	if _, ok := b.Latest(); ok {
		t.Fatal("Latest on empty buffer should report false")
	}
	b.Push("a")
	b.Push("b")
	b.Push("c")
	v, ok := b.Latest()
	if !ok || v != "c" {
		t.Fatalf("Latest = %q, %v; want \"c\", true", v, ok)
	}
}
