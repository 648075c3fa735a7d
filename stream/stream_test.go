package stream

import (
	"reflect"
	"testing"
)

func TestFromSliceToSlice(t *testing.T) {
	tests := []struct {
		name string
		in   []int
	}{
		{"empty", []int{}},
		{"single", []int{7}},
		{"several", []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToSlice(FromSlice(tt.in))
			if !reflect.DeepEqual(got, tt.in) {
				t.Errorf("ToSlice(FromSlice(%v)) = %v", tt.in, got)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	_, _, ok := Empty[int]().Next()
	if ok {
		t.Error("Empty sequence yielded an element")
	}
}

func TestConsSingle(t *testing.T) {
	got := ToSlice(Cons(1, Single(2)))
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Cons(1, Single(2)) = %v, want [1 2]", got)
	}
}

func TestNext_Memoized(t *testing.T) {
	calls := 0
	s := Delay(func() *Seq[int] {
		calls++
		return FromSlice([]int{1, 2})
	})

	for i := 0; i < 5; i++ {
		v, _, ok := s.Next()
		if !ok || v != 1 {
			t.Fatalf("Next() = %v, %v", v, ok)
		}
	}
	if calls != 1 {
		t.Errorf("delayed constructor ran %d times, want 1", calls)
	}
}

func TestDelay_NotForcedEarly(t *testing.T) {
	forced := false
	s := Delay(func() *Seq[int] {
		forced = true
		return Single(1)
	})
	if forced {
		t.Fatal("Delay forced its thunk at construction")
	}
	s.Next()
	if !forced {
		t.Fatal("Next did not force the thunk")
	}
}

func TestConcat_Order(t *testing.T) {
	got := ToSlice(Concat(FromSlice([]int{1, 2}), Empty[int](), FromSlice([]int{3})))
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Concat = %v, want [1 2 3]", got)
	}
}

func TestConcat_LaterSequenceNotForcedEarly(t *testing.T) {
	forced := false
	second := Delay(func() *Seq[int] {
		forced = true
		return Single(3)
	})
	s := Concat(FromSlice([]int{1, 2}), second)

	if got := Take(2, s); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("Take(2) = %v", got)
	}
	if forced {
		t.Error("second sequence was forced before the first was exhausted")
	}

	if got := ToSlice(s); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("ToSlice = %v", got)
	}
	if !forced {
		t.Error("second sequence should have been forced by full traversal")
	}
}

func TestMap(t *testing.T) {
	got := ToSlice(Map(func(v int) int { return v * 10 }, FromSlice([]int{1, 2, 3})))
	if !reflect.DeepEqual(got, []int{10, 20, 30}) {
		t.Errorf("Map = %v", got)
	}
}

func TestMap_Lazy(t *testing.T) {
	applied := 0
	s := Map(func(v int) int {
		applied++
		return v
	}, FromSlice([]int{1, 2, 3}))

	Take(1, s)
	if applied != 1 {
		t.Errorf("Map applied f %d times after forcing one element, want 1", applied)
	}
}

func TestFilter(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }
	got := ToSlice(Filter(even, FromSlice([]int{1, 2, 3, 4, 5, 6})))
	if !reflect.DeepEqual(got, []int{2, 4, 6}) {
		t.Errorf("Filter = %v, want [2 4 6]", got)
	}

	none := ToSlice(Filter(func(int) bool { return false }, FromSlice([]int{1, 2})))
	if !reflect.DeepEqual(none, []int{}) {
		t.Errorf("Filter(false) = %v, want []", none)
	}
}

func TestUnfold(t *testing.T) {
	// Counts down by halving, like the towards shrink strategy
	got := ToSlice(Unfold(8,
		func(d int) bool { return d > 0 },
		func(d int) (int, int) { return d, d / 2 }))
	if !reflect.DeepEqual(got, []int{8, 4, 2, 1}) {
		t.Errorf("Unfold = %v, want [8 4 2 1]", got)
	}
}

func TestTake_Infinite(t *testing.T) {
	ones := Unfold(1,
		func(int) bool { return true },
		func(s int) (int, int) { return s, s })
	got := Take(4, ones)
	if !reflect.DeepEqual(got, []int{1, 1, 1, 1}) {
		t.Errorf("Take(4) on infinite sequence = %v", got)
	}
}

func TestTake_ShortSequence(t *testing.T) {
	got := Take(10, FromSlice([]int{1, 2}))
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Take(10) = %v, want [1 2]", got)
	}
}

func TestConcurrentForcingIdempotent(t *testing.T) {
	calls := 0
	s := Delay(func() *Seq[int] {
		calls++
		return FromSlice([]int{42})
	})

	done := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func() {
			v, _, _ := s.Next()
			done <- v
		}()
	}
	for i := 0; i < 8; i++ {
		if v := <-done; v != 42 {
			t.Errorf("concurrent Next() = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("thunk ran %d times under concurrent forcing, want 1", calls)
	}
}
