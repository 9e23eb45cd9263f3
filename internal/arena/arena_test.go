package arena

import "testing"

func TestArenaAppendGet(t *testing.T) {
	var a Arena[int]
	i0 := a.Append(10)
	i1 := a.Append(20)
	if a.Get(i0) != 10 || a.Get(i1) != 20 {
		t.Fatalf("got %d, %d", a.Get(i0), a.Get(i1))
	}
	if a.Len() != 2 {
		t.Fatalf("len = %d, want 2", a.Len())
	}
}

func TestArenaReserveThenFill(t *testing.T) {
	var a Arena[string]
	base := a.Reserve(3)
	a.Set(base+1, "middle")
	if a.Get(base+1) != "middle" {
		t.Fatalf("reserve+set failed")
	}
}

func TestSmallArrayPoolPush(t *testing.T) {
	var p SmallArrayPool
	sa := p.Append(1, 2, 3)
	sa = p.Push(sa, 4)
	got := p.Get(sa)
	want := []uint32{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestReplaceAtGrows(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	out := ReplaceAt(items, 1, 1, []int{20, 21, 22})
	want := []int{1, 20, 21, 22, 3, 4, 5}
	if len(out) != len(want) {
		t.Fatalf("got %v want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v want %v", out, want)
		}
	}
}

func TestReplaceAtShrinks(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	out := ReplaceAt(items, 1, 3, []int{99})
	want := []int{1, 99, 5}
	if len(out) != len(want) {
		t.Fatalf("got %v want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v want %v", out, want)
		}
	}
}

func TestTempSaveReset(t *testing.T) {
	var tmp Temp[int]
	tmp.Append(1)
	m := tmp.Save()
	tmp.Append(2)
	tmp.Append(3)
	if tmp.Len() != 3 {
		t.Fatalf("len = %d, want 3", tmp.Len())
	}
	tmp.Reset(m)
	if tmp.Len() != 1 {
		t.Fatalf("len after reset = %d, want 1", tmp.Len())
	}
}
