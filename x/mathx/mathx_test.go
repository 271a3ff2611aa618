package mathx

import "testing"

func TestClampAndBetween(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp high = %d", got)
	}
	if got := Clamp(-1, 3, 0); got != 0 {
		t.Fatalf("Clamp swapped bounds = %d", got)
	}
	if got := Clamp[uint16](200, 10, 255); got != 200 {
		t.Fatalf("Clamp inside = %d", got)
	}
	if !Between(8, 16, 1) || Between(17, 1, 16) {
		t.Fatal("Between mismatch")
	}
	if Max(3, 9) != 9 || Max(9, 3) != 9 {
		t.Fatal("Max mismatch")
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ a, b, want uint32 }{
		{5000, 250, 20},
		{5001, 250, 21},
		{0, 7, 0},
		{1, 1000, 1},
		{9, 0, 0},
	}
	for _, c := range cases {
		if got := CeilDiv(c.a, c.b); got != c.want {
			t.Fatalf("CeilDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestMulDivFloor(t *testing.T) {
	// Two-cell scaling of a three-cell threshold: 2*675/3 and 2*715/3.
	if got := MulDivFloor[uint16](675, 2, 3); got != 450 {
		t.Fatalf("MulDivFloor(675,2,3) = %d, want 450", got)
	}
	if got := MulDivFloor[uint16](715, 2, 3); got != 476 {
		t.Fatalf("MulDivFloor(715,2,3) = %d, want 476", got)
	}
	if got := MulDivFloor[uint16](65535, 4, 1); got != 262140 {
		t.Fatalf("no overflow expected, got %d", got)
	}
	if got := MulDivFloor[uint16](1, 1, 0); got != 0 {
		t.Fatalf("den 0 = %d", got)
	}
}

func TestFullScale(t *testing.T) {
	cases := map[int]uint64{0: 0, 8: 255, 10: 1023, 12: 4095, 16: 65535, 64: ^uint64(0)}
	for bits, want := range cases {
		if got := FullScale(bits); got != want {
			t.Fatalf("FullScale(%d) = %d, want %d", bits, got, want)
		}
	}
}
