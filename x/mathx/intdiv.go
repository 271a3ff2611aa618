package mathx

// CeilDiv returns ceil(a/b) for positive integers. b == 0 yields 0.
func CeilDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return a/b + boolTo[T](a%b != 0)
}

// MulDivFloor returns floor(v*num/den) with 64-bit intermediates.
// den == 0 yields 0.
func MulDivFloor[T ~uint | ~uint8 | ~uint16 | ~uint32](v, num, den T) uint64 {
	if den == 0 {
		return 0
	}
	return uint64(v) * uint64(num) / uint64(den)
}

func boolTo[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](b bool) T {
	if b {
		return 1
	}
	return 0
}
