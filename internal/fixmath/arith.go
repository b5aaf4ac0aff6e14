package fixmath

// MaxMagnitude is returned (with the proper sign) by Divide and MulDiv when
// the divisor is zero.
const MaxMagnitude int64 = 0x7FFFFFFF

// Multiply returns a*b for 16.16 operands, rounding to nearest.
func Multiply(a, b int64) int64 {
	a, b, neg := unsign(a, b)
	c := (a*b + 0x8000) >> 16
	return resign(c, neg)
}

// Divide returns a/b for 16.16 operands, rounding to nearest.
func Divide(a, b int64) int64 {
	a, b, neg := unsign(a, b)
	q := MaxMagnitude
	if b > 0 {
		q = ((a << 16) + (b >> 1)) / b
	}
	return resign(q, neg)
}

// MulDiv returns a*b/c with a single rounding step.
func MulDiv(a, b, c int64) int64 {
	a, b, neg := unsign(a, b)
	if c < 0 {
		c = -c
		neg = !neg
	}
	d := MaxMagnitude
	if c > 0 {
		d = (a*b + (c >> 1)) / c
	}
	return resign(d, neg)
}

func unsign(a, b int64) (int64, int64, bool) {
	neg := false
	if a < 0 {
		a = -a
		neg = !neg
	}
	if b < 0 {
		b = -b
		neg = !neg
	}
	return a, b, neg
}

func resign(v int64, neg bool) int64 {
	if neg {
		return -v
	}
	return v
}
