package zmod

import "errors"

// ErrNotInvertible is returned when a scalar or matrix has no
// multiplicative inverse modulo the modulus, i.e. when its gcd with
// the modulus isn't 1. Callers should match it with errors.Is, since
// it is usually wrapped with context.
var ErrNotInvertible = errors.New("zmod: not invertible")

func checkModulus(m int64) {
	if m < 2 {
		panic("modulus must be at least 2")
	}
}

// Mod returns x reduced into [0, m). Unlike the % operator, the
// result is non-negative even for negative x.
func Mod(x, m int64) int64 {
	checkModulus(m)
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// GCD returns the greatest common divisor of a and b as a
// non-negative integer. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Inverse returns the b in [0, m) with a*b = 1 mod m, computed with
// the extended Euclidean algorithm. It returns ErrNotInvertible if
// gcd(a, m) != 1.
func Inverse(a, m int64) (int64, error) {
	checkModulus(m)
	a = Mod(a, m)

	// Loop invariant: oldR = oldS*a mod m and r = s*a mod m, with
	// oldR, r walking the Euclidean remainder sequence of (a, m).
	// On exit oldR is gcd(a, m).
	oldR, r := a, m
	oldS, s := int64(1), int64(0)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, ErrNotInvertible
	}
	return Mod(oldS, m), nil
}
