package eval

import (
	"math"

	"fortio.org/safecast"
)

// narrow converts an exact int64 result to int32 under the overflow policy.
func (e *evaluator) narrow(v int64) (int32, bool) {
	if e.opts.Overflow == OverflowWrap {
		return int32(v), true // #nosec G115 -- wrapping is the requested behaviour
	}
	n, err := safecast.Conv[int32](v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (e *evaluator) add(a, b int32) (int32, bool) {
	return e.narrow(int64(a) + int64(b))
}

func (e *evaluator) sub(a, b int32) (int32, bool) {
	return e.narrow(int64(a) - int64(b))
}

func (e *evaluator) mul(a, b int32) (int32, bool) {
	return e.narrow(int64(a) * int64(b))
}

func (e *evaluator) neg(a int32) (int32, bool) {
	return e.narrow(-int64(a))
}

// div truncates toward zero. The caller rejects a zero divisor.
// MinInt32 / -1 has no int32 quotient and fails under both policies.
func (e *evaluator) div(a, b int32) (int32, bool) {
	if a == math.MinInt32 && b == -1 {
		return 0, false
	}
	return e.narrow(int64(a) / int64(b))
}

// pow computes base^exp by repeated squaring. exp must be non-negative.
func (e *evaluator) pow(base, exp int32) (int32, bool) {
	acc := int32(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if acc, ok = e.mul(acc, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = e.mul(base, base); !ok {
				return 0, false
			}
		}
	}
	return acc, true
}

// factorial computes n! for n >= 0.
func (e *evaluator) factorial(n int32) (int32, bool) {
	acc := int32(1)
	for i := int32(2); i <= n; i++ {
		var ok bool
		if acc, ok = e.mul(acc, i); !ok {
			return 0, false
		}
		// once the wrapped product hits zero it stays there
		if acc == 0 {
			return 0, true
		}
	}
	return acc, true
}
