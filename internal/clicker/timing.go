package clicker

import "math"

// Rand is the randomness the timing uses. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	Uint64() uint64
	Uint64N(n uint64) uint64
	IntN(n int) int
}

const (
	minHoldFloor    = 2
	plainHoldFloor  = 20
	holdRatioLow    = 0.3
	holdRatioSpread = 0.3
)

// Target returns the click period in milliseconds. cps must be > 0.
func Target(cps uint64) uint64 {
	return 1000 / cps
}

// HoldBounds returns the clamp range applied to a humanized hold.
func HoldBounds(target uint64) (lo, hi uint64) {
	lo = max(minHoldFloor, target/4)
	hi = max(target*3/4, lo)
	return lo, hi
}

// Timing computes how long to hold the button and how long to wait after
// releasing it. cfg.CPS must be > 0.
func Timing(cfg Config, rnd Rand) (hold, gap uint64) {
	target := Target(cfg.CPS)

	if !cfg.Humanize {
		hold = max(target/2, plainHoldFloor)
		return hold, satSub(target, hold)
	}

	ratio := holdRatioLow + rnd.Float64()*holdRatioSpread
	hold = uint64(float64(target) * ratio)
	hold = jitter(hold, cfg.RandomnessMs, rnd)
	lo, hi := HoldBounds(target)
	hold = min(max(hold, lo), hi)

	gap = jitter(satSub(target, hold), cfg.RandomnessMs, rnd)
	return hold, gap
}

// jitter adds or subtracts a uniform draw from [0, randomness] with equal
// probability, saturating at both ends.
func jitter(v, randomness uint64, rnd Rand) uint64 {
	if randomness == 0 {
		return v
	}
	var j uint64
	if randomness == math.MaxUint64 {
		j = rnd.Uint64()
	} else {
		j = rnd.Uint64N(randomness + 1)
	}
	if rnd.IntN(2) == 0 {
		return satAdd(v, j)
	}
	return satSub(v, j)
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
