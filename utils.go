package hyperloglog

import (
	"math"
	"math/bits"
)

const two32 float64 = 1 << 32

func alpha(m uint32) float64 {
	switch m {
	case 16:
		return 0.673
	case 32:
		return 0.697
	case 64:
		return 0.709
	}
	return 0.7213 / (1 + 1.079/float64(m))
}

// rank returns the 1-based position of the first set bit of w, scanning
// from the top of a width-bit field. An all-zero w gives width+1.
func rank(w uint32, width uint8) uint8 {
	return uint8(bits.LeadingZeros32(w)) - (hashBits - width) + 1
}

// maxRank is the largest register value reachable at precision p.
func maxRank(p uint8) uint8 {
	return hashBits - p + 1
}

func calculateEstimate(reg []uint8, alphaMM float64) float64 {
	sum := 0.0
	for _, v := range reg {
		sum += math.Exp2(-float64(v))
	}
	return alphaMM / sum
}

func countZeros(reg []uint8) uint32 {
	var c uint32
	for _, v := range reg {
		if v == 0 {
			c++
		}
	}
	return c
}

func linearCounting(m uint32, v uint32) float64 {
	fm := float64(m)
	return fm * math.Log(fm/float64(v))
}

// largeRangeCorrection undoes hash collisions near the 2^32 hash space.
// Raw estimates at or past 2^32 have no defined correction and are
// returned as is.
func largeRangeCorrection(est float64) float64 {
	if est >= two32 {
		return est
	}
	return -two32 * math.Log(1-est/two32)
}
