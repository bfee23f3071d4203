package valuestream

import "math"

func floatBitsOf32(v float32) uint32 {
	return math.Float32bits(v)
}

func floatBitsOf64(v float64) uint64 {
	return math.Float64bits(v)
}
