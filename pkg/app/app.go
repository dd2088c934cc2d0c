// Package app encodes and decodes the five FANET payload variants (Tracking,
// GroundTracking, Name, Message, Service) and assembles them, together with
// pkg/link's envelope, into a complete Packet. This mirrors the split
// between link-layer framing and application-object parsing.
package app

import "math"

// signExtend interprets the low n bits of v as a two's-complement integer.
func signExtend(v uint64, n int) int32 {
	shift := uint(32 - n)
	return int32(uint32(v)<<shift) >> shift
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundF(v float64) int {
	return int(math.Round(v))
}
