// Package mathx provides fast deterministic hashing for seed-derived
// selection. Keep portable and stable across versions: no math/rand, no
// hash/maphash.
package mathx

// Mix64 avalanches a 64-bit value (Murmur-style finalizer).
func Mix64(v uint64) uint64 {
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}

// Hash2 returns a stable hash for 2-D integer coordinates and a seed.
// Large odd constants decorrelate the axes.
func Hash2(seed int64, x, y int) uint64 {
	h := uint64(seed)
	h ^= uint64(int64(x)) * 0x9e3779b97f4a7c15
	h ^= uint64(int64(y)) * 0xc2b2ae3d27d4eb4f
	return Mix64(h)
}

// Unit maps a hash to a float in [0, 1).
func Unit(h uint64) float64 {
	return float64(h>>11) / float64(1<<53)
}
