package hyperloglog

import "github.com/spaolacci/murmur3"

// Sum32 returns the 32-bit MurmurHash3 of data with a fixed zero seed, so
// the same input hashes identically across runs and processes.
func Sum32(data []byte) uint32 {
	return murmur3.Sum32(data)
}

// SumString is Sum32 for strings.
func SumString(s string) uint32 {
	return murmur3.Sum32([]byte(s))
}
