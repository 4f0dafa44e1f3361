package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a parameter name. Dataset column lookups key on
// this hash instead of the string to keep per-row access allocation-free.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
