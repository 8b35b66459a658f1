package process

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash computes the fingerprint of recognized page text using xxhash.
// The same text always yields the same fingerprint, so re-submitted pages
// collide in the seen filter and the record store.
func ComputeHash(text string) string {
	h := xxhash.Sum64String(text)
	return fmt.Sprintf("%x", h)
}
