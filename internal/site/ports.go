package site

import (
	"github.com/Zigazou/DSM/internal/errors"
)

// AllocatePort returns the lowest unused base port within [min, max],
// stepping by stride so every site keeps step consecutive ports for its
// derived HTTPS and database ports.
//
// The caller must treat allocation plus site directory creation as a
// single critical section: directory creation is exclusive and a losing
// racer re-allocates against the fresh registry listing.
func AllocatePort(used []int, min, max, step int) (int, error) {
	taken := make(map[int]bool, len(used))
	for _, p := range used {
		taken[p] = true
	}

	for port := min; port+step-1 <= max; port += step {
		if !taken[port] {
			return port, nil
		}
	}
	return 0, errors.ErrPortsExhausted
}
