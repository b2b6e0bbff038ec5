package conv

import (
	"fmt"
	"math"
)

// UintToInt converts uint to int safely.
func UintToInt(v uint) (int, error) {
	if v > math.MaxInt {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// Uint64ToUint converts uint64 to uint safely.
func Uint64ToUint(v uint64) (uint, error) {
	// On 64-bit systems this is always false
	if v > math.MaxUint {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint (too large)", v)
	}
	return uint(v), nil
}
