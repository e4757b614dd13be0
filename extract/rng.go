package extract

import "math/rand"

// defaultSeed is used when callers pass seed == 0.
const defaultSeed int64 = 246

// rngFromSeed returns a deterministic *rand.Rand.
// math/rand.Rand is not goroutine-safe; each strategy run owns its own.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
