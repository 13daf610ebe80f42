package systems

import (
	"sync"

	"github.com/kvellan/drift/config"
)

var configOnce sync.Once

// ensureConfig loads the embedded default config exactly once for the
// package's tests.
func ensureConfig() {
	configOnce.Do(func() {
		config.MustInit("")
	})
}

// testDT is the fixed tick used across the package's tests.
const testDT = float32(1.0 / 60.0)
