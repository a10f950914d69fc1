package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("AURA_TEST_MODE", "1")
		if os.Getenv("AURA_ENV_FILE") == "" {
			_ = os.Setenv("AURA_ENV_FILE", os.DevNull+".missing")
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
