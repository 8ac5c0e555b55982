package testsupport

import (
	"testing"

	"strikearr/internal/config"
	"strikearr/internal/strikes"
)

// MustOpenStore opens a strikes.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *strikes.Store {
	t.Helper()

	store, err := strikes.Open(cfg)
	if err != nil {
		t.Fatalf("strikes.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
