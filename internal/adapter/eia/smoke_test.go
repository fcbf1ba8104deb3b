//go:build eia

package eia

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real EIA API and require a valid EIA_API_KEY env var.
// Run with: go test -tags=eia ./internal/adapter/eia/ -v -count=1

func TestSmoke_ResidentialPrice(t *testing.T) {
	key := os.Getenv("EIA_API_KEY")
	if key == "" {
		t.Fatal("EIA_API_KEY must be set to run smoke tests")
	}
	c := NewClient(key, 10*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	price, err := c.ResidentialPrice(context.Background(), "CA")
	require.NoError(t, err)
	assert.Greater(t, price, 0.05)
	assert.Less(t, price, 1.0)
	t.Logf("CA residential price: %.4f USD/kWh", price)
}
