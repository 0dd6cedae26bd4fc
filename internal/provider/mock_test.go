package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_Deterministic(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	a, err := m.FetchFlights(ctx, "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)
	b, err := m.FetchFlights(ctx, "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 10)

	h, err := m.FetchHotels(ctx, "MAD", "2026-09-01", "2026-09-03")
	require.NoError(t, err)
	assert.Len(t, h, 10)
}

func TestMock_ResolveCity(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	code, err := m.ResolveCity(ctx, "Madrid")
	require.NoError(t, err)
	assert.Equal(t, "MAD", code)

	code, err = m.ResolveCity(ctx, "  new york  ")
	require.NoError(t, err)
	assert.Equal(t, "NYC", code)

	code, err = m.ResolveCity(ctx, "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, code)
}
