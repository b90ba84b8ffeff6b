package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/landmask-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.json")
	want := []domain.Sample{
		{Lat: 0, Lon: -180, Category: domain.Land},
		{Lat: 0, Lon: -90, Category: domain.Sea},
	}
	require.NoError(t, Write(path, File{
		Source:      "test",
		GeneratedAt: time.Date(2024, time.April, 26, 0, 0, 0, 0, time.UTC),
		Samples:     want,
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"category": "land"`)

	got, err := NewSource(path).FetchSamples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRead_RejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"samples":[{"lat":1,"lon":2,"category":"unknown"}]}`), 0o644))

	_, err := Read(path)
	assert.ErrorContains(t, err, "sample 0")
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read fixture")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"samples":[{"category":"swamp"}]}`), 0o644))
	_, err = Read(path)
	assert.ErrorContains(t, err, "decode fixture")
}
