package svg

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/landmask-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMask(t *testing.T, rows ...string) domain.Mask {
	t.Helper()
	m, err := domain.MaskFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestStyle_Size(t *testing.T) {
	style := Style{CellSize: 8, Margin: 1, Shape: "circle"}
	w, h := style.Size(domain.Shape{Rows: 45, Cols: 90})
	assert.Equal(t, 90*9+2, w)
	assert.Equal(t, 45*9+2, h)
}

func TestRender_Cells(t *testing.T) {
	// Row 0 is south, so it is drawn last.
	m := mustMask(t, "10", "00")

	doc, err := RenderBytes(m, Style{CellSize: 8, Margin: 1, Shape: "square"})
	require.NoError(t, err)
	out := string(doc)

	assert.Contains(t, out, `width="20" height="20"`)
	assert.Equal(t, 4, strings.Count(out, "<rect"))
	assert.Equal(t, 1, strings.Count(out, "fill:#39d353"))
	assert.Equal(t, 3, strings.Count(out, "fill:#0969da"))
	assert.Contains(t, out, `<rect x="1" y="10" width="8" height="8" rx="2" ry="2" style="fill:#39d353"`)
}

func TestRender_CircleRadius(t *testing.T) {
	doc, err := RenderBytes(mustMask(t, "1"), Style{CellSize: 8, Margin: 1, Shape: "circle"})
	require.NoError(t, err)
	assert.Contains(t, string(doc), `rx="4" ry="4"`)
}

func TestRender_FractionalRadius(t *testing.T) {
	tests := []struct {
		shape string
		want  string
	}{
		{shape: "square", want: `rx="2.5" ry="2.5"`},
		{shape: "circle", want: `rx="5" ry="5"`},
	}
	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			doc, err := RenderBytes(mustMask(t, "1"), Style{CellSize: 10, Margin: 1, Shape: tt.shape})
			require.NoError(t, err)
			assert.Contains(t, string(doc), tt.want)
		})
	}
}

func TestRender_UnknownShape(t *testing.T) {
	_, err := RenderBytes(mustMask(t, "1"), Style{CellSize: 8, Shape: "hexagon"})
	assert.ErrorContains(t, err, `unknown cell shape "hexagon"`)
}

func TestPublisher_WritesFileAndKeepsLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landmask.svg")
	p := NewPublisher(path, Style{CellSize: 4, Margin: 0, Shape: "square"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, ok := p.Latest()
	assert.False(t, ok)

	err := p.Publish(context.Background(), domain.LandMap{Mask: mustMask(t, "01")})
	require.NoError(t, err)

	latest, ok := p.Latest()
	require.True(t, ok)
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, latest, onDisk)
	assert.Equal(t, "svg", p.Name())
}

func TestPublisher_NoPathKeepsInMemory(t *testing.T) {
	p := NewPublisher("", Style{CellSize: 4, Shape: "circle"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, p.Publish(context.Background(), domain.LandMap{Mask: mustMask(t, "1")}))
	latest, ok := p.Latest()
	require.True(t, ok)
	assert.Contains(t, string(latest), "</svg>")
}
