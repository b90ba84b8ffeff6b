// Package svg renders land maps as a grid of rounded cells and publishes the
// document to a file and to the HTTP server.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/couchcryptid/landmask-etl/internal/domain"
)

const (
	seaColour  = "#0969da"
	landColour = "#39d353"
)

// Style controls cell geometry.
type Style struct {
	CellSize int
	Margin   int
	// Shape is "square" or "circle".
	Shape string
}

func (s Style) cornerRadius() (float64, error) {
	switch s.Shape {
	case "square":
		return 0.25 * float64(s.CellSize), nil
	case "circle":
		return 0.5 * float64(s.CellSize), nil
	}
	return 0, fmt.Errorf("unknown cell shape %q", s.Shape)
}

// Size returns the canvas width and height for a mask of the given shape.
func (s Style) Size(shape domain.Shape) (int, int) {
	pitch := s.CellSize + s.Margin
	return shape.Cols*pitch + 2*s.Margin, shape.Rows*pitch + 2*s.Margin
}

// Render writes m to w. Row 0 of the mask is the southern edge, so rows are
// drawn bottom-up to put north at the top of the image.
func Render(w io.Writer, m domain.Mask, style Style) error {
	r, err := style.cornerRadius()
	if err != nil {
		return err
	}

	shape := m.Shape()
	width, height := style.Size(shape)
	pitch := style.CellSize + style.Margin
	// Roundrect only takes integer radii, so the corners are passed as attributes.
	rxy := strconv.FormatFloat(r, 'f', -1, 64)
	corners := fmt.Sprintf(`rx="%s" ry="%s"`, rxy, rxy)
	landFill := "fill:" + landColour
	seaFill := "fill:" + seaColour

	canvas := svg.New(w)
	canvas.Start(width, height)
	for lat := range shape.Rows {
		y := (shape.Rows-1-lat)*pitch + style.Margin
		for lon := range shape.Cols {
			fill := seaFill
			if m.Land(lat, lon) {
				fill = landFill
			}
			canvas.Rect(lon*pitch+style.Margin, y, style.CellSize, style.CellSize, corners, fill)
		}
	}
	canvas.End()
	return nil
}

// RenderBytes renders m into memory.
func RenderBytes(m domain.Mask, style Style) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, m, style); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
